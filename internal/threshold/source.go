package threshold

import "sync/atomic"

// Config is the full set of cutoffs in effect: the defaults plus any
// per-station overrides.
type Config struct {
	Defaults Set
	Stations map[string]Set
}

// Source serves the current Config and allows it to be replaced while
// readers are active.
type Source struct {
	cur atomic.Pointer[Config]
}

func NewSource(cfg Config) *Source {
	s := &Source{}
	s.Store(cfg)

	return s
}

func (s *Source) Load() Config {
	return *s.cur.Load()
}

func (s *Source) Store(cfg Config) {
	s.cur.Store(&cfg)
}

// ForStation returns the station's override when one exists, else the defaults.
func (s *Source) ForStation(stationID string) Set {
	cfg := s.cur.Load()
	if set, ok := cfg.Stations[stationID]; ok {
		return set
	}

	return cfg.Defaults
}
