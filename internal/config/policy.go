package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

// Cutoffs is one yellow/red pair as written in the policy file. A zero value
// in a station override inherits the default.
type Cutoffs struct {
	Yellow decimal.Decimal `yaml:"yellow"`
	Red    decimal.Decimal `yaml:"red"`
}

type Thresholds struct {
	Money  Cutoffs `yaml:"money"`
	Volume Cutoffs `yaml:"volume"`
}

type PaymentTypes struct {
	Cash          []string            `yaml:"cash"`
	Credit        []string            `yaml:"credit"`
	CreditByGroup map[string][]string `yaml:"credit_by_group"`
}

// PolicyFile mirrors the YAML layout of POLICY_FILE.
type PolicyFile struct {
	Defaults     Thresholds            `yaml:"defaults"`
	Stations     map[string]Thresholds `yaml:"stations"`
	PaymentTypes PaymentTypes          `yaml:"payment_types"`
}

// Policy is a validated PolicyFile ready to be installed.
type Policy struct {
	Thresholds threshold.Config
	PayTypes   paytype.Rules
}

func DefaultPolicyFile() PolicyFile {
	return PolicyFile{
		Defaults: Thresholds{
			Money:  Cutoffs{Yellow: decimal.NewFromInt(200), Red: decimal.NewFromInt(500)},
			Volume: Cutoffs{Yellow: decimal.NewFromInt(20), Red: decimal.NewFromInt(50)},
		},
		PaymentTypes: PaymentTypes{
			Cash:   []string{"CASH"},
			Credit: []string{"CREDIT"},
		},
	}
}

// LoadPolicy reads path on top of the defaults. An empty path yields the
// defaults alone.
func LoadPolicy(path string) (*Policy, error) {
	file := DefaultPolicyFile()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading policy file: %w", err)
		}

		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
		}
	}

	return file.Compile()
}

// Compile merges station overrides onto the defaults and validates every
// resulting cutoff pair.
func (f PolicyFile) Compile() (*Policy, error) {
	defaults, err := f.Defaults.set()
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	cfg := threshold.Config{Defaults: defaults, Stations: make(map[string]threshold.Set, len(f.Stations))}

	for stationID, override := range f.Stations {
		set, err := mergeThresholds(f.Defaults, override).set()
		if err != nil {
			return nil, fmt.Errorf("station %s: %w", stationID, err)
		}

		cfg.Stations[stationID] = set
	}

	return &Policy{
		Thresholds: cfg,
		PayTypes: paytype.Rules{
			Cash:          f.PaymentTypes.Cash,
			Credit:        f.PaymentTypes.Credit,
			CreditByGroup: f.PaymentTypes.CreditByGroup,
		},
	}, nil
}

func (t Thresholds) set() (threshold.Set, error) {
	money, err := threshold.NewPolicy(t.Money.Yellow, t.Money.Red)
	if err != nil {
		return threshold.Set{}, fmt.Errorf("money: %w", err)
	}

	volume, err := threshold.NewPolicy(t.Volume.Yellow, t.Volume.Red)
	if err != nil {
		return threshold.Set{}, fmt.Errorf("volume: %w", err)
	}

	return threshold.Set{Money: money, Volume: volume}, nil
}

func mergeThresholds(base, override Thresholds) Thresholds {
	base.Money = mergeCutoffs(base.Money, override.Money)
	base.Volume = mergeCutoffs(base.Volume, override.Volume)

	return base
}

func mergeCutoffs(base, override Cutoffs) Cutoffs {
	if !override.Yellow.IsZero() {
		base.Yellow = override.Yellow
	}

	if !override.Red.IsZero() {
		base.Red = override.Red
	}

	return base
}
