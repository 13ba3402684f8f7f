package config_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/config"
	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

const samplePolicy = `
defaults:
  money:
    yellow: 150
  volume:
    yellow: "10.5"
    red: 40
stations:
  s-north:
    money:
      red: 300
payment_types:
  cash: [CASH, debit]
  credit: [CREDIT]
  credit_by_group:
    fleet: [FLEET_CARD]
`

func writePolicy(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadPolicy_Defaults(t *testing.T) {
	p, err := config.LoadPolicy("")
	require.NoError(t, err)

	set := p.Thresholds.Defaults
	assert.True(t, set.Money.Yellow.Equal(decimal.NewFromInt(200)))
	assert.True(t, set.Money.Red.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, threshold.SeverityOK, set.Money.Classify(decimal.NewFromInt(150)))
	assert.Equal(t, threshold.SeverityWarning, set.Money.Classify(decimal.NewFromInt(-250)))
	assert.Equal(t, threshold.SeverityCritical, set.Money.Classify(decimal.NewFromInt(600)))
	assert.Equal(t, []string{"CASH"}, p.PayTypes.Cash)
}

func TestLoadPolicy_File(t *testing.T) {
	p, err := config.LoadPolicy(writePolicy(t, t.TempDir(), samplePolicy))
	require.NoError(t, err)

	def := p.Thresholds.Defaults
	assert.True(t, def.Money.Yellow.Equal(decimal.NewFromInt(150)))
	assert.True(t, def.Money.Red.Equal(decimal.NewFromInt(500)), "unset red keeps the built-in default")
	assert.True(t, def.Volume.Yellow.Equal(decimal.RequireFromString("10.5")))

	north := p.Thresholds.Stations["s-north"]
	assert.True(t, north.Money.Yellow.Equal(decimal.NewFromInt(150)), "override inherits yellow")
	assert.True(t, north.Money.Red.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, def.Volume, north.Volume)

	src := threshold.NewSource(p.Thresholds)
	assert.Equal(t, north, src.ForStation("s-north"))
	assert.Equal(t, def, src.ForStation("s-south"))

	classifier := paytype.NewClassifier(p.PayTypes)
	assert.True(t, classifier.IsCash("DEBIT"))
	assert.True(t, classifier.IsCreditBearing("fleet_card", "Fleet"))
}

func TestLoadPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "red below yellow", body: "defaults:\n  money:\n    yellow: 600\n"},
		{name: "station override inverted", body: "stations:\n  s1:\n    volume:\n      red: 5\n"},
		{name: "not yaml", body: "defaults: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadPolicy(writePolicy(t, t.TempDir(), tt.body))
			require.Error(t, err)
		})
	}

	_, err := config.LoadPolicy(writePolicy(t, t.TempDir(), "defaults:\n  money:\n    yellow: 600\n"))

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "red", verr.Field)
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	_, err := config.LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchPolicy_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writePolicy(t, dir, samplePolicy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var latest atomic.Pointer[config.Policy]

	done := make(chan error, 1)

	go func() {
		done <- config.WatchPolicy(ctx, path, func(p *config.Policy) { latest.Store(p) }, zap.NewNop())
	}()

	want := decimal.NewFromInt(120)

	// The watcher may not be registered yet on the first write, so rewrite
	// periodically, spaced wider than the debounce window.
	var lastWrite time.Time

	require.Eventually(t, func() bool {
		if time.Since(lastWrite) > time.Second {
			_ = os.WriteFile(path, []byte("defaults:\n  money:\n    yellow: 120\n"), 0o600)
			lastWrite = time.Now()
		}

		p := latest.Load()

		return p != nil && p.Thresholds.Defaults.Money.Yellow.Equal(want)
	}, 5*time.Second, 100*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
