package anomaly

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

// finding is the outcome of evaluating one metric key, ok results included.
type finding struct {
	key      Key
	expected decimal.Decimal
	actual   decimal.Decimal
	delta    decimal.Decimal
	severity threshold.Severity
}

// skipped records a metric key that could not be evaluated from the snapshot.
type skipped struct {
	key    Key
	reason string
}

type pair struct {
	start *decimal.Decimal
	end   *decimal.Decimal
}

func (p *pair) set(phase Phase, v decimal.Decimal) {
	switch phase {
	case PhaseStart:
		p.start = &v
	case PhaseEnd:
		p.end = &v
	}
}

func (p pair) complete() bool {
	return p.start != nil && p.end != nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// reconcile evaluates every metric the snapshot has data for. Variance is
// always expected minus actual.
func reconcile(snap *ShiftSnapshot, set threshold.Set, isCash func(string) bool) ([]finding, []skipped) {
	var (
		findings []finding
		skips    []skipped
	)

	nozzles := make(map[string]pair)
	for _, m := range snap.Meters {
		p := nozzles[m.NozzleID]
		p.set(m.Phase, m.Value)
		nozzles[m.NozzleID] = p
	}

	soldByNozzle := make(map[string]decimal.Decimal)
	cashExpected := decimal.Zero

	for _, s := range snap.Sales {
		// Sales off the pumps, such as shop items, count towards cash only.
		if s.NozzleID != "" {
			soldByNozzle[s.NozzleID] = soldByNozzle[s.NozzleID].Add(s.Liters)
		}

		if isCash(s.PaymentType) {
			cashExpected = cashExpected.Add(s.Amount)
		}
	}

	for nozzleID := range soldByNozzle {
		if _, ok := nozzles[nozzleID]; !ok {
			nozzles[nozzleID] = pair{}
		}
	}

	for _, nozzleID := range sortedKeys(nozzles) {
		p := nozzles[nozzleID]
		literKey := Key{Metric: MetricLiterVariance, Subject: nozzleID}
		rollbackKey := Key{Metric: MetricMeterRollback, Subject: nozzleID}

		if !p.complete() {
			skips = append(skips, skipped{key: literKey, reason: "missing start or end meter reading"})
			continue
		}

		expected := p.end.Sub(*p.start)
		actual := soldByNozzle[nozzleID]

		if expected.IsNegative() {
			findings = append(findings, finding{
				key:      rollbackKey,
				expected: expected,
				actual:   actual,
				delta:    expected.Sub(actual),
				severity: threshold.SeverityCritical,
			})
			skips = append(skips, skipped{key: literKey, reason: "meter went backwards"})

			continue
		}

		findings = append(findings,
			finding{key: rollbackKey, expected: expected, actual: actual, delta: decimal.Zero, severity: threshold.SeverityOK},
			finding{
				key:      literKey,
				expected: expected,
				actual:   actual,
				delta:    expected.Sub(actual),
				severity: set.Volume.Classify(expected.Sub(actual)),
			},
		)
	}

	tanks := make(map[string]pair)
	for _, g := range snap.Gauges {
		p := tanks[g.TankID]
		p.set(g.Phase, g.Value)
		tanks[g.TankID] = p
	}

	delivered := make(map[string]decimal.Decimal)
	for _, d := range snap.Deliveries {
		delivered[d.TankID] = delivered[d.TankID].Add(d.Liters)
	}

	soldByTank := make(map[string]decimal.Decimal)
	for nozzleID, liters := range soldByNozzle {
		if tankID, ok := snap.NozzleTanks[nozzleID]; ok {
			soldByTank[tankID] = soldByTank[tankID].Add(liters)
		}
	}

	for _, tankID := range sortedKeys(tanks) {
		p := tanks[tankID]
		key := Key{Metric: MetricTankVariance, Subject: tankID}

		if !p.complete() {
			skips = append(skips, skipped{key: key, reason: "missing start or end gauge reading"})
			continue
		}

		expected := p.start.Add(delivered[tankID]).Sub(*p.end)
		actual := soldByTank[tankID]
		delta := expected.Sub(actual)

		findings = append(findings, finding{
			key:      key,
			expected: expected,
			actual:   actual,
			delta:    delta,
			severity: set.Volume.Classify(delta),
		})
	}

	cashKey := Key{Metric: MetricCashVariance}

	if snap.CashCount == nil {
		skips = append(skips, skipped{key: cashKey, reason: "no cash count recorded"})
	} else {
		delta := cashExpected.Sub(*snap.CashCount)
		findings = append(findings, finding{
			key:      cashKey,
			expected: cashExpected,
			actual:   *snap.CashCount,
			delta:    delta,
			severity: set.Money.Classify(delta),
		})
	}

	return findings, skips
}
