// Package memstore stores imported shift sheets in the in-memory shift
// snapshots the anomaly detector reads.
package memstore

import (
	"context"

	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	anomalymem "github.com/MrJamesThe3rd/fuelbook/internal/anomaly/memstore"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
)

type Store struct {
	shifts *anomalymem.Store
}

func New(shifts *anomalymem.Store) *Store {
	return &Store{shifts: shifts}
}

func (s *Store) ReplaceShift(_ context.Context, shiftID string, sheet *readings.Sheet) error {
	return s.shifts.UpdateSnapshot(shiftID, func(snap *anomaly.ShiftSnapshot) {
		snap.Meters = nil
		snap.Gauges = nil
		snap.Deliveries = nil
		snap.CashCount = nil

		for _, r := range sheet.Readings {
			switch r.Kind {
			case readings.KindMeter:
				snap.Meters = append(snap.Meters, anomaly.MeterReading{NozzleID: r.Subject, Phase: anomaly.Phase(r.Phase), Value: r.Value})
			case readings.KindGauge:
				snap.Gauges = append(snap.Gauges, anomaly.GaugeReading{TankID: r.Subject, Phase: anomaly.Phase(r.Phase), Value: r.Value})
			}
		}

		for _, d := range sheet.Deliveries {
			snap.Deliveries = append(snap.Deliveries, anomaly.Delivery{TankID: d.TankID, Liters: d.Liters})
		}

		if sheet.CashCount != nil {
			cash := *sheet.CashCount
			snap.CashCount = &cash
		}
	})
}
