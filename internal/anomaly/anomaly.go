package anomaly

import (
	"cmp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

// Metric names the quantity being reconciled.
type Metric string

const (
	MetricCashVariance  Metric = "cash_variance"
	MetricLiterVariance Metric = "liter_variance"
	MetricTankVariance  Metric = "tank_variance"
	MetricMeterRollback Metric = "meter_rollback"
)

type ReviewState string

const (
	StatePending  ReviewState = "pending"
	StateReviewed ReviewState = "reviewed"
)

// Anomaly is a flagged discrepancy for one metric of one shift. Subject is the
// nozzle or tank the metric was computed for, empty for cash.
type Anomaly struct {
	ID         uuid.UUID
	StationID  string
	ShiftID    string
	ShiftDate  time.Time
	Metric     Metric
	Subject    string
	Expected   decimal.Decimal
	Actual     decimal.Decimal
	Delta      decimal.Decimal
	Severity   threshold.Severity
	State      ReviewState
	ReviewedBy string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key identifies an anomaly within its shift.
type Key struct {
	Metric  Metric
	Subject string
}

func (a *Anomaly) Key() Key {
	return Key{Metric: a.Metric, Subject: a.Subject}
}

// compareUrgency orders critical first, then most recent shift, then by
// station, metric and subject.
func compareUrgency(a, b *Anomaly) int {
	if c := cmp.Compare(b.Severity.Rank(), a.Severity.Rank()); c != 0 {
		return c
	}

	if c := b.ShiftDate.Compare(a.ShiftDate); c != 0 {
		return c
	}

	return cmp.Or(
		cmp.Compare(a.StationID, b.StationID),
		cmp.Compare(a.ShiftID, b.ShiftID),
		cmp.Compare(a.Metric, b.Metric),
		cmp.Compare(a.Subject, b.Subject),
	)
}

type Phase string

const (
	PhaseStart Phase = "start"
	PhaseEnd   Phase = "end"
)

// MeterReading is a nozzle's cumulative dispensed-liters counter.
type MeterReading struct {
	NozzleID string
	Phase    Phase
	Value    decimal.Decimal
}

// GaugeReading is a tank's measured volume.
type GaugeReading struct {
	TankID string
	Phase  Phase
	Value  decimal.Decimal
}

type Delivery struct {
	TankID string
	Liters decimal.Decimal
}

type Sale struct {
	TransactionID string
	NozzleID      string
	Liters        decimal.Decimal
	Amount        decimal.Decimal
	PaymentType   string
}

// ShiftSnapshot is everything a shift check reads. Sales exclude deleted
// transactions. CashCount is nil when no physical count was recorded.
type ShiftSnapshot struct {
	ShiftID     string
	StationID   string
	ShiftDate   time.Time
	Meters      []MeterReading
	Gauges      []GaugeReading
	Deliveries  []Delivery
	NozzleTanks map[string]string
	Sales       []Sale
	CashCount   *decimal.Decimal
}
