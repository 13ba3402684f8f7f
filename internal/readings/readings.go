// Package readings imports the meter, gauge, delivery and cash count sheet
// recorded at the close of a shift.
package readings

import (
	"github.com/shopspring/decimal"
)

// Kind is the type of a sheet row.
type Kind string

const (
	KindMeter    Kind = "meter"
	KindGauge    Kind = "gauge"
	KindDelivery Kind = "delivery"
	KindCash     Kind = "cash"
)

type Phase string

const (
	PhaseStart Phase = "start"
	PhaseEnd   Phase = "end"
)

// Reading is a nozzle meter or tank gauge value at the start or end of a
// shift. Subject is the nozzle id for meters and the tank id for gauges.
type Reading struct {
	Kind    Kind
	Subject string
	Phase   Phase
	Value   decimal.Decimal
}

type Delivery struct {
	TankID string
	Liters decimal.Decimal
}

// Sheet is everything recorded for one shift. CashCount is nil when the sheet
// carries no cash row.
type Sheet struct {
	Readings   []Reading
	Deliveries []Delivery
	CashCount  *decimal.Decimal
	// Charset is the encoding the sheet was decoded from.
	Charset string
}
