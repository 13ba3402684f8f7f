package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reason explains why a stock quantity changed.
type Reason string

const (
	ReasonSale       Reason = "sale"
	ReasonDelivery   Reason = "delivery"
	ReasonCorrection Reason = "correction"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonSale, ReasonDelivery, ReasonCorrection:
		return true
	}

	return false
}

// Item is the stock of one product at one station.
type Item struct {
	StationID         string
	ProductID         string
	Quantity          decimal.Decimal
	LowStockThreshold decimal.Decimal
	UpdatedAt         time.Time
}

func (i *Item) IsLow() bool {
	return i.Quantity.LessThan(i.LowStockThreshold)
}

// Movement is the audit record of a single successful adjustment.
type Movement struct {
	ID             uuid.UUID
	StationID      string
	ProductID      string
	Delta          decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Reason         Reason
	Reference      string
	CreatedAt      time.Time
}

// Policy decides whether an adjustment may leave the quantity below zero.
type Policy struct {
	AllowNegativeSales       bool
	AllowNegativeCorrections bool
}

func (p Policy) allowsNegative(r Reason) bool {
	switch r {
	case ReasonSale:
		return p.AllowNegativeSales
	case ReasonCorrection:
		return p.AllowNegativeCorrections
	default:
		return false
	}
}
