package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
)

type itemResponse struct {
	StationID         string          `json:"station_id"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	IsLow             bool            `json:"is_low"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type movementResponse struct {
	ID             uuid.UUID        `json:"id"`
	Delta          decimal.Decimal  `json:"delta"`
	QuantityBefore decimal.Decimal  `json:"quantity_before"`
	QuantityAfter  decimal.Decimal  `json:"quantity_after"`
	Reason         inventory.Reason `json:"reason"`
	Reference      string           `json:"reference,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type adjustResponse struct {
	Item       itemResponse     `json:"item"`
	Movement   movementResponse `json:"movement"`
	CrossedLow bool             `json:"crossed_low"`
}

type summaryLineResponse struct {
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	IsLow             bool            `json:"is_low"`
}

func toItemResponse(it *inventory.Item) itemResponse {
	return itemResponse{
		StationID:         it.StationID,
		ProductID:         it.ProductID,
		Quantity:          it.Quantity,
		LowStockThreshold: it.LowStockThreshold,
		IsLow:             it.IsLow(),
		UpdatedAt:         it.UpdatedAt,
	}
}

func toAdjustResponse(res *inventory.AdjustResult) adjustResponse {
	resp := adjustResponse{
		Item:       toItemResponse(&res.Item),
		CrossedLow: res.CrossedLow,
	}

	if m := res.Movement; m != nil {
		resp.Movement = movementResponse{
			ID:             m.ID,
			Delta:          m.Delta,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			Reference:      m.Reference,
			CreatedAt:      m.CreatedAt,
		}
	}

	return resp
}
