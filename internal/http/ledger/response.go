package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
)

type ownerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Group         string          `json:"group,omitempty"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CurrentCredit decimal.Decimal `json:"current_credit"`
	Available     decimal.Decimal `json:"available"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

type invoiceResponse struct {
	ID             uuid.UUID            `json:"id"`
	OwnerID        string               `json:"owner_id"`
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	Total          decimal.Decimal      `json:"total"`
	Paid           decimal.Decimal      `json:"paid"`
	Outstanding    decimal.Decimal      `json:"outstanding"`
	Status         ledger.InvoiceStatus `json:"status"`
	TransactionIDs []string             `json:"transaction_ids"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type invoiceResultResponse struct {
	Invoice *invoiceResponse `json:"invoice"`
	Skipped bool             `json:"skipped"`
	Created bool             `json:"created"`
	Linked  int              `json:"linked"`
}

type paymentResponse struct {
	ID      uuid.UUID       `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	PaidAt  time.Time       `json:"paid_at"`
	Invoice invoiceResponse `json:"invoice"`
	Owner   ownerResponse   `json:"owner"`
}

type reconciliationResponse struct {
	OwnerID    string          `json:"owner_id"`
	Previous   decimal.Decimal `json:"previous"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Drift      decimal.Decimal `json:"drift"`
}

func toOwnerResponse(o *ledger.Owner) ownerResponse {
	return ownerResponse{
		ID:            o.ID,
		Name:          o.Name,
		Phone:         o.Phone,
		Group:         o.Group,
		CreditLimit:   o.CreditLimit,
		CurrentCredit: o.CurrentCredit,
		Available:     o.CreditLimit.Sub(o.CurrentCredit),
		DeletedAt:     o.DeletedAt,
	}
}

func toInvoiceResponse(inv *ledger.Invoice) invoiceResponse {
	ids := inv.TransactionIDs
	if ids == nil {
		ids = []string{}
	}

	return invoiceResponse{
		ID:             inv.ID,
		OwnerID:        inv.OwnerID,
		Year:           inv.Year,
		Month:          int(inv.Month),
		Total:          inv.Total,
		Paid:           inv.Paid,
		Outstanding:    inv.Outstanding(),
		Status:         inv.Status,
		TransactionIDs: ids,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}
