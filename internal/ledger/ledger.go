package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

// Owner is a credit customer. CurrentCredit is the amount charged on credit
// and not yet paid.
type Owner struct {
	ID            string
	Name          string
	Phone         string
	Group         string
	CreditLimit   decimal.Decimal
	CurrentCredit decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// OverLimit reports whether the owner owes more than their limit allows,
// which happens when the limit is lowered below an existing balance.
func (o *Owner) OverLimit() bool {
	return o.CurrentCredit.GreaterThan(o.CreditLimit)
}

// InvoiceStatus represents the settlement state of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "PENDING"
	StatusPartial InvoiceStatus = "PARTIAL"
	StatusPaid    InvoiceStatus = "PAID"
)

// Invoice bills an owner for one calendar month of credit transactions.
type Invoice struct {
	ID             uuid.UUID
	OwnerID        string
	Year           int
	Month          time.Month
	Total          decimal.Decimal
	Paid           decimal.Decimal
	Status         InvoiceStatus
	TransactionIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.Paid)
}

func (i *Invoice) settle() {
	switch {
	case !i.Outstanding().IsPositive():
		i.Status = StatusPaid
	case i.Paid.IsPositive():
		i.Status = StatusPartial
	default:
		i.Status = StatusPending
	}
}

type Payment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	OwnerID   string
	Amount    decimal.Decimal
	PaidAt    time.Time
	CreatedAt time.Time
}

// Transaction is a single fuel sale as recorded at the pump.
type Transaction struct {
	ID            string
	OccurredAt    time.Time
	StationID     string
	ShiftID       string
	NozzleID      string
	ProductID     string
	Liters        decimal.Decimal
	PricePerLiter decimal.Decimal
	Amount        decimal.Decimal
	PaymentType   string
	OwnerID       string
	TruckID       string
	InvoiceID     *uuid.UUID
	DeletedAt     *time.Time
}

var amountTolerance = decimal.New(1, -2)

// Consistent reports whether Amount matches Liters times PricePerLiter
// within one cent.
func (t *Transaction) Consistent() bool {
	return t.Liters.Mul(t.PricePerLiter).Sub(t.Amount).Abs().LessThanOrEqual(amountTolerance)
}

// Optional distinguishes a field left out of an update from one set to its
// zero value.
type Optional[T any] struct {
	value T
	set   bool
}

func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// OwnerUpdate changes only the fields that are set.
type OwnerUpdate struct {
	CreditLimit Optional[decimal.Decimal]
	Name        Optional[string]
	Phone       Optional[string]
}

// BillingWindow returns the half-open UTC interval [first of month, first of
// next month).
func BillingWindow(month time.Month, year int) (time.Time, time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, &apperr.ValidationError{
			Field:   "month",
			Message: fmt.Sprintf("must be between 1 and 12, got %d", month),
		}
	}

	if year < 2000 || year > 9999 {
		return time.Time{}, time.Time{}, &apperr.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("out of range: %d", year),
		}
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 1, 0), nil
}
