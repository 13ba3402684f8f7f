// Package apperr holds the error types shared by the inventory, anomaly and
// ledger services. Callers match them with errors.As.
package apperr

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError indicates malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// CreditLimitExceededError rejects a credit accrual that would push an owner
// past their limit.
type CreditLimitExceededError struct {
	OwnerID string
	Limit   decimal.Decimal
	Current decimal.Decimal
	Amount  decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded for owner %s: limit=%s current=%s amount=%s",
		e.OwnerID, e.Limit.StringFixed(2), e.Current.StringFixed(2), e.Amount.StringFixed(2))
}

type InsufficientStockError struct {
	StationID string
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s/%s: available=%s requested=%s",
		e.StationID, e.ProductID, e.Available.String(), e.Requested.String())
}

// OverpaymentError rejects a payment larger than the invoice's outstanding amount.
type OverpaymentError struct {
	InvoiceID   string
	Outstanding decimal.Decimal
	Amount      decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds outstanding %s on invoice %s",
		e.Amount.StringFixed(2), e.Outstanding.StringFixed(2), e.InvoiceID)
}

// ConcurrencyConflictError reports that a same-key operation could not obtain
// its lock in time or lost a serialization race. The caller may retry.
type ConcurrencyConflictError struct {
	Resource string
	Key      string
	Err      error
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("concurrent modification of %s", e.Resource)
	}

	return fmt.Sprintf("concurrent modification of %s %s", e.Resource, e.Key)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [%s]: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
