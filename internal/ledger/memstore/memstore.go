// Package memstore keeps owners, transactions, invoices and payments in
// process memory. Every mutation of an owner and its invoices runs under that
// owner's lock and becomes visible only on commit.
package memstore

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/keylock"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
)

type Store struct {
	locks *keylock.Locker

	mu           sync.RWMutex
	owners       map[string]ledger.Owner
	transactions map[string]ledger.Transaction
	invoices     map[uuid.UUID]ledger.Invoice
	payments     []ledger.Payment
}

func New() *Store {
	return &Store{
		locks:        keylock.New(),
		owners:       make(map[string]ledger.Owner),
		transactions: make(map[string]ledger.Transaction),
		invoices:     make(map[uuid.UUID]ledger.Invoice),
	}
}

// PutOwner creates or replaces an owner outside of any lock. Intended for
// seeding.
func (s *Store) PutOwner(o ledger.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.owners[o.ID] = o
}

// PutTransaction records a transaction without touching any balance, the way
// sales settled at the pump arrive.
func (s *Store) PutTransaction(t ledger.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[t.ID] = t
}

// DeleteTransaction soft deletes a transaction.
func (s *Store) DeleteTransaction(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transactions[id]; ok {
		t.DeletedAt = &at
		s.transactions[id] = t
	}
}

func (s *Store) Transactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Collect(maps.Values(s.transactions))
	slices.SortFunc(out, func(a, b ledger.Transaction) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

func (s *Store) Invoices() []ledger.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Collect(maps.Values(s.invoices))
}

func (s *Store) Payments() []ledger.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.payments)
}

func live(t ledger.Transaction) bool {
	return t.DeletedAt == nil
}

func hasType(types []string, pt string) bool {
	return slices.ContainsFunc(types, func(t string) bool { return strings.EqualFold(t, strings.TrimSpace(pt)) })
}

func lockKey(ownerID string) string {
	return "owner:" + ownerID
}

func (s *Store) GetOwner(_ context.Context, ownerID string) (*ledger.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.owners[ownerID]
	if !ok || o.DeletedAt != nil {
		return nil, &apperr.NotFoundError{Resource: "owner", ID: ownerID}
	}

	return &o, nil
}

func (s *Store) GetInvoice(_ context.Context, invoiceID uuid.UUID) (*ledger.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "invoice", ID: invoiceID.String()}
	}

	inv.TransactionIDs = slices.Clone(inv.TransactionIDs)

	return &inv, nil
}

func (s *Store) ListBillingCandidates(_ context.Context, from, to time.Time) ([]ledger.BillingCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make(map[string]map[string]struct{})

	for _, t := range s.transactions {
		if !live(t) || t.OwnerID == "" || t.OccurredAt.Before(from) || !t.OccurredAt.Before(to) {
			continue
		}

		if o, ok := s.owners[t.OwnerID]; !ok || o.DeletedAt != nil {
			continue
		}

		if types[t.OwnerID] == nil {
			types[t.OwnerID] = make(map[string]struct{})
		}

		types[t.OwnerID][t.PaymentType] = struct{}{}
	}

	out := make([]ledger.BillingCandidate, 0, len(types))
	for ownerID, set := range types {
		out = append(out, ledger.BillingCandidate{
			OwnerID:      ownerID,
			Group:        s.owners[ownerID].Group,
			PaymentTypes: slices.Sorted(maps.Keys(set)),
		})
	}

	return out, nil
}

func (s *Store) BeginOwner(_ context.Context, ownerID string) (ledger.OwnerTx, error) {
	unlock := s.locks.Lock(lockKey(ownerID))

	s.mu.RLock()
	o, ok := s.owners[ownerID]
	s.mu.RUnlock()

	if !ok || o.DeletedAt != nil {
		unlock()
		return nil, &apperr.NotFoundError{Resource: "owner", ID: ownerID}
	}

	return newOwnerTx(s, o, unlock), nil
}

func (s *Store) BeginInvoice(_ context.Context, invoiceID uuid.UUID) (ledger.InvoiceTx, error) {
	s.mu.RLock()
	inv, ok := s.invoices[invoiceID]
	s.mu.RUnlock()

	if !ok {
		return nil, &apperr.NotFoundError{Resource: "invoice", ID: invoiceID.String()}
	}

	unlock := s.locks.Lock(lockKey(inv.OwnerID))

	// Re-read now that the owner is locked; a payment may have committed in
	// between.
	s.mu.RLock()
	inv = s.invoices[invoiceID]
	o, ok := s.owners[inv.OwnerID]
	s.mu.RUnlock()

	if !ok {
		unlock()
		return nil, &apperr.NotFoundError{Resource: "owner", ID: inv.OwnerID}
	}

	inv.TransactionIDs = slices.Clone(inv.TransactionIDs)

	return &invoiceTx{ownerTx: newOwnerTx(s, o, unlock), invoice: inv}, nil
}

type ownerTx struct {
	store  *Store
	owner  ledger.Owner
	unlock func()
	once   sync.Once

	ownerDirty bool
	newTxs     map[string]ledger.Transaction
	invoices   map[uuid.UUID]ledger.Invoice
	links      map[string]uuid.UUID
	payments   []ledger.Payment
}

func newOwnerTx(s *Store, o ledger.Owner, unlock func()) *ownerTx {
	return &ownerTx{
		store:    s,
		owner:    o,
		unlock:   unlock,
		newTxs:   make(map[string]ledger.Transaction),
		invoices: make(map[uuid.UUID]ledger.Invoice),
		links:    make(map[string]uuid.UUID),
	}
}

func (tx *ownerTx) Owner() *ledger.Owner {
	o := tx.owner
	return &o
}

func (tx *ownerTx) UpdateOwner(_ context.Context, o *ledger.Owner) error {
	tx.owner.Name = o.Name
	tx.owner.Phone = o.Phone
	tx.owner.CreditLimit = o.CreditLimit
	tx.owner.UpdatedAt = o.UpdatedAt
	tx.ownerDirty = true

	return nil
}

func (tx *ownerTx) SetCurrentCredit(_ context.Context, credit decimal.Decimal) error {
	tx.owner.CurrentCredit = credit
	tx.ownerDirty = true

	return nil
}

func (tx *ownerTx) RecordTransaction(_ context.Context, t *ledger.Transaction) (bool, error) {
	tx.store.mu.RLock()
	_, exists := tx.store.transactions[t.ID]
	tx.store.mu.RUnlock()

	if _, staged := tx.newTxs[t.ID]; exists || staged {
		return false, nil
	}

	tx.newTxs[t.ID] = *t

	return true, nil
}

func (tx *ownerTx) UnbilledTransactions(_ context.Context, from, to time.Time, paymentTypes []string) ([]*ledger.Transaction, error) {
	s := tx.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*ledger.Transaction

	for _, t := range s.transactions {
		if !live(t) || t.OwnerID != tx.owner.ID || t.InvoiceID != nil {
			continue
		}

		if t.OccurredAt.Before(from) || !t.OccurredAt.Before(to) || !hasType(paymentTypes, t.PaymentType) {
			continue
		}

		out = append(out, &t)
	}

	slices.SortFunc(out, func(a, b *ledger.Transaction) int { return cmp.Compare(a.ID, b.ID) })

	return out, nil
}

func (tx *ownerTx) InvoiceFor(_ context.Context, year int, month time.Month) (*ledger.Invoice, error) {
	s := tx.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.OwnerID == tx.owner.ID && inv.Year == year && inv.Month == month {
			inv.TransactionIDs = slices.Clone(inv.TransactionIDs)
			return &inv, nil
		}
	}

	return nil, nil
}

func (tx *ownerTx) SaveInvoice(_ context.Context, inv *ledger.Invoice) error {
	cp := *inv
	cp.TransactionIDs = slices.Clone(inv.TransactionIDs)
	tx.invoices[inv.ID] = cp

	return nil
}

func (tx *ownerTx) LinkTransactions(_ context.Context, invoiceID uuid.UUID, transactionIDs []string) (int, error) {
	s := tx.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := 0

	for _, id := range transactionIDs {
		t, ok := s.transactions[id]
		if !ok || t.InvoiceID != nil {
			continue
		}

		if _, staged := tx.links[id]; staged {
			continue
		}

		tx.links[id] = invoiceID
		linked++
	}

	return linked, nil
}

func (tx *ownerTx) RecordPayment(_ context.Context, p *ledger.Payment) error {
	tx.payments = append(tx.payments, *p)
	return nil
}

func (tx *ownerTx) CreditTotals(_ context.Context, paymentTypes []string) (decimal.Decimal, decimal.Decimal, error) {
	s := tx.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	charged := decimal.Zero

	for _, t := range s.transactions {
		if live(t) && t.OwnerID == tx.owner.ID && hasType(paymentTypes, t.PaymentType) {
			charged = charged.Add(t.Amount)
		}
	}

	paid := decimal.Zero

	for _, p := range s.payments {
		if p.OwnerID == tx.owner.ID {
			paid = paid.Add(p.Amount)
		}
	}

	return charged, paid, nil
}

func (tx *ownerTx) Commit() error {
	tx.once.Do(func() {
		s := tx.store

		s.mu.Lock()

		if tx.ownerDirty {
			s.owners[tx.owner.ID] = tx.owner
		}

		maps.Copy(s.transactions, tx.newTxs)
		maps.Copy(s.invoices, tx.invoices)

		for id, invoiceID := range tx.links {
			t := s.transactions[id]
			t.InvoiceID = &invoiceID
			s.transactions[id] = t
		}

		s.payments = append(s.payments, tx.payments...)
		s.mu.Unlock()

		tx.unlock()
	})

	return nil
}

func (tx *ownerTx) Rollback() error {
	tx.once.Do(tx.unlock)
	return nil
}

type invoiceTx struct {
	*ownerTx
	invoice ledger.Invoice
}

func (tx *invoiceTx) Invoice() *ledger.Invoice {
	inv := tx.invoice
	return &inv
}

var (
	_ ledger.Repository = (*Store)(nil)
	_ ledger.InvoiceTx  = (*invoiceTx)(nil)
)
