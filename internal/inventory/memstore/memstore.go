// Package memstore keeps inventory in process memory. It backs the service in
// local development and in tests that exercise concurrent adjustments.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
	"github.com/MrJamesThe3rd/fuelbook/internal/keylock"
)

type key struct {
	station string
	product string
}

type Store struct {
	locks *keylock.Locker

	mu        sync.RWMutex
	items     map[key]inventory.Item
	movements []inventory.Movement
}

func New() *Store {
	return &Store{
		locks: keylock.New(),
		items: make(map[key]inventory.Item),
	}
}

// Provision creates or replaces an item.
func (s *Store) Provision(item inventory.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key{item.StationID, item.ProductID}] = item
}

func (s *Store) Movements() []inventory.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.movements)
}

func (s *Store) BeginAdjust(_ context.Context, stationID, productID string) (inventory.AdjustTx, error) {
	k := key{stationID, productID}
	unlock := s.locks.Lock(stationID + "\x00" + productID)

	s.mu.RLock()
	item, ok := s.items[k]
	s.mu.RUnlock()

	if !ok {
		unlock()
		return nil, &apperr.NotFoundError{Resource: "inventory item", ID: stationID + "/" + productID}
	}

	return &adjustTx{store: s, key: k, item: item, quantity: item.Quantity, unlock: unlock}, nil
}

func (s *Store) ListItems(_ context.Context, stationID string) ([]*inventory.Item, error) {
	return s.list(func(it inventory.Item) bool { return it.StationID == stationID }), nil
}

func (s *Store) ListLowStock(_ context.Context, stationID *string) ([]*inventory.Item, error) {
	return s.list(func(it inventory.Item) bool {
		if stationID != nil && it.StationID != *stationID {
			return false
		}

		return it.IsLow()
	}), nil
}

func (s *Store) list(keep func(inventory.Item) bool) []*inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*inventory.Item

	for _, it := range s.items {
		if keep(it) {
			out = append(out, &it)
		}
	}

	slices.SortFunc(out, func(a, b *inventory.Item) int {
		return cmp.Or(cmp.Compare(a.StationID, b.StationID), cmp.Compare(a.ProductID, b.ProductID))
	})

	return out
}

type adjustTx struct {
	store    *Store
	key      key
	item     inventory.Item
	quantity decimal.Decimal
	movement *inventory.Movement
	unlock   func()
	once     sync.Once
}

func (tx *adjustTx) Item() *inventory.Item {
	it := tx.item
	return &it
}

func (tx *adjustTx) SetQuantity(_ context.Context, quantity decimal.Decimal) error {
	tx.quantity = quantity
	return nil
}

func (tx *adjustTx) RecordMovement(_ context.Context, m *inventory.Movement) error {
	tx.movement = m
	return nil
}

func (tx *adjustTx) Commit() error {
	tx.once.Do(func() {
		s := tx.store

		s.mu.Lock()

		item := s.items[tx.key]
		item.Quantity = tx.quantity

		if tx.movement != nil {
			item.UpdatedAt = tx.movement.CreatedAt
			s.movements = append(s.movements, *tx.movement)
		}

		s.items[tx.key] = item
		s.mu.Unlock()

		tx.unlock()
	})

	return nil
}

func (tx *adjustTx) Rollback() error {
	tx.once.Do(tx.unlock)
	return nil
}
