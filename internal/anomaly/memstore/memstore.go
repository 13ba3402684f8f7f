// Package memstore keeps shift snapshots and anomalies in process memory.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/keylock"
)

type Store struct {
	locks *keylock.Locker

	mu        sync.RWMutex
	snapshots map[string]*anomaly.ShiftSnapshot
	readErrs  map[string]error
	anomalies map[uuid.UUID]anomaly.Anomaly
}

func New() *Store {
	return &Store{
		locks:     keylock.New(),
		snapshots: make(map[string]*anomaly.ShiftSnapshot),
		readErrs:  make(map[string]error),
		anomalies: make(map[uuid.UUID]anomaly.Anomaly),
	}
}

func (s *Store) PutSnapshot(snap *anomaly.ShiftSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snap.ShiftID] = snap
}

// UpdateSnapshot applies fn to a copy of the shift's snapshot and installs
// the copy. It holds the shift lock, so it never interleaves with a check.
func (s *Store) UpdateSnapshot(shiftID string, fn func(*anomaly.ShiftSnapshot)) error {
	unlock := s.locks.Lock(shiftID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[shiftID]
	if !ok {
		return &apperr.NotFoundError{Resource: "shift", ID: shiftID}
	}

	next := *snap
	fn(&next)
	s.snapshots[shiftID] = &next

	return nil
}

// FailReads makes every snapshot read of shiftID return err until cleared
// with a nil err.
func (s *Store) FailReads(shiftID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.readErrs, shiftID)
		return
	}

	s.readErrs[shiftID] = err
}

func (s *Store) All() []anomaly.Anomaly {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Collect(maps.Values(s.anomalies))
}

func (s *Store) BeginShiftCheck(_ context.Context, shiftID string) (anomaly.CheckTx, error) {
	unlock := s.locks.Lock(shiftID)

	return &checkTx{
		store:   s,
		shiftID: shiftID,
		saves:   make(map[uuid.UUID]anomaly.Anomaly),
		deletes: make(map[uuid.UUID]struct{}),
		unlock:  unlock,
	}, nil
}

func (s *Store) GetAnomaly(_ context.Context, id uuid.UUID) (*anomaly.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.anomalies[id]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "anomaly", ID: id.String()}
	}

	return &a, nil
}

func (s *Store) ListPending(_ context.Context) ([]*anomaly.Anomaly, error) {
	return s.filter(func(a anomaly.Anomaly) bool { return a.State == anomaly.StatePending }), nil
}

func (s *Store) ListByShift(_ context.Context, shiftID string) ([]*anomaly.Anomaly, error) {
	return s.filter(func(a anomaly.Anomaly) bool { return a.ShiftID == shiftID }), nil
}

func (s *Store) filter(keep func(anomaly.Anomaly) bool) []*anomaly.Anomaly {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*anomaly.Anomaly

	for _, a := range s.anomalies {
		if keep(a) {
			out = append(out, &a)
		}
	}

	return out
}

// MarkReviewed holds the anomaly's shift lock, so a review never lands in
// the middle of a check of that shift.
func (s *Store) MarkReviewed(ctx context.Context, id uuid.UUID, reviewerID string, at time.Time) (*anomaly.Anomaly, error) {
	current, err := s.GetAnomaly(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(current.ShiftID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.anomalies[id]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "anomaly", ID: id.String()}
	}

	if a.State == anomaly.StatePending {
		a.State = anomaly.StateReviewed
		a.ReviewedBy = reviewerID
		a.ReviewedAt = &at
		a.UpdatedAt = at
		s.anomalies[id] = a
	}

	return &a, nil
}

type checkTx struct {
	store   *Store
	shiftID string
	saves   map[uuid.UUID]anomaly.Anomaly
	deletes map[uuid.UUID]struct{}
	unlock  func()
	once    sync.Once
}

func (tx *checkTx) Snapshot(_ context.Context) (*anomaly.ShiftSnapshot, error) {
	s := tx.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readErrs[tx.shiftID]; err != nil {
		return nil, &apperr.PersistenceError{Op: "loading shift", Err: err}
	}

	snap, ok := s.snapshots[tx.shiftID]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "shift", ID: tx.shiftID}
	}

	return snap, nil
}

func (tx *checkTx) Existing(ctx context.Context) ([]*anomaly.Anomaly, error) {
	return tx.store.ListByShift(ctx, tx.shiftID)
}

func (tx *checkTx) Save(_ context.Context, a *anomaly.Anomaly) error {
	tx.saves[a.ID] = *a
	return nil
}

func (tx *checkTx) Delete(_ context.Context, id uuid.UUID) error {
	tx.deletes[id] = struct{}{}
	return nil
}

func (tx *checkTx) Commit() error {
	tx.once.Do(func() {
		s := tx.store

		s.mu.Lock()

		// Reviewed anomalies are never cleared or reopened by a check.
		for id := range tx.deletes {
			if a, ok := s.anomalies[id]; ok && a.State == anomaly.StatePending {
				delete(s.anomalies, id)
			}
		}

		for id, a := range tx.saves {
			if prev, ok := s.anomalies[id]; ok && prev.State != anomaly.StatePending {
				continue
			}

			s.anomalies[id] = a
		}
		s.mu.Unlock()

		tx.unlock()
	})

	return nil
}

func (tx *checkTx) Rollback() error {
	tx.once.Do(tx.unlock)
	return nil
}
