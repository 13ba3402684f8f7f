package database

import (
	"errors"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// Wrap converts a driver error into the service error taxonomy. Lock timeouts,
// deadlocks and serialization failures become ConcurrencyConflictError for the
// given resource and key; everything else becomes a PersistenceError.
func Wrap(op, resource, key string, err error) error {
	if err == nil {
		return nil
	}

	var conflict *apperr.ConcurrencyConflictError
	var persistence *apperr.PersistenceError
	var notFound *apperr.NotFoundError

	if errors.As(err, &conflict) || errors.As(err, &persistence) || errors.As(err, &notFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return &apperr.ConcurrencyConflictError{Resource: resource, Key: key, Err: err}
		}
	}

	return &apperr.PersistenceError{Op: op, Err: err}
}

// LockKey hashes the parts into a key for pg_advisory_xact_lock.
func LockKey(parts ...string) int64 {
	h := fnv.New64a()

	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}

		h.Write([]byte(p))
	}

	return int64(h.Sum64())
}
