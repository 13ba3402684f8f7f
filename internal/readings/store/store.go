package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/database"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
)

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func New(db *sql.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, lockTimeout: lockTimeout}
}

// ReplaceShift takes the same advisory lock as a shift check, so a check sees
// either the old sheet or the new one.
func (s *Store) ReplaceShift(ctx context.Context, shiftID string, sheet *readings.Sheet) error {
	tx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return database.Wrap("begin shift import", "shift", shiftID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", database.LockKey("shift", shiftID)); err != nil {
		return database.Wrap("acquiring shift lock", "shift", shiftID, err)
	}

	var exists int

	err = tx.QueryRowContext(ctx, `SELECT 1 FROM shifts WHERE id = $1`, shiftID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return &apperr.NotFoundError{Resource: "shift", ID: shiftID}
	}

	if err != nil {
		return database.Wrap("loading shift", "shift", shiftID, err)
	}

	for _, table := range []string{"shift_readings", "tank_deliveries", "cash_counts"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE shift_id = $1`, shiftID); err != nil {
			return database.Wrap("clearing "+table, "shift", shiftID, err)
		}
	}

	for _, r := range sheet.Readings {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shift_readings (shift_id, kind, subject, phase, value) VALUES ($1, $2, $3, $4, $5)`,
			shiftID, string(r.Kind), r.Subject, string(r.Phase), r.Value,
		)
		if err != nil {
			return database.Wrap("inserting reading", "shift", shiftID, err)
		}
	}

	for _, d := range sheet.Deliveries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tank_deliveries (shift_id, tank_id, liters) VALUES ($1, $2, $3)`,
			shiftID, d.TankID, d.Liters,
		)
		if err != nil {
			return database.Wrap("inserting delivery", "shift", shiftID, err)
		}
	}

	if sheet.CashCount != nil {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cash_counts (shift_id, amount) VALUES ($1, $2)`,
			shiftID, *sheet.CashCount,
		)
		if err != nil {
			return database.Wrap("inserting cash count", "shift", shiftID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return database.Wrap("committing shift import", "shift", shiftID, err)
	}

	return nil
}
