package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/database"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func New(db *sql.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, lockTimeout: lockTimeout}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAnomalyColumns = `
	id, station_id, shift_id, shift_date, metric, subject, expected, actual, delta,
	severity, state, reviewed_by, reviewed_at, created_at, updated_at
`

func scanAnomaly(s scanner) (*anomaly.Anomaly, error) {
	var a anomaly.Anomaly

	var metric, severity, state string

	var reviewedBy sql.NullString

	if err := s.Scan(
		&a.ID, &a.StationID, &a.ShiftID, &a.ShiftDate, &metric, &a.Subject,
		&a.Expected, &a.Actual, &a.Delta,
		&severity, &state, &reviewedBy, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Metric = anomaly.Metric(metric)
	a.Severity = threshold.Severity(severity)
	a.State = anomaly.ReviewState(state)
	a.ReviewedBy = reviewedBy.String

	return &a, nil
}

func listAnomalies(ctx context.Context, q queryer, op, where string, args ...any) ([]*anomaly.Anomaly, error) {
	query := `SELECT ` + selectAnomalyColumns + ` FROM anomalies WHERE ` + where

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap(op, "anomaly", "", err)
	}
	defer rows.Close()

	var out []*anomaly.Anomaly

	for rows.Next() {
		a, err := scanAnomaly(rows)
		if err != nil {
			return nil, database.Wrap("scanning anomaly", "anomaly", "", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap(op, "anomaly", "", err)
	}

	return out, nil
}

func (s *Store) GetAnomaly(ctx context.Context, id uuid.UUID) (*anomaly.Anomaly, error) {
	query := `SELECT ` + selectAnomalyColumns + ` FROM anomalies WHERE id = $1`

	a, err := scanAnomaly(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "anomaly", ID: id.String()}
		}

		return nil, database.Wrap("getting anomaly", "anomaly", id.String(), err)
	}

	return a, nil
}

func (s *Store) ListPending(ctx context.Context) ([]*anomaly.Anomaly, error) {
	return listAnomalies(ctx, s.db, "listing pending anomalies", "state = 'pending'")
}

func (s *Store) ListByShift(ctx context.Context, shiftID string) ([]*anomaly.Anomaly, error) {
	return listAnomalies(ctx, s.db, "listing shift anomalies", "shift_id = $1", shiftID)
}

// MarkReviewed takes the anomaly's shift lock before transitioning it, so it
// waits for a running check of that shift. Only pending rows transition; a
// repeated review reads the row as it already is.
func (s *Store) MarkReviewed(ctx context.Context, id uuid.UUID, reviewerID string, at time.Time) (*anomaly.Anomaly, error) {
	tx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, database.Wrap("begin review", "anomaly", id.String(), err)
	}
	defer tx.Rollback()

	var shiftID string

	err = tx.QueryRowContext(ctx, `SELECT shift_id FROM anomalies WHERE id = $1`, id).Scan(&shiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "anomaly", ID: id.String()}
		}

		return nil, database.Wrap("reviewing anomaly", "anomaly", id.String(), err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", database.LockKey("shift", shiftID)); err != nil {
		return nil, database.Wrap("acquiring shift lock", "shift", shiftID, err)
	}

	query := `
		UPDATE anomalies
		SET state = 'reviewed', reviewed_by = $1, reviewed_at = $2, updated_at = $2
		WHERE id = $3 AND state = 'pending'
		RETURNING ` + selectAnomalyColumns

	a, err := scanAnomaly(tx.QueryRowContext(ctx, query, reviewerID, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		a, err = scanAnomaly(tx.QueryRowContext(ctx, `SELECT `+selectAnomalyColumns+` FROM anomalies WHERE id = $1`, id))
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "anomaly", ID: id.String()}
		}

		return nil, database.Wrap("reviewing anomaly", "anomaly", id.String(), err)
	}

	if err := tx.Commit(); err != nil {
		return nil, database.Wrap("committing review", "anomaly", id.String(), err)
	}

	return a, nil
}

func (s *Store) BeginShiftCheck(ctx context.Context, shiftID string) (anomaly.CheckTx, error) {
	dbTx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, database.Wrap("begin shift check", "shift", shiftID, err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", database.LockKey("shift", shiftID)); err != nil {
		dbTx.Rollback()
		return nil, database.Wrap("acquiring shift lock", "shift", shiftID, err)
	}

	return &checkTx{tx: dbTx, shiftID: shiftID}, nil
}

type checkTx struct {
	tx      *sql.Tx
	shiftID string
}

func (c *checkTx) Commit() error {
	if err := c.tx.Commit(); err != nil {
		return database.Wrap("committing shift check", "shift", c.shiftID, err)
	}

	return nil
}

func (c *checkTx) Rollback() error { return c.tx.Rollback() }

func (c *checkTx) Existing(ctx context.Context) ([]*anomaly.Anomaly, error) {
	return listAnomalies(ctx, c.tx, "loading shift anomalies", "shift_id = $1", c.shiftID)
}

func (c *checkTx) Save(ctx context.Context, a *anomaly.Anomaly) error {
	query := `
		INSERT INTO anomalies (
			id, station_id, shift_id, shift_date, metric, subject, expected, actual, delta,
			severity, state, reviewed_by, reviewed_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			expected = EXCLUDED.expected,
			actual = EXCLUDED.actual,
			delta = EXCLUDED.delta,
			severity = EXCLUDED.severity,
			updated_at = EXCLUDED.updated_at
		WHERE anomalies.state = 'pending'
	`

	_, err := c.tx.ExecContext(ctx, query,
		a.ID, a.StationID, a.ShiftID, a.ShiftDate, a.Metric, a.Subject,
		a.Expected, a.Actual, a.Delta,
		a.Severity, a.State, a.ReviewedBy, a.ReviewedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return database.Wrap("saving anomaly", "shift", c.shiftID, err)
	}

	return nil
}

func (c *checkTx) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.tx.ExecContext(ctx, `DELETE FROM anomalies WHERE id = $1 AND state = 'pending'`, id); err != nil {
		return database.Wrap("clearing anomaly", "shift", c.shiftID, err)
	}

	return nil
}

func (c *checkTx) Snapshot(ctx context.Context) (*anomaly.ShiftSnapshot, error) {
	snap := &anomaly.ShiftSnapshot{ShiftID: c.shiftID, NozzleTanks: make(map[string]string)}

	err := c.tx.QueryRowContext(ctx,
		`SELECT station_id, shift_date FROM shifts WHERE id = $1`, c.shiftID,
	).Scan(&snap.StationID, &snap.ShiftDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "shift", ID: c.shiftID}
		}

		return nil, database.Wrap("loading shift", "shift", c.shiftID, err)
	}

	steps := []func(context.Context, *anomaly.ShiftSnapshot) error{
		c.loadReadings,
		c.loadDeliveries,
		c.loadNozzleTanks,
		c.loadSales,
		c.loadCashCount,
	}

	for _, step := range steps {
		if err := step(ctx, snap); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

func (c *checkTx) each(ctx context.Context, op, query string, scan func(scanner) error, args ...any) error {
	rows, err := c.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return database.Wrap(op, "shift", c.shiftID, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return database.Wrap(op, "shift", c.shiftID, err)
		}
	}

	if err := rows.Err(); err != nil {
		return database.Wrap(op, "shift", c.shiftID, err)
	}

	return nil
}

func (c *checkTx) loadReadings(ctx context.Context, snap *anomaly.ShiftSnapshot) error {
	query := `SELECT kind, subject, phase, value FROM shift_readings WHERE shift_id = $1`

	return c.each(ctx, "loading readings", query, func(s scanner) error {
		var kind, subject, phase string

		var value decimal.Decimal

		if err := s.Scan(&kind, &subject, &phase, &value); err != nil {
			return err
		}

		switch kind {
		case "meter":
			snap.Meters = append(snap.Meters, anomaly.MeterReading{NozzleID: subject, Phase: anomaly.Phase(phase), Value: value})
		case "gauge":
			snap.Gauges = append(snap.Gauges, anomaly.GaugeReading{TankID: subject, Phase: anomaly.Phase(phase), Value: value})
		}

		return nil
	}, c.shiftID)
}

func (c *checkTx) loadDeliveries(ctx context.Context, snap *anomaly.ShiftSnapshot) error {
	query := `SELECT tank_id, liters FROM tank_deliveries WHERE shift_id = $1`

	return c.each(ctx, "loading deliveries", query, func(s scanner) error {
		var d anomaly.Delivery
		if err := s.Scan(&d.TankID, &d.Liters); err != nil {
			return err
		}

		snap.Deliveries = append(snap.Deliveries, d)

		return nil
	}, c.shiftID)
}

func (c *checkTx) loadNozzleTanks(ctx context.Context, snap *anomaly.ShiftSnapshot) error {
	query := `SELECT id, tank_id FROM nozzles WHERE station_id = $1 AND tank_id IS NOT NULL`

	return c.each(ctx, "loading nozzles", query, func(s scanner) error {
		var nozzleID, tankID string
		if err := s.Scan(&nozzleID, &tankID); err != nil {
			return err
		}

		snap.NozzleTanks[nozzleID] = tankID

		return nil
	}, snap.StationID)
}

func (c *checkTx) loadSales(ctx context.Context, snap *anomaly.ShiftSnapshot) error {
	query := `
		SELECT id, COALESCE(nozzle_id, ''), liters, amount, payment_type
		FROM transactions
		WHERE shift_id = $1 AND deleted_at IS NULL`

	return c.each(ctx, "loading transactions", query, func(s scanner) error {
		var sale anomaly.Sale
		if err := s.Scan(&sale.TransactionID, &sale.NozzleID, &sale.Liters, &sale.Amount, &sale.PaymentType); err != nil {
			return err
		}

		snap.Sales = append(snap.Sales, sale)

		return nil
	}, c.shiftID)
}

func (c *checkTx) loadCashCount(ctx context.Context, snap *anomaly.ShiftSnapshot) error {
	var amount decimal.Decimal

	err := c.tx.QueryRowContext(ctx, `SELECT amount FROM cash_counts WHERE shift_id = $1`, c.shiftID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}

	if err != nil {
		return database.Wrap("loading cash count", "shift", c.shiftID, err)
	}

	snap.CashCount = &amount

	return nil
}

var _ anomaly.Repository = (*Store)(nil)
