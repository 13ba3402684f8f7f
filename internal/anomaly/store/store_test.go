package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly/store"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

const (
	shiftID = "it-shift-1"
	ownerID = "it-shift-owner"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"owners", "shifts", "transactions", "cash_counts", "anomalies"} {
		var exists bool
		err := db.QueryRow(`SELECT to_regclass($1) IS NOT NULL`, "public."+table).Scan(&exists)
		require.NoError(t, err)

		if !exists {
			t.Skip("missing tables; run migrations")
		}
	}

	return db
}

// seedShift records a shift whose only sale is a shop item with no nozzle.
func seedShift(t *testing.T, db *sql.DB, counted int64) {
	t.Helper()

	ctx := context.Background()

	for _, stmt := range []string{
		`DELETE FROM anomalies WHERE shift_id = $1`,
		`DELETE FROM cash_counts WHERE shift_id = $1`,
		`DELETE FROM transactions WHERE shift_id = $1`,
		`DELETE FROM shifts WHERE id = $1`,
	} {
		_, _ = db.ExecContext(ctx, stmt, shiftID)
	}

	_, _ = db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, ownerID)

	_, err := db.ExecContext(ctx, `
		INSERT INTO owners (id, name, owner_group, credit_limit, current_credit, created_at, updated_at)
		VALUES ($1, 'Shop', 'retail', 0, 0, NOW(), NOW())`, ownerID)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO shifts (id, station_id, shift_date) VALUES ($1, 's1', '2026-03-10')`, shiftID)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, occurred_at, station_id, shift_id, nozzle_id, product_id,
			liters, price_per_liter, amount, payment_type, owner_id, created_at
		)
		VALUES ('it-shop-1', NOW(), 's1', $1, NULL, NULL, 0, 0, 800, 'CASH', $2, NOW())`, shiftID, ownerID)
	require.NoError(t, err)

	setCashCount(t, db, counted)
}

func setCashCount(t *testing.T, db *sql.DB, counted int64) {
	t.Helper()

	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM cash_counts WHERE shift_id = $1`, shiftID)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO cash_counts (shift_id, amount) VALUES ($1, $2)`, shiftID, decimal.NewFromInt(counted))
	require.NoError(t, err)
}

func newService(db *sql.DB) *anomaly.Service {
	thresholds := threshold.NewSource(threshold.Config{
		Defaults: threshold.Set{
			Money:  threshold.Policy{Yellow: decimal.NewFromInt(200), Red: decimal.NewFromInt(500)},
			Volume: threshold.Policy{Yellow: decimal.NewFromInt(20), Red: decimal.NewFromInt(50)},
		},
	})
	classifier := paytype.NewClassifier(paytype.Rules{Cash: []string{"CASH"}})

	return anomaly.NewService(store.New(db, 2*time.Second), thresholds, classifier, alert.Nop{}, observability.NewMetrics(), zap.NewNop())
}

func TestStore_CheckShiftWithSaleWithoutNozzle(t *testing.T) {
	db := openDB(t)
	seedShift(t, db, 800)

	got, err := newService(db).CheckShiftAnomalies(context.Background(), shiftID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_RecheckLeavesReviewedAnomaly(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	svc := newService(db)

	seedShift(t, db, 500)

	got, err := svc.CheckShiftAnomalies(ctx, shiftID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, anomaly.MetricCashVariance, got[0].Metric)

	reviewed, err := svc.MarkAnomalyReviewed(ctx, got[0].ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, anomaly.StateReviewed, reviewed.State)

	setCashCount(t, db, 800)

	_, err = svc.CheckShiftAnomalies(ctx, shiftID)
	require.NoError(t, err)

	kept, err := svc.GetAnomaly(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, anomaly.StateReviewed, kept.State)
	assert.Equal(t, "alice", kept.ReviewedBy)
	assert.True(t, kept.Actual.Equal(decimal.NewFromInt(500)))
}
