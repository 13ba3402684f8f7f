package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/database"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
)

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func New(db *sql.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, lockTimeout: lockTimeout}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: station_id, product_id, quantity, low_stock_threshold, updated_at
func scanItem(s scanner) (*inventory.Item, error) {
	var it inventory.Item

	if err := s.Scan(&it.StationID, &it.ProductID, &it.Quantity, &it.LowStockThreshold, &it.UpdatedAt); err != nil {
		return nil, err
	}

	return &it, nil
}

const selectItemColumns = `station_id, product_id, quantity, low_stock_threshold, updated_at`

func itemKey(stationID, productID string) string {
	return stationID + "/" + productID
}

func (s *Store) BeginAdjust(ctx context.Context, stationID, productID string) (inventory.AdjustTx, error) {
	key := itemKey(stationID, productID)

	dbTx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, database.Wrap("begin adjust", "inventory item", key, err)
	}

	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE station_id = $1 AND product_id = $2
		FOR UPDATE`

	item, err := scanItem(dbTx.QueryRowContext(ctx, query, stationID, productID))
	if err != nil {
		dbTx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "inventory item", ID: key}
		}

		return nil, database.Wrap("locking inventory item", "inventory item", key, err)
	}

	return &adjustTx{tx: dbTx, item: item}, nil
}

func (s *Store) ListItems(ctx context.Context, stationID string) ([]*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE station_id = $1
		ORDER BY product_id ASC`

	return s.queryItems(ctx, "listing inventory", query, stationID)
}

func (s *Store) ListLowStock(ctx context.Context, stationID *string) ([]*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM inventory_items
		WHERE quantity < low_stock_threshold`

	var args []any

	if stationID != nil {
		query += " AND station_id = $1"

		args = append(args, *stationID)
	}

	query += " ORDER BY station_id ASC, product_id ASC"

	return s.queryItems(ctx, "listing low stock", query, args...)
}

func (s *Store) queryItems(ctx context.Context, op, query string, args ...any) ([]*inventory.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap(op, "inventory item", "", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, database.Wrap("scanning inventory item", "inventory item", "", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap(op, "inventory item", "", err)
	}

	return items, nil
}

type adjustTx struct {
	tx   *sql.Tx
	item *inventory.Item
}

func (atx *adjustTx) Item() *inventory.Item { return atx.item }

func (atx *adjustTx) SetQuantity(ctx context.Context, quantity decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET quantity = $1, updated_at = NOW()
		WHERE station_id = $2 AND product_id = $3
	`

	if _, err := atx.tx.ExecContext(ctx, query, quantity, atx.item.StationID, atx.item.ProductID); err != nil {
		return database.Wrap("updating quantity", "inventory item", itemKey(atx.item.StationID, atx.item.ProductID), err)
	}

	return nil
}

func (atx *adjustTx) RecordMovement(ctx context.Context, m *inventory.Movement) error {
	query := `
		INSERT INTO stock_movements (id, station_id, product_id, delta, quantity_before, quantity_after, reason, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := atx.tx.ExecContext(ctx, query,
		m.ID,
		m.StationID,
		m.ProductID,
		m.Delta,
		m.QuantityBefore,
		m.QuantityAfter,
		m.Reason,
		m.Reference,
		m.CreatedAt,
	)
	if err != nil {
		return database.Wrap("recording movement", "inventory item", itemKey(m.StationID, m.ProductID), err)
	}

	return nil
}

func (atx *adjustTx) Commit() error {
	if err := atx.tx.Commit(); err != nil {
		return database.Wrap("committing adjust", "inventory item", itemKey(atx.item.StationID, atx.item.ProductID), err)
	}

	return nil
}

func (atx *adjustTx) Rollback() error { return atx.tx.Rollback() }

// Provision inserts an item or updates its low-stock threshold.
func (s *Store) Provision(ctx context.Context, item inventory.Item) error {
	query := `
		INSERT INTO inventory_items (station_id, product_id, quantity, low_stock_threshold, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (station_id, product_id) DO UPDATE SET low_stock_threshold = EXCLUDED.low_stock_threshold
	`

	if _, err := s.db.ExecContext(ctx, query, item.StationID, item.ProductID, item.Quantity, item.LowStockThreshold); err != nil {
		return database.Wrap("provisioning inventory item", "inventory item", itemKey(item.StationID, item.ProductID), err)
	}

	return nil
}

var _ inventory.Repository = (*Store)(nil)
