package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/database"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
)

// Soft deleted rows are filtered by these predicates only.
const (
	liveOwner       = `o.deleted_at IS NULL`
	liveTransaction = `t.deleted_at IS NULL`
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

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectOwnerColumns = `
	o.id, o.name, o.phone, o.owner_group, o.credit_limit, o.current_credit,
	o.created_at, o.updated_at, o.deleted_at
`

func scanOwner(s scanner) (*ledger.Owner, error) {
	var o ledger.Owner

	var phone, group sql.NullString

	if err := s.Scan(
		&o.ID, &o.Name, &phone, &group, &o.CreditLimit, &o.CurrentCredit,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	); err != nil {
		return nil, err
	}

	o.Phone = phone.String
	o.Group = group.String

	return &o, nil
}

const selectInvoiceColumns = `
	i.id, i.owner_id, i.year, i.month, i.total, i.paid, i.status, i.created_at, i.updated_at
`

func scanInvoice(s scanner) (*ledger.Invoice, error) {
	var inv ledger.Invoice

	var month int

	var status string

	if err := s.Scan(
		&inv.ID, &inv.OwnerID, &inv.Year, &month, &inv.Total, &inv.Paid, &status,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Month = time.Month(month)
	inv.Status = ledger.InvoiceStatus(status)

	return &inv, nil
}

const selectTransactionColumns = `
	t.id, t.occurred_at, t.station_id, t.shift_id, t.nozzle_id, t.product_id,
	t.liters, t.price_per_liter, t.amount, t.payment_type, t.owner_id, t.truck_id,
	t.invoice_id, t.deleted_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	var shiftID, nozzleID, productID, ownerID, truckID sql.NullString

	if err := s.Scan(
		&t.ID, &t.OccurredAt, &t.StationID, &shiftID, &nozzleID, &productID,
		&t.Liters, &t.PricePerLiter, &t.Amount, &t.PaymentType, &ownerID, &truckID,
		&t.InvoiceID, &t.DeletedAt,
	); err != nil {
		return nil, err
	}

	t.ShiftID = shiftID.String
	t.NozzleID = nozzleID.String
	t.ProductID = productID.String
	t.OwnerID = ownerID.String
	t.TruckID = truckID.String

	return &t, nil
}

func normalizeTypes(types []string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = strings.ToUpper(strings.TrimSpace(t))
	}

	return out
}

func (s *Store) GetOwner(ctx context.Context, ownerID string) (*ledger.Owner, error) {
	query := `SELECT ` + selectOwnerColumns + ` FROM owners o WHERE o.id = $1 AND ` + liveOwner

	o, err := scanOwner(s.db.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "owner", ID: ownerID}
		}

		return nil, database.Wrap("getting owner", "owner", ownerID, err)
	}

	return o, nil
}

func (s *Store) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*ledger.Invoice, error) {
	return getInvoice(ctx, s.db, invoiceID, "")
}

func getInvoice(ctx context.Context, q queryer, invoiceID uuid.UUID, suffix string) (*ledger.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE i.id = $1 ` + suffix

	inv, err := scanInvoice(q.QueryRowContext(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "invoice", ID: invoiceID.String()}
		}

		return nil, database.Wrap("getting invoice", "invoice", invoiceID.String(), err)
	}

	if inv.TransactionIDs, err = linkedTransactions(ctx, q, inv.ID); err != nil {
		return nil, err
	}

	return inv, nil
}

func linkedTransactions(ctx context.Context, q queryer, invoiceID uuid.UUID) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT id FROM transactions WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, database.Wrap("listing invoice transactions", "invoice", invoiceID.String(), err)
	}
	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, database.Wrap("scanning invoice transaction", "invoice", invoiceID.String(), err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap("listing invoice transactions", "invoice", invoiceID.String(), err)
	}

	return ids, nil
}

func (s *Store) ListBillingCandidates(ctx context.Context, from, to time.Time) ([]ledger.BillingCandidate, error) {
	query := `
		SELECT o.id, COALESCE(o.owner_group, ''), string_agg(DISTINCT upper(t.payment_type), ',')
		FROM owners o
		JOIN transactions t ON t.owner_id = o.id
		WHERE ` + liveOwner + ` AND ` + liveTransaction + `
			AND t.occurred_at >= $1 AND t.occurred_at < $2
		GROUP BY o.id, o.owner_group
		ORDER BY o.id ASC`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, database.Wrap("listing billing candidates", "owner", "", err)
	}
	defer rows.Close()

	var out []ledger.BillingCandidate

	for rows.Next() {
		var c ledger.BillingCandidate

		var types string

		if err := rows.Scan(&c.OwnerID, &c.Group, &types); err != nil {
			return nil, database.Wrap("scanning billing candidate", "owner", "", err)
		}

		c.PaymentTypes = strings.Split(types, ",")

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Wrap("listing billing candidates", "owner", "", err)
	}

	return out, nil
}

// BeginOwner takes the owner row lock. Invoice and payment writes for the
// owner happen under the same lock.
func (s *Store) BeginOwner(ctx context.Context, ownerID string) (ledger.OwnerTx, error) {
	dbTx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, database.Wrap("begin owner", "owner", ownerID, err)
	}

	o, err := lockOwner(ctx, dbTx, ownerID, true)
	if err != nil {
		dbTx.Rollback()
		return nil, err
	}

	return &ownerTx{tx: dbTx, owner: o}, nil
}

// BeginInvoice locks owner before invoice, the same order invoice generation
// uses. Payments are accepted for invoices of soft deleted owners.
func (s *Store) BeginInvoice(ctx context.Context, invoiceID uuid.UUID) (ledger.InvoiceTx, error) {
	var ownerID string

	err := s.db.QueryRowContext(ctx, `SELECT owner_id FROM invoices WHERE id = $1`, invoiceID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "invoice", ID: invoiceID.String()}
		}

		return nil, database.Wrap("resolving invoice owner", "invoice", invoiceID.String(), err)
	}

	dbTx, err := database.BeginLocked(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, database.Wrap("begin invoice", "invoice", invoiceID.String(), err)
	}

	o, err := lockOwner(ctx, dbTx, ownerID, false)
	if err != nil {
		dbTx.Rollback()
		return nil, err
	}

	inv, err := getInvoice(ctx, dbTx, invoiceID, "FOR UPDATE")
	if err != nil {
		dbTx.Rollback()
		return nil, err
	}

	return &invoiceTx{ownerTx: &ownerTx{tx: dbTx, owner: o}, invoice: inv}, nil
}

func lockOwner(ctx context.Context, tx *sql.Tx, ownerID string, liveOnly bool) (*ledger.Owner, error) {
	query := `SELECT ` + selectOwnerColumns + ` FROM owners o WHERE o.id = $1`
	if liveOnly {
		query += ` AND ` + liveOwner
	}

	query += ` FOR UPDATE`

	o, err := scanOwner(tx.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "owner", ID: ownerID}
		}

		return nil, database.Wrap("locking owner", "owner", ownerID, err)
	}

	return o, nil
}

type ownerTx struct {
	tx    *sql.Tx
	owner *ledger.Owner
}

func (o *ownerTx) wrap(op string, err error) error {
	return database.Wrap(op, "owner", o.owner.ID, err)
}

func (o *ownerTx) Owner() *ledger.Owner {
	cp := *o.owner
	return &cp
}

func (o *ownerTx) Commit() error {
	if err := o.tx.Commit(); err != nil {
		return o.wrap("committing owner transaction", err)
	}

	return nil
}

func (o *ownerTx) Rollback() error { return o.tx.Rollback() }

func (o *ownerTx) UpdateOwner(ctx context.Context, owner *ledger.Owner) error {
	query := `
		UPDATE owners
		SET name = $1, phone = NULLIF($2, ''), credit_limit = $3, updated_at = $4
		WHERE id = $5`

	if _, err := o.tx.ExecContext(ctx, query, owner.Name, owner.Phone, owner.CreditLimit, owner.UpdatedAt, o.owner.ID); err != nil {
		return o.wrap("updating owner", err)
	}

	return nil
}

func (o *ownerTx) SetCurrentCredit(ctx context.Context, credit decimal.Decimal) error {
	query := `UPDATE owners SET current_credit = $1, updated_at = NOW() WHERE id = $2`

	if _, err := o.tx.ExecContext(ctx, query, credit, o.owner.ID); err != nil {
		return o.wrap("setting current credit", err)
	}

	return nil
}

func (o *ownerTx) RecordTransaction(ctx context.Context, t *ledger.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (
			id, occurred_at, station_id, shift_id, nozzle_id, product_id,
			liters, price_per_liter, amount, payment_type, owner_id, truck_id, created_at
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, NULLIF($12, ''), NOW())
		ON CONFLICT (id) DO NOTHING`

	res, err := o.tx.ExecContext(ctx, query,
		t.ID, t.OccurredAt, t.StationID, t.ShiftID, t.NozzleID, t.ProductID,
		t.Liters, t.PricePerLiter, t.Amount, t.PaymentType, t.OwnerID, t.TruckID,
	)
	if err != nil {
		return false, o.wrap("recording transaction", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, o.wrap("recording transaction", err)
	}

	return n == 1, nil
}

func (o *ownerTx) UnbilledTransactions(ctx context.Context, from, to time.Time, paymentTypes []string) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND ` + liveTransaction + `
			AND t.invoice_id IS NULL
			AND t.occurred_at >= $2 AND t.occurred_at < $3
			AND upper(t.payment_type) = ANY($4)
		ORDER BY t.id ASC
		FOR UPDATE`

	rows, err := o.tx.QueryContext(ctx, query, o.owner.ID, from, to, normalizeTypes(paymentTypes))
	if err != nil {
		return nil, o.wrap("listing unbilled transactions", err)
	}
	defer rows.Close()

	var out []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, o.wrap("scanning transaction", err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, o.wrap("listing unbilled transactions", err)
	}

	return out, nil
}

func (o *ownerTx) InvoiceFor(ctx context.Context, year int, month time.Month) (*ledger.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		WHERE i.owner_id = $1 AND i.year = $2 AND i.month = $3
		FOR UPDATE`

	inv, err := scanInvoice(o.tx.QueryRowContext(ctx, query, o.owner.ID, year, int(month)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, o.wrap("finding invoice", err)
	}

	if inv.TransactionIDs, err = linkedTransactions(ctx, o.tx, inv.ID); err != nil {
		return nil, err
	}

	return inv, nil
}

func (o *ownerTx) SaveInvoice(ctx context.Context, inv *ledger.Invoice) error {
	query := `
		INSERT INTO invoices (id, owner_id, year, month, total, paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			total = EXCLUDED.total,
			paid = EXCLUDED.paid,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := o.tx.ExecContext(ctx, query,
		inv.ID, inv.OwnerID, inv.Year, int(inv.Month), inv.Total, inv.Paid, string(inv.Status),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return o.wrap("saving invoice", err)
	}

	return nil
}

func (o *ownerTx) LinkTransactions(ctx context.Context, invoiceID uuid.UUID, transactionIDs []string) (int, error) {
	query := `
		UPDATE transactions
		SET invoice_id = $1
		WHERE id = ANY($2) AND invoice_id IS NULL`

	res, err := o.tx.ExecContext(ctx, query, invoiceID, transactionIDs)
	if err != nil {
		return 0, o.wrap("linking transactions", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, o.wrap("linking transactions", err)
	}

	return int(n), nil
}

func (o *ownerTx) RecordPayment(ctx context.Context, p *ledger.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, owner_id, amount, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := o.tx.ExecContext(ctx, query, p.ID, p.InvoiceID, p.OwnerID, p.Amount, p.PaidAt, p.CreatedAt); err != nil {
		return o.wrap("recording payment", err)
	}

	return nil
}

func (o *ownerTx) CreditTotals(ctx context.Context, paymentTypes []string) (decimal.Decimal, decimal.Decimal, error) {
	var charged, paid decimal.Decimal

	chargedQuery := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		WHERE t.owner_id = $1 AND ` + liveTransaction + ` AND upper(t.payment_type) = ANY($2)`

	if err := o.tx.QueryRowContext(ctx, chargedQuery, o.owner.ID, normalizeTypes(paymentTypes)).Scan(&charged); err != nil {
		return decimal.Zero, decimal.Zero, o.wrap("summing credit transactions", err)
	}

	paidQuery := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE owner_id = $1`

	if err := o.tx.QueryRowContext(ctx, paidQuery, o.owner.ID).Scan(&paid); err != nil {
		return decimal.Zero, decimal.Zero, o.wrap("summing payments", err)
	}

	return charged, paid, nil
}

type invoiceTx struct {
	*ownerTx
	invoice *ledger.Invoice
}

func (i *invoiceTx) Invoice() *ledger.Invoice {
	cp := *i.invoice
	return &cp
}

var (
	_ ledger.Repository = (*Store)(nil)
	_ ledger.InvoiceTx  = (*invoiceTx)(nil)
)
