package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

var tracer = otel.Tracer("github.com/MrJamesThe3rd/fuelbook/internal/ledger")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// BeginOwner locks the owner until the returned transaction ends. Soft
	// deleted owners are reported as apperr.NotFoundError.
	BeginOwner(ctx context.Context, ownerID string) (OwnerTx, error)

	// BeginInvoice locks the invoice's owner, then the invoice itself.
	BeginInvoice(ctx context.Context, invoiceID uuid.UUID) (InvoiceTx, error)

	GetOwner(ctx context.Context, ownerID string) (*Owner, error)
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error)

	// ListBillingCandidates returns every live owner with at least one live
	// transaction in [from, to), together with the distinct payment types of
	// those transactions.
	ListBillingCandidates(ctx context.Context, from, to time.Time) ([]BillingCandidate, error)
}

type OwnerTx interface {
	Owner() *Owner
	UpdateOwner(ctx context.Context, o *Owner) error
	SetCurrentCredit(ctx context.Context, credit decimal.Decimal) error

	// RecordTransaction stores t and reports false when a transaction with
	// the same id was already recorded.
	RecordTransaction(ctx context.Context, t *Transaction) (bool, error)

	// UnbilledTransactions returns the owner's live transactions in
	// [from, to) that are not linked to any invoice and whose payment type is
	// one of paymentTypes.
	UnbilledTransactions(ctx context.Context, from, to time.Time, paymentTypes []string) ([]*Transaction, error)

	// InvoiceFor returns the owner's invoice for the month, or nil.
	InvoiceFor(ctx context.Context, year int, month time.Month) (*Invoice, error)
	SaveInvoice(ctx context.Context, inv *Invoice) error

	// LinkTransactions attaches still-unlinked transactions to the invoice and
	// returns how many were linked.
	LinkTransactions(ctx context.Context, invoiceID uuid.UUID, transactionIDs []string) (int, error)

	RecordPayment(ctx context.Context, p *Payment) error

	// CreditTotals sums the owner's live transactions with one of
	// paymentTypes, and all of the owner's payments.
	CreditTotals(ctx context.Context, paymentTypes []string) (charged, paid decimal.Decimal, err error)

	Commit() error
	Rollback() error
}

type InvoiceTx interface {
	OwnerTx
	Invoice() *Invoice
}

type BillingCandidate struct {
	OwnerID      string
	Group        string
	PaymentTypes []string
}

type PaymentClassifier interface {
	IsCreditBearing(paymentType, group string) bool
	CreditBearingTypes(group string) []string
}

type Config struct {
	AllowOverpayment bool
}

type Service struct {
	repo     Repository
	payTypes PaymentClassifier
	cfg      Config
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, payTypes PaymentClassifier, cfg Config, metrics *observability.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		payTypes: payTypes,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type AccrueParams struct {
	Transaction Transaction
	// AllowOverLimit lets a supervisor accept a sale past the owner's limit.
	AllowOverLimit bool
}

type AccrueResult struct {
	Owner   *Owner
	Accrued bool
}

func (p AccrueParams) validate() error {
	t := p.Transaction

	switch {
	case t.ID == "":
		return &apperr.ValidationError{Field: "transaction_id", Message: "is required"}
	case t.OwnerID == "":
		return &apperr.ValidationError{Field: "owner_id", Message: "is required"}
	case !t.Amount.IsPositive():
		return &apperr.ValidationError{Field: "amount", Message: "must be greater than zero"}
	case t.DeletedAt != nil:
		return &apperr.ValidationError{Field: "transaction", Message: "is deleted"}
	case !t.Consistent():
		return &apperr.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("%s does not match %s liters at %s", t.Amount, t.Liters, t.PricePerLiter),
		}
	}

	return nil
}

// AccrueCredit charges a credit-bearing sale to its owner. Sales settled by
// any other payment type leave the ledger untouched. A sale that would push
// the owner past their limit is rejected with apperr.CreditLimitExceededError
// unless AllowOverLimit is set.
func (s *Service) AccrueCredit(ctx context.Context, params AccrueParams) (*AccrueResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.AccrueCredit")
	defer span.End()

	t := params.Transaction
	span.SetAttributes(attribute.String("owner_id", t.OwnerID), attribute.String("transaction_id", t.ID))

	if err := params.validate(); err != nil {
		s.metrics.IncrAccrual("invalid")
		return nil, err
	}

	otx, err := s.repo.BeginOwner(ctx, t.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("begin owner: %w", err)
	}
	defer otx.Rollback()

	owner := *otx.Owner()

	if !s.payTypes.IsCreditBearing(t.PaymentType, owner.Group) {
		s.metrics.IncrAccrual("not_credit")
		return &AccrueResult{Owner: &owner}, nil
	}

	// Duplicates return before the limit check. A rejection below rolls the
	// recorded transaction back.
	inserted, err := otx.RecordTransaction(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if !inserted {
		s.metrics.IncrAccrual("duplicate")
		return &AccrueResult{Owner: &owner}, nil
	}

	next := owner.CurrentCredit.Add(t.Amount)

	if next.GreaterThan(owner.CreditLimit) {
		if !params.AllowOverLimit {
			s.metrics.IncrAccrual("over_limit")

			return nil, &apperr.CreditLimitExceededError{
				OwnerID: owner.ID,
				Limit:   owner.CreditLimit,
				Current: owner.CurrentCredit,
				Amount:  t.Amount,
			}
		}

		s.logger.Warn("credit limit overridden",
			zap.String("owner_id", owner.ID),
			zap.String("transaction_id", t.ID),
			zap.String("limit", owner.CreditLimit.String()),
			zap.String("credit_after", next.String()),
		)
	}

	if err := otx.SetCurrentCredit(ctx, next); err != nil {
		return nil, fmt.Errorf("set current credit: %w", err)
	}

	if err := otx.Commit(); err != nil {
		return nil, fmt.Errorf("commit accrual: %w", err)
	}

	owner.CurrentCredit = next
	s.metrics.IncrAccrual("accrued")

	return &AccrueResult{Owner: &owner, Accrued: true}, nil
}

type InvoiceResult struct {
	Invoice *Invoice
	// Skipped is set when no new qualifying transactions were found.
	Skipped bool
	Created bool
	Linked  int
}

// GenerateMonthlyInvoice bills the owner's unlinked credit transactions of
// the month. An existing invoice for the month is extended rather than
// duplicated, so running it again without new transactions changes nothing.
func (s *Service) GenerateMonthlyInvoice(ctx context.Context, ownerID string, month time.Month, year int) (*InvoiceResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.GenerateMonthlyInvoice")
	defer span.End()

	span.SetAttributes(
		attribute.String("owner_id", ownerID),
		attribute.Int("year", year),
		attribute.Int("month", int(month)),
	)

	if ownerID == "" {
		return nil, &apperr.ValidationError{Field: "owner_id", Message: "is required"}
	}

	from, to, err := BillingWindow(month, year)
	if err != nil {
		return nil, err
	}

	res, err := s.generateInvoice(ctx, ownerID, from, to)
	if err != nil {
		span.RecordError(err)
		s.metrics.IncrInvoice("failed")

		return nil, err
	}

	switch {
	case res.Skipped:
		s.metrics.IncrInvoice("skipped")
	case res.Created:
		s.metrics.IncrInvoice("created")
	default:
		s.metrics.IncrInvoice("extended")
	}

	return res, nil
}

func (s *Service) generateInvoice(ctx context.Context, ownerID string, from, to time.Time) (*InvoiceResult, error) {
	otx, err := s.repo.BeginOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("begin owner: %w", err)
	}
	defer otx.Rollback()

	owner := otx.Owner()

	txs, err := otx.UnbilledTransactions(ctx, from, to, s.payTypes.CreditBearingTypes(owner.Group))
	if err != nil {
		return nil, fmt.Errorf("list unbilled transactions: %w", err)
	}

	inv, err := otx.InvoiceFor(ctx, from.Year(), from.Month())
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}

	if len(txs) == 0 {
		return &InvoiceResult{Invoice: inv, Skipped: true}, nil
	}

	now := s.now()
	created := inv == nil

	if created {
		inv = &Invoice{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Year:      from.Year(),
			Month:     from.Month(),
			Total:     decimal.Zero,
			Paid:      decimal.Zero,
			CreatedAt: now,
		}
	}

	ids := make([]string, len(txs))
	sum := decimal.Zero

	for i, t := range txs {
		ids[i] = t.ID
		sum = sum.Add(t.Amount)
	}

	inv.Total = inv.Total.Add(sum)
	inv.TransactionIDs = append(inv.TransactionIDs, ids...)
	slices.Sort(inv.TransactionIDs)
	inv.UpdatedAt = now
	inv.settle()

	if err := otx.SaveInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	linked, err := otx.LinkTransactions(ctx, inv.ID, ids)
	if err != nil {
		return nil, fmt.Errorf("link transactions: %w", err)
	}

	if linked != len(ids) {
		return nil, &apperr.ConcurrencyConflictError{Resource: "invoice", Key: inv.ID.String()}
	}

	if err := otx.Commit(); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}

	s.logger.Info("invoice generated",
		zap.String("owner_id", ownerID),
		zap.String("invoice_id", inv.ID.String()),
		zap.Bool("created", created),
		zap.Int("linked", linked),
		zap.String("total", inv.Total.String()),
	)

	return &InvoiceResult{Invoice: inv, Created: created, Linked: linked}, nil
}

// ListEligibleOwners returns, sorted, the live owners with at least one
// credit-bearing transaction in the month.
func (s *Service) ListEligibleOwners(ctx context.Context, month time.Month, year int) ([]string, error) {
	from, to, err := BillingWindow(month, year)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListBillingCandidates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list billing candidates: %w", err)
	}

	var out []string

	for _, c := range candidates {
		if slices.ContainsFunc(c.PaymentTypes, func(pt string) bool {
			return s.payTypes.IsCreditBearing(pt, c.Group)
		}) {
			out = append(out, c.OwnerID)
		}
	}

	slices.Sort(out)

	return out, nil
}

type PaymentParams struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
}

type PaymentResult struct {
	Payment *Payment
	Invoice *Invoice
	Owner   *Owner
}

// ApplyPayment settles part or all of an invoice and releases the same
// amount of the owner's credit.
func (s *Service) ApplyPayment(ctx context.Context, params PaymentParams) (*PaymentResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.ApplyPayment")
	defer span.End()

	span.SetAttributes(attribute.String("invoice_id", params.InvoiceID.String()))

	if !params.Amount.IsPositive() {
		return nil, &apperr.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	itx, err := s.repo.BeginInvoice(ctx, params.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("begin invoice: %w", err)
	}
	defer itx.Rollback()

	inv := *itx.Invoice()
	owner := *itx.Owner()

	if params.Amount.GreaterThan(inv.Outstanding()) && !s.cfg.AllowOverpayment {
		return nil, &apperr.OverpaymentError{
			InvoiceID:   inv.ID.String(),
			Outstanding: inv.Outstanding(),
			Amount:      params.Amount,
		}
	}

	now := s.now()

	paidAt := params.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	inv.Paid = inv.Paid.Add(params.Amount)
	inv.UpdatedAt = now
	inv.settle()

	if err := itx.SaveInvoice(ctx, &inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	owner.CurrentCredit = owner.CurrentCredit.Sub(params.Amount)
	if err := itx.SetCurrentCredit(ctx, owner.CurrentCredit); err != nil {
		return nil, fmt.Errorf("set current credit: %w", err)
	}

	p := &Payment{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		OwnerID:   inv.OwnerID,
		Amount:    params.Amount,
		PaidAt:    paidAt,
		CreatedAt: now,
	}
	if err := itx.RecordPayment(ctx, p); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	s.metrics.IncrPayment(string(inv.Status))

	return &PaymentResult{Payment: p, Invoice: &inv, Owner: &owner}, nil
}

type UpdateOwnerResult struct {
	Owner     *Owner
	OverLimit bool
}

func (u OwnerUpdate) validate() error {
	if limit, ok := u.CreditLimit.Get(); ok && limit.IsNegative() {
		return &apperr.ValidationError{Field: "credit_limit", Message: "must not be negative"}
	}

	if name, ok := u.Name.Get(); ok && name == "" {
		return &apperr.ValidationError{Field: "name", Message: "must not be empty"}
	}

	return nil
}

// UpdateOwner applies a partial update. Lowering the credit limit below the
// current balance is accepted and reported through OverLimit.
func (s *Service) UpdateOwner(ctx context.Context, ownerID string, update OwnerUpdate) (*UpdateOwnerResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.UpdateOwner")
	defer span.End()

	if ownerID == "" {
		return nil, &apperr.ValidationError{Field: "owner_id", Message: "is required"}
	}

	if err := update.validate(); err != nil {
		return nil, err
	}

	otx, err := s.repo.BeginOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("begin owner: %w", err)
	}
	defer otx.Rollback()

	owner := *otx.Owner()

	if v, ok := update.CreditLimit.Get(); ok {
		owner.CreditLimit = v
	}

	if v, ok := update.Name.Get(); ok {
		owner.Name = v
	}

	if v, ok := update.Phone.Get(); ok {
		owner.Phone = v
	}

	owner.UpdatedAt = s.now()

	if err := otx.UpdateOwner(ctx, &owner); err != nil {
		return nil, fmt.Errorf("update owner: %w", err)
	}

	if err := otx.Commit(); err != nil {
		return nil, fmt.Errorf("commit owner update: %w", err)
	}

	res := &UpdateOwnerResult{Owner: &owner, OverLimit: owner.OverLimit()}

	if res.OverLimit {
		s.logger.Warn("owner is over their credit limit",
			zap.String("owner_id", owner.ID),
			zap.String("limit", owner.CreditLimit.String()),
			zap.String("current_credit", owner.CurrentCredit.String()),
		)
	}

	return res, nil
}

type Reconciliation struct {
	OwnerID    string
	Previous   decimal.Decimal
	Recomputed decimal.Decimal
	Drift      decimal.Decimal
}

// RecomputeBalance rebuilds the owner's current credit from history: charged
// credit transactions minus payments. Any drift is written back and logged.
func (s *Service) RecomputeBalance(ctx context.Context, ownerID string) (*Reconciliation, error) {
	ctx, span := tracer.Start(ctx, "ledger.RecomputeBalance")
	defer span.End()

	if ownerID == "" {
		return nil, &apperr.ValidationError{Field: "owner_id", Message: "is required"}
	}

	otx, err := s.repo.BeginOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("begin owner: %w", err)
	}
	defer otx.Rollback()

	owner := otx.Owner()

	charged, paid, err := otx.CreditTotals(ctx, s.payTypes.CreditBearingTypes(owner.Group))
	if err != nil {
		return nil, fmt.Errorf("sum credit history: %w", err)
	}

	rec := &Reconciliation{
		OwnerID:    ownerID,
		Previous:   owner.CurrentCredit,
		Recomputed: charged.Sub(paid),
	}
	rec.Drift = rec.Previous.Sub(rec.Recomputed)

	if rec.Drift.IsZero() {
		return rec, nil
	}

	if err := otx.SetCurrentCredit(ctx, rec.Recomputed); err != nil {
		return nil, fmt.Errorf("set current credit: %w", err)
	}

	if err := otx.Commit(); err != nil {
		return nil, fmt.Errorf("commit recompute: %w", err)
	}

	s.logger.Warn("owner balance drift corrected",
		zap.String("owner_id", ownerID),
		zap.String("previous", rec.Previous.String()),
		zap.String("recomputed", rec.Recomputed.String()),
	)

	return rec, nil
}

func (s *Service) GetOwner(ctx context.Context, ownerID string) (*Owner, error) {
	o, err := s.repo.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	return o, nil
}

func (s *Service) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return inv, nil
}
