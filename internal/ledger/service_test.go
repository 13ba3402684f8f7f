package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func classifier() *paytype.Classifier {
	return paytype.NewClassifier(paytype.Rules{
		Cash:          []string{"CASH"},
		Credit:        []string{"CREDIT"},
		CreditByGroup: map[string][]string{"fleet": {"FLEET_CARD"}},
	})
}

func newService(repo ledger.Repository, cfg ledger.Config) *ledger.Service {
	return ledger.NewService(repo, classifier(), cfg, observability.NewMetrics(), zap.NewNop())
}

func seedOwner(store *memstore.Store, id, group, limit, current string) {
	store.PutOwner(ledger.Owner{
		ID:            id,
		Name:          "Owner " + id,
		Group:         group,
		CreditLimit:   dec(limit),
		CurrentCredit: dec(current),
	})
}

func sale(id, ownerID, paymentType, amount string, at time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:            id,
		OccurredAt:    at,
		StationID:     "s1",
		Liters:        dec(amount).Div(dec("2")),
		PricePerLiter: dec("2"),
		Amount:        dec(amount),
		PaymentType:   paymentType,
		OwnerID:       ownerID,
	}
}

var march = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestService_AccrueCredit_LimitExceeded(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "9800")

	svc := newService(store, ledger.Config{})

	_, err := svc.AccrueCredit(context.Background(), ledger.AccrueParams{
		Transaction: sale("t1", "o1", "CREDIT", "300", march),
	})

	var limitErr *apperr.CreditLimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.True(t, limitErr.Current.Equal(dec("9800")))
	assert.True(t, limitErr.Amount.Equal(dec("300")))

	owner, err := svc.GetOwner(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, owner.CurrentCredit.Equal(dec("9800")))
	assert.Empty(t, store.Transactions(), "rejected sale must not be recorded")
}

func TestService_AccrueCredit(t *testing.T) {
	tests := []struct {
		name        string
		group       string
		paymentType string
		override    bool
		wantAccrued bool
		wantCredit  string
	}{
		{name: "credit sale accrues", paymentType: "CREDIT", wantAccrued: true, wantCredit: "9900"},
		{name: "lower case type", paymentType: "credit", wantAccrued: true, wantCredit: "9900"},
		{name: "cash sale ignored", paymentType: "CASH", wantCredit: "9800"},
		{name: "group type outside group", paymentType: "FLEET_CARD", wantCredit: "9800"},
		{name: "group type inside group", group: "fleet", paymentType: "FLEET_CARD", wantAccrued: true, wantCredit: "9900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			seedOwner(store, "o1", tt.group, "10000", "9800")

			res, err := newService(store, ledger.Config{}).AccrueCredit(context.Background(), ledger.AccrueParams{
				Transaction: sale("t1", "o1", tt.paymentType, "100", march),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccrued, res.Accrued)
			assert.True(t, res.Owner.CurrentCredit.Equal(dec(tt.wantCredit)), "got %s", res.Owner.CurrentCredit)
		})
	}
}

func TestService_AccrueCredit_Override(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "9800")

	res, err := newService(store, ledger.Config{}).AccrueCredit(context.Background(), ledger.AccrueParams{
		Transaction:    sale("t1", "o1", "CREDIT", "300", march),
		AllowOverLimit: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Accrued)
	assert.True(t, res.Owner.CurrentCredit.Equal(dec("10100")))
	assert.True(t, res.Owner.OverLimit())
}

func TestService_AccrueCredit_Duplicate(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "0")

	svc := newService(store, ledger.Config{})
	params := ledger.AccrueParams{Transaction: sale("t1", "o1", "CREDIT", "100", march)}

	_, err := svc.AccrueCredit(context.Background(), params)
	require.NoError(t, err)

	res, err := svc.AccrueCredit(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, res.Accrued)
	assert.True(t, res.Owner.CurrentCredit.Equal(dec("100")))
}

func TestService_AccrueCredit_RetryAtLimit(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "9800")

	svc := newService(store, ledger.Config{})
	params := ledger.AccrueParams{Transaction: sale("t1", "o1", "CREDIT", "200", march)}

	first, err := svc.AccrueCredit(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, first.Accrued)
	assert.True(t, first.Owner.CurrentCredit.Equal(dec("10000")))

	retry, err := svc.AccrueCredit(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, retry.Accrued)
	assert.True(t, retry.Owner.CurrentCredit.Equal(dec("10000")))
	assert.Len(t, store.Transactions(), 1)
}

func TestService_AccrueCredit_Validation(t *testing.T) {
	deleted := march

	tests := []struct {
		name  string
		mut   func(*ledger.Transaction)
		field string
	}{
		{name: "missing id", mut: func(tx *ledger.Transaction) { tx.ID = "" }, field: "transaction_id"},
		{name: "missing owner", mut: func(tx *ledger.Transaction) { tx.OwnerID = "" }, field: "owner_id"},
		{name: "zero amount", mut: func(tx *ledger.Transaction) { tx.Amount = decimal.Zero }, field: "amount"},
		{name: "deleted", mut: func(tx *ledger.Transaction) { tx.DeletedAt = &deleted }, field: "transaction"},
		{name: "inconsistent amount", mut: func(tx *ledger.Transaction) { tx.Amount = tx.Amount.Add(dec("0.02")) }, field: "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := ledger.NewMockRepository(ctrl)

			tx := sale("t1", "o1", "CREDIT", "100", march)
			tt.mut(&tx)

			_, err := newService(repo, ledger.Config{}).AccrueCredit(context.Background(), ledger.AccrueParams{Transaction: tx})

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestService_AccrueCredit_UnknownOwner(t *testing.T) {
	_, err := newService(memstore.New(), ledger.Config{}).AccrueCredit(context.Background(), ledger.AccrueParams{
		Transaction: sale("t1", "ghost", "CREDIT", "100", march),
	})

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "owner", nf.Resource)
}

func TestService_AccrueCredit_ConcurrentNoLostUpdates(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "1000000", "0")

	svc := newService(store, ledger.Config{})

	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.AccrueCredit(context.Background(), ledger.AccrueParams{
				Transaction: sale(fmt.Sprintf("t%03d", i), "o1", "CREDIT", "10", march),
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	owner, err := svc.GetOwner(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, owner.CurrentCredit.Equal(dec("1000")), "got %s", owner.CurrentCredit)
}

func TestService_GenerateMonthlyInvoice(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "100000", "0")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	for _, tx := range []ledger.Transaction{
		sale("t1", "o1", "CREDIT", "100.10", march),
		sale("t2", "o1", "CREDIT", "200.20", march.AddDate(0, 0, 5)),
		sale("t3", "o1", "CREDIT", "999", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		sale("t4", "o1", "CREDIT", "50", time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)),
	} {
		_, err := svc.AccrueCredit(ctx, ledger.AccrueParams{Transaction: tx})
		require.NoError(t, err)
	}

	store.PutTransaction(sale("cash1", "o1", "CASH", "70", march))

	res, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
	require.NoError(t, err)
	require.True(t, res.Created)
	assert.Equal(t, 2, res.Linked)
	assert.Equal(t, ledger.StatusPending, res.Invoice.Status)
	assert.True(t, res.Invoice.Total.Equal(dec("300.30")), "got %s", res.Invoice.Total)
	assert.Equal(t, []string{"t1", "t2"}, res.Invoice.TransactionIDs)

	again, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, res.Invoice.ID, again.Invoice.ID)
	assert.True(t, again.Invoice.Total.Equal(dec("300.30")))
	assert.Len(t, store.Invoices(), 1)

	_, err = svc.AccrueCredit(ctx, ledger.AccrueParams{Transaction: sale("t5", "o1", "CREDIT", "10", march.AddDate(0, 0, 10))})
	require.NoError(t, err)

	extended, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
	require.NoError(t, err)
	assert.False(t, extended.Created)
	assert.Equal(t, res.Invoice.ID, extended.Invoice.ID)
	assert.True(t, extended.Invoice.Total.Equal(dec("310.30")))
	assert.Equal(t, []string{"t1", "t2", "t5"}, extended.Invoice.TransactionIDs)
	assert.Len(t, store.Invoices(), 1)
}

func TestService_GenerateMonthlyInvoice_NoTransactions(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "1000", "0")

	res, err := newService(store, ledger.Config{}).GenerateMonthlyInvoice(context.Background(), "o1", time.March, 2026)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Nil(t, res.Invoice)
	assert.Empty(t, store.Invoices())
}

func TestService_GenerateMonthlyInvoice_SkipsDeletedTransactions(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "1000", "0")
	seedOwner(store, "o2", "", "1000", "0")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	for _, tx := range []ledger.Transaction{
		sale("t1", "o1", "CREDIT", "100", march),
		sale("t2", "o1", "CREDIT", "40", march),
		sale("t3", "o2", "CREDIT", "25", march),
	} {
		_, err := svc.AccrueCredit(ctx, ledger.AccrueParams{Transaction: tx})
		require.NoError(t, err)
	}

	store.DeleteTransaction("t2", march.AddDate(0, 0, 1))
	store.DeleteTransaction("t3", march.AddDate(0, 0, 1))

	eligible, err := svc.ListEligibleOwners(ctx, time.March, 2026)
	require.NoError(t, err)
	assert.Equal(t, []string{"o1"}, eligible)

	res, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
	require.NoError(t, err)
	require.True(t, res.Created)
	assert.Equal(t, []string{"t1"}, res.Invoice.TransactionIDs)
	assert.True(t, res.Invoice.Total.Equal(dec("100")), "got %s", res.Invoice.Total)

	skipped, err := svc.GenerateMonthlyInvoice(ctx, "o2", time.March, 2026)
	require.NoError(t, err)
	assert.True(t, skipped.Skipped)
	assert.Nil(t, skipped.Invoice)
	assert.Len(t, store.Invoices(), 1)
}

func TestService_GenerateMonthlyInvoice_Validation(t *testing.T) {
	svc := newService(memstore.New(), ledger.Config{})

	tests := []struct {
		name    string
		ownerID string
		month   time.Month
		year    int
		field   string
	}{
		{name: "owner", ownerID: "", month: time.March, year: 2026, field: "owner_id"},
		{name: "month zero", ownerID: "o1", month: 0, year: 2026, field: "month"},
		{name: "month 13", ownerID: "o1", month: 13, year: 2026, field: "month"},
		{name: "year", ownerID: "o1", month: time.March, year: 12, field: "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateMonthlyInvoice(context.Background(), tt.ownerID, tt.month, tt.year)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestService_GenerateMonthlyInvoice_ConcurrentSingleLink(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "1000000", "0")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	for i := range 20 {
		_, err := svc.AccrueCredit(ctx, ledger.AccrueParams{
			Transaction: sale(fmt.Sprintf("t%02d", i), "o1", "CREDIT", "5", march),
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	invoices := store.Invoices()
	require.Len(t, invoices, 1)
	assert.True(t, invoices[0].Total.Equal(dec("100")))

	seen := make(map[string]uuid.UUID)

	for _, inv := range invoices {
		for _, id := range inv.TransactionIDs {
			_, dup := seen[id]
			assert.False(t, dup, "transaction %s linked twice", id)
			seen[id] = inv.ID
		}
	}

	for _, tx := range store.Transactions() {
		require.NotNil(t, tx.InvoiceID)
		assert.Equal(t, invoices[0].ID, *tx.InvoiceID)
	}
}

func TestService_GenerateMonthlyInvoice_LinkConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	otx := ledger.NewMockOwnerTx(ctrl)

	repo.EXPECT().BeginOwner(gomock.Any(), "o1").Return(otx, nil)
	otx.EXPECT().Owner().Return(&ledger.Owner{ID: "o1"})
	otx.EXPECT().UnbilledTransactions(gomock.Any(), gomock.Any(), gomock.Any(), []string{"CREDIT"}).
		Return([]*ledger.Transaction{{ID: "t1", Amount: dec("10")}, {ID: "t2", Amount: dec("20")}}, nil)
	otx.EXPECT().InvoiceFor(gomock.Any(), 2026, time.March).Return(nil, nil)
	otx.EXPECT().SaveInvoice(gomock.Any(), gomock.Any()).Return(nil)
	otx.EXPECT().LinkTransactions(gomock.Any(), gomock.Any(), []string{"t1", "t2"}).Return(1, nil)
	otx.EXPECT().Commit().Times(0)
	otx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo, ledger.Config{}).GenerateMonthlyInvoice(context.Background(), "o1", time.March, 2026)

	var conflict *apperr.ConcurrencyConflictError
	require.ErrorAs(t, err, &conflict)
}

// invoiceFor accrues the amount as one credit sale and bills it.
func invoiceFor(t *testing.T, svc *ledger.Service, ownerID, amount string) *ledger.Invoice {
	t.Helper()

	_, err := svc.AccrueCredit(context.Background(), ledger.AccrueParams{
		Transaction: sale(uuid.NewString(), ownerID, "CREDIT", amount, march),
	})
	require.NoError(t, err)

	res, err := svc.GenerateMonthlyInvoice(context.Background(), ownerID, time.March, 2026)
	require.NoError(t, err)
	require.NotNil(t, res.Invoice)

	return res.Invoice
}

func TestService_ApplyPayment(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "0")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	inv := invoiceFor(t, svc, "o1", "5000")

	first, err := svc.ApplyPayment(ctx, ledger.PaymentParams{InvoiceID: inv.ID, Amount: dec("2000"), PaidAt: march})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPartial, first.Invoice.Status)
	assert.True(t, first.Invoice.Outstanding().Equal(dec("3000")))
	assert.True(t, first.Owner.CurrentCredit.Equal(dec("3000")))
	assert.Equal(t, march, first.Payment.PaidAt)

	second, err := svc.ApplyPayment(ctx, ledger.PaymentParams{InvoiceID: inv.ID, Amount: dec("3000"), PaidAt: march})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPaid, second.Invoice.Status)
	assert.True(t, second.Invoice.Outstanding().IsZero())

	owner, err := svc.GetOwner(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, owner.CurrentCredit.IsZero(), "credit reduced by 5000 in total, got %s", owner.CurrentCredit)
	assert.Len(t, store.Payments(), 2)
}

func TestService_ApplyPayment_Overpayment(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "0")

	svc := newService(store, ledger.Config{})
	inv := invoiceFor(t, svc, "o1", "100")

	_, err := svc.ApplyPayment(context.Background(), ledger.PaymentParams{InvoiceID: inv.ID, Amount: dec("100.01")})

	var over *apperr.OverpaymentError
	require.ErrorAs(t, err, &over)
	assert.True(t, over.Outstanding.Equal(dec("100")))

	got, err := svc.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid.IsZero())
	assert.Empty(t, store.Payments())
}

func TestService_ApplyPayment_OverpaymentAllowed(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "0")

	svc := newService(store, ledger.Config{AllowOverpayment: true})
	inv := invoiceFor(t, svc, "o1", "100")

	res, err := svc.ApplyPayment(context.Background(), ledger.PaymentParams{InvoiceID: inv.ID, Amount: dec("150")})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPaid, res.Invoice.Status)
	assert.True(t, res.Owner.CurrentCredit.Equal(dec("-50")))
}

func TestService_ApplyPayment_Errors(t *testing.T) {
	svc := newService(memstore.New(), ledger.Config{})

	_, err := svc.ApplyPayment(context.Background(), ledger.PaymentParams{InvoiceID: uuid.New(), Amount: dec("0")})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.ApplyPayment(context.Background(), ledger.PaymentParams{InvoiceID: uuid.New(), Amount: dec("10")})

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "invoice", nf.Resource)
}

func TestService_ApplyPayment_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	itx := ledger.NewMockInvoiceTx(ctrl)

	inv := &ledger.Invoice{ID: uuid.New(), OwnerID: "o1", Total: dec("100"), Paid: decimal.Zero, Status: ledger.StatusPending}

	repo.EXPECT().BeginInvoice(gomock.Any(), inv.ID).Return(itx, nil)
	itx.EXPECT().Invoice().Return(inv)
	itx.EXPECT().Owner().Return(&ledger.Owner{ID: "o1", CurrentCredit: dec("100")})
	itx.EXPECT().SaveInvoice(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().SetCurrentCredit(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(&apperr.PersistenceError{Op: "insert", Err: errors.New("disk full")})
	itx.EXPECT().Commit().Times(0)
	itx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo, ledger.Config{}).ApplyPayment(context.Background(), ledger.PaymentParams{InvoiceID: inv.ID, Amount: dec("40")})

	var perr *apperr.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestService_UpdateOwner(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "", "10000", "6000")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	res, err := svc.UpdateOwner(ctx, "o1", ledger.OwnerUpdate{Phone: ledger.Set("+351 900 000 000")})
	require.NoError(t, err)
	assert.Equal(t, "Owner o1", res.Owner.Name)
	assert.Equal(t, "+351 900 000 000", res.Owner.Phone)
	assert.True(t, res.Owner.CreditLimit.Equal(dec("10000")))
	assert.False(t, res.OverLimit)

	res, err = svc.UpdateOwner(ctx, "o1", ledger.OwnerUpdate{CreditLimit: ledger.Set(dec("5000"))})
	require.NoError(t, err)
	assert.True(t, res.OverLimit)
	assert.True(t, res.Owner.CurrentCredit.Equal(dec("6000")), "balance is never corrected")

	owner, err := svc.GetOwner(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, owner.CreditLimit.Equal(dec("5000")))
	assert.Equal(t, "+351 900 000 000", owner.Phone)
}

func TestService_UpdateOwner_Validation(t *testing.T) {
	svc := newService(memstore.New(), ledger.Config{})

	tests := []struct {
		name   string
		update ledger.OwnerUpdate
		field  string
	}{
		{name: "negative limit", update: ledger.OwnerUpdate{CreditLimit: ledger.Set(dec("-1"))}, field: "credit_limit"},
		{name: "empty name", update: ledger.OwnerUpdate{Name: ledger.Set("")}, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateOwner(context.Background(), "o1", tt.update)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestService_RecomputeBalance_ReplayLaw(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "o1", "fleet", "100000", "0")

	svc := newService(store, ledger.Config{})
	ctx := context.Background()

	for i, tx := range []ledger.Transaction{
		sale("t1", "o1", "CREDIT", "1000", march),
		sale("t2", "o1", "FLEET_CARD", "500", march),
		sale("t3", "o1", "CASH", "80", march),
		sale("t4", "o1", "CREDIT", "250.50", march),
	} {
		_, err := svc.AccrueCredit(ctx, ledger.AccrueParams{Transaction: tx})
		require.NoError(t, err, "transaction %d", i)
	}

	inv, err := svc.GenerateMonthlyInvoice(ctx, "o1", time.March, 2026)
	require.NoError(t, err)

	_, err = svc.ApplyPayment(ctx, ledger.PaymentParams{InvoiceID: inv.Invoice.ID, Amount: dec("600")})
	require.NoError(t, err)

	rec, err := svc.RecomputeBalance(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, rec.Drift.IsZero(), "drift %s", rec.Drift)
	assert.True(t, rec.Recomputed.Equal(dec("1150.50")), "got %s", rec.Recomputed)

	store.DeleteTransaction("t4", march)

	rec, err = svc.RecomputeBalance(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, rec.Previous.Equal(dec("1150.50")))
	assert.True(t, rec.Recomputed.Equal(dec("900")))
	assert.True(t, rec.Drift.Equal(dec("250.50")))

	owner, err := svc.GetOwner(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, owner.CurrentCredit.Equal(dec("900")))
}

func TestService_ListEligibleOwners(t *testing.T) {
	store := memstore.New()
	seedOwner(store, "b", "", "1000", "0")
	seedOwner(store, "a", "fleet", "1000", "0")
	seedOwner(store, "cash-only", "", "1000", "0")
	seedOwner(store, "other-month", "", "1000", "0")

	deletedAt := march
	store.PutOwner(ledger.Owner{ID: "gone", CreditLimit: dec("1000"), DeletedAt: &deletedAt})

	store.PutTransaction(sale("1", "b", "CREDIT", "10", march))
	store.PutTransaction(sale("2", "a", "FLEET_CARD", "10", march))
	store.PutTransaction(sale("3", "cash-only", "CASH", "10", march))
	store.PutTransaction(sale("4", "cash-only", "FLEET_CARD", "10", march))
	store.PutTransaction(sale("5", "other-month", "CREDIT", "10", march.AddDate(0, 1, 0)))
	store.PutTransaction(sale("6", "gone", "CREDIT", "10", march))

	got, err := newService(store, ledger.Config{}).ListEligibleOwners(context.Background(), time.March, 2026)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestOptional(t *testing.T) {
	var unset ledger.Optional[string]

	_, ok := unset.Get()
	assert.False(t, ok)
	assert.False(t, ledger.Unset[int]().IsSet())

	v, ok := ledger.Set("").Get()
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestTransaction_Consistent(t *testing.T) {
	tx := ledger.Transaction{Liters: dec("40.25"), PricePerLiter: dec("1.799"), Amount: dec("72.41")}
	assert.True(t, tx.Consistent())

	tx.Amount = dec("72.43")
	assert.False(t, tx.Consistent())
}
