package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory/memstore"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []alert.Event
}

func (r *recordingNotifier) Notify(_ context.Context, e alert.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)

	return nil
}

func newMemService(t *testing.T, item inventory.Item, policy inventory.Policy) (*inventory.Service, *memstore.Store, *recordingNotifier) {
	t.Helper()

	store := memstore.New()
	store.Provision(item)

	n := &recordingNotifier{}

	return inventory.NewService(store, policy, n, observability.NewMetrics(), zap.NewNop()), store, n
}

func TestService_Adjust_Sequence(t *testing.T) {
	svc, store, _ := newMemService(t, inventory.Item{
		StationID:         "s1",
		ProductID:         "diesel",
		Quantity:          dec("80"),
		LowStockThreshold: dec("10"),
	}, inventory.Policy{})

	ctx := context.Background()
	adjust := func(delta string) (*inventory.AdjustResult, error) {
		return svc.Adjust(ctx, inventory.AdjustParams{
			StationID: "s1",
			ProductID: "diesel",
			Delta:     dec(delta),
			Reason:    inventory.ReasonSale,
		})
	}

	res, err := adjust("50")
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.Equal(dec("130")))

	res, err = adjust("-20")
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.Equal(dec("110")))

	_, err = adjust("-140")

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(dec("110")))
	assert.True(t, stockErr.Requested.Equal(dec("140")))

	items, err := svc.Summary(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(dec("110")))
	assert.Len(t, store.Movements(), 2)
}

func TestService_Adjust_FromHundred(t *testing.T) {
	svc, _, _ := newMemService(t, inventory.Item{
		StationID: "s1",
		ProductID: "diesel",
		Quantity:  dec("100"),
	}, inventory.Policy{})

	want := []string{"150", "130", "90"}

	for i, delta := range []string{"50", "-20", "-40"} {
		res, err := svc.Adjust(context.Background(), inventory.AdjustParams{
			StationID: "s1",
			ProductID: "diesel",
			Delta:     dec(delta),
			Reason:    inventory.ReasonSale,
		})
		require.NoError(t, err)
		assert.True(t, res.Item.Quantity.Equal(dec(want[i])), "step %d: got %s", i, res.Item.Quantity)
	}
}

func TestService_Adjust_NegativePolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  inventory.Policy
		reason  inventory.Reason
		wantErr bool
	}{
		{name: "SaleRejected", policy: inventory.Policy{AllowNegativeCorrections: true}, reason: inventory.ReasonSale, wantErr: true},
		{name: "CorrectionAllowed", policy: inventory.Policy{AllowNegativeCorrections: true}, reason: inventory.ReasonCorrection},
		{name: "CorrectionRejected", policy: inventory.Policy{}, reason: inventory.ReasonCorrection, wantErr: true},
		{name: "SaleAllowed", policy: inventory.Policy{AllowNegativeSales: true}, reason: inventory.ReasonSale},
		{name: "DeliveryAlwaysRejected", policy: inventory.Policy{AllowNegativeSales: true, AllowNegativeCorrections: true}, reason: inventory.ReasonDelivery, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newMemService(t, inventory.Item{
				StationID: "s1",
				ProductID: "lpg",
				Quantity:  dec("5"),
			}, tt.policy)

			res, err := svc.Adjust(context.Background(), inventory.AdjustParams{
				StationID: "s1",
				ProductID: "lpg",
				Delta:     dec("-8"),
				Reason:    tt.reason,
			})

			if tt.wantErr {
				var stockErr *apperr.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, res.Item.Quantity.Equal(dec("-3")))
		})
	}
}

func TestService_Adjust_Validation(t *testing.T) {
	tests := []struct {
		name      string
		params    inventory.AdjustParams
		wantField string
	}{
		{
			name:      "ZeroDelta",
			params:    inventory.AdjustParams{StationID: "s1", ProductID: "p", Delta: decimal.Zero, Reason: inventory.ReasonSale},
			wantField: "delta",
		},
		{
			name:      "MissingStation",
			params:    inventory.AdjustParams{ProductID: "p", Delta: dec("1"), Reason: inventory.ReasonSale},
			wantField: "station_id",
		},
		{
			name:      "MissingProduct",
			params:    inventory.AdjustParams{StationID: "s1", Delta: dec("1"), Reason: inventory.ReasonSale},
			wantField: "product_id",
		},
		{
			name:      "UnknownReason",
			params:    inventory.AdjustParams{StationID: "s1", ProductID: "p", Delta: dec("1"), Reason: "theft"},
			wantField: "reason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := inventory.NewMockRepository(ctrl)

			svc := inventory.NewService(repo, inventory.Policy{}, alert.Nop{}, observability.NewMetrics(), zap.NewNop())
			_, err := svc.Adjust(context.Background(), tt.params)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestService_Adjust_NotFound(t *testing.T) {
	svc, _, _ := newMemService(t, inventory.Item{StationID: "s1", ProductID: "diesel"}, inventory.Policy{})

	_, err := svc.Adjust(context.Background(), inventory.AdjustParams{
		StationID: "s1",
		ProductID: "gasoline",
		Delta:     dec("1"),
		Reason:    inventory.ReasonDelivery,
	})

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestService_Adjust_StoreFailureLeavesQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := inventory.NewMockRepository(ctrl)
	atx := inventory.NewMockAdjustTx(ctrl)

	repo.EXPECT().BeginAdjust(gomock.Any(), "s1", "diesel").Return(atx, nil)
	atx.EXPECT().Item().Return(&inventory.Item{StationID: "s1", ProductID: "diesel", Quantity: dec("40")})
	atx.EXPECT().SetQuantity(gomock.Any(), gomock.Any()).Return(nil)
	atx.EXPECT().RecordMovement(gomock.Any(), gomock.Any()).Return(&apperr.PersistenceError{Op: "insert", Err: errors.New("disk full")})
	atx.EXPECT().Commit().Times(0)
	atx.EXPECT().Rollback().Return(nil)

	svc := inventory.NewService(repo, inventory.Policy{}, alert.Nop{}, observability.NewMetrics(), zap.NewNop())

	_, err := svc.Adjust(context.Background(), inventory.AdjustParams{
		StationID: "s1",
		ProductID: "diesel",
		Delta:     dec("-10"),
		Reason:    inventory.ReasonSale,
	})

	var perr *apperr.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestService_Adjust_LowStockCrossingNotifies(t *testing.T) {
	svc, _, n := newMemService(t, inventory.Item{
		StationID:         "s1",
		ProductID:         "diesel",
		Quantity:          dec("120"),
		LowStockThreshold: dec("100"),
	}, inventory.Policy{})

	ctx := context.Background()

	res, err := svc.DeductForSale(ctx, inventory.SaleParams{TransactionID: "t1", StationID: "s1", ProductID: "diesel", Liters: dec("30")})
	require.NoError(t, err)
	assert.True(t, res.CrossedLow)
	assert.Equal(t, "t1", res.Movement.Reference)

	res, err = svc.DeductForSale(ctx, inventory.SaleParams{TransactionID: "t2", StationID: "s1", ProductID: "diesel", Liters: dec("5")})
	require.NoError(t, err)
	assert.False(t, res.CrossedLow)

	require.Len(t, n.events, 1)
	assert.Equal(t, alert.KindLowStock, n.events[0].Kind)
	assert.Equal(t, "90", n.events[0].Fields["quantity"])
}

func TestService_DeductForSale_RequiresPositiveLiters(t *testing.T) {
	svc, _, _ := newMemService(t, inventory.Item{StationID: "s1", ProductID: "diesel"}, inventory.Policy{})

	_, err := svc.DeductForSale(context.Background(), inventory.SaleParams{StationID: "s1", ProductID: "diesel", Liters: dec("0")})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestService_Adjust_ConcurrentNoLostUpdates(t *testing.T) {
	svc, store, _ := newMemService(t, inventory.Item{
		StationID: "s1",
		ProductID: "diesel",
		Quantity:  dec("1000"),
	}, inventory.Policy{})
	store.Provision(inventory.Item{StationID: "s2", ProductID: "diesel", Quantity: dec("0")})

	var wg sync.WaitGroup

	for i := range 200 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			params := inventory.AdjustParams{StationID: "s1", ProductID: "diesel", Delta: dec("-2.5"), Reason: inventory.ReasonSale}
			if i%2 == 1 {
				params = inventory.AdjustParams{StationID: "s2", ProductID: "diesel", Delta: dec("1.25"), Reason: inventory.ReasonDelivery}
			}

			_, err := svc.Adjust(context.Background(), params)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	s1, err := svc.Summary(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, s1[0].Quantity.Equal(dec("750")), "got %s", s1[0].Quantity)

	s2, err := svc.Summary(context.Background(), "s2")
	require.NoError(t, err)
	assert.True(t, s2[0].Quantity.Equal(dec("125")), "got %s", s2[0].Quantity)
}

func TestService_CheckLowStock(t *testing.T) {
	store := memstore.New()
	store.Provision(inventory.Item{StationID: "s1", ProductID: "diesel", Quantity: dec("5"), LowStockThreshold: dec("10")})
	store.Provision(inventory.Item{StationID: "s1", ProductID: "lpg", Quantity: dec("50"), LowStockThreshold: dec("10")})
	store.Provision(inventory.Item{StationID: "s2", ProductID: "diesel", Quantity: dec("1"), LowStockThreshold: dec("10")})

	svc := inventory.NewService(store, inventory.Policy{}, alert.Nop{}, observability.NewMetrics(), zap.NewNop())

	all, err := svc.CheckLowStock(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	station := "s1"
	one, err := svc.CheckLowStock(context.Background(), &station)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "diesel", one[0].ProductID)

	summary, err := svc.Summary(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.True(t, summary[0].IsLow)
	assert.False(t, summary[1].IsLow)
}

func TestService_Summary_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().ListItems(gomock.Any(), "s1").Return(nil, &apperr.PersistenceError{Op: "list", Err: errors.New("down")})

	svc := inventory.NewService(repo, inventory.Policy{}, alert.Nop{}, observability.NewMetrics(), zap.NewNop())

	_, err := svc.Summary(context.Background(), "s1")

	var perr *apperr.PersistenceError
	require.ErrorAs(t, err, &perr)
}
