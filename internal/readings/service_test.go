package readings_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	anomalymem "github.com/MrJamesThe3rd/fuelbook/internal/anomaly/memstore"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
	"github.com/MrJamesThe3rd/fuelbook/internal/paytype"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings/memstore"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

func TestService_ImportShift(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := readings.NewMockRepository(ctrl)

	repo.EXPECT().
		ReplaceShift(gomock.Any(), "shift-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, sheet *readings.Sheet) error {
			assertSheet(t, sheet)
			return nil
		})

	svc := readings.NewService(repo, zap.NewNop())

	res, err := svc.ImportShift(context.Background(), "shift-1", strings.NewReader(enSheet))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Readings)
	assert.Equal(t, 1, res.Deliveries)
	assert.True(t, res.CashCounted)
}

func TestService_ImportShift_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := readings.NewMockRepository(ctrl)
	svc := readings.NewService(repo, zap.NewNop())
	ctx := context.Background()

	t.Run("missing shift id", func(t *testing.T) {
		_, err := svc.ImportShift(ctx, "", strings.NewReader(enSheet))

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "shift_id", verr.Field)
	})

	t.Run("malformed sheet stores nothing", func(t *testing.T) {
		_, err := svc.ImportShift(ctx, "shift-1", strings.NewReader("type,subject,phase,value\nmeter,n1,start,x\n"))

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := &apperr.PersistenceError{Op: "inserting reading", Err: errors.New("connection reset")}
		repo.EXPECT().ReplaceShift(gomock.Any(), "shift-1", gomock.Any()).Return(boom)

		_, err := svc.ImportShift(ctx, "shift-1", strings.NewReader(enSheet))

		var perr *apperr.PersistenceError
		require.ErrorAs(t, err, &perr)
	})
}

// An imported sheet is what the next shift check reconciles against, and a
// corrected re-import replaces it.
func TestService_ImportShift_FeedsShiftCheck(t *testing.T) {
	ctx := context.Background()

	shifts := anomalymem.New()
	shifts.PutSnapshot(&anomaly.ShiftSnapshot{
		ShiftID:     "shift-1",
		StationID:   "s1",
		ShiftDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		NozzleTanks: map[string]string{"n1": "t1"},
		Sales: []anomaly.Sale{
			{TransactionID: "tx1", NozzleID: "n1", Liters: dec("60"), Amount: dec("480"), PaymentType: "CASH"},
			{TransactionID: "tx2", NozzleID: "n1", Liters: dec("40"), Amount: dec("320"), PaymentType: "CASH"},
		},
	})

	importer := readings.NewService(memstore.New(shifts), zap.NewNop())

	checker := anomaly.NewService(
		shifts,
		threshold.NewSource(threshold.Config{Defaults: threshold.Set{
			Money:  threshold.Policy{Yellow: dec("200"), Red: dec("500")},
			Volume: threshold.Policy{Yellow: dec("20"), Red: dec("50")},
		}}),
		paytype.NewClassifier(paytype.Rules{Cash: []string{"CASH"}}),
		alert.Nop{},
		observability.NewMetrics(),
		zap.NewNop(),
	)

	short := strings.Replace(enSheet, "cash,,,800", "cash,,,500", 1)

	_, err := importer.ImportShift(ctx, "shift-1", strings.NewReader(short))
	require.NoError(t, err)

	found, err := checker.CheckShiftAnomalies(ctx, "shift-1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, anomaly.MetricCashVariance, found[0].Metric)
	assert.Equal(t, threshold.SeverityWarning, found[0].Severity)

	_, err = importer.ImportShift(ctx, "shift-1", strings.NewReader(enSheet))
	require.NoError(t, err)

	found, err = checker.CheckShiftAnomalies(ctx, "shift-1")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Empty(t, shifts.All())
}

func TestService_ImportShift_UnknownShift(t *testing.T) {
	importer := readings.NewService(memstore.New(anomalymem.New()), zap.NewNop())

	_, err := importer.ImportShift(context.Background(), "nope", strings.NewReader(enSheet))

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "shift", nf.Resource)
}
