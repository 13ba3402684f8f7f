package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

var tracer = otel.Tracer("github.com/MrJamesThe3rd/fuelbook/internal/inventory")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	// BeginAdjust locks the (station, product) row until the returned
	// transaction is committed or rolled back. It fails with
	// apperr.NotFoundError when the item was never provisioned.
	BeginAdjust(ctx context.Context, stationID, productID string) (AdjustTx, error)

	ListItems(ctx context.Context, stationID string) ([]*Item, error)
	ListLowStock(ctx context.Context, stationID *string) ([]*Item, error)
}

type AdjustTx interface {
	Item() *Item
	SetQuantity(ctx context.Context, quantity decimal.Decimal) error
	RecordMovement(ctx context.Context, m *Movement) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo     Repository
	policy   Policy
	notifier alert.Notifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewService(repo Repository, policy Policy, notifier alert.Notifier, metrics *observability.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

type AdjustParams struct {
	StationID string
	ProductID string
	Delta     decimal.Decimal
	Reason    Reason
	Reference string
}

type AdjustResult struct {
	Item       Item
	Movement   *Movement
	CrossedLow bool
}

func (p AdjustParams) validate() error {
	switch {
	case p.StationID == "":
		return &apperr.ValidationError{Field: "station_id", Message: "is required"}
	case p.ProductID == "":
		return &apperr.ValidationError{Field: "product_id", Message: "is required"}
	case p.Delta.IsZero():
		return &apperr.ValidationError{Field: "delta", Message: "must not be zero"}
	case !p.Reason.Valid():
		return &apperr.ValidationError{Field: "reason", Message: fmt.Sprintf("unknown reason %q", p.Reason)}
	}

	return nil
}

// Adjust applies a signed delta to a product's stock as one atomic
// read-modify-write. Adjustments for the same station and product are
// serialized; the quantity is left untouched when any step fails.
func (s *Service) Adjust(ctx context.Context, params AdjustParams) (*AdjustResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.Adjust")
	defer span.End()

	span.SetAttributes(
		attribute.String("station_id", params.StationID),
		attribute.String("product_id", params.ProductID),
		attribute.String("reason", string(params.Reason)),
	)

	if err := params.validate(); err != nil {
		s.metrics.IncrAdjustment(string(params.Reason), "invalid")
		return nil, err
	}

	res, err := s.adjust(ctx, params)
	if err != nil {
		span.RecordError(err)
		s.metrics.IncrAdjustment(string(params.Reason), "rejected")

		return nil, err
	}

	s.metrics.IncrAdjustment(string(params.Reason), "applied")

	if res.CrossedLow {
		s.notifyLowStock(ctx, &res.Item)
	}

	return res, nil
}

func (s *Service) adjust(ctx context.Context, params AdjustParams) (*AdjustResult, error) {
	atx, err := s.repo.BeginAdjust(ctx, params.StationID, params.ProductID)
	if err != nil {
		return nil, fmt.Errorf("begin adjust: %w", err)
	}
	defer atx.Rollback()

	item := *atx.Item()
	before := item.Quantity
	after := before.Add(params.Delta)

	if after.IsNegative() && !s.policy.allowsNegative(params.Reason) {
		return nil, &apperr.InsufficientStockError{
			StationID: params.StationID,
			ProductID: params.ProductID,
			Available: before,
			Requested: params.Delta.Neg(),
		}
	}

	if err := atx.SetQuantity(ctx, after); err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}

	mv := &Movement{
		ID:             uuid.New(),
		StationID:      params.StationID,
		ProductID:      params.ProductID,
		Delta:          params.Delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         params.Reason,
		Reference:      params.Reference,
		CreatedAt:      time.Now().UTC(),
	}
	if err := atx.RecordMovement(ctx, mv); err != nil {
		return nil, fmt.Errorf("record movement: %w", err)
	}

	if err := atx.Commit(); err != nil {
		return nil, fmt.Errorf("commit adjust: %w", err)
	}

	item.Quantity = after
	item.UpdatedAt = mv.CreatedAt

	wasLow := before.LessThan(item.LowStockThreshold)

	return &AdjustResult{
		Item:       item,
		Movement:   mv,
		CrossedLow: !wasLow && item.IsLow(),
	}, nil
}

func (s *Service) notifyLowStock(ctx context.Context, item *Item) {
	err := s.notifier.Notify(ctx, alert.Event{
		Kind:       alert.KindLowStock,
		StationID:  item.StationID,
		Subject:    item.ProductID,
		Severity:   "warning",
		Message:    "stock fell below threshold",
		OccurredAt: item.UpdatedAt,
		Fields: map[string]string{
			"quantity":  item.Quantity.String(),
			"threshold": item.LowStockThreshold.String(),
		},
	})
	if err != nil {
		s.logger.Error("low stock notification failed",
			zap.String("station_id", item.StationID),
			zap.String("product_id", item.ProductID),
			zap.Error(err),
		)
	}
}

type SaleParams struct {
	TransactionID string
	StationID     string
	ProductID     string
	Liters        decimal.Decimal
}

// DeductForSale removes sold liters from stock when a sale is ingested.
func (s *Service) DeductForSale(ctx context.Context, params SaleParams) (*AdjustResult, error) {
	if !params.Liters.IsPositive() {
		return nil, &apperr.ValidationError{Field: "liters", Message: "must be greater than zero"}
	}

	return s.Adjust(ctx, AdjustParams{
		StationID: params.StationID,
		ProductID: params.ProductID,
		Delta:     params.Liters.Neg(),
		Reason:    ReasonSale,
		Reference: params.TransactionID,
	})
}

type SummaryLine struct {
	ProductID         string
	Quantity          decimal.Decimal
	LowStockThreshold decimal.Decimal
	IsLow             bool
}

func (s *Service) Summary(ctx context.Context, stationID string) ([]SummaryLine, error) {
	if stationID == "" {
		return nil, &apperr.ValidationError{Field: "station_id", Message: "is required"}
	}

	items, err := s.repo.ListItems(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	lines := make([]SummaryLine, len(items))
	for i, it := range items {
		lines[i] = SummaryLine{
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			LowStockThreshold: it.LowStockThreshold,
			IsLow:             it.IsLow(),
		}
	}

	return lines, nil
}

// CheckLowStock lists items below their threshold, across all stations when
// stationID is nil.
func (s *Service) CheckLowStock(ctx context.Context, stationID *string) ([]*Item, error) {
	items, err := s.repo.ListLowStock(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	return items, nil
}
