package readings

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

var tracer = otel.Tracer("github.com/MrJamesThe3rd/fuelbook/internal/readings")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=readings
type Repository interface {
	// ReplaceShift swaps every reading, delivery and cash count stored for
	// the shift with the sheet's, atomically. It returns NotFoundError for an
	// unknown shift.
	ReplaceShift(ctx context.Context, shiftID string, sheet *Sheet) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type ImportResult struct {
	ShiftID     string `json:"shift_id"`
	Readings    int    `json:"readings"`
	Deliveries  int    `json:"deliveries"`
	CashCounted bool   `json:"cash_counted"`
	Charset     string `json:"charset"`
}

// ImportShift parses a shift sheet and stores it in place of whatever the
// shift held before. Importing the same sheet twice leaves the same data.
func (s *Service) ImportShift(ctx context.Context, shiftID string, r io.Reader) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "readings.ImportShift")
	defer span.End()

	span.SetAttributes(attribute.String("shift_id", shiftID))

	if shiftID == "" {
		return nil, &apperr.ValidationError{Field: "shift_id", Message: "is required"}
	}

	sheet, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse shift sheet: %w", err)
	}

	if err := s.repo.ReplaceShift(ctx, shiftID, sheet); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store shift %s readings: %w", shiftID, err)
	}

	res := &ImportResult{
		ShiftID:     shiftID,
		Readings:    len(sheet.Readings),
		Deliveries:  len(sheet.Deliveries),
		CashCounted: sheet.CashCount != nil,
		Charset:     sheet.Charset,
	}

	s.logger.Info("shift sheet imported",
		zap.String("shift_id", shiftID),
		zap.Int("readings", res.Readings),
		zap.Int("deliveries", res.Deliveries),
		zap.Bool("cash_counted", res.CashCounted),
		zap.String("charset", res.Charset),
	)

	return res, nil
}
