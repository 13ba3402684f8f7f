package anomaly

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/alert"
	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

var tracer = otel.Tracer("github.com/MrJamesThe3rd/fuelbook/internal/anomaly")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=anomaly
type Repository interface {
	// BeginShiftCheck serializes checks of the same shift until the returned
	// transaction ends.
	BeginShiftCheck(ctx context.Context, shiftID string) (CheckTx, error)

	GetAnomaly(ctx context.Context, id uuid.UUID) (*Anomaly, error)
	ListPending(ctx context.Context) ([]*Anomaly, error)
	ListByShift(ctx context.Context, shiftID string) ([]*Anomaly, error)

	// MarkReviewed moves a pending anomaly to reviewed and returns it. An
	// anomaly that is already reviewed is returned unchanged.
	MarkReviewed(ctx context.Context, id uuid.UUID, reviewerID string, at time.Time) (*Anomaly, error)
}

type CheckTx interface {
	Snapshot(ctx context.Context) (*ShiftSnapshot, error)
	Existing(ctx context.Context) ([]*Anomaly, error)
	Save(ctx context.Context, a *Anomaly) error
	Delete(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type ThresholdSource interface {
	ForStation(stationID string) threshold.Set
}

type CashClassifier interface {
	IsCash(paymentType string) bool
}

type Service struct {
	repo       Repository
	thresholds ThresholdSource
	payTypes   CashClassifier
	notifier   alert.Notifier
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	repo Repository,
	thresholds ThresholdSource,
	payTypes CashClassifier,
	notifier alert.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		thresholds: thresholds,
		payTypes:   payTypes,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CheckShiftAnomalies reconciles a shift's meters, tank gauges and cash
// against its transactions. Non-ok results open or refresh a pending anomaly;
// ok results clear the pending anomaly for the same metric. Running it again
// on unchanged data leaves the stored set unchanged. A read failure aborts
// the check without writing anything.
func (s *Service) CheckShiftAnomalies(ctx context.Context, shiftID string) ([]*Anomaly, error) {
	ctx, span := tracer.Start(ctx, "anomaly.CheckShiftAnomalies")
	defer span.End()

	span.SetAttributes(attribute.String("shift_id", shiftID))

	if shiftID == "" {
		return nil, &apperr.ValidationError{Field: "shift_id", Message: "is required"}
	}

	chk, err := s.repo.BeginShiftCheck(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("begin shift check: %w", err)
	}
	defer chk.Rollback()

	snap, err := chk.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load shift %s: %w", shiftID, err)
	}

	existing, err := chk.Existing(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load existing anomalies: %w", err)
	}

	findings, skips := reconcile(snap, s.thresholds.ForStation(snap.StationID), s.payTypes.IsCash)

	for _, sk := range skips {
		s.logger.Warn("shift metric not evaluated",
			zap.String("shift_id", shiftID),
			zap.String("metric", string(sk.key.Metric)),
			zap.String("subject", sk.key.Subject),
			zap.String("reason", sk.reason),
		)
	}

	pending := make(map[Key]*Anomaly)
	reviewed := make(map[Key][]*Anomaly)

	for _, a := range existing {
		switch a.State {
		case StatePending:
			pending[a.Key()] = a
		case StateReviewed:
			reviewed[a.Key()] = append(reviewed[a.Key()], a)
		}
	}

	now := s.now()

	var (
		found    []*Anomaly
		escalate []*Anomaly
	)

	for _, f := range findings {
		current := pending[f.key]

		if f.severity == threshold.SeverityOK {
			if current != nil {
				if err := chk.Delete(ctx, current.ID); err != nil {
					return nil, fmt.Errorf("clear anomaly %s: %w", current.ID, err)
				}
			}

			continue
		}

		if current != nil {
			if matches(current, f) {
				found = append(found, current)
				continue
			}

			wasCritical := current.Severity == threshold.SeverityCritical
			if current.Severity != f.severity {
				s.metrics.IncrAnomaly(string(f.key.Metric), string(f.severity))
			}

			apply(current, f, now)

			if err := chk.Save(ctx, current); err != nil {
				return nil, fmt.Errorf("update anomaly %s: %w", current.ID, err)
			}

			if !wasCritical && current.Severity == threshold.SeverityCritical {
				escalate = append(escalate, current)
			}

			found = append(found, current)

			continue
		}

		if idx := slices.IndexFunc(reviewed[f.key], func(a *Anomaly) bool { return matches(a, f) }); idx >= 0 {
			found = append(found, reviewed[f.key][idx])
			continue
		}

		a := &Anomaly{
			ID:        uuid.New(),
			StationID: snap.StationID,
			ShiftID:   snap.ShiftID,
			ShiftDate: snap.ShiftDate,
			State:     StatePending,
			CreatedAt: now,
		}
		apply(a, f, now)

		if err := chk.Save(ctx, a); err != nil {
			return nil, fmt.Errorf("create anomaly: %w", err)
		}

		s.metrics.IncrAnomaly(string(f.key.Metric), string(f.severity))

		if a.Severity == threshold.SeverityCritical {
			escalate = append(escalate, a)
		}

		found = append(found, a)
	}

	if err := chk.Commit(); err != nil {
		return nil, fmt.Errorf("commit shift check: %w", err)
	}

	for _, a := range escalate {
		s.notifyCritical(ctx, a)
	}

	slices.SortStableFunc(found, compareUrgency)

	s.logger.Info("shift checked",
		zap.String("shift_id", shiftID),
		zap.String("station_id", snap.StationID),
		zap.Int("anomalies", len(found)),
	)

	return found, nil
}

func matches(a *Anomaly, f finding) bool {
	return a.Expected.Equal(f.expected) && a.Actual.Equal(f.actual) && a.Severity == f.severity
}

func apply(a *Anomaly, f finding, now time.Time) {
	a.Metric = f.key.Metric
	a.Subject = f.key.Subject
	a.Expected = f.expected
	a.Actual = f.actual
	a.Delta = f.delta
	a.Severity = f.severity
	a.UpdatedAt = now
}

func (s *Service) notifyCritical(ctx context.Context, a *Anomaly) {
	err := s.notifier.Notify(ctx, alert.Event{
		Kind:       alert.KindAnomaly,
		StationID:  a.StationID,
		Subject:    a.Subject,
		Severity:   string(a.Severity),
		Message:    fmt.Sprintf("critical %s on shift %s", a.Metric, a.ShiftID),
		OccurredAt: a.UpdatedAt,
		Fields: map[string]string{
			"anomaly_id": a.ID.String(),
			"expected":   a.Expected.String(),
			"actual":     a.Actual.String(),
			"delta":      a.Delta.String(),
		},
	})
	if err != nil {
		s.logger.Error("anomaly notification failed", zap.String("anomaly_id", a.ID.String()), zap.Error(err))
	}
}

// GetPendingAnomalies returns every pending anomaly, most urgent first.
func (s *Service) GetPendingAnomalies(ctx context.Context) ([]*Anomaly, error) {
	out, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending anomalies: %w", err)
	}

	slices.SortStableFunc(out, compareUrgency)

	return out, nil
}

func (s *Service) ListShiftAnomalies(ctx context.Context, shiftID string) ([]*Anomaly, error) {
	if shiftID == "" {
		return nil, &apperr.ValidationError{Field: "shift_id", Message: "is required"}
	}

	out, err := s.repo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list shift anomalies: %w", err)
	}

	slices.SortStableFunc(out, compareUrgency)

	return out, nil
}

// MarkAnomalyReviewed records the reviewer of a pending anomaly. Reviewing an
// already reviewed anomaly keeps the first reviewer and timestamp.
func (s *Service) MarkAnomalyReviewed(ctx context.Context, id uuid.UUID, reviewerID string) (*Anomaly, error) {
	ctx, span := tracer.Start(ctx, "anomaly.MarkAnomalyReviewed")
	defer span.End()

	if reviewerID == "" {
		return nil, &apperr.ValidationError{Field: "reviewer_id", Message: "is required"}
	}

	a, err := s.repo.MarkReviewed(ctx, id, reviewerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark anomaly reviewed: %w", err)
	}

	if a.ReviewedBy != reviewerID {
		s.logger.Info("anomaly already reviewed",
			zap.String("anomaly_id", id.String()),
			zap.String("reviewed_by", a.ReviewedBy),
			zap.String("requested_by", reviewerID),
		)
	}

	return a, nil
}

func (s *Service) GetAnomaly(ctx context.Context, id uuid.UUID) (*Anomaly, error) {
	a, err := s.repo.GetAnomaly(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get anomaly: %w", err)
	}

	return a, nil
}
