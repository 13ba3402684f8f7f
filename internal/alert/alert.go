// Package alert delivers operational notifications such as low stock and
// critical shift anomalies.
package alert

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type Kind string

const (
	KindLowStock Kind = "low_stock"
	KindAnomaly  Kind = "anomaly"
)

type Event struct {
	Kind       Kind
	StationID  string
	Subject    string
	Severity   string
	Message    string
	OccurredAt time.Time
	Fields     map[string]string
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// LogNotifier writes events to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("kind", string(event.Kind)),
		zap.String("station_id", event.StationID),
		zap.String("subject", event.Subject),
		zap.String("severity", event.Severity),
		zap.Time("occurred_at", event.OccurredAt),
	}

	for k, v := range event.Fields {
		fields = append(fields, zap.String(k, v))
	}

	n.logger.Warn(event.Message, fields...)

	return nil
}

// Multi fans an event out to every notifier and joins their errors.
type Multi struct {
	notifiers []Notifier
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Notify(ctx context.Context, event Event) error {
	var errs []error

	for _, n := range m.notifiers {
		if n == nil {
			continue
		}

		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
