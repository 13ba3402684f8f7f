// Package billing runs monthly invoice generation across every eligible owner.
package billing

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

var tracer = otel.Tracer("github.com/MrJamesThe3rd/fuelbook/internal/billing")

//go:generate mockgen -source=billing.go -destination=generator_mock.go -package=billing
type InvoiceGenerator interface {
	ListEligibleOwners(ctx context.Context, month time.Month, year int) ([]string, error)
	GenerateMonthlyInvoice(ctx context.Context, ownerID string, month time.Month, year int) (*ledger.InvoiceResult, error)
}

type Failure struct {
	OwnerID string `json:"owner_id"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

type BatchResult struct {
	Succeeded int       `json:"succeeded"`
	Skipped   int       `json:"skipped"`
	Failures  []Failure `json:"failures"`
}

type Orchestrator struct {
	generator   InvoiceGenerator
	concurrency int
	metrics     *observability.Metrics
	logger      *zap.Logger
}

func NewOrchestrator(generator InvoiceGenerator, concurrency int, metrics *observability.Metrics, logger *zap.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Orchestrator{
		generator:   generator,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger,
	}
}

// GenerateAllMonthlyInvoices invoices every eligible owner for the month. One
// owner's failure is recorded and never stops the others; only failing to
// list the owners fails the batch.
func (o *Orchestrator) GenerateAllMonthlyInvoices(ctx context.Context, month time.Month, year int) (*BatchResult, error) {
	ctx, span := tracer.Start(ctx, "billing.GenerateAllMonthlyInvoices")
	defer span.End()

	span.SetAttributes(attribute.Int("year", year), attribute.Int("month", int(month)))

	if _, _, err := ledger.BillingWindow(month, year); err != nil {
		return nil, err
	}

	start := time.Now()

	owners, err := o.generator.ListEligibleOwners(ctx, month, year)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list eligible owners: %w", err)
	}

	var (
		mu  sync.Mutex
		res = &BatchResult{Failures: []Failure{}}
	)

	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for _, ownerID := range owners {
		g.Go(func() error {
			out, err := o.generator.GenerateMonthlyInvoice(ctx, ownerID, month, year)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				o.logger.Error("invoice generation failed",
					zap.String("owner_id", ownerID),
					zap.Int("year", year),
					zap.Int("month", int(month)),
					zap.Error(err),
				)
				res.Failures = append(res.Failures, Failure{OwnerID: ownerID, Reason: err.Error(), Err: err})
			case out.Skipped:
				res.Skipped++
			default:
				res.Succeeded++
			}

			return nil
		})
	}

	_ = g.Wait()

	slices.SortFunc(res.Failures, func(a, b Failure) int { return cmp.Compare(a.OwnerID, b.OwnerID) })

	elapsed := time.Since(start)
	o.metrics.ObserveBatch(elapsed, res.Succeeded, res.Skipped, len(res.Failures))

	o.logger.Info("monthly billing finished",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("owners", len(owners)),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", len(res.Failures)),
		zap.Duration("elapsed", elapsed),
	)

	return res, nil
}
