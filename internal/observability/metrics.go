package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private Prometheus registry so constructing it more than
// once (as tests do) never panics on duplicate registration.
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	adjustments     *prometheus.CounterVec
	accruals        *prometheus.CounterVec
	anomalies       *prometheus.CounterVec
	invoices        *prometheus.CounterVec
	payments        *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	batchDuration   prometheus.Histogram
	batchOwners     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fuelbook_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		adjustments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_inventory_adjustments_total",
				Help: "Inventory adjustments by reason and result.",
			},
			[]string{"reason", "result"},
		),
		accruals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_credit_accruals_total",
				Help: "Credit accrual attempts by result.",
			},
			[]string{"result"},
		),
		anomalies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_anomalies_detected_total",
				Help: "Anomalies opened or changed in severity, by metric and severity.",
			},
			[]string{"metric", "severity"},
		),
		invoices: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_invoices_generated_total",
				Help: "Monthly invoice generation outcomes.",
			},
			[]string{"result"},
		),
		payments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_payments_applied_total",
				Help: "Payments applied by resulting invoice status.",
			},
			[]string{"status"},
		),
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_notifications_total",
				Help: "Outbound alert notifications by channel and result.",
			},
			[]string{"channel", "result"},
		),
		batchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fuelbook_billing_batch_duration_seconds",
				Help:    "Duration of monthly billing batches.",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
			},
		),
		batchOwners: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelbook_billing_batch_owners_total",
				Help: "Owners processed by monthly billing batches, by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) IncrAdjustment(reason, result string) {
	m.adjustments.WithLabelValues(reason, result).Inc()
}

func (m *Metrics) IncrAccrual(result string) {
	m.accruals.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrAnomaly(metric, severity string) {
	m.anomalies.WithLabelValues(metric, severity).Inc()
}

func (m *Metrics) IncrInvoice(result string) {
	m.invoices.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrPayment(status string) {
	m.payments.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrNotification(channel, result string) {
	m.notifications.WithLabelValues(channel, result).Inc()
}

// ObserveBatch records one billing run and its per-owner outcome counts.
func (m *Metrics) ObserveBatch(d time.Duration, succeeded, skipped, failed int) {
	m.batchDuration.Observe(d.Seconds())
	m.batchOwners.WithLabelValues("succeeded").Add(float64(succeeded))
	m.batchOwners.WithLabelValues("skipped").Add(float64(skipped))
	m.batchOwners.WithLabelValues("failed").Add(float64(failed))
}
