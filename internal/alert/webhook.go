package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

type webhookPayload struct {
	Kind       Kind              `json:"kind"`
	StationID  string            `json:"station_id"`
	Subject    string            `json:"subject,omitempty"`
	Severity   string            `json:"severity,omitempty"`
	Message    string            `json:"message"`
	OccurredAt time.Time         `json:"occurred_at"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// WebhookNotifier posts events as JSON. Calls go through a circuit breaker
// so a dead endpoint fails fast instead of stalling the caller.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

func NewWebhookNotifier(url string, timeout time.Duration, metrics *observability.Metrics) *WebhookNotifier {
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: newCircuitBreaker("alert-webhook"),
		metrics: metrics,
	}
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(webhookPayload(event))
	if err != nil {
		return fmt.Errorf("encoding alert: %w", err)
	}

	_, err = n.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return nil, nil
	})

	result := "ok"
	if err != nil {
		result = "error"
	}

	if n.metrics != nil {
		n.metrics.IncrNotification("webhook", result)
	}

	if err != nil {
		return fmt.Errorf("posting alert webhook: %w", err)
	}

	return nil
}
