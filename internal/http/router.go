package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/http/anomaly"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/billing"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/inventory"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/ledger"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/readings"
	"github.com/MrJamesThe3rd/fuelbook/internal/observability"
)

type Handlers struct {
	Inventory *inventory.Handler
	Anomaly   *anomaly.Handler
	Ledger    *ledger.Handler
	Billing   *billing.Handler
	Readings  *readings.Handler
}

func New(h Handlers, corsOrigins []string, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(observability.TracingMiddleware)
	router.Use(observability.RequestLogger(logger, metrics))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", anomaly.ReviewerHeader},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Inventory.Routes(r)
		})

		r.Route("/shifts/{shift}", func(r chi.Router) {
			h.Anomaly.ShiftRoutes(r)
			h.Readings.Routes(r)
		})

		r.Route("/anomalies", h.Anomaly.Routes)

		r.Route("/owners", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Ledger.OwnerRoutes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Ledger.InvoiceRoutes(r)
		})

		r.Route("/billing", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Billing.Routes(r)
		})
	})

	return router
}
