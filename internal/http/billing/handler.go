package billing

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/billing"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/render"
)

type Handler struct {
	orchestrator *billing.Orchestrator
	logger       *zap.Logger
}

func NewHandler(orchestrator *billing.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/monthly", h.monthly)
}

type monthlyRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2000,max=9999"`
}

// monthly runs the whole batch within the request. Per-owner failures are
// part of a 200 response; only a batch-level failure is an error status.
func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	var req monthlyRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.orchestrator.GenerateAllMonthlyInvoices(r.Context(), time.Month(req.Month), req.Year)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	if res.Failures == nil {
		res.Failures = []billing.Failure{}
	}

	render.JSON(w, http.StatusOK, res)
}
