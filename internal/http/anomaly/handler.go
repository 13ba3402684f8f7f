package anomaly

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/anomaly"
	"github.com/MrJamesThe3rd/fuelbook/internal/http/render"
	"github.com/MrJamesThe3rd/fuelbook/internal/threshold"
)

// ReviewerHeader carries the reviewer id set by the upstream session layer.
const ReviewerHeader = "X-Reviewer-ID"

type Handler struct {
	svc    *anomaly.Service
	logger *zap.Logger
}

func NewHandler(svc *anomaly.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ShiftRoutes mounts under /shifts/{shift}.
func (h *Handler) ShiftRoutes(r chi.Router) {
	r.Post("/anomalies/check", h.check)
	r.Get("/anomalies", h.listShift)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/pending", h.pending)
	r.Get("/{id}", h.get)
	r.Post("/{id}/review", h.review)
}

type anomalyResponse struct {
	ID         uuid.UUID           `json:"id"`
	StationID  string              `json:"station_id"`
	ShiftID    string              `json:"shift_id"`
	ShiftDate  string              `json:"shift_date"`
	Metric     anomaly.Metric      `json:"metric"`
	Subject    string              `json:"subject,omitempty"`
	Expected   decimal.Decimal     `json:"expected"`
	Actual     decimal.Decimal     `json:"actual"`
	Delta      decimal.Decimal     `json:"delta"`
	Severity   threshold.Severity  `json:"severity"`
	State      anomaly.ReviewState `json:"state"`
	ReviewedBy string              `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func toResponse(a *anomaly.Anomaly) anomalyResponse {
	return anomalyResponse{
		ID:         a.ID,
		StationID:  a.StationID,
		ShiftID:    a.ShiftID,
		ShiftDate:  a.ShiftDate.Format(time.DateOnly),
		Metric:     a.Metric,
		Subject:    a.Subject,
		Expected:   a.Expected,
		Actual:     a.Actual,
		Delta:      a.Delta,
		Severity:   a.Severity,
		State:      a.State,
		ReviewedBy: a.ReviewedBy,
		ReviewedAt: a.ReviewedAt,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toResponseList(as []*anomaly.Anomaly) []anomalyResponse {
	resp := make([]anomalyResponse, len(as))
	for i, a := range as {
		resp[i] = toResponse(a)
	}

	return resp
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.CheckShiftAnomalies(r.Context(), chi.URLParam(r, "shift"))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(found))
}

func (h *Handler) listShift(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.ListShiftAnomalies(r.Context(), chi.URLParam(r, "shift"))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(as))
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.GetPendingAnomalies(r.Context())
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(as))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.svc.GetAnomaly(r.Context(), id)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(a))
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.svc.MarkAnomalyReviewed(r.Context(), id, r.Header.Get(ReviewerHeader))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(a))
}
