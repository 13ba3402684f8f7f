package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/http/render"
	"github.com/MrJamesThe3rd/fuelbook/internal/inventory"
)

type Handler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

func NewHandler(svc *inventory.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/low-stock", h.lowStock)
	r.Get("/{station}/summary", h.summary)
	r.Post("/{station}/{product}/adjust", h.adjust)
}

type adjustRequest struct {
	Delta     decimal.Decimal  `json:"delta"`
	Reason    inventory.Reason `json:"reason" validate:"required,oneof=sale delivery correction"`
	Reference string           `json:"reference" validate:"max=200"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.svc.Adjust(r.Context(), inventory.AdjustParams{
		StationID: chi.URLParam(r, "station"),
		ProductID: chi.URLParam(r, "product"),
		Delta:     req.Delta,
		Reason:    req.Reason,
		Reference: req.Reference,
	})
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toAdjustResponse(res))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	lines, err := h.svc.Summary(r.Context(), chi.URLParam(r, "station"))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]summaryLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = summaryLineResponse{
			ProductID:         l.ProductID,
			Quantity:          l.Quantity,
			LowStockThreshold: l.LowStockThreshold,
			IsLow:             l.IsLow,
		}
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	var station *string
	if s := r.URL.Query().Get("station"); s != "" {
		station = &s
	}

	items, err := h.svc.CheckLowStock(r.Context(), station)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}

	render.JSON(w, http.StatusOK, resp)
}
