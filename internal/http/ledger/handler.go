package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/http/render"
	"github.com/MrJamesThe3rd/fuelbook/internal/ledger"
)

type Handler struct {
	svc    *ledger.Service
	logger *zap.Logger
}

func NewHandler(svc *ledger.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) OwnerRoutes(r chi.Router) {
	r.Get("/{owner}", h.getOwner)
	r.Patch("/{owner}", h.updateOwner)
	r.Post("/{owner}/credit", h.accrue)
	r.Post("/{owner}/recompute", h.recompute)
	r.Post("/{owner}/invoices", h.generateInvoice)
}

func (h *Handler) InvoiceRoutes(r chi.Router) {
	r.Get("/{id}", h.getInvoice)
	r.Post("/{id}/payments", h.applyPayment)
}

func (h *Handler) getOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.svc.GetOwner(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toOwnerResponse(owner))
}

// Absent fields are left unchanged.
type updateOwnerRequest struct {
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone       *string          `json:"phone,omitempty" validate:"omitempty,max=50"`
}

func (req updateOwnerRequest) toUpdate() ledger.OwnerUpdate {
	var u ledger.OwnerUpdate

	if req.CreditLimit != nil {
		u.CreditLimit = ledger.Set(*req.CreditLimit)
	}

	if req.Name != nil {
		u.Name = ledger.Set(*req.Name)
	}

	if req.Phone != nil {
		u.Phone = ledger.Set(*req.Phone)
	}

	return u
}

type updateOwnerResponse struct {
	Owner     ownerResponse `json:"owner"`
	OverLimit bool          `json:"over_limit"`
}

func (h *Handler) updateOwner(w http.ResponseWriter, r *http.Request) {
	var req updateOwnerRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.svc.UpdateOwner(r.Context(), chi.URLParam(r, "owner"), req.toUpdate())
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, updateOwnerResponse{Owner: toOwnerResponse(res.Owner), OverLimit: res.OverLimit})
}

type accrueRequest struct {
	TransactionID  string          `json:"transaction_id" validate:"required"`
	OccurredAt     time.Time       `json:"occurred_at"`
	StationID      string          `json:"station_id" validate:"required"`
	ShiftID        string          `json:"shift_id"`
	NozzleID       string          `json:"nozzle_id"`
	ProductID      string          `json:"product_id" validate:"required"`
	Liters         decimal.Decimal `json:"liters"`
	PricePerLiter  decimal.Decimal `json:"price_per_liter"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentType    string          `json:"payment_type" validate:"required"`
	TruckID        string          `json:"truck_id"`
	AllowOverLimit bool            `json:"allow_over_limit"`
}

type accrueResponse struct {
	Owner   ownerResponse `json:"owner"`
	Accrued bool          `json:"accrued"`
}

func (h *Handler) accrue(w http.ResponseWriter, r *http.Request) {
	var req accrueRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.svc.AccrueCredit(r.Context(), ledger.AccrueParams{
		Transaction: ledger.Transaction{
			ID:            req.TransactionID,
			OccurredAt:    req.OccurredAt,
			StationID:     req.StationID,
			ShiftID:       req.ShiftID,
			NozzleID:      req.NozzleID,
			ProductID:     req.ProductID,
			Liters:        req.Liters,
			PricePerLiter: req.PricePerLiter,
			Amount:        req.Amount,
			PaymentType:   req.PaymentType,
			OwnerID:       chi.URLParam(r, "owner"),
			TruckID:       req.TruckID,
		},
		AllowOverLimit: req.AllowOverLimit,
	})
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, accrueResponse{Owner: toOwnerResponse(res.Owner), Accrued: res.Accrued})
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.RecomputeBalance(r.Context(), chi.URLParam(r, "owner"))
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, reconciliationResponse{
		OwnerID:    rec.OwnerID,
		Previous:   rec.Previous,
		Recomputed: rec.Recomputed,
		Drift:      rec.Drift,
	})
}

type periodRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2000,max=9999"`
}

func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	res, err := h.svc.GenerateMonthlyInvoice(r.Context(), chi.URLParam(r, "owner"), time.Month(req.Month), req.Year)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	resp := invoiceResultResponse{Skipped: res.Skipped, Created: res.Created, Linked: res.Linked}
	if res.Invoice != nil {
		inv := toInvoiceResponse(res.Invoice)
		resp.Invoice = &inv
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}

	render.JSON(w, status, resp)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, toInvoiceResponse(inv))
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

func (h *Handler) applyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req paymentRequest
	if err := render.Bind(r, &req); err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	params := ledger.PaymentParams{InvoiceID: id, Amount: req.Amount}
	if req.PaidAt != nil {
		params.PaidAt = *req.PaidAt
	}

	res, err := h.svc.ApplyPayment(r.Context(), params)
	if err != nil {
		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusCreated, paymentResponse{
		ID:      res.Payment.ID,
		Amount:  res.Payment.Amount,
		PaidAt:  res.Payment.PaidAt,
		Invoice: toInvoiceResponse(res.Invoice),
		Owner:   toOwnerResponse(res.Owner),
	})
}
