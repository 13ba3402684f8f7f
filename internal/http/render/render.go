// Package render holds the request binding and response helpers shared by
// the API handlers.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Bind decodes a JSON body into dst and runs its validate tags. Every
// failure comes back as an apperr.ValidationError.
func Bind(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return &apperr.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]

			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}

			return &apperr.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("must satisfy %s", rule)}
		}

		return &apperr.ValidationError{Field: "body", Message: err.Error()}
	}

	return nil
}

// ServiceError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is logged and reported as a bare 500.
func ServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var (
		validation  *apperr.ValidationError
		notFound    *apperr.NotFoundError
		limit       *apperr.CreditLimitExceededError
		stock       *apperr.InsufficientStockError
		overpayment *apperr.OverpaymentError
		conflict    *apperr.ConcurrencyConflictError
	)

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		JSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error(), Field: validation.Field})
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		Error(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &limit):
		logger.Warn("credit limit exceeded", zap.String("owner_id", limit.OwnerID))
		Error(w, http.StatusUnprocessableEntity, limit.Error())
	case errors.As(err, &stock):
		logger.Warn("insufficient stock", zap.String("station_id", stock.StationID), zap.String("product_id", stock.ProductID))
		Error(w, http.StatusUnprocessableEntity, stock.Error())
	case errors.As(err, &overpayment):
		logger.Warn("overpayment rejected", zap.String("invoice_id", overpayment.InvoiceID))
		Error(w, http.StatusUnprocessableEntity, overpayment.Error())
	case errors.As(err, &conflict):
		logger.Warn("concurrency conflict", zap.Error(err))
		Error(w, http.StatusConflict, conflict.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
