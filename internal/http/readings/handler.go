package readings

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/fuelbook/internal/http/render"
	"github.com/MrJamesThe3rd/fuelbook/internal/readings"
)

const maxSheetSize = 10 << 20

type Handler struct {
	svc    *readings.Service
	logger *zap.Logger
}

func NewHandler(svc *readings.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts under /shifts/{shift}.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/readings/import", h.importSheet)
}

// importSheet accepts the sheet either as a multipart "file" field or as the
// raw request body.
func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSheetSize)

	var body io.Reader = r.Body

	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxSheetSize); err != nil {
			render.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			render.Error(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		body = file
	}

	res, err := h.svc.ImportShift(r.Context(), chi.URLParam(r, "shift"), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Error(w, http.StatusRequestEntityTooLarge, "sheet too large")
			return
		}

		render.ServiceError(w, err, h.logger)
		return
	}

	render.JSON(w, http.StatusOK, res)
}
