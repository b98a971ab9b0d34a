package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"agentdir/application/services"
	apperrors "agentdir/pkg/errors"

	"go.uber.org/zap"
)

// maxImportBytes caps uploaded catalog files.
const maxImportBytes = 8 << 20

// ExchangeHandler handles catalog export and import requests.
type ExchangeHandler struct {
	catalog  *services.CatalogService
	exchange *services.ExchangeService
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(catalogSvc *services.CatalogService, exchangeSvc *services.ExchangeService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		catalog:  catalogSvc,
		exchange: exchangeSvc,
		errors:   errorHandler,
		logger:   logger,
	}
}

// Export handles GET /catalog/export: the resolved catalog as a pretty-printed
// JSON download under a fixed file name.
func (h *ExchangeHandler) Export(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.Resolve(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	doc, err := h.exchange.Export(c)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Error("Failed to write export", zap.Error(err))
	}
}

// Import handles POST /catalog/import: a multipart upload whose "file" part
// wholesale-replaces the overlay on success.
func (h *ExchangeHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid multipart upload: "+err.Error()))
		return
	}

	part, _, err := r.FormFile("file")
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("missing upload field \"file\""))
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("failed to read upload: "+err.Error()))
		return
	}

	c, err := h.exchange.Import(r.Context(), data)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
