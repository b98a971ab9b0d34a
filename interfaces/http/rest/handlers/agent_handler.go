package handlers

import (
	"encoding/json"
	"net/http"

	"agentdir/application/services"
	"agentdir/domain/catalog"
	apperrors "agentdir/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AgentHandler handles agent-related HTTP requests
type AgentHandler struct {
	catalog *services.CatalogService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(catalogSvc *services.CatalogService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		catalog: catalogSvc,
		errors:  errorHandler,
		logger:  logger,
	}
}

// ItemsResponse wraps the item sequence returned by every mutation.
type ItemsResponse struct {
	Items []catalog.Agent `json:"items"`
}

// List handles GET /agents
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.Resolve(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, c)
}

// Create handles POST /agents
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input catalog.AgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	items, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, ItemsResponse{Items: items})
}

// Update handles PUT /agents/{agentID}
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	if agentID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("agent ID is required"))
		return
	}

	var input catalog.AgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	items, err := h.catalog.Update(r.Context(), agentID, input)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// Delete handles DELETE /agents/{agentID}
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	if agentID == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("agent ID is required"))
		return
	}

	items, err := h.catalog.Delete(r.Context(), agentID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

func (h *AgentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
