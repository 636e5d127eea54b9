package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/pkg/api"
	apperrors "graphboard-backend/pkg/errors"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	interactions ports.Interactions
	errors       *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(
	interactions ports.Interactions,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *EdgeHandler {
	return &EdgeHandler{
		interactions: interactions,
		errors:       errorHandler,
		logger:       logger,
	}
}

// ConnectRequest is the widget's onConnect payload.
type ConnectRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Connect handles POST /edges
func (h *EdgeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	edge := h.interactions.Connect(r.Context(), req.Source, req.Target)

	h.logger.Debug("Edge created via API",
		zap.String("edgeID", edge.ID),
		zap.String("source", edge.Source),
		zap.String("target", edge.Target),
	)
	api.Success(w, http.StatusCreated, edge)
}

// DeleteEdge handles DELETE /edges/{edgeID}. Unknown ids answer 204 too.
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")
	h.interactions.DeleteEdge(r.Context(), edgeID)
	api.NoContent(w)
}
