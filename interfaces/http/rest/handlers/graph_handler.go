package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/pkg/api"
)

// GraphHandler serves the current graph to the renderer.
type GraphHandler struct {
	interactions ports.Interactions
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(interactions ports.Interactions, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		interactions: interactions,
		logger:       logger,
	}
}

// GetGraph handles GET /graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap := h.interactions.Graph(r.Context())
	api.Success(w, http.StatusOK, snap)
}
