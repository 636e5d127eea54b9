package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/pkg/api"
	apperrors "graphboard-backend/pkg/errors"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	interactions ports.Interactions
	errors       *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	interactions ports.Interactions,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		interactions: interactions,
		errors:       errorHandler,
		logger:       logger,
	}
}

// CreateNodeRequest is the optional body of POST /nodes. Without a viewport
// the configured default is used.
type CreateNodeRequest struct {
	Viewport *entities.Viewport `json:"viewport,omitempty"`
}

// UpdateLabelRequest is the body of PUT /nodes/{nodeID}/label. The label may
// be empty but must be present.
type UpdateLabelRequest struct {
	Label *string `json:"label" validate:"required"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	node := h.interactions.CreateNode(r.Context(), req.Viewport)

	h.logger.Debug("Node created via API",
		zap.String("nodeID", node.ID),
		zap.Float64("x", node.Position.X),
		zap.Float64("y", node.Position.Y),
	)
	api.Success(w, http.StatusCreated, node)
}

// DeleteNode handles DELETE /nodes/{nodeID}. Unknown ids answer 204 too.
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	h.interactions.DeleteNode(r.Context(), nodeID)
	api.NoContent(w)
}

// UpdateLabel handles PUT /nodes/{nodeID}/label
func (h *NodeHandler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	var req UpdateLabelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	h.interactions.UpdateNodeLabel(r.Context(), nodeID, *req.Label)
	api.NoContent(w)
}
