package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
)

// PositionFunc picks a position for a new node inside the viewport.
type PositionFunc func(viewport entities.Viewport) entities.Position

// UniformPosition samples uniformly from [0,width) x [0,height).
func UniformPosition(viewport entities.Viewport) entities.Position {
	return entities.Position{
		X: rand.Float64() * viewport.Width,
		Y: rand.Float64() * viewport.Height,
	}
}

// DefaultViewport is used when a create-node gesture carries no viewport.
var DefaultViewport = entities.Viewport{Width: 1280, Height: 720}

// InteractionService builds node and edge payloads from user gestures and
// hands them to the graph store.
//
// Ids are derived from the current collection sizes ("len+1" for nodes,
// "e"+len+1 for edges), so a create after a delete can reuse an id that is
// still present. The collision is logged and the payload is stored anyway.
type InteractionService struct {
	store    ports.GraphStore
	logger   *zap.Logger
	position PositionFunc

	// gestures are handled one at a time, like a UI dispatch thread
	mu       sync.Mutex
	viewport entities.Viewport
}

// Option configures an InteractionService.
type Option func(*InteractionService)

// WithPositionFunc replaces the uniform random placement.
func WithPositionFunc(fn PositionFunc) Option {
	return func(s *InteractionService) {
		s.position = fn
	}
}

// WithDefaultViewport sets the viewport used when a gesture carries none.
func WithDefaultViewport(viewport entities.Viewport) Option {
	return func(s *InteractionService) {
		s.viewport = viewport
	}
}

// NewInteractionService creates the gesture layer on top of store.
func NewInteractionService(store ports.GraphStore, logger *zap.Logger, opts ...Option) *InteractionService {
	s := &InteractionService{
		store:    store,
		logger:   logger.Named("interactions"),
		position: UniformPosition,
		viewport: DefaultViewport,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDefaultViewport changes the fallback viewport, e.g. after a config reload.
func (s *InteractionService) SetDefaultViewport(viewport entities.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = viewport
}

// CreateNode adds a "New Node" at a random spot of the viewport.
func (s *InteractionService) CreateNode(ctx context.Context, viewport *entities.Viewport) entities.Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	vp := s.viewport
	if viewport != nil {
		vp = *viewport
	}

	snap := s.store.Snapshot(ctx)
	id := strconv.Itoa(len(snap.Nodes) + 1)
	if snap.HasNode(id) {
		s.logger.Warn("Generated node id collides with an existing node",
			zap.String("nodeID", id),
			zap.Int("nodeCount", len(snap.Nodes)),
		)
	}

	pos := s.position(vp)
	node := entities.NewNode(id, entities.DefaultNodeLabel, pos.X, pos.Y)
	s.store.AddNode(ctx, node)

	return node
}

// Connect adds the straight animated edge for a completed drag-connect.
func (s *InteractionService) Connect(ctx context.Context, source, target string) entities.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Snapshot(ctx)
	id := "e" + strconv.Itoa(len(snap.Edges)+1)
	if snap.HasEdge(id) {
		s.logger.Warn("Generated edge id collides with an existing edge",
			zap.String("edgeID", id),
			zap.Int("edgeCount", len(snap.Edges)),
		)
	}

	edge := entities.NewStraightEdge(id, source, target)
	s.store.AddEdge(ctx, edge)

	return edge
}

// DeleteNode removes the selected node.
func (s *InteractionService) DeleteNode(ctx context.Context, nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.DeleteNode(ctx, nodeID)
}

// DeleteEdge removes the selected edge.
func (s *InteractionService) DeleteEdge(ctx context.Context, edgeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.DeleteEdge(ctx, edgeID)
}

// UpdateNodeLabel applies a label edit.
func (s *InteractionService) UpdateNodeLabel(ctx context.Context, nodeID, newLabel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.UpdateNodeLabel(ctx, nodeID, newLabel)
}

// Graph returns the current graph for the renderer.
func (s *InteractionService) Graph(ctx context.Context) aggregates.Snapshot {
	return s.store.Snapshot(ctx)
}
