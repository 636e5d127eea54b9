// Package decorators wraps a GraphStore with cross-cutting behavior. Each
// decorator implements ports.GraphStore and delegates to the inner store,
// so they can be stacked in any order.
package decorators

import (
	"context"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
)

// LoggingStore logs every mutation at debug level.
type LoggingStore struct {
	inner  ports.GraphStore
	logger *zap.Logger
}

// NewLoggingStore wraps inner with mutation logging.
func NewLoggingStore(inner ports.GraphStore, logger *zap.Logger) *LoggingStore {
	return &LoggingStore{
		inner:  inner,
		logger: logger.Named("graph_store"),
	}
}

func (s *LoggingStore) AddNode(ctx context.Context, node entities.Node) {
	s.inner.AddNode(ctx, node)
	s.logger.Debug("Node added",
		zap.String("nodeID", node.ID),
		zap.String("label", node.Data.Label),
		zap.Float64("x", node.Position.X),
		zap.Float64("y", node.Position.Y),
	)
}

func (s *LoggingStore) AddEdge(ctx context.Context, edge entities.Edge) {
	s.inner.AddEdge(ctx, edge)
	s.logger.Debug("Edge added",
		zap.String("edgeID", edge.ID),
		zap.String("source", edge.Source),
		zap.String("target", edge.Target),
	)
}

func (s *LoggingStore) DeleteNode(ctx context.Context, nodeID string) {
	s.inner.DeleteNode(ctx, nodeID)
	s.logger.Debug("Node deleted", zap.String("nodeID", nodeID))
}

func (s *LoggingStore) DeleteEdge(ctx context.Context, edgeID string) {
	s.inner.DeleteEdge(ctx, edgeID)
	s.logger.Debug("Edge deleted", zap.String("edgeID", edgeID))
}

func (s *LoggingStore) UpdateNodeLabel(ctx context.Context, nodeID, newLabel string) {
	s.inner.UpdateNodeLabel(ctx, nodeID, newLabel)
	s.logger.Debug("Node label updated",
		zap.String("nodeID", nodeID),
		zap.String("label", newLabel),
	)
}

func (s *LoggingStore) Snapshot(ctx context.Context) aggregates.Snapshot {
	return s.inner.Snapshot(ctx)
}
