package decorators

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
)

// TracingStore opens a span around every store call.
type TracingStore struct {
	inner  ports.GraphStore
	tracer trace.Tracer
}

// NewTracingStore wraps inner with OpenTelemetry spans.
func NewTracingStore(inner ports.GraphStore, tracer trace.Tracer) *TracingStore {
	return &TracingStore{
		inner:  inner,
		tracer: tracer,
	}
}

func (s *TracingStore) AddNode(ctx context.Context, node entities.Node) {
	ctx, span := s.tracer.Start(ctx, "graph_store.AddNode",
		trace.WithAttributes(attribute.String("node.id", node.ID)),
	)
	defer span.End()

	s.inner.AddNode(ctx, node)
}

func (s *TracingStore) AddEdge(ctx context.Context, edge entities.Edge) {
	ctx, span := s.tracer.Start(ctx, "graph_store.AddEdge",
		trace.WithAttributes(
			attribute.String("edge.id", edge.ID),
			attribute.String("edge.source", edge.Source),
			attribute.String("edge.target", edge.Target),
		),
	)
	defer span.End()

	s.inner.AddEdge(ctx, edge)
}

func (s *TracingStore) DeleteNode(ctx context.Context, nodeID string) {
	ctx, span := s.tracer.Start(ctx, "graph_store.DeleteNode",
		trace.WithAttributes(attribute.String("node.id", nodeID)),
	)
	defer span.End()

	s.inner.DeleteNode(ctx, nodeID)
}

func (s *TracingStore) DeleteEdge(ctx context.Context, edgeID string) {
	ctx, span := s.tracer.Start(ctx, "graph_store.DeleteEdge",
		trace.WithAttributes(attribute.String("edge.id", edgeID)),
	)
	defer span.End()

	s.inner.DeleteEdge(ctx, edgeID)
}

func (s *TracingStore) UpdateNodeLabel(ctx context.Context, nodeID, newLabel string) {
	ctx, span := s.tracer.Start(ctx, "graph_store.UpdateNodeLabel",
		trace.WithAttributes(attribute.String("node.id", nodeID)),
	)
	defer span.End()

	s.inner.UpdateNodeLabel(ctx, nodeID, newLabel)
}

func (s *TracingStore) Snapshot(ctx context.Context) aggregates.Snapshot {
	ctx, span := s.tracer.Start(ctx, "graph_store.Snapshot")
	defer span.End()

	snap := s.inner.Snapshot(ctx)
	span.SetAttributes(
		attribute.Int("graph.nodes", len(snap.Nodes)),
		attribute.Int("graph.edges", len(snap.Edges)),
		attribute.Int64("graph.revision", int64(snap.Revision)),
	)
	return snap
}
