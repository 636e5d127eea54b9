package decorators

import (
	"context"
	"time"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/domain/events"
	"graphboard-backend/pkg/observability"
)

// MetricsStore counts and times mutations and keeps the node/edge gauges
// current.
type MetricsStore struct {
	inner     ports.GraphStore
	counter   ports.GraphCounter
	collector *observability.Collector
}

// NewMetricsStore wraps inner with Prometheus instrumentation. The gauges
// are read through inner's Counts when it has one, else from a snapshot.
func NewMetricsStore(inner ports.GraphStore, collector *observability.Collector) *MetricsStore {
	counter, _ := inner.(ports.GraphCounter)
	return &MetricsStore{
		inner:     inner,
		counter:   counter,
		collector: collector,
	}
}

func (s *MetricsStore) AddNode(ctx context.Context, node entities.Node) {
	s.observe(ctx, events.OpAddNode, func() { s.inner.AddNode(ctx, node) })
}

func (s *MetricsStore) AddEdge(ctx context.Context, edge entities.Edge) {
	s.observe(ctx, events.OpAddEdge, func() { s.inner.AddEdge(ctx, edge) })
}

func (s *MetricsStore) DeleteNode(ctx context.Context, nodeID string) {
	s.observe(ctx, events.OpDeleteNode, func() { s.inner.DeleteNode(ctx, nodeID) })
}

func (s *MetricsStore) DeleteEdge(ctx context.Context, edgeID string) {
	s.observe(ctx, events.OpDeleteEdge, func() { s.inner.DeleteEdge(ctx, edgeID) })
}

func (s *MetricsStore) UpdateNodeLabel(ctx context.Context, nodeID, newLabel string) {
	s.observe(ctx, events.OpUpdateNodeLabel, func() { s.inner.UpdateNodeLabel(ctx, nodeID, newLabel) })
}

func (s *MetricsStore) Snapshot(ctx context.Context) aggregates.Snapshot {
	return s.inner.Snapshot(ctx)
}

func (s *MetricsStore) observe(ctx context.Context, op events.Operation, fn func()) {
	start := time.Now()
	fn()
	s.collector.StoreDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	s.collector.StoreOperations.WithLabelValues(string(op)).Inc()

	nodes, edges := s.Counts(ctx)
	s.collector.GraphNodes.Set(float64(nodes))
	s.collector.GraphEdges.Set(float64(edges))
}

// Counts returns the graph size, preferring the inner store's counter.
func (s *MetricsStore) Counts(ctx context.Context) (nodes, edges int) {
	if s.counter != nil {
		return s.counter.Counts(ctx)
	}
	snap := s.inner.Snapshot(ctx)
	return len(snap.Nodes), len(snap.Edges)
}
