// Package ports defines the interfaces the application layer depends on.
package ports

import (
	"context"

	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/domain/events"
)

// GraphStore owns the authoritative graph. Each method is one atomic step
// of the graph's history and never fails; absent ids are no-ops.
type GraphStore interface {
	AddNode(ctx context.Context, node entities.Node)
	AddEdge(ctx context.Context, edge entities.Edge)
	DeleteNode(ctx context.Context, nodeID string)
	DeleteEdge(ctx context.Context, edgeID string)
	UpdateNodeLabel(ctx context.Context, nodeID, newLabel string)

	// Snapshot returns a detached copy of the current graph.
	Snapshot(ctx context.Context) aggregates.Snapshot
}

// GraphCounter is implemented by stores that can report their size without
// copying the graph.
type GraphCounter interface {
	Counts(ctx context.Context) (nodes, edges int)
}

// ChangeFeed delivers a GraphChanged event for every store mutation.
type ChangeFeed interface {
	// Subscribe registers a listener with the given channel buffer. The
	// returned func cancels the subscription and closes the channel.
	Subscribe(buffer int) (<-chan events.GraphChanged, func())
}

// Interactions turns user gestures into store operations.
type Interactions interface {
	// CreateNode places a new node inside viewport, or inside the
	// configured default viewport when viewport is nil.
	CreateNode(ctx context.Context, viewport *entities.Viewport) entities.Node
	Connect(ctx context.Context, source, target string) entities.Edge
	DeleteNode(ctx context.Context, nodeID string)
	DeleteEdge(ctx context.Context, edgeID string)
	UpdateNodeLabel(ctx context.Context, nodeID, newLabel string)
	Graph(ctx context.Context) aggregates.Snapshot
}
