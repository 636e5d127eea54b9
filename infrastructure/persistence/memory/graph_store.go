package memory

import (
	"context"
	"sync"
	"time"

	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/domain/events"
)

// GraphStore is the in-process owner of the graph. A single mutex
// serializes every mutation, so each call is one step of the history no
// matter how many goroutines issue requests.
//
// Change notifications are published while the lock is held, which keeps
// them in revision order. Sends never block: when a subscriber's buffer is
// full its oldest queued event is discarded, so the newest one is always
// delivered.
type GraphStore struct {
	mu    sync.RWMutex
	graph *aggregates.Graph

	subscribers map[uint64]chan events.GraphChanged
	nextSubID   uint64

	now func() time.Time
}

// NewGraphStore creates a store holding an empty graph.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		graph:       aggregates.NewGraph(),
		subscribers: make(map[uint64]chan events.GraphChanged),
		now:         time.Now,
	}
}

// AddNode appends a node.
func (s *GraphStore) AddNode(ctx context.Context, node entities.Node) {
	s.apply(events.OpAddNode, node.ID, func(g *aggregates.Graph) {
		g.AddNode(node)
	})
}

// AddEdge appends an edge.
func (s *GraphStore) AddEdge(ctx context.Context, edge entities.Edge) {
	s.apply(events.OpAddEdge, edge.ID, func(g *aggregates.Graph) {
		g.AddEdge(edge)
	})
}

// DeleteNode removes all nodes with the id.
func (s *GraphStore) DeleteNode(ctx context.Context, nodeID string) {
	s.apply(events.OpDeleteNode, nodeID, func(g *aggregates.Graph) {
		g.DeleteNode(nodeID)
	})
}

// DeleteEdge removes all edges with the id.
func (s *GraphStore) DeleteEdge(ctx context.Context, edgeID string) {
	s.apply(events.OpDeleteEdge, edgeID, func(g *aggregates.Graph) {
		g.DeleteEdge(edgeID)
	})
}

// UpdateNodeLabel relabels the first node with the id.
func (s *GraphStore) UpdateNodeLabel(ctx context.Context, nodeID, newLabel string) {
	s.apply(events.OpUpdateNodeLabel, nodeID, func(g *aggregates.Graph) {
		g.UpdateNodeLabel(nodeID, newLabel)
	})
}

// Snapshot returns a detached copy of the graph.
func (s *GraphStore) Snapshot(ctx context.Context) aggregates.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Snapshot()
}

// Counts returns the current number of nodes and edges.
func (s *GraphStore) Counts(ctx context.Context) (nodes, edges int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.NodeCount(), s.graph.EdgeCount()
}

// Subscribe registers a change listener.
func (s *GraphStore) Subscribe(buffer int) (<-chan events.GraphChanged, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan events.GraphChanged, buffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SubscriberCount returns the number of active subscriptions.
func (s *GraphStore) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

func (s *GraphStore) apply(op events.Operation, targetID string, mutate func(*aggregates.Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(s.graph)

	if len(s.subscribers) == 0 {
		return
	}
	event := events.NewGraphChanged(op, targetID, s.graph.Snapshot(), s.now())
	for _, ch := range s.subscribers {
		publishLatest(ch, event)
	}
}

// publishLatest queues event on ch, making room by dropping the oldest
// queued event. Only the store sends on ch and it holds s.mu, so one
// receive always frees a slot.
func publishLatest(ch chan events.GraphChanged, event events.GraphChanged) {
	select {
	case ch <- event:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- event:
	default:
	}
}
