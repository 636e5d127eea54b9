package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/events"
	"graphboard-backend/pkg/observability"
	"graphboard-backend/pkg/utils"
)

// Buffer of the store subscription. The store keeps the newest event when
// it is full, and every event carries the full graph.
const feedBuffer = 64

var errMissingField = errors.New("missing required field")

// Hub keeps the connected render clients and pushes a graph.snapshot to each
// of them whenever the store changes. Inbound gestures are forwarded to the
// interaction layer.
//
// The clients map is owned by the Run goroutine.
type Hub struct {
	feed         ports.ChangeFeed
	interactions ports.Interactions
	metrics      *observability.Collector
	logger       *zap.Logger

	clients map[*Client]struct{}
	count   atomic.Int64

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. metrics may be nil.
func NewHub(feed ports.ChangeFeed, interactions ports.Interactions, metrics *observability.Collector, logger *zap.Logger) *Hub {
	return &Hub{
		feed:         feed,
		interactions: interactions,
		metrics:      metrics,
		logger:       logger.Named("render_feed"),
		clients:      make(map[*Client]struct{}),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, after closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	updates, cancel := h.feed.Subscribe(feedBuffer)
	defer cancel()
	defer close(h.done)

	h.logger.Info("Render feed started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("Render feed stopped")
			return

		case client := <-h.register:
			h.registerClient(ctx, client)

		case client := <-h.unregister:
			h.removeClient(client)

		case ev, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			h.broadcast(ev)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) registerClient(ctx context.Context, c *Client) {
	h.clients[c] = struct{}{}
	h.count.Add(1)
	h.setClientGauge()

	snap := h.interactions.Graph(ctx)
	payload, err := encodeSnapshot(OperationInitial, snap, time.Now())
	if err != nil {
		h.logger.Error("Failed to encode initial snapshot", zap.Error(err))
		return
	}
	if h.deliver(c, payload) {
		c.revision = snap.Revision
	}

	h.logger.Info("Client registered",
		zap.String("connectionID", c.id),
		zap.Int("clients", len(h.clients)),
		zap.Uint64("revision", snap.Revision),
	)
}

func (h *Hub) removeClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
	h.setClientGauge()

	h.logger.Info("Client unregistered",
		zap.String("connectionID", c.id),
		zap.Int("clients", len(h.clients)),
	)
}

func (h *Hub) broadcast(ev events.GraphChanged) {
	if len(h.clients) == 0 {
		return
	}

	payload, err := encodeSnapshot(string(ev.Operation), ev.Snapshot, ev.GetTimestamp())
	if err != nil {
		h.logger.Error("Failed to encode snapshot",
			zap.String("eventType", ev.GetEventType()),
			zap.Error(err),
		)
		return
	}

	sent := 0
	for c := range h.clients {
		// A client that joined after this change already has a newer frame.
		if ev.Snapshot.Revision <= c.revision {
			continue
		}
		if h.deliver(c, payload) {
			c.revision = ev.Snapshot.Revision
			sent++
		}
	}

	h.logger.Debug("Snapshot broadcast",
		zap.String("operation", string(ev.Operation)),
		zap.Uint64("revision", ev.Snapshot.Revision),
		zap.Int("sent", sent),
	)
}

// deliver queues payload for c. When c's buffer is full the oldest queued
// frame is replaced, since each frame is a whole graph. A client that
// cannot take even one frame is evicted.
func (h *Hub) deliver(c *Client, payload []byte) bool {
	select {
	case c.send <- payload:
		h.countMessage("outbound", "sent")
		return true
	default:
	}

	select {
	case <-c.send:
		h.countMessage("outbound", "coalesced")
	default:
	}

	select {
	case c.send <- payload:
		h.countMessage("outbound", "sent")
		return true
	default:
		h.countMessage("outbound", "dropped")
		h.logger.Warn("Closing slow client", zap.String("connectionID", c.id))
		h.removeClient(c)
		return false
	}
}

func (h *Hub) closeAll() {
	for c := range h.clients {
		h.removeClient(c)
	}
}

// dispatch applies one inbound gesture.
func (h *Hub) dispatch(ctx context.Context, msg InboundMessage) error {
	switch msg.Type {
	case TypeConnect:
		if msg.Source == "" || msg.Target == "" {
			return fmt.Errorf("%s: source and target: %w", msg.Type, errMissingField)
		}
		h.interactions.Connect(ctx, msg.Source, msg.Target)
	case TypeCreateNode:
		if msg.Viewport != nil {
			if err := utils.ValidateStruct(msg.Viewport); err != nil {
				return fmt.Errorf("%s: %w", msg.Type, err)
			}
		}
		h.interactions.CreateNode(ctx, msg.Viewport)
	case TypeDeleteNode:
		if msg.NodeID == "" {
			return fmt.Errorf("%s: nodeId: %w", msg.Type, errMissingField)
		}
		h.interactions.DeleteNode(ctx, msg.NodeID)
	case TypeDeleteEdge:
		if msg.EdgeID == "" {
			return fmt.Errorf("%s: edgeId: %w", msg.Type, errMissingField)
		}
		h.interactions.DeleteEdge(ctx, msg.EdgeID)
	case TypeUpdateNodeLabel:
		if msg.NodeID == "" || msg.Label == nil {
			return fmt.Errorf("%s: nodeId and label: %w", msg.Type, errMissingField)
		}
		h.interactions.UpdateNodeLabel(ctx, msg.NodeID, *msg.Label)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (h *Hub) setClientGauge() {
	if h.metrics != nil {
		h.metrics.WebSocketClients.Set(float64(len(h.clients)))
	}
}

func (h *Hub) countMessage(direction, status string) {
	if h.metrics != nil {
		h.metrics.WebSocketMessages.WithLabelValues(direction, status).Inc()
	}
}
