package websocket

import (
	"encoding/json"
	"time"

	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
)

// TypeGraphSnapshot is the only outbound message type.
const TypeGraphSnapshot = "graph.snapshot"

// Inbound message types.
const (
	TypeConnect         = "connect"
	TypeCreateNode      = "create_node"
	TypeDeleteNode      = "delete_node"
	TypeDeleteEdge      = "delete_edge"
	TypeUpdateNodeLabel = "update_node_label"
)

// OperationInitial marks the snapshot sent right after a client connects.
const OperationInitial = "initial"

// GraphData is the {nodes, edges} pair the widget renders.
type GraphData struct {
	Nodes []entities.Node `json:"nodes"`
	Edges []entities.Edge `json:"edges"`
}

// SnapshotMessage carries the whole graph after a change.
type SnapshotMessage struct {
	Type      string    `json:"type"`
	Revision  uint64    `json:"revision"`
	Operation string    `json:"operation"`
	Data      GraphData `json:"data"`
	Timestamp int64     `json:"timestamp"`
}

func encodeSnapshot(operation string, snap aggregates.Snapshot, at time.Time) ([]byte, error) {
	return json.Marshal(SnapshotMessage{
		Type:      TypeGraphSnapshot,
		Revision:  snap.Revision,
		Operation: operation,
		Data:      GraphData{Nodes: snap.Nodes, Edges: snap.Edges},
		Timestamp: at.Unix(),
	})
}

// InboundMessage is a gesture sent by the widget. Which fields are required
// depends on Type.
type InboundMessage struct {
	Type     string             `json:"type"`
	Source   string             `json:"source,omitempty"`
	Target   string             `json:"target,omitempty"`
	NodeID   string             `json:"nodeId,omitempty"`
	EdgeID   string             `json:"edgeId,omitempty"`
	Label    *string            `json:"label,omitempty"`
	Viewport *entities.Viewport `json:"viewport,omitempty"`
}
