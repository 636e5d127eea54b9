package events

import (
	"time"

	"graphboard-backend/domain/core/aggregates"
)

// Operation names one of the five graph mutations.
type Operation string

const (
	OpAddNode         Operation = "add_node"
	OpAddEdge         Operation = "add_edge"
	OpDeleteNode      Operation = "delete_node"
	OpDeleteEdge      Operation = "delete_edge"
	OpUpdateNodeLabel Operation = "update_node_label"
)

// EventTypeGraphChanged is the event type of GraphChanged.
const EventTypeGraphChanged = "graph.changed"

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// GraphChanged is raised after every mutation call, no-ops included, and
// carries the graph as it stands after the call.
type GraphChanged struct {
	BaseEvent
	Operation Operation           `json:"operation"`
	TargetID  string              `json:"target_id"`
	Snapshot  aggregates.Snapshot `json:"snapshot"`
}

// NewGraphChanged creates a GraphChanged event. targetID is the id of the
// node or edge the operation addressed.
func NewGraphChanged(op Operation, targetID string, snapshot aggregates.Snapshot, timestamp time.Time) GraphChanged {
	return GraphChanged{
		BaseEvent: BaseEvent{
			AggregateID: targetID,
			EventType:   EventTypeGraphChanged,
			Timestamp:   timestamp,
			Version:     1,
		},
		Operation: op,
		TargetID:  targetID,
		Snapshot:  snapshot,
	}
}
