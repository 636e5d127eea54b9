package aggregates

import (
	"graphboard-backend/domain/core/entities"
)

// Graph is the aggregate root holding the editor's nodes and edges.
//
// Every mutation is total: absent ids degrade to no-ops and nothing is ever
// rejected. Nodes and edges keep insertion order, which is also the order
// the rendering widget draws them in. Graph is not safe for concurrent use;
// the owning store serializes access.
type Graph struct {
	nodes    []entities.Node
	edges    []entities.Edge
	revision uint64
}

// Snapshot is a detached copy of the graph at one revision.
type Snapshot struct {
	Nodes    []entities.Node `json:"nodes"`
	Edges    []entities.Edge `json:"edges"`
	Revision uint64          `json:"revision"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: []entities.Node{},
		edges: []entities.Edge{},
	}
}

// AddNode appends a node. Duplicate ids are accepted.
func (g *Graph) AddNode(node entities.Node) {
	g.nodes = append(g.nodes, node)
	g.revision++
}

// AddEdge appends an edge. Endpoints are not checked against the node set.
func (g *Graph) AddEdge(edge entities.Edge) {
	g.edges = append(g.edges, edge)
	g.revision++
}

// DeleteNode removes every node with the given id. Edges that reference the
// node are left in place.
func (g *Graph) DeleteNode(nodeID string) {
	kept := make([]entities.Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.ID != nodeID {
			kept = append(kept, n)
		}
	}
	g.nodes = kept
	g.revision++
}

// DeleteEdge removes every edge with the given id.
func (g *Graph) DeleteEdge(edgeID string) {
	kept := make([]entities.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.ID != edgeID {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	g.revision++
}

// UpdateNodeLabel relabels the first node with the given id. Later nodes
// sharing the id keep their labels.
func (g *Graph) UpdateNodeLabel(nodeID, newLabel string) {
	for i := range g.nodes {
		if g.nodes[i].ID == nodeID {
			g.nodes[i].Data.Label = newLabel
			break
		}
	}
	g.revision++
}

// NodeCount returns the number of nodes currently present.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges currently present.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Revision counts the mutation calls applied so far, no-ops included.
func (g *Graph) Revision() uint64 {
	return g.revision
}

// Snapshot copies the current state. Node and Edge hold no references, so
// copying the slices is enough to detach the result from the graph.
func (g *Graph) Snapshot() Snapshot {
	nodes := make([]entities.Node, len(g.nodes))
	copy(nodes, g.nodes)
	edges := make([]entities.Edge, len(g.edges))
	copy(edges, g.edges)

	return Snapshot{
		Nodes:    nodes,
		Edges:    edges,
		Revision: g.revision,
	}
}

// HasNode reports whether any node in the snapshot carries the id.
func (s Snapshot) HasNode(nodeID string) bool {
	for _, n := range s.Nodes {
		if n.ID == nodeID {
			return true
		}
	}
	return false
}

// HasEdge reports whether any edge in the snapshot carries the id.
func (s Snapshot) HasEdge(edgeID string) bool {
	for _, e := range s.Edges {
		if e.ID == edgeID {
			return true
		}
	}
	return false
}
