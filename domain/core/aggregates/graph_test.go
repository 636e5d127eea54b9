package aggregates

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphboard-backend/domain/core/entities"
)

func TestGraph_AddNode_AppendsExactPayload(t *testing.T) {
	g := NewGraph()
	payloads := []entities.Node{
		entities.NewNode("1", "New Node", 10, 10),
		entities.NewNode("2", "second", 0, 0),
		entities.NewNode("1", "duplicate id", 3.5, -2),
		entities.NewNode("", "", 0, 0),
	}

	for i, p := range payloads {
		before := g.NodeCount()
		g.AddNode(p)

		snap := g.Snapshot()
		require.Len(t, snap.Nodes, before+1, "step %d", i)
		assert.Equal(t, p, snap.Nodes[len(snap.Nodes)-1], "step %d", i)
	}
}

func TestGraph_AddEdge_DoesNotValidateEndpoints(t *testing.T) {
	g := NewGraph()
	g.AddEdge(entities.NewStraightEdge("e1", "missing", "also-missing"))

	snap := g.Snapshot()
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, "missing", snap.Edges[0].Source)
	assert.Empty(t, snap.Nodes)
}

func TestGraph_DeleteNode(t *testing.T) {
	tests := []struct {
		name     string
		initial  []entities.Node
		deleteID string
		want     []entities.Node
	}{
		{
			name: "absent id leaves nodes unchanged",
			initial: []entities.Node{
				entities.NewNode("1", "A", 1, 1),
				entities.NewNode("2", "B", 2, 2),
			},
			deleteID: "x",
			want: []entities.Node{
				entities.NewNode("1", "A", 1, 1),
				entities.NewNode("2", "B", 2, 2),
			},
		},
		{
			name: "removes every match",
			initial: []entities.Node{
				entities.NewNode("1", "A", 1, 1),
				entities.NewNode("2", "B", 2, 2),
				entities.NewNode("1", "C", 3, 3),
			},
			deleteID: "1",
			want: []entities.Node{
				entities.NewNode("2", "B", 2, 2),
			},
		},
		{
			name:     "empty graph",
			initial:  nil,
			deleteID: "1",
			want:     []entities.Node{},
		},
		{
			name: "empty id",
			initial: []entities.Node{
				entities.NewNode("", "blank", 0, 0),
				entities.NewNode("1", "A", 1, 1),
			},
			deleteID: "",
			want: []entities.Node{
				entities.NewNode("1", "A", 1, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			for _, n := range tt.initial {
				g.AddNode(n)
			}

			g.DeleteNode(tt.deleteID)

			snap := g.Snapshot()
			if diff := cmp.Diff(tt.want, snap.Nodes); diff != "" {
				t.Errorf("nodes mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, snap.HasNode(tt.deleteID))
		})
	}
}

func TestGraph_DeleteNode_LeavesEdgesUntouched(t *testing.T) {
	g := NewGraph()
	g.AddNode(entities.NewNode("1", "A", 0, 0))
	g.AddNode(entities.NewNode("2", "B", 0, 0))
	g.AddEdge(entities.NewStraightEdge("e1", "1", "2"))
	g.AddEdge(entities.NewStraightEdge("e2", "2", "1"))
	before := g.Snapshot().Edges

	g.DeleteNode("1")
	g.DeleteNode("2")
	g.DeleteNode("absent")

	if diff := cmp.Diff(before, g.Snapshot().Edges); diff != "" {
		t.Errorf("edges changed by node deletion (-before +after):\n%s", diff)
	}
}

func TestGraph_DeleteEdge(t *testing.T) {
	g := NewGraph()
	g.AddEdge(entities.NewStraightEdge("e1", "1", "2"))
	g.AddEdge(entities.NewStraightEdge("e2", "2", "3"))
	g.AddEdge(entities.NewStraightEdge("e1", "3", "1"))

	g.DeleteEdge("absent")
	assert.Len(t, g.Snapshot().Edges, 3)

	g.DeleteEdge("e1")
	want := []entities.Edge{entities.NewStraightEdge("e2", "2", "3")}
	if diff := cmp.Diff(want, g.Snapshot().Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_UpdateNodeLabel(t *testing.T) {
	t.Run("first match only", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(entities.NewNode("1", "A", 0, 0))
		g.AddNode(entities.NewNode("1", "B", 0, 0))

		g.UpdateNodeLabel("1", "X")

		want := []entities.Node{
			entities.NewNode("1", "X", 0, 0),
			entities.NewNode("1", "B", 0, 0),
		}
		if diff := cmp.Diff(want, g.Snapshot().Nodes); diff != "" {
			t.Errorf("nodes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent id changes nothing", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(entities.NewNode("1", "A", 0, 0))
		g.AddNode(entities.NewNode("2", "B", 0, 0))
		before := g.Snapshot().Nodes

		g.UpdateNodeLabel("999", "X")

		if diff := cmp.Diff(before, g.Snapshot().Nodes); diff != "" {
			t.Errorf("labels changed (-before +after):\n%s", diff)
		}
	})

	t.Run("empty label is accepted", func(t *testing.T) {
		g := NewGraph()
		g.AddNode(entities.NewNode("1", "A", 0, 0))

		g.UpdateNodeLabel("1", "")

		assert.Equal(t, "", g.Snapshot().Nodes[0].Label())
	})
}

func TestGraph_Scenario_AddConnectDelete(t *testing.T) {
	g := NewGraph()

	g.AddNode(entities.Node{ID: "1", Data: entities.NodeData{Label: "New Node"}, Position: entities.Position{X: 10, Y: 10}})
	snap := g.Snapshot()
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "1", snap.Nodes[0].ID)

	g.AddEdge(entities.Edge{ID: "e1", Source: "1", Target: "1"})
	want := []entities.Edge{{ID: "e1", Source: "1", Target: "1"}}
	if diff := cmp.Diff(want, g.Snapshot().Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	g.DeleteEdge("e1")
	assert.Empty(t, g.Snapshot().Edges)
	assert.NotNil(t, g.Snapshot().Edges)
}

func TestGraph_Snapshot_IsDetached(t *testing.T) {
	g := NewGraph()
	g.AddNode(entities.NewNode("1", "A", 0, 0))

	snap := g.Snapshot()
	snap.Nodes[0].Data.Label = "mutated"
	snap.Nodes = append(snap.Nodes, entities.NewNode("2", "B", 0, 0))

	fresh := g.Snapshot()
	require.Len(t, fresh.Nodes, 1)
	assert.Equal(t, "A", fresh.Nodes[0].Label())
}

func TestGraph_Revision_CountsEveryCall(t *testing.T) {
	g := NewGraph()
	assert.Equal(t, uint64(0), g.Revision())

	g.AddNode(entities.NewNode("1", "A", 0, 0))
	g.DeleteNode("absent")
	g.UpdateNodeLabel("absent", "X")
	g.AddEdge(entities.NewStraightEdge("e1", "1", "1"))
	g.DeleteEdge("absent")

	assert.Equal(t, uint64(5), g.Revision())
	assert.Equal(t, uint64(5), g.Snapshot().Revision)
}
