package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/domain/events"
)

var (
	_ ports.GraphStore   = (*GraphStore)(nil)
	_ ports.ChangeFeed   = (*GraphStore)(nil)
	_ ports.GraphCounter = (*GraphStore)(nil)
)

func TestGraphStore_StartsEmpty(t *testing.T) {
	store := NewGraphStore()
	snap := store.Snapshot(context.Background())

	assert.Empty(t, snap.Nodes)
	assert.Empty(t, snap.Edges)
	assert.Equal(t, uint64(0), snap.Revision)
}

func TestGraphStore_OperationsAreVisibleImmediately(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()

	store.AddNode(ctx, entities.NewNode("1", "New Node", 10, 10))
	store.AddNode(ctx, entities.NewNode("2", "New Node", 20, 20))
	store.AddEdge(ctx, entities.NewStraightEdge("e1", "1", "2"))
	store.UpdateNodeLabel(ctx, "2", "renamed")
	store.DeleteNode(ctx, "1")

	snap := store.Snapshot(ctx)
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "renamed", snap.Nodes[0].Label())
	require.Len(t, snap.Edges, 1, "node deletion must not cascade to edges")

	store.DeleteEdge(ctx, "e1")
	assert.Empty(t, store.Snapshot(ctx).Edges)
	assert.Equal(t, uint64(6), store.Snapshot(ctx).Revision)
}

func TestGraphStore_Counts(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	store.AddNode(ctx, entities.NewNode("1", "A", 0, 0))
	store.AddNode(ctx, entities.NewNode("1", "dup", 0, 0))
	store.AddEdge(ctx, entities.NewStraightEdge("e1", "1", "9"))

	nodes, edges := store.Counts(ctx)
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, edges)
}

func TestGraphStore_Subscribe_ReceivesEveryMutationInOrder(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	feed, cancel := store.Subscribe(16)
	defer cancel()

	store.AddNode(ctx, entities.NewNode("1", "A", 0, 0))
	store.DeleteNode(ctx, "absent")
	store.AddEdge(ctx, entities.NewStraightEdge("e1", "1", "1"))

	wantOps := []events.Operation{events.OpAddNode, events.OpDeleteNode, events.OpAddEdge}
	for i, op := range wantOps {
		select {
		case ev := <-feed:
			assert.Equal(t, op, ev.Operation)
			assert.Equal(t, uint64(i+1), ev.Snapshot.Revision)
			assert.Equal(t, events.EventTypeGraphChanged, ev.GetEventType())
		case <-time.After(time.Second):
			t.Fatalf("no event for %s", op)
		}
	}
}

func TestGraphStore_Subscribe_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	_, cancel := store.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			store.AddNode(ctx, entities.NewNode(strconv.Itoa(i), "n", 0, 0))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mutations blocked on a full subscriber")
	}
	assert.Len(t, store.Snapshot(ctx).Nodes, 100)
}

func TestGraphStore_Subscribe_FullBufferKeepsLatest(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	feed, cancel := store.Subscribe(2)
	defer cancel()

	for i := 1; i <= 10; i++ {
		store.AddNode(ctx, entities.NewNode(strconv.Itoa(i), "n", 0, 0))
	}

	var revisions []uint64
	for len(feed) > 0 {
		revisions = append(revisions, (<-feed).Snapshot.Revision)
	}
	assert.Equal(t, []uint64{9, 10}, revisions)
}

func TestGraphStore_Subscribe_CancelClosesChannel(t *testing.T) {
	store := NewGraphStore()
	feed, cancel := store.Subscribe(1)
	require.Equal(t, 1, store.SubscriberCount())

	cancel()
	cancel()

	_, ok := <-feed
	assert.False(t, ok)
	assert.Equal(t, 0, store.SubscriberCount())

	store.AddNode(context.Background(), entities.NewNode("1", "A", 0, 0))
}

func TestGraphStore_ConcurrentMutationsAreSerialized(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := strconv.Itoa(w*1000 + i)
				store.AddNode(ctx, entities.NewNode(id, "n", 0, 0))
				store.AddEdge(ctx, entities.NewStraightEdge("e"+id, id, id))
				store.Snapshot(ctx)
			}
		}(w)
	}
	wg.Wait()

	snap := store.Snapshot(ctx)
	assert.Len(t, snap.Nodes, 400)
	assert.Len(t, snap.Edges, 400)
	assert.Equal(t, uint64(800), snap.Revision)
}
