package decorators

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"graphboard-backend/application/ports"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
	"graphboard-backend/infrastructure/persistence/memory"
	"graphboard-backend/pkg/observability"
)

var (
	_ ports.GraphStore = (*LoggingStore)(nil)
	_ ports.GraphStore = (*MetricsStore)(nil)
	_ ports.GraphStore = (*TracingStore)(nil)
)

func exercise(ctx context.Context, store ports.GraphStore) {
	store.AddNode(ctx, entities.NewNode("1", "A", 1, 2))
	store.AddNode(ctx, entities.NewNode("2", "B", 3, 4))
	store.AddEdge(ctx, entities.NewStraightEdge("e1", "1", "2"))
	store.UpdateNodeLabel(ctx, "1", "renamed")
	store.DeleteNode(ctx, "2")
	store.DeleteEdge(ctx, "absent")
}

func TestLoggingStore_LogsEachMutation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := NewLoggingStore(memory.NewGraphStore(), zap.New(core))
	ctx := context.Background()

	exercise(ctx, store)

	assert.Equal(t, 2, logs.FilterMessage("Node added").Len())
	assert.Equal(t, 1, logs.FilterMessage("Edge added").Len())
	assert.Equal(t, 1, logs.FilterMessage("Node label updated").Len())
	assert.Equal(t, 1, logs.FilterMessage("Node deleted").Len())
	assert.Equal(t, 1, logs.FilterMessage("Edge deleted").Len())

	snap := store.Snapshot(ctx)
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, "renamed", snap.Nodes[0].Label())
}

func TestMetricsStore_CountsOperationsAndTracksSize(t *testing.T) {
	collector := observability.NewCollector("test")
	store := NewMetricsStore(memory.NewGraphStore(), collector)

	exercise(context.Background(), store)

	assert.Equal(t, float64(2), testutil.ToFloat64(collector.StoreOperations.WithLabelValues("add_node")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.StoreOperations.WithLabelValues("add_edge")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.StoreOperations.WithLabelValues("delete_edge")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.GraphNodes))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.GraphEdges))
}

// snapshotCounter records how often the metrics decorator copies the graph.
type snapshotCounter struct {
	*memory.GraphStore
	snapshots int
}

func (s *snapshotCounter) Snapshot(ctx context.Context) aggregates.Snapshot {
	s.snapshots++
	return s.GraphStore.Snapshot(ctx)
}

func TestMetricsStore_GaugesUseCountsNotSnapshots(t *testing.T) {
	collector := observability.NewCollector("test")
	inner := &snapshotCounter{GraphStore: memory.NewGraphStore()}
	store := NewMetricsStore(inner, collector)

	exercise(context.Background(), store)

	assert.Zero(t, inner.snapshots)
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.GraphNodes))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.GraphEdges))
}

func TestMetricsStore_FallsBackToSnapshot(t *testing.T) {
	collector := observability.NewCollector("test")
	var inner ports.GraphStore = NewTracingStore(memory.NewGraphStore(), observability.NewNoopTracerProvider("test").Tracer())
	store := NewMetricsStore(inner, collector)

	exercise(context.Background(), store)

	nodes, edges := store.Counts(context.Background())
	assert.Equal(t, 1, nodes)
	assert.Equal(t, 1, edges)
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.GraphEdges))
}

func TestTracingStore_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	store := NewTracingStore(memory.NewGraphStore(), tp.Tracer("test"))
	exercise(context.Background(), store)
	store.Snapshot(context.Background())

	names := make([]string, 0)
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"graph_store.AddNode",
		"graph_store.AddNode",
		"graph_store.AddEdge",
		"graph_store.UpdateNodeLabel",
		"graph_store.DeleteNode",
		"graph_store.DeleteEdge",
		"graph_store.Snapshot",
	}, names)
}

func TestDecorators_Stack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	collector := observability.NewCollector("stack")
	base := memory.NewGraphStore()

	var store ports.GraphStore = base
	store = NewMetricsStore(store, collector)
	store = NewTracingStore(store, observability.NewNoopTracerProvider("stack").Tracer())
	store = NewLoggingStore(store, zap.New(core))

	exercise(context.Background(), store)

	assert.Equal(t, base.Snapshot(context.Background()), store.Snapshot(context.Background()))
	assert.Equal(t, 6, logs.Len())
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.StoreOperations.WithLabelValues("add_node")))
}
