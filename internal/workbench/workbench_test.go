package workbench

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/KilimcininKorOglu/treelab/internal/logging"
)

func newWorkbench(t *testing.T, kind Kind, order int) *Workbench {
	t.Helper()
	opts := DefaultOptions()
	opts.Kind = kind
	opts.Order = order
	w, err := New(opts, logging.NewNop())
	require.NoError(t, err)
	return w
}

func insertKeys(w *Workbench, keys ...int) {
	for _, k := range keys {
		w.Insert(context.Background(), k)
	}
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNewDefaults(t *testing.T) {
	w, err := New(DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, KindBTree, w.Kind())
	assert.Equal(t, 3, w.Order())
	assert.Equal(t, uint64(0), w.Version())
	assert.Nil(t, w.Snapshot())
	assert.Empty(t, w.Print())

	lo, hi := w.OrderBounds()
	assert.Equal(t, 3, lo)
	assert.Equal(t, 10, hi)
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
		want   error
	}{
		{"unknown kind", func(o *Options) { o.Kind = "avl" }, ErrUnknownKind},
		{"order too small", func(o *Options) { o.Order = 2 }, ErrInvalidOrder},
		{"order too large", func(o *Options) { o.Order = 11 }, ErrInvalidOrder},
		{"inverted bounds", func(o *Options) { o.MinOrder = 9; o.MaxOrder = 4 }, ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			_, err := New(opts, nil)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"btree", KindBTree},
		{"B-Tree", KindBTree},
		{"bplustree", KindBPlusTree},
		{"b+tree", KindBPlusTree},
		{" BPLUS ", KindBPlusTree},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseKind("avl")
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Contains(t, err.Error(), "want btree or bplustree")
}

func TestJoinKinds(t *testing.T) {
	assert.Equal(t, "btree|bplustree", JoinKinds("|"))
}

// =============================================================================
// Operation Tests
// =============================================================================

func TestInsertDeleteBTree(t *testing.T) {
	w := newWorkbench(t, KindBTree, 3)
	ctx := context.Background()

	insertKeys(w, 10, 20, 5, 6, 12, 30, 7, 17)
	assert.Equal(t, []int{5, 6, 7, 10, 12, 17, 20, 30}, w.Print())

	assert.True(t, w.Delete(ctx, 6))
	assert.False(t, w.Delete(ctx, 6))
	assert.Equal(t, []int{5, 7, 10, 12, 17, 20, 30}, w.Print())
	assert.NoError(t, w.Tree().Verify())
}

func TestInsertReportsChange(t *testing.T) {
	w := newWorkbench(t, KindBPlusTree, 4)
	ctx := context.Background()

	assert.True(t, w.Insert(ctx, 1))
	assert.False(t, w.Insert(ctx, 1))
	assert.Equal(t, []int{1}, w.Print())
}

func TestSearchHighlights(t *testing.T) {
	w := newWorkbench(t, KindBPlusTree, 3)
	ctx := context.Background()
	insertKeys(w, 1, 2, 3, 4, 5, 6, 7)

	require.True(t, w.Search(ctx, 6))
	snap := w.Snapshot()
	leaf := snap.Children[2].Children[1]
	assert.Equal(t, []int{6, 7}, leaf.Keys)
	assert.True(t, leaf.Highlighted())

	assert.False(t, w.Search(ctx, 42))
	assert.False(t, w.Snapshot().Children[2].Children[1].Highlighted())
}

func TestMutationClearsHighlight(t *testing.T) {
	w := newWorkbench(t, KindBTree, 3)
	ctx := context.Background()
	insertKeys(w, 1, 2, 3)

	require.True(t, w.Search(ctx, 2))
	require.True(t, w.Snapshot().Highlighted())

	w.Insert(ctx, 4)
	assert.False(t, w.Snapshot().Highlighted())
}

func TestSetKindKeepsBothTrees(t *testing.T) {
	w := newWorkbench(t, KindBTree, 3)
	insertKeys(w, 1, 2, 3)

	require.NoError(t, w.SetKind(KindBPlusTree))
	assert.Empty(t, w.Print())
	insertKeys(w, 9)

	require.NoError(t, w.SetKind(KindBTree))
	assert.Equal(t, []int{1, 2, 3}, w.Print())

	require.NoError(t, w.SetKind(KindBPlusTree))
	assert.Equal(t, []int{9}, w.Print())

	assert.True(t, errors.Is(w.SetKind("avl"), ErrUnknownKind))
	assert.Equal(t, KindBPlusTree, w.Kind())
}

func TestSetOrderRebuildsBothTrees(t *testing.T) {
	w := newWorkbench(t, KindBTree, 3)
	insertKeys(w, 1, 2, 3)
	require.NoError(t, w.SetKind(KindBPlusTree))
	insertKeys(w, 4, 5)

	require.NoError(t, w.SetOrder(5))
	assert.Equal(t, 5, w.Order())
	assert.Equal(t, 5, w.Tree().Order())
	assert.Empty(t, w.Print())

	require.NoError(t, w.SetKind(KindBTree))
	assert.Empty(t, w.Print())
}

func TestSetOrderRejectsOutOfRange(t *testing.T) {
	w := newWorkbench(t, KindBTree, 4)
	insertKeys(w, 1, 2)
	version := w.Version()

	for _, order := range []int{2, 11, -1} {
		err := w.SetOrder(order)
		assert.True(t, errors.Is(err, ErrInvalidOrder), "order %d: %v", order, err)
	}

	assert.Equal(t, 4, w.Order())
	assert.Equal(t, []int{1, 2}, w.Print())
	assert.Equal(t, version, w.Version(), "rejected change must not bump the version")
}

func TestReset(t *testing.T) {
	w := newWorkbench(t, KindBPlusTree, 4)
	insertKeys(w, 1, 2, 3)

	w.Reset()

	assert.Empty(t, w.Print())
	assert.Nil(t, w.Snapshot())
	assert.Equal(t, 4, w.Order())
	assert.Equal(t, KindBPlusTree, w.Kind())
}

func TestStats(t *testing.T) {
	w := newWorkbench(t, KindBPlusTree, 3)
	insertKeys(w, 1, 2, 3, 4, 5, 6, 7)

	stats := w.Stats()
	assert.Equal(t, 3, stats.Height)
	assert.Equal(t, 7, stats.Keys)
	assert.Equal(t, 5, stats.Separators)
	assert.Equal(t, 2, stats.MaxKeys)
	assert.Equal(t, 1, stats.MinKeys)

	require.NoError(t, w.SetKind(KindBTree))
	stats = w.Stats()
	assert.Equal(t, 0, stats.Height)
	assert.Equal(t, 5, stats.MaxKeys)
	assert.Equal(t, 2, stats.MinKeys)
}

// =============================================================================
// Event Tests
// =============================================================================

func TestSubscribeReceivesEvents(t *testing.T) {
	w := newWorkbench(t, KindBTree, 3)
	ctx := context.Background()

	var events []Event
	unsubscribe := w.Subscribe(func(e Event) { events = append(events, e) })

	w.Insert(ctx, 5)
	w.Insert(ctx, 5)
	w.Search(ctx, 5)
	require.NoError(t, w.SetKind(KindBPlusTree))
	require.NoError(t, w.SetOrder(4))
	w.Reset()

	require.Len(t, events, 6)
	assert.Equal(t, Event{Op: OpInsert, Kind: KindBTree, Order: 3, Key: 5, HasKey: true, Changed: true, Version: 1}, events[0])
	assert.False(t, events[1].Changed)
	assert.Equal(t, OpSearch, events[2].Op)
	assert.Equal(t, KindBPlusTree, events[3].Kind)
	assert.Equal(t, 4, events[4].Order)
	assert.Equal(t, OpReset, events[5].Op)
	assert.Equal(t, uint64(6), w.Version())

	unsubscribe()
	w.Insert(ctx, 6)
	assert.Len(t, events, 6)
	assert.Equal(t, uint64(7), w.Version())
}

// =============================================================================
// Tracing Tests
// =============================================================================

func TestOperationsAreTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	opts := DefaultOptions()
	opts.Kind = KindBPlusTree
	opts.Order = 4
	opts.TracerProvider = tp
	w, err := New(opts, logging.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	w.Insert(ctx, 17)
	w.Search(ctx, 17)
	w.Delete(ctx, 17)
	assert.Error(t, w.SetOrder(99))

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"workbench.insert", "workbench.search", "workbench.delete", "workbench.order"}, names)

	attrs := attribute.NewSet(spans[1].Attributes()...)
	kind, ok := attrs.Value("tree.kind")
	require.True(t, ok)
	assert.Equal(t, "bplustree", kind.AsString())
	order, ok := attrs.Value("tree.order")
	require.True(t, ok)
	assert.Equal(t, int64(4), order.AsInt64())
	key, ok := attrs.Value("tree.key")
	require.True(t, ok)
	assert.Equal(t, int64(17), key.AsInt64())
	found, ok := attrs.Value("tree.found")
	require.True(t, ok)
	assert.True(t, found.AsBool())

	assert.Equal(t, "Error", spans[3].Status().Code.String())
}
