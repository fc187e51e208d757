package workbench

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"
)

// Workbench errors.
var (
	ErrInvalidOrder = errors.New("order out of range")
	ErrUnknownKind  = errors.New("unknown tree type")
)

// tracerName identifies the workbench's spans.
const tracerName = "github.com/KilimcininKorOglu/treelab/internal/workbench"

// Options configures a Workbench.
type Options struct {
	Kind     Kind
	Order    int
	MinOrder int
	MaxOrder int
	// TracerProvider is optional; spans are dropped when nil.
	TracerProvider trace.TracerProvider
}

// DefaultOptions returns options for an order 3 B-tree.
func DefaultOptions() Options {
	return Options{
		Kind:     KindBTree,
		Order:    3,
		MinOrder: 3,
		MaxOrder: 10,
	}
}

// Op names an operation in events and spans.
type Op string

// Operations.
const (
	OpInsert   Op = "insert"
	OpDelete   Op = "delete"
	OpSearch   Op = "search"
	OpSetKind  Op = "type"
	OpSetOrder Op = "order"
	OpReset    Op = "reset"
)

// Event describes one completed operation.
type Event struct {
	Op      Op
	Kind    Kind
	Order   int
	Key     int
	HasKey  bool
	Changed bool
	Version uint64
}

// Workbench holds a B-tree and a B+ tree of the same order, one of them
// selected.
type Workbench struct {
	opts        Options
	kind        Kind
	order       int
	trees       map[Kind]Engine
	version     uint64
	subscribers map[int]func(Event)
	nextSub     int
	logger      logging.Logger
	tracer      trace.Tracer
}

// New creates a workbench with empty trees.
func New(opts Options, logger logging.Logger) (*Workbench, error) {
	if !opts.Kind.valid() {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", opts.Kind)
	}
	if opts.MinOrder < 2 || opts.MinOrder > opts.MaxOrder {
		return nil, errors.Wrapf(ErrInvalidOrder, "bounds [%d,%d]", opts.MinOrder, opts.MaxOrder)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	w := &Workbench{
		opts:        opts,
		kind:        opts.Kind,
		subscribers: make(map[int]func(Event)),
		logger:      logger.WithFields("component", "workbench"),
		tracer:      tp.Tracer(tracerName),
	}
	if err := w.checkOrder(opts.Order); err != nil {
		return nil, err
	}
	w.rebuild(opts.Order)
	return w, nil
}

// Kind returns the selected tree type.
func (w *Workbench) Kind() Kind {
	return w.kind
}

// Order returns the order shared by both trees.
func (w *Workbench) Order() int {
	return w.order
}

// OrderBounds returns the inclusive range SetOrder accepts.
func (w *Workbench) OrderBounds() (int, int) {
	return w.opts.MinOrder, w.opts.MaxOrder
}

// Version returns a counter bumped by every operation that may change what
// the selected tree looks like.
func (w *Workbench) Version() uint64 {
	return w.version
}

// Tree returns the selected engine.
func (w *Workbench) Tree() Engine {
	return w.trees[w.kind]
}

// Subscribe registers fn to be called after every operation. The returned
// function removes the subscription. fn runs on the caller's goroutine and
// must not block.
func (w *Workbench) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := w.nextSub
	w.nextSub++
	w.subscribers[id] = fn
	return func() { delete(w.subscribers, id) }
}

// Insert adds key to the selected tree and clears any highlight.
func (w *Workbench) Insert(ctx context.Context, key int) bool {
	_, span := w.startSpan(ctx, OpInsert, attribute.Int("tree.key", key))
	defer span.End()

	tree := w.Tree()
	before := tree.Len()
	tree.ClearHighlight()
	tree.Insert(key)
	changed := tree.Len() != before

	span.SetAttributes(attribute.Bool("tree.changed", changed))
	w.logger.Debug("insert", "kind", w.kind, "key", key, "changed", changed)
	w.publish(Event{Op: OpInsert, Key: key, HasKey: true, Changed: changed})
	return changed
}

// Delete removes key from the selected tree and clears any highlight.
func (w *Workbench) Delete(ctx context.Context, key int) bool {
	_, span := w.startSpan(ctx, OpDelete, attribute.Int("tree.key", key))
	defer span.End()

	tree := w.Tree()
	before := tree.Len()
	tree.ClearHighlight()
	tree.Delete(key)
	changed := tree.Len() != before

	span.SetAttributes(attribute.Bool("tree.changed", changed))
	w.logger.Debug("delete", "kind", w.kind, "key", key, "changed", changed)
	w.publish(Event{Op: OpDelete, Key: key, HasKey: true, Changed: changed})
	return changed
}

// Search reports whether key is stored in the selected tree and highlights
// the node holding it. A miss clears the highlight.
func (w *Workbench) Search(ctx context.Context, key int) bool {
	_, span := w.startSpan(ctx, OpSearch, attribute.Int("tree.key", key))
	defer span.End()

	found := w.Tree().Highlight(key)

	span.SetAttributes(attribute.Bool("tree.found", found))
	w.logger.Debug("search", "kind", w.kind, "key", key, "found", found)
	w.publish(Event{Op: OpSearch, Key: key, HasKey: true})
	return found
}

// Print returns the keys of the selected tree in ascending order.
func (w *Workbench) Print() []int {
	return w.Tree().Keys()
}

// Snapshot returns a detached copy of the selected tree.
func (w *Workbench) Snapshot() *snapshot.Node {
	return w.Tree().Snapshot()
}

// Stats describes the selected tree.
func (w *Workbench) Stats() Stats {
	return w.Tree().Stats()
}

// SetKind selects the tree shown by later operations. The other tree keeps
// its contents.
func (w *Workbench) SetKind(kind Kind) error {
	_, span := w.startSpan(context.Background(), OpSetKind, attribute.String("tree.new_kind", string(kind)))
	defer span.End()

	if !kind.valid() {
		err := errors.Wrapf(ErrUnknownKind, "%q", kind)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	changed := kind != w.kind
	w.kind = kind
	w.logger.Info("tree type selected", "kind", kind)
	w.publish(Event{Op: OpSetKind, Changed: changed})
	return nil
}

// SetOrder discards both trees and recreates them empty with the new order.
func (w *Workbench) SetOrder(order int) error {
	_, span := w.startSpan(context.Background(), OpSetOrder, attribute.Int("tree.new_order", order))
	defer span.End()

	if err := w.checkOrder(order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	w.rebuild(order)
	w.logger.Info("order changed", "order", order)
	w.publish(Event{Op: OpSetOrder, Changed: true})
	return nil
}

// Reset discards both trees and recreates them empty.
func (w *Workbench) Reset() {
	_, span := w.startSpan(context.Background(), OpReset)
	defer span.End()

	w.rebuild(w.order)
	w.logger.Info("trees reset")
	w.publish(Event{Op: OpReset, Changed: true})
}

func (w *Workbench) checkOrder(order int) error {
	if order < w.opts.MinOrder || order > w.opts.MaxOrder {
		return errors.Wrapf(ErrInvalidOrder, "%d not in [%d,%d]", order, w.opts.MinOrder, w.opts.MaxOrder)
	}
	return nil
}

func (w *Workbench) rebuild(order int) {
	w.order = order
	w.trees = map[Kind]Engine{
		KindBTree:     newBTree(order),
		KindBPlusTree: newBPlusTree(order),
	}
}

func (w *Workbench) startSpan(ctx context.Context, op Op, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("tree.kind", string(w.kind)),
		attribute.Int("tree.order", w.order),
	)
	return w.tracer.Start(ctx, "workbench."+string(op), trace.WithAttributes(attrs...))
}

func (w *Workbench) publish(e Event) {
	w.version++
	e.Kind = w.kind
	e.Order = w.order
	e.Version = w.version
	for _, fn := range w.subscribers {
		fn(e)
	}
}
