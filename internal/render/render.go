// Package render walks a block document and turns it into host nodes.
//
// Render assigns missing block keys, nests list items, and then dispatches
// every node to the matching renderer of the merged registry: lists, list
// items, span-like nodes (text spans and mark nodes) and generic blocks. Text
// block content is turned into a marks tree on the way down.
//
// Renderers are caller code; a panic inside one propagates to the caller.
package render

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/host"
	"git.home.luguber.info/inful/blockrender/internal/keys"
	"git.home.luguber.info/inful/blockrender/internal/listnest"
	"git.home.luguber.info/inful/blockrender/internal/logfields"
	"git.home.luguber.info/inful/blockrender/internal/markstree"
	"git.home.luguber.info/inful/blockrender/internal/metrics"
	"git.home.luguber.info/inful/blockrender/internal/serializers"
)

// ErrMaxDepth is returned when the document nests deeper than Config.MaxDepth.
var ErrMaxDepth = errors.ValidationError("maximum nesting depth exceeded").Build()

// RenderBlock renders a single block.
func RenderBlock[T any](h host.Host[T], b blocks.Block, cfg Config[T]) (T, error) {
	return Render(h, []blocks.Block{b}, cfg)
}

// Render renders doc with host h. Several top-level nodes are wrapped in the
// registry's container element, a single one is returned as is, and an empty
// document yields the registry's Empty value.
func Render[T any](h host.Host[T], doc []blocks.Block, cfg Config[T]) (T, error) {
	start := time.Now()
	rec := cfg.recorder()

	reg := serializers.Merge(serializers.Defaults(h), cfg.Serializers)
	w := &walker[T]{
		h:        h,
		reg:      &reg,
		opts:     cfg.options(),
		logger:   cfg.logger(),
		recorder: rec,
		maxDepth: cfg.maxDepth(),
	}

	nodes := listnest.Nest(keys.Assign(doc))
	out := make([]T, 0, len(nodes))
	for i, n := range nodes {
		r := w.node(n, i, false, nil, 1)
		if w.err != nil {
			break
		}
		out = append(out, r)
	}

	rec.ObserveRenderDuration(time.Since(start))
	if w.err != nil {
		rec.IncRenderOutcome(metrics.OutcomeFailed)
		var zero T
		return zero, w.err
	}
	rec.IncRenderOutcome(metrics.OutcomeSuccess)

	switch len(out) {
	case 0:
		return reg.Empty, nil
	case 1:
		return out[0], nil
	}
	var attrs host.Attrs
	if cfg.ContainerClass != "" {
		attrs = host.Attrs{"class": cfg.ContainerClass}
	}
	return h.Element(reg.Container, attrs, out...), nil
}

type walker[T any] struct {
	h        host.Host[T]
	reg      *serializers.Registry[T]
	opts     serializers.Options
	logger   *slog.Logger
	recorder metrics.Recorder
	maxDepth int

	// err is sticky: once set every further dispatch returns the zero value.
	err error
}

// node dispatches n. parent is the text block whose marks tree n belongs to.
func (w *walker[T]) node(n blocks.Node, index int, isInline bool, parent *blocks.Block, depth int) T {
	var zero T
	if w.err != nil {
		return zero
	}
	if depth > w.maxDepth {
		w.err = ErrMaxDepth.WithContext("depth", depth)
		return zero
	}

	class := blocks.Classify(n)
	w.recorder.IncNode(class.String())

	switch class {
	case blocks.ClassList:
		return w.list(n.(*blocks.ListNode), depth)
	case blocks.ClassListItem:
		return w.listItem(n.(*blocks.ListItemNode), index, depth)
	case blocks.ClassSpan:
		return w.span(n, index, parent, depth)
	}

	switch v := n.(type) {
	case *blocks.Block:
		id := v.ID
		if id == "" {
			id = keys.Prefix + strconv.Itoa(index)
		}
		return w.block(v, id, isInline, depth)
	case *blocks.Span:
		return w.block(v.AsBlock(), inlineID(v, parent, index), true, depth)
	}
	return zero
}

// inlineID keys an inline object by its parent block so it cannot collide
// with a top-level block id.
func inlineID(s *blocks.Span, parent *blocks.Block, index int) string {
	if s.Key != "" {
		return s.Key
	}
	if parent == nil {
		return keys.Prefix + strconv.Itoa(index)
	}
	return parent.ID + "-" + strconv.Itoa(index)
}

func (w *walker[T]) list(l *blocks.ListNode, depth int) T {
	children := make([]T, 0, len(l.Items))
	for i, item := range l.Items {
		children = append(children, w.node(item, i, false, nil, depth+1))
	}
	return w.reg.List(w.h, serializers.ListProps{
		ID:      l.ID,
		Type:    l.ListType,
		Level:   l.Level,
		Options: w.opts,
	}, children)
}

func (w *walker[T]) listItem(item *blocks.ListItemNode, index, depth int) T {
	tree := markstree.Build(item.Block)
	children := make([]T, 0, len(tree)+len(item.Children))
	for i, n := range tree {
		children = append(children, w.node(n, i, true, item.Block, depth+1))
	}
	for i, n := range item.Children {
		children = append(children, w.node(n, i, false, nil, depth+1))
	}
	return w.reg.ListItem(w.h, serializers.ListItemProps[T]{
		ID:          item.ID,
		Block:       item.Block,
		Index:       index,
		InlineCount: len(tree),
		Serializers: w.reg,
		Options:     w.opts,
	}, children)
}

func (w *walker[T]) span(n blocks.Node, index int, parent *blocks.Block, depth int) T {
	return w.reg.Span(w.h, serializers.SpanProps[T]{
		Node:        n,
		Index:       index,
		Block:       parent,
		Serializers: w.reg,
		Options:     w.opts,
		RenderNode: func(c blocks.Node, i int) T {
			return w.node(c, i, true, parent, depth+1)
		},
		OnUnknownMark: func(m *blocks.MarkNode) { w.unknownMark(m, parent) },
	})
}

// unknownMark records a mark whose wrapper was dropped by the span renderer.
func (w *walker[T]) unknownMark(m *blocks.MarkNode, parent *blocks.Block) {
	blockID := ""
	if parent != nil {
		blockID = parent.ID
	}
	w.logger.LogAttrs(context.Background(), slog.LevelWarn, "Unknown mark type, rendering content without it",
		logfields.BlockID(blockID), logfields.Mark(m.MarkID), logfields.MarkType(m.MarkType()))
	w.recorder.IncDegradedMark(m.MarkType())
}

// unknownType records a block handed to the UnknownType renderer.
func (w *walker[T]) unknownType(b *blocks.Block, id string) {
	w.logger.LogAttrs(context.Background(), slog.LevelWarn, "Unknown block type",
		logfields.BlockID(id), logfields.BlockType(b.Type))
	w.recorder.IncUnknownType(b.Type)
}

func (w *walker[T]) block(b *blocks.Block, id string, isInline bool, depth int) T {
	tree := markstree.Build(b)
	children := make([]T, 0, len(tree))
	for i, n := range tree {
		children = append(children, w.node(n, i, true, b, depth+1))
	}

	return w.reg.Block(w.h, serializers.BlockProps[T]{
		ID:            id,
		Block:         b,
		IsInline:      isInline,
		Serializers:   w.reg,
		Options:       w.opts,
		OnUnknownType: func(unknown *blocks.Block) { w.unknownType(unknown, id) },
	}, children)
}
