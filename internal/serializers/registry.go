// Package serializers holds the per-node-kind renderer registry, its merge
// rules, and the default renderers.
//
// The registry shape is fixed: one field per node kind plus two
// sub-registries (Types, keyed by block type, and Marks, keyed by mark type).
// Callers customise rendering by passing Overrides, which Merge lays over the
// defaults field by field.
package serializers

import (
	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/host"
)

// Options is the props bag handed to every renderer. Fields are left empty
// when the caller did not set them.
type Options struct {
	ProjectID    string
	Dataset      string
	ImageOptions map[string]string
}

// BlockProps are passed to block and custom type renderers.
type BlockProps[T any] struct {
	ID          string
	Block       *blocks.Block
	IsInline    bool
	Serializers *Registry[T]
	Options     Options

	// OnUnknownType, when set, is called by renderers that hand a block to
	// UnknownType because no Types entry matches it.
	OnUnknownType func(b *blocks.Block)
}

// ListProps are passed to the list renderer.
type ListProps struct {
	ID      string
	Type    string
	Level   int
	Options Options
}

// ListItemProps are passed to the list item renderer. The first InlineCount
// children are the item's own content; the rest are nested lists.
type ListItemProps[T any] struct {
	ID          string
	Block       *blocks.Block
	Index       int
	InlineCount int
	Serializers *Registry[T]
	Options     Options
}

// SpanProps are passed to the span renderer. Node is a *blocks.Span or a
// *blocks.MarkNode; RenderNode renders one of its children through the walker.
type SpanProps[T any] struct {
	Node        blocks.Node
	Index       int
	Block       *blocks.Block
	Serializers *Registry[T]
	Options     Options
	RenderNode  func(n blocks.Node, index int) T

	// OnUnknownMark, when set, is called by renderers that drop the wrapper
	// of a mark no Marks entry can render.
	OnUnknownMark func(m *blocks.MarkNode)
}

// MarkProps are passed to mark renderers. Def is nil for decorators.
type MarkProps struct {
	MarkID   string
	MarkType string
	Def      *blocks.MarkDef
	Options  Options
}

// TextProps are passed to the text renderer.
type TextProps[T any] struct {
	Text        string
	Serializers *Registry[T]
}

type (
	BlockRenderer[T any]     func(h host.Host[T], p BlockProps[T], children []T) T
	ListRenderer[T any]      func(h host.Host[T], p ListProps, children []T) T
	ListItemRenderer[T any]  func(h host.Host[T], p ListItemProps[T], children []T) T
	SpanRenderer[T any]      func(h host.Host[T], p SpanProps[T]) T
	MarkRenderer[T any]      func(h host.Host[T], p MarkProps, children []T) T
	TextRenderer[T any]      func(h host.Host[T], p TextProps[T]) T
	HardBreakRenderer[T any] func(h host.Host[T]) T
)

// Registry is the merged set of renderers used for one render.
type Registry[T any] struct {
	Block       BlockRenderer[T]
	List        ListRenderer[T]
	ListItem    ListItemRenderer[T]
	Span        SpanRenderer[T]
	Text        TextRenderer[T]
	HardBreak   HardBreakRenderer[T]
	UnknownType BlockRenderer[T]

	Types map[string]BlockRenderer[T]
	Marks map[string]MarkRenderer[T]

	// Container is the element tag wrapping multiple top-level nodes.
	Container string
	// Empty is returned when a document renders to nothing.
	Empty T
}

// Overrides mirrors Registry. Nil renderers and nil pointers mean "not provided".
type Overrides[T any] struct {
	Block       BlockRenderer[T]
	List        ListRenderer[T]
	ListItem    ListItemRenderer[T]
	Span        SpanRenderer[T]
	Text        TextRenderer[T]
	HardBreak   HardBreakRenderer[T]
	UnknownType BlockRenderer[T]

	Types map[string]BlockRenderer[T]
	Marks map[string]MarkRenderer[T]

	Container *string
	Empty     *T
}

// Merge returns a new registry: every provided override replaces its default,
// sub-registries are merged key by key, and keys the defaults do not define
// are dropped. Neither argument is modified.
func Merge[T any](defaults Registry[T], o Overrides[T]) Registry[T] {
	r := defaults

	if o.Block != nil {
		r.Block = o.Block
	}
	if o.List != nil {
		r.List = o.List
	}
	if o.ListItem != nil {
		r.ListItem = o.ListItem
	}
	if o.Span != nil {
		r.Span = o.Span
	}
	if o.Text != nil {
		r.Text = o.Text
	}
	if o.HardBreak != nil {
		r.HardBreak = o.HardBreak
	}
	if o.UnknownType != nil {
		r.UnknownType = o.UnknownType
	}

	r.Types = make(map[string]BlockRenderer[T], len(defaults.Types))
	for k, v := range defaults.Types {
		r.Types[k] = v
		if ov := o.Types[k]; ov != nil {
			r.Types[k] = ov
		}
	}
	r.Marks = make(map[string]MarkRenderer[T], len(defaults.Marks))
	for k, v := range defaults.Marks {
		r.Marks[k] = v
		if ov := o.Marks[k]; ov != nil {
			r.Marks[k] = ov
		}
	}

	if o.Container != nil {
		r.Container = *o.Container
	}
	if o.Empty != nil {
		r.Empty = *o.Empty
	}
	return r
}
