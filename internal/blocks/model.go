package blocks

import "strings"

const (
	// TypeBlock is the _type of text blocks.
	TypeBlock = "block"
	// TypeSpan is the _type of text spans.
	TypeSpan = "span"
	// StyleNormal is the style assumed for text blocks without one.
	StyleNormal = "normal"
)

// Kind identifies the concrete type behind a Node.
type Kind int

const (
	KindBlock Kind = iota
	KindSpan
	KindMark
	KindList
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindSpan:
		return "span"
	case KindMark:
		return "mark"
	case KindList:
		return "list"
	case KindListItem:
		return "list-item"
	default:
		return "unknown"
	}
}

// Node is implemented by *Block, *Span, *MarkNode, *ListNode and *ListItemNode only.
type Node interface {
	Kind() Kind
	node()
}

// MarkDef is the out-of-band payload of an annotation mark (e.g. a link and its href).
type MarkDef struct {
	ID     string
	Type   string
	Fields map[string]any
}

// String returns the named field when it holds a string.
func (d *MarkDef) String(field string) string {
	if d == nil {
		return ""
	}
	s, _ := d.Fields[field].(string)
	return s
}

// Span is a run of text carrying zero or more mark identifiers.
//
// A child whose Type is neither empty nor "span" is an inline object; its
// custom fields are kept in Fields.
type Span struct {
	Type   string
	Key    string
	Text   string
	Marks  []string
	Fields map[string]any
}

func (*Span) Kind() Kind { return KindSpan }
func (*Span) node()      {}

// IsInlineObject reports whether the span is a custom inline object rather than text.
func (s *Span) IsInlineObject() bool {
	return s.Type != "" && s.Type != TypeSpan && len(s.Marks) == 0
}

// AsBlock converts an inline object into a Block so it can be rendered by the
// block renderers.
func (s *Span) AsBlock() *Block {
	return &Block{Type: s.Type, ID: s.Key, Fields: s.Fields}
}

// Block is one paragraph-level unit: a text block or a custom object.
type Block struct {
	Type      string
	ID        string
	Style     string
	Children  []Span
	MarkDefs  []MarkDef
	ListType  string
	ListLevel int
	Fields    map[string]any
}

func (*Block) Kind() Kind { return KindBlock }
func (*Block) node()      {}

// IsText reports whether the block is a text block (as opposed to a custom object).
func (b *Block) IsText() bool {
	return b.Type == "" || b.Type == TypeBlock
}

// IsListItem reports whether the block belongs to a list.
func (b *Block) IsListItem() bool {
	return b.IsText() && b.ListType != ""
}

// Level returns the list level, clamped to at least 1.
func (b *Block) Level() int {
	if b.ListLevel < 1 {
		return 1
	}
	return b.ListLevel
}

// StyleOrDefault returns the block style, "normal" when unset.
func (b *Block) StyleOrDefault() string {
	if b.Style == "" {
		return StyleNormal
	}
	return b.Style
}

// MarkDef looks up the mark definition with the given id.
func (b *Block) MarkDef(id string) (*MarkDef, bool) {
	for i := range b.MarkDefs {
		if b.MarkDefs[i].ID == id {
			return &b.MarkDefs[i], true
		}
	}
	return nil, false
}

// PlainText concatenates the text of all span children.
func (b *Block) PlainText() string {
	var sb strings.Builder
	for i := range b.Children {
		sb.WriteString(b.Children[i].Text)
	}
	return sb.String()
}

// String returns the named custom field when it holds a string.
func (b *Block) String(field string) string {
	s, _ := b.Fields[field].(string)
	return s
}

// ListNode groups consecutive list items of one type at one nesting depth.
type ListNode struct {
	ID       string
	ListType string
	Level    int
	Items    []*ListItemNode
}

func (*ListNode) Kind() Kind { return KindList }
func (*ListNode) node()      {}

// ListItemNode wraps exactly one list block plus the lists nested under it.
type ListItemNode struct {
	ID       string
	Block    *Block
	Children []Node
}

func (*ListItemNode) Kind() Kind { return KindListItem }
func (*ListItemNode) node()      {}

// MarkNode wraps the run of content sharing one mark at one nesting depth.
// Def is set when MarkID names a MarkDef of the enclosing block.
type MarkNode struct {
	MarkID   string
	Def      *MarkDef
	Children []Node
}

func (*MarkNode) Kind() Kind { return KindMark }
func (*MarkNode) node()      {}

// MarkType is the registry key for the mark: the annotation type when the
// mark resolves to a MarkDef, the decorator name otherwise.
func (m *MarkNode) MarkType() string {
	if m.Def != nil {
		return m.Def.Type
	}
	return m.MarkID
}

// Leaves returns the text spans under n in document order.
func Leaves(n Node) []*Span {
	var out []*Span
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Span:
			out = append(out, v)
		case *MarkNode:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}
