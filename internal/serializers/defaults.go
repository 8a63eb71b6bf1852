package serializers

import (
	"strings"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/host"
)

// Mark types with a default renderer.
const (
	MarkStrong        = "strong"
	MarkEm            = "em"
	MarkCode          = "code"
	MarkUnderline     = "underline"
	MarkStrikeThrough = "strike-through"
	MarkLink          = "link"
)

// TypeImage is the block type of image objects.
const TypeImage = "image"

// ListTypeNumber is rendered as an ordered list; every other list type is unordered.
const ListTypeNumber = "number"

// Defaults returns the built-in registry for host h.
func Defaults[T any](h host.Host[T]) Registry[T] {
	return Registry[T]{
		Block:       renderBlockType[T],
		List:        renderList[T],
		ListItem:    renderListItem[T],
		Span:        renderSpan[T],
		Text:        renderText[T],
		HardBreak:   renderHardBreak[T],
		UnknownType: renderUnknownType[T],
		Types: map[string]BlockRenderer[T]{
			blocks.TypeBlock: renderTextBlock[T],
			TypeImage:        renderImage[T],
		},
		Marks: map[string]MarkRenderer[T]{
			MarkStrong:        element[T]("strong", nil),
			MarkEm:            element[T]("em", nil),
			MarkCode:          element[T]("code", nil),
			MarkUnderline:     element[T]("span", host.Attrs{"style": "text-decoration:underline"}),
			MarkStrikeThrough: element[T]("del", nil),
			MarkLink:          renderLink[T],
		},
		Container: "div",
		Empty:     h.Fragment(),
	}
}

// renderBlockType dispatches to the Types sub-registry.
func renderBlockType[T any](h host.Host[T], p BlockProps[T], children []T) T {
	typ := p.Block.Type
	if p.Block.IsText() {
		typ = blocks.TypeBlock
	}
	if r := p.Serializers.Types[typ]; r != nil {
		return r(h, p, children)
	}
	if p.OnUnknownType != nil {
		p.OnUnknownType(p.Block)
	}
	return p.Serializers.UnknownType(h, p, children)
}

var styleTags = map[string]string{
	"normal":     "p",
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"h5":         "h5",
	"h6":         "h6",
	"blockquote": "blockquote",
}

// StyleTag maps a block style to its element tag; unknown styles render as paragraphs.
func StyleTag(style string) string {
	if tag, ok := styleTags[style]; ok {
		return tag
	}
	return "p"
}

func renderTextBlock[T any](h host.Host[T], p BlockProps[T], children []T) T {
	return h.Element(StyleTag(p.Block.StyleOrDefault()), nil, children...)
}

func renderUnknownType[T any](h host.Host[T], p BlockProps[T], _ []T) T {
	tag := "div"
	if p.IsInline {
		tag = "span"
	}
	return h.Element(tag, host.Attrs{"data-type": p.Block.Type})
}

func renderImage[T any](h host.Host[T], p BlockProps[T], _ []T) T {
	attrs := host.Attrs{"alt": p.Block.String("alt")}
	if src, err := ImageURL(p.Block, p.Options); err == nil {
		attrs["src"] = src
	}
	img := h.Element("img", attrs)
	if p.IsInline {
		return img
	}
	return h.Element("figure", nil, img)
}

func renderList[T any](h host.Host[T], p ListProps, children []T) T {
	tag := "ul"
	if p.Type == ListTypeNumber {
		tag = "ol"
	}
	return h.Element(tag, nil, children...)
}

func renderListItem[T any](h host.Host[T], p ListItemProps[T], children []T) T {
	style := p.Block.StyleOrDefault()
	if style == blocks.StyleNormal || p.InlineCount > len(children) {
		return h.Element("li", nil, children...)
	}
	content := p.Serializers.Types[blocks.TypeBlock](h, BlockProps[T]{
		ID:          p.ID,
		Block:       p.Block,
		Serializers: p.Serializers,
		Options:     p.Options,
	}, children[:p.InlineCount])
	return h.Element("li", nil, append([]T{content}, children[p.InlineCount:]...)...)
}

func renderSpan[T any](h host.Host[T], p SpanProps[T]) T {
	switch n := p.Node.(type) {
	case *blocks.Span:
		return p.Serializers.Text(h, TextProps[T]{Text: n.Text, Serializers: p.Serializers})
	case *blocks.MarkNode:
		children := make([]T, len(n.Children))
		for i, c := range n.Children {
			children[i] = p.RenderNode(c, i)
		}
		r := p.Serializers.Marks[n.MarkType()]
		if r == nil {
			if p.OnUnknownMark != nil {
				p.OnUnknownMark(n)
			}
			return h.Fragment(children...)
		}
		return r(h, MarkProps{MarkID: n.MarkID, MarkType: n.MarkType(), Def: n.Def, Options: p.Options}, children)
	default:
		return h.Fragment()
	}
}

// renderText turns newlines into hard breaks.
func renderText[T any](h host.Host[T], p TextProps[T]) T {
	if !strings.Contains(p.Text, "\n") {
		return h.Text(p.Text)
	}
	lines := strings.Split(p.Text, "\n")
	parts := make([]T, 0, len(lines)*2-1)
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, p.Serializers.HardBreak(h))
		}
		if line != "" {
			parts = append(parts, h.Text(line))
		}
	}
	return h.Fragment(parts...)
}

func renderHardBreak[T any](h host.Host[T]) T {
	return h.Element("br", nil)
}

func element[T any](tag string, attrs host.Attrs) MarkRenderer[T] {
	return func(h host.Host[T], _ MarkProps, children []T) T {
		return h.Element(tag, attrs, children...)
	}
}

func renderLink[T any](h host.Host[T], p MarkProps, children []T) T {
	href := p.Def.String("href")
	if href == "" {
		return h.Fragment(children...)
	}
	return h.Element("a", host.Attrs{"href": href}, children...)
}
