package serializers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/host/vdom"
)

func TestStyleTag(t *testing.T) {
	require.Equal(t, "p", StyleTag("normal"))
	require.Equal(t, "h3", StyleTag("h3"))
	require.Equal(t, "blockquote", StyleTag("blockquote"))
	require.Equal(t, "p", StyleTag("fancy"))
}

func TestDefaults_TextBlockAndUnknownType(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)

	heading := reg.Block(h, BlockProps[vnode]{Block: &blocks.Block{Type: blocks.TypeBlock, Style: "h1"}, Serializers: &reg},
		[]vnode{h.Text("Title")})
	require.Equal(t, "<h1>Title</h1>", heading.String())

	unknown := reg.Block(h, BlockProps[vnode]{Block: &blocks.Block{Type: "video"}, Serializers: &reg}, nil)
	require.Equal(t, `<div data-type="video"></div>`, unknown.String())

	inline := reg.Block(h, BlockProps[vnode]{Block: &blocks.Block{Type: "mention"}, IsInline: true, Serializers: &reg}, nil)
	require.Equal(t, `<span data-type="mention"></span>`, inline.String())
}

func TestDefaults_Lists(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)

	require.Equal(t, "<ol></ol>", reg.List(h, ListProps{Type: "number"}, nil).String())
	require.Equal(t, "<ul></ul>", reg.List(h, ListProps{Type: "bullet"}, nil).String())
	require.Equal(t, "<ul></ul>", reg.List(h, ListProps{Type: "square"}, nil).String())

	item := reg.ListItem(h, ListItemProps[vnode]{
		Block:       &blocks.Block{Style: "h2", ListType: "bullet"},
		InlineCount: 1,
		Serializers: &reg,
	}, []vnode{h.Text("big"), h.Element("ul", nil)})
	require.Equal(t, "<li><h2>big</h2><ul></ul></li>", item.String())

	plain := reg.ListItem(h, ListItemProps[vnode]{
		Block:       &blocks.Block{ListType: "bullet"},
		InlineCount: 1,
		Serializers: &reg,
	}, []vnode{h.Text("small")})
	require.Equal(t, "<li>small</li>", plain.String())
}

func TestDefaults_TextHardBreaks(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)
	out := reg.Text(h, TextProps[vnode]{Text: "a\nb\n", Serializers: &reg})
	require.Equal(t, "a<br></br>b<br></br>", out.String())
}

func TestDefaults_Marks(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)
	text := []vnode{h.Text("x")}

	link := reg.Marks[MarkLink](h, MarkProps{
		MarkType: MarkLink,
		Def:      &blocks.MarkDef{ID: "k", Type: MarkLink, Fields: map[string]any{"href": "https://go.dev"}},
	}, text)
	require.Equal(t, `<a href="https://go.dev">x</a>`, link.String())

	noHref := reg.Marks[MarkLink](h, MarkProps{MarkType: MarkLink}, text)
	require.Equal(t, "x", noHref.String())

	require.Equal(t, `<span style="text-decoration:underline">x</span>`, reg.Marks[MarkUnderline](h, MarkProps{}, text).String())
	require.Equal(t, "<del>x</del>", reg.Marks[MarkStrikeThrough](h, MarkProps{}, text).String())
}

func TestDefaults_SpanRendersMarkChildrenThroughCallback(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)
	node := &blocks.MarkNode{MarkID: "em", Children: []blocks.Node{
		&blocks.Span{Text: "a"}, &blocks.Span{Text: "b"},
	}}

	var seen []int
	out := reg.Span(h, SpanProps[vnode]{
		Node:        node,
		Serializers: &reg,
		RenderNode: func(n blocks.Node, i int) vnode {
			seen = append(seen, i)
			return h.Text(n.(*blocks.Span).Text)
		},
	})
	require.Equal(t, "<em>ab</em>", out.String())
	require.Equal(t, []int{0, 1}, seen)
}

func TestDefaults_ReportsFallbacks(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)

	var unknownTypes []string
	report := func(b *blocks.Block) { unknownTypes = append(unknownTypes, b.Type) }
	reg.Block(h, BlockProps[vnode]{Block: &blocks.Block{Type: "video"}, Serializers: &reg, OnUnknownType: report}, nil)
	reg.Block(h, BlockProps[vnode]{Block: &blocks.Block{Type: TypeImage}, Serializers: &reg, OnUnknownType: report}, nil)
	require.Equal(t, []string{"video"}, unknownTypes)

	var unknownMarks []string
	renderLeaf := func(n blocks.Node, _ int) vnode { return h.Text(n.(*blocks.Span).Text) }
	for _, node := range []*blocks.MarkNode{
		{MarkID: "ghost", Children: []blocks.Node{&blocks.Span{Text: "a"}}},
		{MarkID: "em", Children: []blocks.Node{&blocks.Span{Text: "b"}}},
	} {
		out := reg.Span(h, SpanProps[vnode]{
			Node:          node,
			Serializers:   &reg,
			RenderNode:    renderLeaf,
			OnUnknownMark: func(m *blocks.MarkNode) { unknownMarks = append(unknownMarks, m.MarkType()) },
		})
		if node.MarkID == "ghost" {
			require.Equal(t, "a", out.String())
		}
	}
	require.Equal(t, []string{"ghost"}, unknownMarks)
}
