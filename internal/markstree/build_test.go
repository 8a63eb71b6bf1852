package markstree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
)

func span(text string, marks ...string) blocks.Span {
	return blocks.Span{Type: blocks.TypeSpan, Text: text, Marks: marks}
}

// render prints a tree as mark(children...) with leaves quoted.
func render(nodes []blocks.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *blocks.Span:
			parts = append(parts, `"`+v.Text+`"`)
		case *blocks.MarkNode:
			parts = append(parts, v.MarkID+"("+render(v.Children)+")")
		}
	}
	return strings.Join(parts, " ")
}

func TestBuild_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		spans []blocks.Span
		want  string
	}{
		{"no marks", []blocks.Span{span("a"), span("b")}, `"a" "b"`},
		{"single mark", []blocks.Span{span("a", "em")}, `em("a")`},
		{"adjacent runs merge", []blocks.Span{span("a", "em"), span("b", "em")}, `em("a" "b")`},
		{
			"inner mark nests",
			[]blocks.Span{span("a", "strong"), span("b", "strong", "em"), span("c", "em")},
			`strong("a" em("b")) em("c")`,
		},
		{
			"first span's leading mark wins",
			[]blocks.Span{span("a", "em", "strong"), span("b", "strong")},
			`em(strong("a")) strong("b")`,
		},
		{
			"order within a span does not gate grouping",
			[]blocks.Span{span("a", "strong", "em"), span("b", "em", "strong")},
			`strong(em("a" "b"))`,
		},
		{
			"unmarked span breaks a run",
			[]blocks.Span{span("a", "em"), span(" "), span("b", "em")},
			`em("a") " " em("b")`,
		},
		{"duplicate marks collapse", []blocks.Span{span("a", "em", "em")}, `em("a")`},
		{"empty input", nil, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &blocks.Block{Type: blocks.TypeBlock, Children: tt.spans}
			require.Equal(t, tt.want, render(Build(b)))
		})
	}
}

func TestBuild_ResolvesMarkDefs(t *testing.T) {
	b := &blocks.Block{
		Type:     blocks.TypeBlock,
		MarkDefs: []blocks.MarkDef{{ID: "k1", Type: "link", Fields: map[string]any{"href": "/x"}}},
		Children: []blocks.Span{span("go", "k1", "strong"), span("!", "missing")},
	}
	nodes := Build(b)
	require.Len(t, nodes, 2)

	link := nodes[0].(*blocks.MarkNode)
	require.NotNil(t, link.Def)
	require.Equal(t, "link", link.MarkType())
	require.Equal(t, "/x", link.Def.String("href"))

	strong := link.Children[0].(*blocks.MarkNode)
	require.Nil(t, strong.Def)
	require.Equal(t, "strong", strong.MarkType())

	unresolved := nodes[1].(*blocks.MarkNode)
	require.Nil(t, unresolved.Def)
	require.Equal(t, "missing", unresolved.MarkType())
}

func TestBuild_DoesNotMutateSpans(t *testing.T) {
	b := &blocks.Block{Children: []blocks.Span{span("a", "em", "strong"), span("b", "strong")}}
	_ = Build(b)
	require.Equal(t, []string{"em", "strong"}, b.Children[0].Marks)
	require.Equal(t, []string{"strong"}, b.Children[1].Marks)
}

func randomBlock(r *rand.Rand) *blocks.Block {
	pool := []string{"strong", "em", "code", "lnk", "u"}
	n := r.Intn(12)
	b := &blocks.Block{Type: blocks.TypeBlock}
	for i := 0; i < n; i++ {
		var marks []string
		for _, m := range pool {
			if r.Intn(3) == 0 {
				marks = append(marks, m)
			}
		}
		r.Shuffle(len(marks), func(a, c int) { marks[a], marks[c] = marks[c], marks[a] })
		text := strings.Repeat(string(rune('a'+i)), 1+r.Intn(3))
		b.Children = append(b.Children, span(text, marks...))
	}
	return b
}

func TestBuild_TextConservation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		b := randomBlock(r)
		var got strings.Builder
		for _, n := range Build(b) {
			for _, leaf := range blocks.Leaves(n) {
				got.WriteString(leaf.Text)
			}
		}
		require.Equal(t, b.PlainText(), got.String())
	}
}

func TestBuild_MarkContainment(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		b := randomBlock(r)
		ancestors := map[*blocks.Span][]string{}
		var walk func(n blocks.Node, path []string)
		walk = func(n blocks.Node, path []string) {
			switch v := n.(type) {
			case *blocks.Span:
				ancestors[v] = append([]string(nil), path...)
			case *blocks.MarkNode:
				for _, c := range v.Children {
					walk(c, append(path, v.MarkID))
				}
			}
		}
		for _, n := range Build(b) {
			walk(n, nil)
		}

		require.Len(t, ancestors, len(b.Children))
		for k := range b.Children {
			s := &b.Children[k]
			require.ElementsMatch(t, dedupe(s.Marks), ancestors[s], "span %q", s.Text)
		}
	}
}
