package blocks

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
)

const linkDoc = `[
  {
    "_type": "block",
    "_key": "a1",
    "style": "h2",
    "markDefs": [{"_key": "lnk", "_type": "link", "href": "https://example.com"}],
    "children": [
      {"_type": "span", "text": "Go ", "marks": ["strong"]},
      {"_type": "span", "text": "here", "marks": ["strong", "lnk"]}
    ]
  },
  {"_type": "block", "listItem": "bullet", "level": 2, "children": [{"text": "item"}]},
  {"_type": "image", "_key": "img", "asset": {"_ref": "image-abc-10x20-png"}}
]`

func TestDecode_Array(t *testing.T) {
	doc, err := Decode(strings.NewReader(linkDoc))
	require.NoError(t, err)
	require.Len(t, doc, 3)

	first := doc[0]
	require.Equal(t, "a1", first.ID)
	require.Equal(t, "h2", first.Style)
	require.Len(t, first.Children, 2)
	require.Equal(t, []string{"strong", "lnk"}, first.Children[1].Marks)
	def, ok := first.MarkDef("lnk")
	require.True(t, ok)
	require.Equal(t, "link", def.Type)
	require.Equal(t, "https://example.com", def.String("href"))
	require.Equal(t, "Go here", first.PlainText())

	list := doc[1]
	require.True(t, list.IsListItem())
	require.Equal(t, 2, list.Level())
	require.Equal(t, TypeSpan, list.Children[0].Type)
	require.Empty(t, list.ID)

	img := doc[2]
	require.False(t, img.IsText())
	asset, ok := img.Fields["asset"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "image-abc-10x20-png", asset["_ref"])
}

func TestDecode_SingleObject(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"_type":"block","children":[{"_type":"span","text":"hi"}]}`))
	require.NoError(t, err)
	require.Len(t, doc, 1)
	require.Equal(t, "hi", doc[0].PlainText())
	require.Equal(t, StyleNormal, doc[0].StyleOrDefault())
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"_type":`))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDecode_NonObjectEntriesAreSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	doc, err := Decode(strings.NewReader(`[
	  {"_type": "block", "_key": "a", "markDefs": ["oops", {"_key": "l", "_type": "link"}]},
	  42,
	  {"_type": "block", "_key": "c", "children": [{"text": "x"}, 7]}
	]`), WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, doc, 2)
	require.Equal(t, "a", doc[0].ID)
	require.Equal(t, "c", doc[1].ID)
	require.Len(t, doc[0].MarkDefs, 1)
	require.Equal(t, "x", doc[1].PlainText())

	out := logs.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "path=[1]")
	require.Contains(t, out, "path=[0].markDefs[0]")
	require.Contains(t, out, "path=[2].children[1]")
}

func TestDecode_BareStringSpans(t *testing.T) {
	doc, err := Decode(strings.NewReader(
		`[{"_type":"block","children":["plain text ",{"_type":"span","text":"bold","marks":["strong"]}]}]`))
	require.NoError(t, err)
	require.Len(t, doc, 1)
	require.Equal(t, []Span{
		{Type: TypeSpan, Text: "plain text "},
		{Type: TypeSpan, Text: "bold", Marks: []string{"strong"}},
	}, doc[0].Children)
	require.Equal(t, ClassSpan, Classify(&doc[0].Children[0]))
}

func TestDecode_ScalarDocumentIsRejected(t *testing.T) {
	_, err := Decode(strings.NewReader(`42`))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDecode_MissingFieldsDegrade(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"children":[{"marks":["em", 3]}]}]`))
	require.NoError(t, err)
	require.Len(t, doc, 1)
	require.Equal(t, TypeBlock, doc[0].Type)
	require.Equal(t, "", doc[0].Children[0].Text)
	require.Equal(t, []string{"em"}, doc[0].Children[0].Marks)
}

func TestDecodeYAML(t *testing.T) {
	src := `
- _type: block
  _key: y1
  listItem: number
  level: 0
  children:
    - _type: span
      text: one
      marks: [em]
- _type: block
  children:
    - _type: mention
      user: gopher
`
	doc, err := DecodeYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc, 2)
	require.Equal(t, 1, doc[0].Level())
	require.Equal(t, "number", doc[0].ListType)

	inline := doc[1].Children[0]
	require.True(t, inline.IsInlineObject())
	require.Equal(t, "gopher", inline.Fields["user"])
	require.Equal(t, ClassBlock, Classify(&inline))
}

func TestDecodeYAML_Empty(t *testing.T) {
	doc, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, doc)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want Class
	}{
		{"list", &ListNode{}, ClassList},
		{"list item", &ListItemNode{}, ClassListItem},
		{"mark", &MarkNode{MarkID: "em"}, ClassSpan},
		{"bare span", &Span{Text: "x"}, ClassSpan},
		{"typed span", &Span{Type: TypeSpan}, ClassSpan},
		{"inline object with marks", &Span{Type: "ref", Marks: []string{"em"}}, ClassSpan},
		{"block", &Block{Type: TypeBlock}, ClassBlock},
		{"custom object", &Block{Type: "image"}, ClassBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.node))
		})
	}
}
