// Package markstree turns a block's flat span sequence, where every span
// carries its own ordered mark list, into a tree of nested mark nodes.
package markstree

import (
	"slices"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
)

// entry pairs a span with the marks not yet peeled off at the current depth.
type entry struct {
	span  *blocks.Span
	marks []string
}

// Build returns the marks tree for b's children. Reading the leaves left to
// right reproduces the children's text in order.
//
// At each depth the first unprocessed span's leading remaining mark is chosen.
// The maximal run of consecutive spans whose remaining marks contain that mark
// (anywhere, order within a span does not matter) becomes one MarkNode; the
// mark is removed from each member and the run is built recursively. Spans
// with no remaining marks are emitted as leaves.
//
// Mark ids naming a MarkDef of b are resolved onto the MarkNode.
func Build(b *blocks.Block) []blocks.Node {
	entries := make([]entry, len(b.Children))
	for i := range b.Children {
		entries[i] = entry{span: &b.Children[i], marks: dedupe(b.Children[i].Marks)}
	}
	return build(b, entries)
}

func build(b *blocks.Block, entries []entry) []blocks.Node {
	out := make([]blocks.Node, 0, len(entries))
	for i := 0; i < len(entries); {
		if len(entries[i].marks) == 0 {
			out = append(out, entries[i].span)
			i++
			continue
		}

		mark := entries[i].marks[0]
		j := i
		for j < len(entries) && slices.Contains(entries[j].marks, mark) {
			j++
		}

		group := make([]entry, j-i)
		for k := i; k < j; k++ {
			group[k-i] = entry{span: entries[k].span, marks: without(entries[k].marks, mark)}
		}

		node := &blocks.MarkNode{MarkID: mark, Children: build(b, group)}
		if def, ok := b.MarkDef(mark); ok {
			node.Def = def
		}
		out = append(out, node)
		i = j
	}
	return out
}

func dedupe(marks []string) []string {
	out := make([]string, 0, len(marks))
	for _, m := range marks {
		if m != "" && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func without(marks []string, mark string) []string {
	out := make([]string, 0, len(marks))
	for _, m := range marks {
		if m != mark {
			out = append(out, m)
		}
	}
	return out
}
