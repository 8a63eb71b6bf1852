// Package vdom is a host producing a plain, serialisable element tree.
package vdom

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blockrender/internal/host"
)

// Node is an element, a text node (Tag empty, Text set) or a fragment
// (Tag and Text empty).
type Node struct {
	Tag      string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsFragment reports whether n groups children without an element.
func (n *Node) IsFragment() bool {
	return n != nil && n.Tag == "" && n.Text == ""
}

// TextContent concatenates all text below n.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Tag == "" && n.Text != "" {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// FindAll returns every element below (and including) n with the given tag,
// in document order.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	if n.Tag == tag {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(tag)...)
	}
	return out
}

// String prints n as compact HTML-like markup without escaping. Attributes are
// sorted; fragments print their children only.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		sb.WriteString(n.Text)
		for _, c := range n.Children {
			c.write(sb)
		}
		return
	}
	sb.WriteString("<" + n.Tag)
	for _, k := range host.Attrs(n.Attrs).Keys() {
		sb.WriteString(" " + k + `="` + n.Attrs[k] + `"`)
	}
	sb.WriteString(">")
	for _, c := range n.Children {
		c.write(sb)
	}
	sb.WriteString("</" + n.Tag + ">")
}

// Host implements host.Host[*Node].
type Host struct{}

var _ host.Host[*Node] = Host{}

// New returns a vdom host.
func New() Host { return Host{} }

func (Host) Element(tag string, attrs host.Attrs, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: splice(children)}
	if len(attrs) > 0 {
		n.Attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			n.Attrs[k] = v
		}
	}
	return n
}

func (Host) Text(s string) *Node { return &Node{Text: s} }

func (Host) Fragment(children ...*Node) *Node {
	return &Node{Children: splice(children)}
}

func splice(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		switch {
		case c == nil:
		case c.IsFragment():
			out = append(out, c.Children...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// WriteJSON writes n as indented JSON.
func WriteJSON(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// WriteYAML writes n as YAML.
func WriteYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}
