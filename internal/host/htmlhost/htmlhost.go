// Package htmlhost renders blocks into golang.org/x/net/html node trees.
package htmlhost

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/host"
)

// Host implements host.Host[*html.Node].
type Host struct{}

var _ host.Host[*html.Node] = Host{}

// New returns an HTML host.
func New() Host { return Host{} }

// Element creates an element node. Attributes are emitted in sorted order.
func (Host) Element(tag string, attrs host.Attrs, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, k := range attrs.Keys() {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	appendChildren(n, children)
	return n
}

// Text creates a text node; escaping happens at render time.
func (Host) Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Fragment returns a document node used as a child container.
func (Host) Fragment(children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.DocumentNode}
	appendChildren(n, children)
	return n
}

func appendChildren(parent *html.Node, children []*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Type == html.DocumentNode {
			for c.FirstChild != nil {
				gc := c.FirstChild
				c.RemoveChild(gc)
				parent.AppendChild(gc)
			}
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// Render serialises n. Fragments render as the concatenation of their children.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to serialise HTML").Build()
	}
	return sb.String(), nil
}
