// Package host defines the node-creation primitive the renderer delegates to.
//
// The render walker and the default renderers never build output themselves;
// they only call a Host. A Host decides what a "node" is for its output: an
// HTML node tree, a serialisable element tree, Markdown text.
package host

import "sort"

// Attrs are element attributes.
type Attrs map[string]string

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Host creates output nodes of type T.
type Host[T any] interface {
	// Element creates an element with the given tag, attributes and children.
	Element(tag string, attrs Attrs, children ...T) T
	// Text creates a text node. Implementations escape as their format requires.
	Text(s string) T
	// Fragment groups children without a wrapping element. Hosts splice
	// fragment children into the enclosing element.
	Fragment(children ...T) T
}
