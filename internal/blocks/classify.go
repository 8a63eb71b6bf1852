package blocks

// Class is the render dispatch category of a node.
type Class int

const (
	ClassBlock Class = iota
	ClassSpan
	ClassList
	ClassListItem
)

func (c Class) String() string {
	switch c {
	case ClassSpan:
		return "span"
	case ClassList:
		return "list"
	case ClassListItem:
		return "list-item"
	default:
		return "block"
	}
}

// Classify reports how the render walker dispatches n. Text spans and mark
// nodes are span-like; inline objects and every other block fall through to
// the generic block renderer.
func Classify(n Node) Class {
	switch v := n.(type) {
	case *ListNode:
		return ClassList
	case *ListItemNode:
		return ClassListItem
	case *MarkNode:
		return ClassSpan
	case *Span:
		if v.IsInlineObject() {
			return ClassBlock
		}
		return ClassSpan
	default:
		return ClassBlock
	}
}
