// Package listnest regroups flat, leveled list-item blocks into nested
// List/ListItem trees.
package listnest

import "git.home.luguber.info/inful/blockrender/internal/blocks"

// ListIDSuffix is appended to the id of a list's first item to form the list id.
const ListIDSuffix = "-parent"

type frame struct {
	list  *blocks.ListNode
	level int
}

// Nest replaces every maximal run of consecutive list-item blocks with a
// ListNode tree and passes all other blocks through in their original order.
//
// The scan keeps a stack of open lists:
//   - a non-list block closes every open list;
//   - an item matching the innermost list's type and level is appended to it;
//   - a deeper item opens one nested list under the innermost list's last item,
//     whatever the size of the level jump;
//   - a shallower item closes lists until the innermost one is no deeper than
//     the item. A list at the same level and type takes the item; a list at the
//     same level but another type is closed and a sibling list is opened in its
//     place; a shallower list gets a new nested list.
//
// Levels below 1 count as 1.
func Nest(in []blocks.Block) []blocks.Node {
	out := make([]blocks.Node, 0, len(in))
	var stack []frame

	for i := range in {
		b := &in[i]
		if !b.IsListItem() {
			stack = stack[:0]
			out = append(out, b)
			continue
		}

		level := b.Level()
		for len(stack) > 0 && stack[len(stack)-1].level > level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.level == level {
				if top.list.ListType == b.ListType {
					appendItem(top.list, b)
					continue
				}
				stack = stack[:len(stack)-1]
			}
		}

		list := &blocks.ListNode{
			ID:       b.ID + ListIDSuffix,
			ListType: b.ListType,
			Level:    level,
		}
		if len(stack) == 0 {
			out = append(out, list)
		} else {
			parent := stack[len(stack)-1].list
			last := parent.Items[len(parent.Items)-1]
			last.Children = append(last.Children, list)
		}
		stack = append(stack, frame{list: list, level: level})
		appendItem(list, b)
	}

	return out
}

func appendItem(list *blocks.ListNode, b *blocks.Block) {
	list.Items = append(list.Items, &blocks.ListItemNode{ID: b.ID, Block: b})
}
