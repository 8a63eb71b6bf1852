// Package keys assigns stable identifiers to blocks that arrive without one.
package keys

import (
	"strconv"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
)

// Prefix is prepended to the positional index of synthesized ids.
const Prefix = "block-"

// Assign returns a copy of in where every block lacking an id receives one
// derived from its position ("block-<index>"). Blocks that already carry an id
// are passed through unchanged. A synthesized id that would collide with any
// other id in the sequence gets a numeric suffix ("block-3-1", "block-3-2", ...)
// until it is unique. The input slice is not modified.
func Assign(in []blocks.Block) []blocks.Block {
	out := make([]blocks.Block, len(in))
	copy(out, in)

	taken := make(map[string]struct{}, len(in))
	for i := range in {
		if in[i].ID != "" {
			taken[in[i].ID] = struct{}{}
		}
	}

	for i := range out {
		if out[i].ID != "" {
			continue
		}
		id := unique(Prefix+strconv.Itoa(i), taken)
		taken[id] = struct{}{}
		out[i].ID = id
	}
	return out
}

func unique(base string, taken map[string]struct{}) string {
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
