package keys

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
)

func ids(bs []blocks.Block) []string {
	out := make([]string, len(bs))
	for i := range bs {
		out[i] = bs[i].ID
	}
	return out
}

func TestAssign_FillsMissingPositionally(t *testing.T) {
	in := []blocks.Block{{}, {ID: "keep"}, {}}
	out := Assign(in)
	require.Equal(t, []string{"block-0", "keep", "block-2"}, ids(out))
}

func TestAssign_DoesNotMutateInput(t *testing.T) {
	in := []blocks.Block{{}, {}}
	_ = Assign(in)
	assert.Empty(t, in[0].ID)
	assert.Empty(t, in[1].ID)
}

func TestAssign_AvoidsCollisions(t *testing.T) {
	// block-0 is taken by a later block; block-1 and its first suffix are taken too.
	in := []blocks.Block{{}, {}, {ID: "block-0"}, {ID: "block-1"}, {ID: "block-1-1"}}
	out := Assign(in)
	require.Equal(t, []string{"block-0-1", "block-1-2", "block-0", "block-1", "block-1-1"}, ids(out))
}

func TestAssign_SynthesizedIDsDoNotCollideWithEachOther(t *testing.T) {
	// Position 1 synthesizes block-1; position 0 must not have claimed it.
	in := []blocks.Block{{}, {}, {ID: "block-0"}}
	out := Assign(in)
	require.Equal(t, []string{"block-0-1", "block-1", "block-0"}, ids(out))
}

func TestAssign_Uniqueness(t *testing.T) {
	for n := 0; n < 40; n++ {
		in := make([]blocks.Block, n)
		for i := range in {
			if i%3 == 0 {
				// pre-existing ids that shadow other positions' synthesized ids
				in[i].ID = fmt.Sprintf("block-%d", (i+1)%max(n, 1))
			}
		}
		out := Assign(in)
		seen := map[string]bool{}
		for i, b := range out {
			require.NotEmpty(t, b.ID)
			require.False(t, seen[b.ID], "duplicate id %q at %d (n=%d)", b.ID, i, n)
			seen[b.ID] = true
			if in[i].ID != "" {
				require.Equal(t, in[i].ID, b.ID)
			}
		}
	}
}
