package serializers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/host/vdom"
)

func imageBlock(asset map[string]any) *blocks.Block {
	return &blocks.Block{Type: TypeImage, ID: "img", Fields: map[string]any{"asset": asset, "alt": "A cat"}}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name    string
		block   *blocks.Block
		opts    Options
		want    string
		wantErr bool
	}{
		{
			name:  "reference",
			block: imageBlock(map[string]any{"_ref": "image-abc123-640x480-png"}),
			opts:  Options{ProjectID: "proj", Dataset: "prod"},
			want:  "https://cdn.sanity.io/images/proj/prod/abc123-640x480.png",
		},
		{
			name:  "reference with options",
			block: imageBlock(map[string]any{"_ref": "image-abc123-640x480-jpg"}),
			opts:  Options{ProjectID: "proj", Dataset: "prod", ImageOptions: map[string]string{"w": "320", "fit": "max"}},
			want:  "https://cdn.sanity.io/images/proj/prod/abc123-640x480.jpg?fit=max&w=320",
		},
		{
			name:  "asset url wins",
			block: imageBlock(map[string]any{"url": "https://img.example/x.png"}),
			want:  "https://img.example/x.png",
		},
		{
			name:    "missing project",
			block:   imageBlock(map[string]any{"_ref": "image-abc123-640x480-png"}),
			opts:    Options{Dataset: "prod"},
			wantErr: true,
		},
		{
			name:    "malformed ref",
			block:   imageBlock(map[string]any{"_ref": "file-abc"}),
			opts:    Options{ProjectID: "p", Dataset: "d"},
			wantErr: true,
		},
		{
			name:    "no asset",
			block:   &blocks.Block{Type: TypeImage},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImageURL(tt.block, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.HasCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDefaults_Image(t *testing.T) {
	h := vdom.New()
	reg := Defaults[vnode](h)
	b := imageBlock(map[string]any{"_ref": "image-abc123-640x480-png"})

	fig := reg.Block(h, BlockProps[vnode]{Block: b, Serializers: &reg, Options: Options{ProjectID: "p", Dataset: "d"}}, nil)
	require.Equal(t, `<figure><img alt="A cat" src="https://cdn.sanity.io/images/p/d/abc123-640x480.png"></img></figure>`, fig.String())

	noSrc := reg.Block(h, BlockProps[vnode]{Block: b, IsInline: true, Serializers: &reg}, nil)
	require.Equal(t, `<img alt="A cat"></img>`, noSrc.String())
}
