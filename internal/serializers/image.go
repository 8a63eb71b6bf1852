package serializers

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
)

// ImageCDN is the base URL image assets are served from.
const ImageCDN = "https://cdn.sanity.io/images"

// ImageURL builds the CDN URL of an image block's asset.
//
// An asset carrying a "url" is used as is; otherwise the asset reference
// ("image-<id>-<width>x<height>-<format>") is combined with the project id and
// dataset. Image options become sorted query parameters.
func ImageURL(b *blocks.Block, opts Options) (string, error) {
	asset, ok := b.Fields["asset"].(map[string]any)
	if !ok {
		return "", errors.ValidationError("image has no asset").WithContext("block_id", b.ID).Build()
	}

	query := ""
	if len(opts.ImageOptions) > 0 {
		v := url.Values{}
		for k, val := range opts.ImageOptions {
			v.Set(k, val)
		}
		query = "?" + v.Encode()
	}

	if u, ok := asset["url"].(string); ok && u != "" {
		return u + query, nil
	}

	if opts.ProjectID == "" || opts.Dataset == "" {
		return "", errors.ValidationError("image URL needs a project id and dataset").WithContext("block_id", b.ID).Build()
	}

	ref, _ := asset["_ref"].(string)
	if ref == "" {
		ref, _ = asset["_id"].(string)
	}
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return "", errors.ValidationError("malformed image asset reference").
			WithContext("block_id", b.ID).
			WithContext("ref", ref).
			Build()
	}

	return ImageCDN + "/" + url.PathEscape(opts.ProjectID) + "/" + url.PathEscape(opts.Dataset) + "/" +
		parts[1] + "-" + parts[2] + "." + parts[3] + query, nil
}
