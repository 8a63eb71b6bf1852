package render

import (
	"log/slog"
	"maps"

	"git.home.luguber.info/inful/blockrender/internal/metrics"
	"git.home.luguber.info/inful/blockrender/internal/serializers"
)

// DefaultMaxDepth bounds the walker recursion when Config.MaxDepth is unset.
const DefaultMaxDepth = 256

// Config holds the recognised render options. Every field is optional.
type Config[T any] struct {
	// Serializers are laid over the default registry with serializers.Merge.
	Serializers serializers.Overrides[T]

	ProjectID    string
	Dataset      string
	ImageOptions map[string]string

	// ContainerClass is set as the class of the element wrapping multiple
	// top-level nodes.
	ContainerClass string

	MaxDepth int
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

func (c Config[T]) options() serializers.Options {
	opts := serializers.Options{ProjectID: c.ProjectID, Dataset: c.Dataset}
	if len(c.ImageOptions) > 0 {
		opts.ImageOptions = maps.Clone(c.ImageOptions)
	}
	return opts
}

func (c Config[T]) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c Config[T]) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Config[T]) recorder() metrics.Recorder {
	if c.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return c.Recorder
}
