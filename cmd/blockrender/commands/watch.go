package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/metrics"
	"git.home.luguber.info/inful/blockrender/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Input    string        `arg:"" help:"Block document to watch (JSON or YAML by extension)"`
	Output   string        `short:"o" required:"" help:"Output file rewritten after every change"`
	Format   string        `short:"f" help:"Output format: html, json, yaml or markdown. Overrides output.format."`
	Debounce time.Duration `help:"Quiet period before re-rendering" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	if err := root.setup(g); err != nil {
		return err
	}
	if w.Input == stdio {
		return errors.ValidationError("watch needs a file, not stdin").Build()
	}
	format, err := resolveFormat(w.Format, g.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := newPipeline(g.Config, format, g.Logger, metrics.NoopRecorder{})
	fw, err := watch.New(w.Input, func(ctx context.Context) error {
		return p.run(ctx, w.Input, w.Output)
	}, watch.WithDebounce(w.Debounce), watch.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	if err := fw.Run(ctx); err != nil {
		return err
	}
	g.Logger.Info("Watcher stopped")
	return nil
}
