package commands

import (
	"context"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blockrender/internal/config"
	"git.home.luguber.info/inful/blockrender/internal/logfields"
	"git.home.luguber.info/inful/blockrender/internal/metrics"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Input   string `arg:"" help:"Block document, JSON or YAML by extension ('-' reads JSON from stdin)"`
	Output  string `short:"o" help:"Output file (stdout when empty)"`
	Format  string `short:"f" help:"Output format: html, json, yaml or markdown. Overrides output.format."`
	Metrics bool   `help:"Write render metrics to stderr in Prometheus text format"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	if err := root.setup(g); err != nil {
		return err
	}
	format, err := resolveFormat(r.Format, g.Config)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if r.Metrics {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		defer func() {
			if err := metrics.WriteText(os.Stderr, reg); err != nil {
				g.Logger.Warn("Failed to write metrics", logfields.Error(err))
			}
		}()
	}

	return newPipeline(g.Config, format, g.Logger, rec).run(context.Background(), r.Input, r.Output)
}

// resolveFormat applies the --format flag over the configured format.
func resolveFormat(flag string, cfg *config.Config) (config.OutputFormat, error) {
	if flag == "" {
		return cfg.Output.Format, nil
	}
	return config.ParseOutputFormat(flag)
}
