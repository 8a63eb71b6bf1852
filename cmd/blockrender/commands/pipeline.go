package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/blockrender/internal/blocks"
	"git.home.luguber.info/inful/blockrender/internal/config"
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/host/htmlhost"
	"git.home.luguber.info/inful/blockrender/internal/host/mdhost"
	"git.home.luguber.info/inful/blockrender/internal/host/vdom"
	"git.home.luguber.info/inful/blockrender/internal/logfields"
	"git.home.luguber.info/inful/blockrender/internal/metrics"
	"git.home.luguber.info/inful/blockrender/internal/render"
)

// stdio names standard input or output in place of a path.
const stdio = "-"

// pipeline reads a block document, renders it with the host matching the
// output format and writes the result.
type pipeline struct {
	cfg      *config.Config
	format   config.OutputFormat
	logger   *slog.Logger
	recorder metrics.Recorder
	stdin    io.Reader
	stdout   io.Writer
}

func newPipeline(cfg *config.Config, format config.OutputFormat, logger *slog.Logger, rec metrics.Recorder) *pipeline {
	return &pipeline{
		cfg:      cfg,
		format:   format,
		logger:   logger,
		recorder: rec,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
}

// run renders input to output. Each call gets its own run id in the logs.
func (p *pipeline) run(_ context.Context, input, output string) error {
	start := time.Now()
	logger := p.logger.With(logfields.RunID(uuid.NewString()), logfields.Path(input), logfields.Format(string(p.format)))

	doc, err := p.read(input, logger)
	if err != nil {
		return err
	}
	logger.Debug("Decoded block document", logfields.NodeCount(len(doc)))

	var buf bytes.Buffer
	if err := p.render(&buf, doc, logger); err != nil {
		return err
	}
	if err := p.write(output, buf.Bytes()); err != nil {
		return err
	}

	logger.Info("Rendered document",
		logfields.NodeCount(len(doc)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func (p *pipeline) read(input string, logger *slog.Logger) ([]blocks.Block, error) {
	opt := blocks.WithLogger(logger)
	if input == stdio {
		return blocks.Decode(p.stdin, opt)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, errors.FileSystemError("failed to open input").
			WithContext("path", input).
			WithCause(err).
			Build()
	}
	defer func() { _ = f.Close() }()

	var doc []blocks.Block
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		doc, err = blocks.DecodeYAML(f, opt)
	default:
		doc, err = blocks.Decode(f, opt)
	}
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			if _, has := ce.Context().Get("path"); !has {
				return nil, ce.WithContext("path", input)
			}
		}
		return nil, err
	}
	return doc, nil
}

func renderConfig[T any](cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) render.Config[T] {
	return render.Config[T]{
		ProjectID:      cfg.Image.ProjectID,
		Dataset:        cfg.Image.Dataset,
		ImageOptions:   cfg.Image.Options,
		ContainerClass: cfg.Output.ContainerClass,
		MaxDepth:       cfg.Render.MaxDepth,
		Logger:         logger,
		Recorder:       rec,
	}
}

func (p *pipeline) render(w io.Writer, doc []blocks.Block, logger *slog.Logger) error {
	switch p.format {
	case config.FormatJSON, config.FormatYAML:
		out, err := render.Render(vdom.New(), doc, renderConfig[*vdom.Node](p.cfg, logger, p.recorder))
		if err != nil {
			return err
		}
		if p.format == config.FormatYAML {
			return vdom.WriteYAML(w, out)
		}
		return vdom.WriteJSON(w, out)
	case config.FormatMarkdown:
		out, err := render.Render(mdhost.New(), doc, renderConfig[string](p.cfg, logger, p.recorder))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		out, err := render.Render(htmlhost.New(), doc, renderConfig[*html.Node](p.cfg, logger, p.recorder))
		if err != nil {
			return err
		}
		s, err := htmlhost.Render(out)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	}
}

func (p *pipeline) write(output string, data []byte) error {
	if output == "" || output == stdio {
		_, err := p.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write output").
			WithContext("path", output).
			WithCause(err).
			Build()
	}
	return nil
}
