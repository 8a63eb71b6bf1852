package config

import (
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/foundation/normalization"
)

// OutputFormat selects the host the CLI renders with.
type OutputFormat string

const (
	FormatHTML     OutputFormat = "html"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatMarkdown OutputFormat = "markdown"
)

var outputFormatNormalizer = normalization.NewNormalizer(map[string]OutputFormat{
	"html":     FormatHTML,
	"json":     FormatJSON,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
}, FormatHTML)

// ParseOutputFormat accepts the format names and their short aliases.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return parseEnum(outputFormatNormalizer, "output.format", raw)
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

func parseEnum[T comparable](n *normalization.Normalizer[T], field, raw string) (T, error) {
	v, err := n.Parse(raw)
	if err != nil {
		return v, errors.ConfigError("invalid "+field).
			WithContext("field", field).
			WithContext("value", raw).
			WithCause(err).
			Build()
	}
	return v, nil
}

// normalize rewrites the enum fields of cfg into their canonical form.
// Unknown output formats are rejected; log settings fall back to defaults.
func normalize(cfg *Config) error {
	format, err := ParseOutputFormat(string(cfg.Output.Format))
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	if cfg.Logging.Level != "" {
		cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	}
	if cfg.Logging.Format != "" {
		cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	}
	return nil
}
