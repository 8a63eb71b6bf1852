// Package config loads blockrender settings from a YAML file, .env files and
// BLOCKRENDER_* environment variables.
package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
)

// DefaultPath is the config file picked up from the working directory when
// no path is given.
const DefaultPath = "blockrender.yaml"

// Config represents the application configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Image   ImageConfig   `yaml:"image"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls what the CLI writes.
type OutputConfig struct {
	Format         OutputFormat `yaml:"format"`
	ContainerClass string       `yaml:"container_class,omitempty"`
}

// ImageConfig is handed to image renderers to build asset URLs.
type ImageConfig struct {
	ProjectID string            `yaml:"project_id,omitempty"`
	Dataset   string            `yaml:"dataset,omitempty"`
	Options   map[string]string `yaml:"options,omitempty"`
}

type RenderConfig struct {
	// MaxDepth caps node nesting; 0 selects the renderer default.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path. An empty path loads
// DefaultPath when it exists and falls back to defaults otherwise. .env
// files and environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		cfg := Default()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", path).
			WithCause(err).
			Build()
	default:
		return nil, errors.FileSystemError("failed to read config file").
			WithContext("path", path).
			WithCause(err).
			Build()
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a YAML configuration document. Unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.ConfigError("failed to parse configuration").WithCause(err).Build()
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatHTML
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func validate(cfg *Config) error {
	if cfg.Render.MaxDepth < 0 {
		return errors.ConfigError("render.max_depth must not be negative").
			WithContext("max_depth", cfg.Render.MaxDepth).
			Build()
	}
	return nil
}
