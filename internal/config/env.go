package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables overriding file values.
const (
	EnvProjectID = "BLOCKRENDER_PROJECT_ID"
	EnvDataset   = "BLOCKRENDER_DATASET"
	EnvLogLevel  = "BLOCKRENDER_LOG_LEVEL"
	EnvFormat    = "BLOCKRENDER_FORMAT"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the .env files that exist. Variables already set in the
// process environment win.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		_ = godotenv.Load(name)
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvProjectID); v != "" {
		cfg.Image.ProjectID = v
	}
	if v := os.Getenv(EnvDataset); v != "" {
		cfg.Image.Dataset = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		format, err := ParseOutputFormat(v)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	return nil
}
