package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDB        = "ZENITH_DB"
	EnvLogLevel  = "ZENITH_LOG_LEVEL"
	EnvLogFile   = "ZENITH_LOG_FILE"
	EnvExportDir = "ZENITH_EXPORT_DIR"
)

// ApplyEnv loads the given .env files (default ".env" in the working
// directory) without clobbering variables already set, then copies any
// ZENITH_* values onto cfg. Missing .env files are not an error.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.ExportDir = v
	}
	cfg.Normalize()
	return nil
}
