package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk application configuration. Scheduling preferences
// such as the day window live in the database settings table instead.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`
	// LogFile receives the structured log. The terminal belongs to the UI.
	LogFile string `yaml:"log_file"`
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ExportDir is where CSV, JSON and ICS exports are written.
	ExportDir string `yaml:"export_dir"`
}

// DefaultDir is the zenith directory under the user config dir
// (~/.config/zenith on Linux), or the working directory if that cannot be
// resolved.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "zenith")
}

func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		DBPath:    filepath.Join(dir, "zenith.db"),
		LogFile:   filepath.Join(dir, "zenith.log"),
		LogLevel:  "info",
		ExportDir: defaultExportDir(),
	}
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Normalize fills empty fields with defaults so older or partial files
// still load.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		c.LogLevel = def.LogLevel
	}
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
}

// Load reads the YAML config at path. A missing file is created with the
// defaults and those defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path through a temp file and rename. The result is
// always 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".zenith-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// EnsureExportDir creates ExportDir so a fresh ZENITH_EXPORT_DIR works on
// the first export.
func (c *Config) EnsureExportDir() error {
	if c.ExportDir == "" {
		return errors.New("export dir is empty")
	}
	return os.MkdirAll(c.ExportDir, 0o755)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
