package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
}

type StorageConfig struct {
	// Path of the SQLite file. Empty means ~/.sendit/sendit.db.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DisplayConfig struct {
	RecentLimit int `yaml:"recent_limit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "warn"},
		Display: DisplayConfig{RecentLimit: 20},
	}
}

// DefaultPath returns ~/.sendit/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".sendit", "config.yaml"), nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults are used instead.
// Env vars use the prefix SENDIT_:
//
//	SENDIT_DB_PATH, SENDIT_LOG_LEVEL, SENDIT_RECENT_LIMIT
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// no file, keep defaults
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SENDIT_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("SENDIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SENDIT_RECENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Display.RecentLimit = n
		}
	}
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validate() error {
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Display.RecentLimit < 1 {
		return fmt.Errorf("display.recent_limit must be at least 1")
	}
	return nil
}
