// Package config assembles dbinspect settings from the environment, an
// optional YAML file, and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/dbinspect/internal/database"
)

// Environment variables read by Load.
const (
	EnvURL         = "DATABASE_CONNECTION_URL"
	EnvURLFallback = "DIGITALOCEAN_DATABASE_URL"
	EnvConfigFile  = "DBINSPECT_CONFIG"
	EnvLogLevel    = "DBINSPECT_LOG_LEVEL"
)

// DefaultSampleWidth is the number of characters of a serialised sample row
// printed before truncation.
const DefaultSampleWidth = 200

// DefaultTables returns the tables inspected when no file overrides them.
func DefaultTables() []string {
	return []string{"users", "stores", "products", "orders", "categories"}
}

// Config holds everything a run needs. URL may be empty; reporting that is
// the inspector's job, not Load's.
type Config struct {
	URL    string `yaml:"-"`
	URLVar string `yaml:"-"` // env var the URL came from, or EnvURL when unset

	Schema         string        `yaml:"schema"`
	// Tables are matched case-sensitively: names are quoted, so a table
	// created unquoted must be listed in lower case.
	Tables         []string      `yaml:"tables"`
	SampleWidth    int           `yaml:"sample_width"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Log            LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URLVar:         EnvURL,
		Schema:         database.DefaultSchema,
		Tables:         DefaultTables(),
		SampleWidth:    DefaultSampleWidth,
		ConnectTimeout: database.DefaultConnectTimeout,
		Log:            LogConfig{Level: "warn", Format: "console"},
	}
}

// Load builds the configuration from the process environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}

	for _, name := range []string{EnvURL, EnvURLFallback} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.URL = v
			cfg.URLVar = name
			break
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if len(c.Tables) == 0 {
		return errors.New("tables must not be empty")
	}
	for _, t := range c.Tables {
		if strings.TrimSpace(t) == "" {
			return errors.New("table names must not be blank")
		}
	}
	if c.Schema == "" {
		return errors.New("schema is required")
	}
	if c.SampleWidth <= 0 {
		return fmt.Errorf("sample_width must be positive, got %d", c.SampleWidth)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be positive, got %s", c.ConnectTimeout)
	}
	return nil
}
