// Package serverconfig provides configuration loading for the HTTP server
// (spec.md §6: "the repository also ships an HTTP server ... these are
// thin collaborators").
package serverconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// ReadTimeout bounds how long a request body may take to arrive.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds how long a response may take to write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// BatchConcurrency bounds parallel validations within a batch request.
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// CatalogueConfig locates the catalogue database and its rule-set overlay.
type CatalogueConfig struct {
	// DSN is the SQLite data source name for the catalogue database.
	DSN string `yaml:"dsn"`
	// RuleSetsPath is an optional YAML file supplying the BR13/BR28
	// catalogue-driven descriptor sets (spec.md §9).
	RuleSetsPath string `yaml:"rule_sets_path"`
	// ForbiddenProcessCSVPath names a forbidden-process CSV file. The
	// server does not read this field: cmd/foodex2server loads no
	// forbidden-process table, so its engine has no forbidden-process rows
	// or ordinals.
	ForbiddenProcessCSVPath string `yaml:"forbidden_process_csv_path"`
}

// LogConfig configures the obslog logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":8080",
			ReadTimeout:      10 * time.Second,
			WriteTimeout:     10 * time.Second,
			BatchConcurrency: 8,
		},
		Catalogue: CatalogueConfig{
			DSN: "foodex2.db",
		},
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Catalogue.DSN == "" {
		return fmt.Errorf("catalogue.dsn is required")
	}
	if c.Server.BatchConcurrency <= 0 {
		return fmt.Errorf("server.batch_concurrency must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, starting from
// DefaultConfig so an omitted field keeps its default.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
