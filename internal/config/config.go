// Package config loads the haulbook.yaml project file and the
// environment overlay used for secrets and deployment settings.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at a project root.
const FileName = "haulbook.yaml"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config represents the top-level haulbook.yaml configuration.
type Config struct {
	Company  CompanyConfig  `yaml:"company"`
	Postings PostingsConfig `yaml:"postings"`
	Accounts AccountsConfig `yaml:"accounts"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
	Git      GitConfig      `yaml:"git"`
}

// CompanyConfig identifies the carrier company.
type CompanyConfig struct {
	Name  string `yaml:"name"`
	TaxID string `yaml:"tax_id,omitempty"`
}

// PostingsConfig controls the posting journal.
type PostingsConfig struct {
	// Root is the directory holding postings/YYYY/MM, relative to the project root.
	Root string `yaml:"root"`
}

// AccountsConfig locates the chart of accounts.
type AccountsConfig struct {
	Chart string `yaml:"chart"`
}

// StoreConfig selects where finalized contracts are written.
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// LoggingConfig mirrors logger.LogConfig.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GitConfig controls the git audit trail of the project directory.
type GitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Env carries settings read from the process environment (and .env).
type Env struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"haulbook"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	LogLevel string `envconfig:"LOG_LEVEL"`
}

// ConnectionString builds a postgres URL from the DB settings.
func (e *Env) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		e.DBUser, e.DBPassword, e.DBHost, e.DBPort, e.DBName, e.DBSSLMode)
}

// LoadEnv reads HAULBOOK_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("haulbook", &env); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return &env, nil
}

// Apply overlays environment settings onto cfg.
func (e *Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}
}

// Load reads a haulbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	return &Config{
		Company:  CompanyConfig{Name: companyName},
		Postings: PostingsConfig{Root: "."},
		Accounts: AccountsConfig{Chart: "accounts/chart-of-accounts.csv"},
		Store:    StoreConfig{Driver: DriverMemory},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Git: GitConfig{
			AuthorName:  "Haulbook",
			AuthorEmail: "books@haulbook.local",
		},
	}
}
