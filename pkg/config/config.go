package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/onix-analytics/profiler-engine/pkg/profiler"
)

// Config holds all configuration for the profiler engine. Values come from
// a YAML file (config.yaml) with environment variable overrides; secrets
// (the database password) must only come from environment variables.
type Config struct {
	// LogLevel is the zap level for the CLI logger.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Profiler ProfilerConfig `yaml:"profiler"`

	// Database configures the optional Postgres datasource.
	Database DatabaseConfig `yaml:"database"`
}

// ProfilerConfig carries the profiling defaults.
type ProfilerConfig struct {
	EnableLearning   bool    `yaml:"enable_learning" env:"PROFILER_ENABLE_LEARNING" env-default:"true"`
	SampleSize       int     `yaml:"sample_size" env:"PROFILER_SAMPLE_SIZE" env-default:"100000"`
	PatternThreshold float64 `yaml:"pattern_threshold" env:"PROFILER_PATTERN_THRESHOLD" env-default:"0.8"`
}

// ProfilerOptions converts the loaded defaults into a profiler.Config.
func (c ProfilerConfig) ProfilerOptions() profiler.Config {
	return profiler.Config{
		EnableLearning:   c.EnableLearning,
		SampleSize:       c.SampleSize,
		PatternThreshold: c.PatternThreshold,
	}
}

// DatabaseConfig holds PostgreSQL datasource configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User     string `yaml:"user" env:"PGUSER" env-default:"postgres"`
	Password string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"PGDATABASE" env-default:"postgres"`
	SSLMode  string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`

	// RowLimit bounds how many rows the datasource loader fetches.
	RowLimit int `yaml:"row_limit" env:"PGROW_LIMIT" env-default:"100000"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Load reads configuration from the given YAML file with environment
// variable overrides. A missing file is not an error; configuration then
// comes from environment variables and defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}
