// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for the
// search core, the request queue, logging and metrics.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Queue   QueueConfig   `yaml:"queue"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SearchConfig controls ranking limits and parallel aggregation.
type SearchConfig struct {
	MaxResults     int      `yaml:"maxResults"`
	ScoreMapShards int      `yaml:"scoreMapShards"`
	Parallelism    int      `yaml:"parallelism"`
	StopWords      []string `yaml:"stopWords"`
}

// QueueConfig controls the request history window and optional throttling.
// A zero RateLimit disables throttling.
type QueueConfig struct {
	HistorySize int     `yaml:"historySize"`
	RateLimit   float64 `yaml:"rateLimit"`
	RateBurst   int     `yaml:"rateBurst"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config matching the classic search server settings:
// five results per query, a 100-shard score map and a one-day request window.
func Default() *Config {
	return &Config{
		Search: DefaultSearch(),
		Queue: QueueConfig{
			HistorySize: 1440,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func DefaultSearch() SearchConfig {
	return SearchConfig{
		MaxResults:     5,
		ScoreMapShards: 100,
	}
}

// Validate rejects sizes the engine cannot work with.
func (c *Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if c.Queue.HistorySize <= 0 {
		return fmt.Errorf("queue.historySize must be positive, got %d", c.Queue.HistorySize)
	}
	if c.Queue.RateLimit < 0 {
		return fmt.Errorf("queue.rateLimit must not be negative, got %v", c.Queue.RateLimit)
	}
	return nil
}

func (s SearchConfig) Validate() error {
	if s.MaxResults <= 0 {
		return fmt.Errorf("search.maxResults must be positive, got %d", s.MaxResults)
	}
	if s.ScoreMapShards <= 0 {
		return fmt.Errorf("search.scoreMapShards must be positive, got %d", s.ScoreMapShards)
	}
	if s.Parallelism < 0 {
		return fmt.Errorf("search.parallelism must not be negative, got %d", s.Parallelism)
	}
	return nil
}

// applyEnvOverrides reads SP_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SP_SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = n
		}
	}
	if v := os.Getenv("SP_SEARCH_SCORE_MAP_SHARDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.ScoreMapShards = n
		}
	}
	if v := os.Getenv("SP_SEARCH_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Parallelism = n
		}
	}
	if v := os.Getenv("SP_SEARCH_STOP_WORDS"); v != "" {
		cfg.Search.StopWords = strings.Fields(v)
	}
	if v := os.Getenv("SP_QUEUE_HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.HistorySize = n
		}
	}
	if v := os.Getenv("SP_QUEUE_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Queue.RateLimit = f
		}
	}
	if v := os.Getenv("SP_QUEUE_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Queue.RateBurst = n
		}
	}
	if v := os.Getenv("SP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SP_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
