package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// TomlCredentials holds the five platform secrets from TOML
type TomlCredentials struct {
	APIKey       string `toml:"api_key"`
	APISecret    string `toml:"api_secret"`
	AccessToken  string `toml:"access_token"`
	AccessSecret string `toml:"access_secret"`
	BearerToken  string `toml:"bearer_token"`
}

// TomlSearch tunes search pacing and chunking
type TomlSearch struct {
	ChunkSize   int    `toml:"chunk_size"`
	MaxKeywords int    `toml:"max_keywords"`
	ChunkDelay  string `toml:"chunk_delay"`
	ErrorDelay  string `toml:"error_delay"`
	Language    string `toml:"language"`
}

// TomlStream tunes the real-time watch operation
type TomlStream struct {
	TimeLimit string `toml:"time_limit"`
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	Credentials TomlCredentials `toml:"credentials"`
	Search      TomlSearch      `toml:"search"`
	Stream      TomlStream      `toml:"stream"`
}

// Config is the parsed configuration with durations resolved.
type Config struct {
	Credentials TomlCredentials
	ChunkSize   int
	MaxKeywords int
	ChunkDelay  time.Duration
	ErrorDelay  time.Duration
	Language    string
	TimeLimit   time.Duration
}

// Default returns the configuration used when no file is given. The pacing
// constants keep roughly 0.5s of courtesy delay per chunk and an extra 0.1s
// whenever a chunk fails.
func Default() *Config {
	return &Config{
		ChunkSize:   5,
		MaxKeywords: 30,
		ChunkDelay:  500 * time.Millisecond,
		ErrorDelay:  600 * time.Millisecond,
		Language:    "en",
		TimeLimit:   60 * time.Second,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var raw TomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg := Default()
	cfg.Credentials = raw.Credentials

	if raw.Search.ChunkSize > 0 {
		cfg.ChunkSize = raw.Search.ChunkSize
	}
	if raw.Search.MaxKeywords > 0 {
		cfg.MaxKeywords = raw.Search.MaxKeywords
	}
	if raw.Search.Language != "" {
		cfg.Language = raw.Search.Language
	}

	if cfg.ChunkDelay, err = parseDuration(raw.Search.ChunkDelay, cfg.ChunkDelay); err != nil {
		return nil, fmt.Errorf("invalid search.chunk_delay: %w", err)
	}
	if cfg.ErrorDelay, err = parseDuration(raw.Search.ErrorDelay, cfg.ErrorDelay); err != nil {
		return nil, fmt.Errorf("invalid search.error_delay: %w", err)
	}
	if cfg.TimeLimit, err = parseDuration(raw.Stream.TimeLimit, cfg.TimeLimit); err != nil {
		return nil, fmt.Errorf("invalid stream.time_limit: %w", err)
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", value)
	}
	return d, nil
}
