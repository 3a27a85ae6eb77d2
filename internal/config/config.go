// Package config resolves lessonreview settings from defaults, an optional
// YAML file and LESSONREVIEW_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/schoolofai/lessonreview/internal/review"
)

// Environment variables.
const (
	EnvDB           = "LESSONREVIEW_DB"
	EnvLog          = "LESSONREVIEW_LOG"
	EnvLimit        = "LESSONREVIEW_LIMIT"
	EnvUpcomingDays = "LESSONREVIEW_UPCOMING_DAYS"
	EnvConfig       = "LESSONREVIEW_CONFIG"
)

// MaxUpcomingDays bounds the upcoming lookahead window.
const MaxUpcomingDays = 365

// Config holds all lessonreview configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath string `yaml:"db"`

	// LogMode selects the logger: "development", "production" or "quiet".
	// Default: "quiet".
	LogMode string `yaml:"log"`

	Review ReviewConfig `yaml:"review"`
}

// ReviewConfig holds the review service limits.
type ReviewConfig struct {
	DefaultLimit int `yaml:"default_limit"` // Default: 5
	StatsLimit   int `yaml:"stats_limit"`   // Default: 10
	UpcomingDays int `yaml:"upcoming_days"` // Default: 14
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	d := review.DefaultConfig()
	return Config{
		LogMode: "quiet",
		Review: ReviewConfig{
			DefaultLimit: d.DefaultLimit,
			StatsLimit:   d.StatsLimit,
			UpcomingDays: d.UpcomingDays,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	err := cfg.applyEnv()
	return cfg, err
}

// Load resolves the full configuration. The file at path, or at
// $LESSONREVIEW_CONFIG when path is empty, is optional; environment
// variables override it.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if p := os.Getenv(EnvDB); p != "" {
		c.DBPath = p
	}
	if m := os.Getenv(EnvLog); m != "" {
		c.LogMode = m
	}

	var errs []error
	if v := os.Getenv(EnvLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLimit, err))
		} else {
			c.Review.DefaultLimit = n
		}
	}
	if v := os.Getenv(EnvUpcomingDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvUpcomingDays, err))
		} else {
			c.Review.UpcomingDays = n
		}
	}
	return errors.Join(errs...)
}

// Validate checks limits and the log mode.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production", "quiet":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	if c.Review.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", c.Review.DefaultLimit)
	}
	if c.Review.StatsLimit <= 0 {
		return fmt.Errorf("stats limit must be positive, got %d", c.Review.StatsLimit)
	}
	if c.Review.UpcomingDays <= 0 || c.Review.UpcomingDays > MaxUpcomingDays {
		return fmt.Errorf("upcoming days must be in [1, %d], got %d", MaxUpcomingDays, c.Review.UpcomingDays)
	}
	return nil
}

// ServiceConfig returns the review service limits.
func (c Config) ServiceConfig() review.Config {
	return review.Config{
		DefaultLimit: c.Review.DefaultLimit,
		StatsLimit:   c.Review.StatsLimit,
		UpcomingDays: c.Review.UpcomingDays,
	}
}
