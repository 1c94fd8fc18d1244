// Package config loads costplanner settings. Priority, lowest first:
// defaults, TOML file, .env, environment variables, CLI flags (applied by
// the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "COSTPLANNER_"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Pricing PricingConfig `toml:"pricing"`
	Trend   TrendConfig   `toml:"trend"`
	Report  ReportConfig  `toml:"report"`
}

type ServerConfig struct {
	Port            int     `toml:"port"`
	Host            string  `toml:"host"`
	RateLimit       float64 `toml:"rate_limit"` // requests per second, 0 disables
	RateBurst       int     `toml:"rate_burst"`
	ShutdownSeconds int     `toml:"shutdown_seconds"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text" or "json"
}

// PricingConfig points at an alternative pricing table. Empty means the
// built-in table.
type PricingConfig struct {
	File string `toml:"file"`
}

// TrendConfig fixes the history seed. Zero draws a fresh seed per request.
type TrendConfig struct {
	Seed uint64 `toml:"seed"`
}

type ReportConfig struct {
	Language string `toml:"language"` // BCP 47 tag for number grouping
}

// NewDefaultConfig returns the configuration used when nothing overrides it.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "localhost",
			RateLimit:       20,
			RateBurst:       40,
			ShutdownSeconds: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			Language: "tr",
		},
	}
}

// Load reads path (optional), then .env files in the working directory,
// then COSTPLANNER_* environment variables.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv(EnvPrefix + "PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = p
	}
	if host := os.Getenv(EnvPrefix + "HOST"); host != "" {
		cfg.Server.Host = host
	}
	if limit := os.Getenv(EnvPrefix + "RATE_LIMIT"); limit != "" {
		v, err := strconv.ParseFloat(limit, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		cfg.Server.RateLimit = v
	}
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv(EnvPrefix + "LOG_FORMAT"); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}
	if file := os.Getenv(EnvPrefix + "PRICING_FILE"); file != "" {
		cfg.Pricing.File = file
	}
	if seed := os.Getenv(EnvPrefix + "TREND_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%sTREND_SEED: %w", EnvPrefix, err)
		}
		cfg.Trend.Seed = v
	}
	if lang := os.Getenv(EnvPrefix + "REPORT_LANGUAGE"); lang != "" {
		cfg.Report.Language = lang
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535 (got %d)", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be >= 0 (got %v)", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("server.rate_burst must be >= 1 when rate limiting (got %d)", c.Server.RateBurst))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not text or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Addr is the listen address host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
