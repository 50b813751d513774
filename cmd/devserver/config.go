package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the development server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (explicit -config path or LOGINPAGE_CONFIG env)
//  3. Environment variable overrides (LOGINPAGE_ prefix)
//  4. Validation
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"` // default: ":8080"

	// Database selects the backing page database.
	Database DatabaseConfig `yaml:"database"`

	// Login configures the login response handling.
	Login LoginConfig `yaml:"login"`

	// Realm is the Basic authentication realm of the fallback challenge.
	Realm string `yaml:"realm"` // default: "Development"

	// Token is the bearer token accepted by the demo auth middleware.
	Token string `yaml:"token"` // default: "dev-token"

	// ServerTiming enables Server-Timing response headers.
	ServerTiming bool `yaml:"server_timing"` // default: true

	// LogLevel sets the log level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"` // default: "debug"
}

// DatabaseConfig holds page database settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "postgres", default: "sqlite"
	DSN    string `yaml:"dsn"`    // default: shared in-memory SQLite
}

// LoginConfig holds login response settings.
type LoginConfig struct {
	Enabled      bool     `yaml:"enabled"`       // default: true
	Page         string   `yaml:"page"`          // default: "/login.html"
	ExcludePaths []string `yaml:"exclude_paths"` // path prefixes answered with the plain challenge
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Addr: ":8080",
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Login: LoginConfig{
			Enabled: true,
			Page:    "/login.html",
		},
		Realm:        "Development",
		Token:        "dev-token",
		ServerTiming: true,
		LogLevel:     "debug",
	}
}

// LoadConfig loads the configuration. Fields not present in the YAML file
// keep their default values; environment variables override both.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("LOGINPAGE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGINPAGE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOGINPAGE_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("LOGINPAGE_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOGINPAGE_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("LOGINPAGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("postgres driver requires a dsn")
	}

	if !strings.HasPrefix(c.Login.Page, "/") {
		return fmt.Errorf("login page %q must be an absolute path", c.Login.Page)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// SlogLevel maps the configured log level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
