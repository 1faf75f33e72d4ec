// Package config provides YAML configuration parsing for cueboard.
//
// This package enables running cueboard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Main Stage
//	port: 8080
//	wait_timeout: 25s
//	shutdown_timeout: 5s
//
// Every field is optional; an empty file (or no file at all) yields a
// working default configuration.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = 8080
	defaultWaitTimeout     = 25 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	// minWaitTimeout prevents configs that degrade long-polling into a
	// tight retry loop.
	minWaitTimeout = 1 * time.Second

	// maxWaitTimeout keeps suspended requests comfortably under common
	// proxy and load-balancer idle timeouts.
	maxWaitTimeout = 5 * time.Minute
)

// Config is the root configuration structure for cueboard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML, or [Default] for the
// built-in defaults.
type Config struct {
	// Title is the page title shown on the controller and viewer.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}.
	// Defaults to "Cueboard" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// WaitTimeout is how long a long-poll request may stay suspended.
	// Accepts duration strings like "25s", "1m". Defaults to 25s.
	WaitTimeout Duration `yaml:"wait_timeout"`

	// ShutdownTimeout is how long to wait for in-flight requests on
	// shutdown. Defaults to 5s.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:            defaultPort,
		WaitTimeout:     Duration(defaultWaitTimeout),
		ShutdownTimeout: Duration(defaultShutdownTimeout),
	}
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the title. Defaults are applied
// for Port (8080), WaitTimeout (25s), and ShutdownTimeout (5s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = Duration(defaultWaitTimeout)
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	expanded, err := expandEnvVars(c.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	c.Title = expanded

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.WaitTimeout.Duration() < minWaitTimeout {
		return fmt.Errorf("wait_timeout must be at least %s, got %s", minWaitTimeout, c.WaitTimeout.Duration())
	}
	if c.WaitTimeout.Duration() > maxWaitTimeout {
		return fmt.Errorf("wait_timeout must not exceed %s, got %s", maxWaitTimeout, c.WaitTimeout.Duration())
	}

	if c.ShutdownTimeout.Duration() < time.Second {
		return fmt.Errorf("shutdown_timeout must be at least 1s, got %s", c.ShutdownTimeout.Duration())
	}
	if c.ShutdownTimeout.Duration() > time.Minute {
		return fmt.Errorf("shutdown_timeout must not exceed 1m, got %s", c.ShutdownTimeout.Duration())
	}

	return nil
}
