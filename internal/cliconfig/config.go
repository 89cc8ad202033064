package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/distclient/pkg/distclient"
	"github.com/bft-labs/distclient/pkg/log"
)

// Config holds CLI configuration for distclient.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	SessionBackend string
	SessionDir     string
	Namespace      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel     string
	LogBackend   string
	WatchSession bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lib := distclient.DefaultConfig()
	return Config{
		Timeout:        lib.Timeout,
		SessionBackend: lib.SessionBackend,
		SessionDir:     lib.SessionDir,
		Namespace:      lib.Namespace,
		RedisAddr:      lib.RedisAddr,
		LogLevel:       "warn",
		LogBackend:     log.BackendZerolog,
	}
}

// Library converts the CLI configuration to the library configuration.
func (c Config) Library() distclient.Config {
	return distclient.Config{
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		SessionBackend: c.SessionBackend,
		SessionDir:     c.SessionDir,
		Namespace:      c.Namespace,
		RedisAddr:      c.RedisAddr,
		RedisPassword:  c.RedisPassword,
		RedisDB:        c.RedisDB,
	}
}

// Validate checks the configuration for errors and normalizes the base URL
// and the log level and backend names.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("base-url is required")
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogBackend = strings.ToLower(strings.TrimSpace(c.LogBackend))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogBackend {
	case "", log.BackendZerolog, log.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	lib := c.Library()
	return lib.Validate()
}

// configSetter applies values only when the matching flag was not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment value. Non-positive values are ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
