// Package cliconfig handles configuration for the forgemetrics CLI:
// defaults, TOML file, FORGEMETRICS_* environment variables and flag
// overrides, applied in that order of increasing precedence.
package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/forgemetrics/analytics-go/pkg/client"
)

// Config holds CLI configuration for the forgemetrics tool.
type Config struct {
	SecretKey    string
	BaseURL      string
	PlatformType string

	Verbose          bool
	InsecureTestTLS  bool
	AnalyticsEnabled bool
	WatchConfig      bool

	HTTPTimeout       time.Duration
	HeartbeatInterval time.Duration

	ExcludedPlayers []string

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:           client.DefaultBaseURL,
		PlatformType:      string(client.PlatformBukkit),
		AnalyticsEnabled:  true,
		HTTPTimeout:       30 * time.Second,
		HeartbeatInterval: time.Minute,
		LogLevel:          "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = client.DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	switch client.PlatformType(c.PlatformType) {
	case client.PlatformBukkit, client.PlatformBungeeCord, client.PlatformVelocity,
		client.PlatformFabric, client.PlatformForge:
	default:
		return fmt.Errorf("unknown platform type %q", c.PlatformType)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive")
	}

	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is skipped when its flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value if present and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration sets a duration value if positive and flag not changed.
func (s *configSetter) setDuration(flag string, value time.Duration, dst *time.Duration) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDurationString parses and sets a duration given as a string.
func (s *configSetter) setDurationString(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setStrings sets a string slice if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}
