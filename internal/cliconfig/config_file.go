package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers
// for booleans so that absent TOML keys can be told apart from zero values.
type FileConfig struct {
	SecretKey         string   `toml:"secret_key"`
	BaseURL           string   `toml:"base_url"`
	PlatformType      string   `toml:"platform_type"`
	Verbose           *bool    `toml:"verbose"`
	InsecureTestTLS   *bool    `toml:"insecure_test_tls"`
	AnalyticsEnabled  *bool    `toml:"analytics_enabled"`
	WatchConfig       *bool    `toml:"watch_config"`
	HTTPTimeout       string   `toml:"http_timeout"`
	HeartbeatInterval string   `toml:"heartbeat_interval"`
	ExcludedPlayers   []string `toml:"excluded_players"`
	LogLevel          string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.forgemetrics/config.toml, when the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".forgemetrics", "config.toml")
	}
	return ""
}

// FileExists reports whether a regular file exists at path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyFileConfig applies file configuration to cfg, skipping any field
// whose flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("secret-key", fc.SecretKey, &cfg.SecretKey)
	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("platform", fc.PlatformType, &cfg.PlatformType)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
	s.setBool("insecure-test-tls", fc.InsecureTestTLS, &cfg.InsecureTestTLS)
	s.setBool("analytics-enabled", fc.AnalyticsEnabled, &cfg.AnalyticsEnabled)
	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	if err := s.setDurationString("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDurationString("heartbeat-interval", fc.HeartbeatInterval, &cfg.HeartbeatInterval); err != nil {
		return err
	}

	s.setStrings("exclude", fc.ExcludedPlayers, &cfg.ExcludedPlayers)

	return nil
}
