package cliconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the tag-driven view of the FORGEMETRICS_* environment.
// Pointer fields stay nil when the variable is unset, so absent variables
// never clobber file values.
type envConfig struct {
	SecretKey         string        `env:"FORGEMETRICS_SECRET_KEY"`
	BaseURL           string        `env:"FORGEMETRICS_BASE_URL"`
	PlatformType      string        `env:"FORGEMETRICS_PLATFORM_TYPE"`
	Verbose           *bool         `env:"FORGEMETRICS_VERBOSE"`
	InsecureTestTLS   *bool         `env:"FORGEMETRICS_INSECURE_TEST_TLS"`
	AnalyticsEnabled  *bool         `env:"FORGEMETRICS_ANALYTICS_ENABLED"`
	WatchConfig       *bool         `env:"FORGEMETRICS_WATCH_CONFIG"`
	HTTPTimeout       time.Duration `env:"FORGEMETRICS_HTTP_TIMEOUT"`
	HeartbeatInterval time.Duration `env:"FORGEMETRICS_HEARTBEAT_INTERVAL"`
	ExcludedPlayers   []string      `env:"FORGEMETRICS_EXCLUDED_PLAYERS" envSeparator:","`
	LogLevel          string        `env:"FORGEMETRICS_LOG_LEVEL"`
}

// ApplyEnvConfig applies environment variables to cfg. Env values override
// file values but lose to flags that were set explicitly.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	s := newConfigSetter(changed)

	s.setString("secret-key", ec.SecretKey, &cfg.SecretKey)
	s.setString("base-url", ec.BaseURL, &cfg.BaseURL)
	s.setString("platform", ec.PlatformType, &cfg.PlatformType)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)

	s.setBool("verbose", ec.Verbose, &cfg.Verbose)
	s.setBool("insecure-test-tls", ec.InsecureTestTLS, &cfg.InsecureTestTLS)
	s.setBool("analytics-enabled", ec.AnalyticsEnabled, &cfg.AnalyticsEnabled)
	s.setBool("watch-config", ec.WatchConfig, &cfg.WatchConfig)

	s.setDuration("timeout", ec.HTTPTimeout, &cfg.HTTPTimeout)
	s.setDuration("heartbeat-interval", ec.HeartbeatInterval, &cfg.HeartbeatInterval)

	s.setStrings("exclude", ec.ExcludedPlayers, &cfg.ExcludedPlayers)

	return nil
}
