package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"FORGEMETRICS_SECRET_KEY":        "env-key",
				"FORGEMETRICS_PLATFORM_TYPE":     "velocity",
				"FORGEMETRICS_VERBOSE":           "true",
				"FORGEMETRICS_HTTP_TIMEOUT":      "45s",
				"FORGEMETRICS_EXCLUDED_PLAYERS":  "uuid-1,uuid-2",
				"FORGEMETRICS_ANALYTICS_ENABLED": "false",
			},
			changed: map[string]bool{},
			initial: Config{AnalyticsEnabled: true},
			expected: Config{
				SecretKey:        "env-key",
				PlatformType:     "velocity",
				Verbose:          true,
				HTTPTimeout:      45 * time.Second,
				ExcludedPlayers:  []string{"uuid-1", "uuid-2"},
				AnalyticsEnabled: false,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"FORGEMETRICS_SECRET_KEY":    "env-key",
				"FORGEMETRICS_PLATFORM_TYPE": "velocity",
			},
			changed: map[string]bool{"secret-key": true},
			initial: Config{SecretKey: "flag-key"},
			expected: Config{
				SecretKey:    "flag-key",
				PlatformType: "velocity",
			},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"FORGEMETRICS_HTTP_TIMEOUT": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnvConfig() = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() = %v", err)
			}

			if cfg.SecretKey != tt.expected.SecretKey {
				t.Errorf("SecretKey = %q, want %q", cfg.SecretKey, tt.expected.SecretKey)
			}
			if cfg.PlatformType != tt.expected.PlatformType {
				t.Errorf("PlatformType = %q, want %q", cfg.PlatformType, tt.expected.PlatformType)
			}
			if cfg.Verbose != tt.expected.Verbose {
				t.Errorf("Verbose = %v, want %v", cfg.Verbose, tt.expected.Verbose)
			}
			if cfg.HTTPTimeout != tt.expected.HTTPTimeout {
				t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, tt.expected.HTTPTimeout)
			}
			if cfg.AnalyticsEnabled != tt.expected.AnalyticsEnabled {
				t.Errorf("AnalyticsEnabled = %v, want %v", cfg.AnalyticsEnabled, tt.expected.AnalyticsEnabled)
			}
			if len(cfg.ExcludedPlayers) != len(tt.expected.ExcludedPlayers) {
				t.Errorf("ExcludedPlayers = %v, want %v", cfg.ExcludedPlayers, tt.expected.ExcludedPlayers)
			}
		})
	}
}
