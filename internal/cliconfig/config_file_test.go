package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
secret_key = "file-key"
base_url = "https://analytics.test/api/v1"
platform_type = "fabric"
verbose = true
http_timeout = "20s"
heartbeat_interval = "30s"
excluded_players = ["uuid-1"]
analytics_enabled = false
log_level = "debug"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.SecretKey != "file-key" {
		t.Errorf("SecretKey = %q, want file-key", fc.SecretKey)
	}
	if fc.PlatformType != "fabric" {
		t.Errorf("PlatformType = %q, want fabric", fc.PlatformType)
	}
	if fc.Verbose == nil || !*fc.Verbose {
		t.Error("Verbose should be set true")
	}
	if fc.AnalyticsEnabled == nil || *fc.AnalyticsEnabled {
		t.Error("AnalyticsEnabled should be set false")
	}
	if fc.WatchConfig != nil {
		t.Error("WatchConfig should stay nil for an absent key")
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFileConfig should fail for a missing file")
	}
}

func TestApplyFileConfig(t *testing.T) {
	verbose := true
	fc := FileConfig{
		SecretKey:         "file-key",
		PlatformType:      "velocity",
		Verbose:           &verbose,
		HTTPTimeout:       "20s",
		HeartbeatInterval: "90s",
		ExcludedPlayers:   []string{"uuid-9"},
	}

	cfg := DefaultConfig()
	changed := map[string]bool{"platform": true}
	cfg.PlatformType = "forge" // set by flag

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.SecretKey != "file-key" {
		t.Errorf("SecretKey = %q, want file-key", cfg.SecretKey)
	}
	if cfg.PlatformType != "forge" {
		t.Errorf("PlatformType = %q, want forge (flag wins over file)", cfg.PlatformType)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be applied from the file")
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Errorf("HTTPTimeout = %v, want 20s", cfg.HTTPTimeout)
	}
	if cfg.HeartbeatInterval != 90*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 90s", cfg.HeartbeatInterval)
	}
	if len(cfg.ExcludedPlayers) != 1 || cfg.ExcludedPlayers[0] != "uuid-9" {
		t.Errorf("ExcludedPlayers = %v, want [uuid-9]", cfg.ExcludedPlayers)
	}
}

func TestApplyFileConfig_InvalidDuration(t *testing.T) {
	fc := FileConfig{HTTPTimeout: "soon"}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig should fail for an invalid duration string")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfigFile(t, "secret_key = \"x\"\n")
	if !FileExists(path) {
		t.Error("FileExists should report true for an existing file")
	}
	if FileExists(filepath.Dir(path)) {
		t.Error("FileExists should report false for a directory")
	}
	if FileExists(filepath.Join(t.TempDir(), "nope.toml")) {
		t.Error("FileExists should report false for a missing file")
	}
}
