// Package cliplatform implements the SDK's Platform collaborator for the
// forgemetrics CLI, backed by the CLI configuration and a structured logger.
package cliplatform

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/forgemetrics/analytics-go/internal/cliconfig"
	"github.com/forgemetrics/analytics-go/pkg/client"
	"github.com/forgemetrics/analytics-go/pkg/log"
)

// Platform adapts CLI configuration to the client.Platform interface.
type Platform struct {
	logger   log.Logger
	verbose  bool
	enabled  bool
	excluded map[string]struct{}
}

// New creates a Platform from the CLI configuration.
func New(cfg cliconfig.Config, logger log.Logger) *Platform {
	excluded := make(map[string]struct{}, len(cfg.ExcludedPlayers))
	for _, id := range cfg.ExcludedPlayers {
		excluded[strings.ToLower(id)] = struct{}{}
	}
	return &Platform{
		logger:   logger,
		verbose:  cfg.Verbose,
		enabled:  cfg.AnalyticsEnabled,
		excluded: excluded,
	}
}

// Debug emits a debug-level log line.
func (p *Platform) Debug(msg string) { p.logger.Debug(msg) }

// Warning emits a warning-level log line.
func (p *Platform) Warning(msg string) { p.logger.Warn(msg) }

// Verbose reports whether raw error bodies should be logged.
func (p *Platform) Verbose() bool { return p.verbose }

// AnalyticsEnabled reports whether analytics is set up for this install.
func (p *Platform) AnalyticsEnabled() bool { return p.enabled }

// PlayerExcluded reports whether the player identifier is excluded.
// Matching is case-insensitive.
func (p *Platform) PlayerExcluded(playerID string) bool {
	_, ok := p.excluded[strings.ToLower(playerID)]
	return ok
}

// Telemetry assembles the operational metrics payload from host facts.
func (p *Platform) Telemetry() any {
	return map[string]any{
		"hostname":    hostname(),
		"os_arch":     runtime.GOOS + "/" + runtime.GOARCH,
		"num_cpu":     runtime.NumCPU(),
		"go_version":  runtime.Version(),
		"reported_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

var _ client.Platform = (*Platform)(nil)
