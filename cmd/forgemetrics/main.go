package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/forgemetrics/analytics-go/internal/cliconfig"
	"github.com/forgemetrics/analytics-go/internal/cliplatform"
	"github.com/forgemetrics/analytics-go/pkg/client"
	"github.com/forgemetrics/analytics-go/pkg/log"
	"github.com/forgemetrics/analytics-go/plugins/keywatcher"
)

const helpDescription = `
Report game-server analytics to ForgeMetrics and inspect plugin metadata.

Highlights:
  - Sends heartbeats, telemetry, sessions and event batches over HTTPS.
  - Reads configuration from file, FORGEMETRICS_* env vars, or flags.
  - Never retries on its own; failures surface immediately.

Config file: ~/.forgemetrics/config.toml
`

var exampleUsage = strings.TrimSpace(`
  forgemetrics setup --secret-key <key>
  forgemetrics heartbeat --players 12
  forgemetrics heartbeat --watch
  forgemetrics plugin --platform velocity
`)

// zlog keeps the subcommand signatures short.
type zlog = zerolog.Logger

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var cfgFileResolved string

	zl := cliconfig.Logger()
	var logger log.Logger = log.WrapZerolog(zl)
	var c *client.Client

	root := &cobra.Command{
		Use:          "forgemetrics",
		Short:        "Report game-server analytics to ForgeMetrics",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.forgemetrics/config.toml),
			// then env vars, then flag overrides.
			cfgFileResolved = cfgPath
			if cfgFileResolved == "" {
				cfgFileResolved = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFileResolved != "" && cliconfig.FileExists(cfgFileResolved) {
				fc, err := cliconfig.LoadFileConfig(cfgFileResolved)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			zl = cliconfig.SetLogLevel(cfg.LogLevel)
			logger = log.WrapZerolog(zl)

			// Log configuration (masking the secret key)
			logCfg := cfg
			if logCfg.SecretKey != "" {
				logCfg.SecretKey = "*****"
			}
			zl.Debug().Interface("config", logCfg).Msg("configuration")

			platform := cliplatform.New(cfg, logger)
			opts := []client.Option{
				client.WithBaseURL(cfg.BaseURL),
				client.WithTimeout(cfg.HTTPTimeout),
			}
			if cfg.InsecureTestTLS {
				opts = append(opts, client.WithInsecureTestTLS())
			}
			c = client.New(platform, cfg.SecretKey, opts...)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: ~/.forgemetrics/config.toml)")
	pf.StringVar(&cfg.SecretKey, "secret-key", cfg.SecretKey, "server secret key")
	pf.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "analytics API base URL (override only for internal testing)")
	if err := pf.MarkHidden("base-url"); err != nil {
		zl.Info().Err(err).Msg("failed to hide base-url flag")
	}
	pf.StringVar(&cfg.PlatformType, "platform", cfg.PlatformType, "plugin platform type (bukkit, bungeecord, velocity, fabric, forge)")
	pf.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log raw response bodies on unexpected statuses")
	pf.BoolVar(&cfg.InsecureTestTLS, "insecure-test-tls", cfg.InsecureTestTLS, "skip TLS verification for .test hosts (ignored otherwise)")
	if err := pf.MarkHidden("insecure-test-tls"); err != nil {
		zl.Info().Err(err).Msg("failed to hide insecure-test-tls flag")
	}
	pf.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	pf.DurationVar(&cfg.HeartbeatInterval, "heartbeat-interval", cfg.HeartbeatInterval, "interval between heartbeats in watch mode")
	pf.StringSliceVar(&cfg.ExcludedPlayers, "exclude", cfg.ExcludedPlayers, "player IDs excluded from session tracking")
	pf.BoolVar(&cfg.AnalyticsEnabled, "analytics-enabled", cfg.AnalyticsEnabled, "whether analytics is set up for this install")
	pf.BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload the secret key when the config file changes")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		pluginCmd(&cfg, &c, &zl),
		serverCmd(&c, &zl),
		setupCmd(&c, &zl),
		heartbeatCmd(&cfg, &c, &logger, &zl, &cfgFileResolved),
		telemetryCmd(&c, &zl),
		countryCmd(&c, &zl),
		eventsCmd(&c, &zl),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		zl.Error().Err(err).Msg("forgemetrics")
		os.Exit(1)
	}
}

func pluginCmd(cfg *cliconfig.Config, c **client.Client, zl *zlog) *cobra.Command {
	return &cobra.Command{
		Use:   "plugin",
		Short: "Show the latest plugin build for the configured platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			info, err := (*c).PluginVersion(ctx, client.PlatformType(cfg.PlatformType)).Wait(ctx)
			if err != nil {
				return err
			}
			zl.Info().
				Str("version", info.VersionName).
				Int("build", info.Incremental).
				Str("download", info.DownloadURL).
				Msg("latest plugin build")
			return nil
		},
	}
}

func serverCmd(c **client.Client, zl *zlog) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Show the server record held by the analytics service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			info, err := (*c).ServerInformation(ctx).Wait(ctx)
			if err != nil {
				return err
			}
			zl.Info().
				Str("uuid", info.ID).
				Str("name", info.Name).
				Time("created_at", info.CreatedAt).
				Msg("server information")
			return nil
		},
	}
}

func setupCmd(c **client.Client, zl *zlog) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Mark the server setup as complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ok, err := (*c).CompleteServerSetup(ctx).Wait(ctx)
			if err != nil {
				return err
			}
			zl.Info().Bool("success", ok).Msg("server setup")
			return nil
		},
	}
}

func heartbeatCmd(cfg *cliconfig.Config, c **client.Client, logger *log.Logger, zl *zlog, cfgFile *string) *cobra.Command {
	var players int
	var watch bool

	cmd := &cobra.Command{
		Use:   "heartbeat",
		Short: "Report the current online player count",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			send := func() {
				ok, err := (*c).TrackHeartbeat(ctx, players).Wait(ctx)
				switch {
				case err != nil:
					// no retry; the next tick is the next attempt
					zl.Error().Err(err).Msg("heartbeat failed")
				case !ok:
					zl.Warn().Msg("heartbeat rejected")
				default:
					zl.Info().Int("players", players).Msg("heartbeat sent")
				}
			}

			if !watch {
				ok, err := (*c).TrackHeartbeat(ctx, players).Wait(ctx)
				if err != nil {
					return err
				}
				zl.Info().Bool("success", ok).Int("players", players).Msg("heartbeat")
				return nil
			}

			if cfg.WatchConfig && *cfgFile != "" {
				kw := keywatcher.New(keywatcher.Config{Path: *cfgFile}, *c, *logger)
				if err := kw.Start(ctx); err != nil {
					return err
				}
				defer kw.Stop()
			}

			send()
			ticker := time.NewTicker(cfg.HeartbeatInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					zl.Info().Msg("stopping heartbeat loop")
					return nil
				case <-ticker.C:
					send()
				}
			}
		},
	}

	cmd.Flags().IntVar(&players, "players", 0, "current online player count")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep sending heartbeats on the configured interval")
	return cmd
}

func telemetryCmd(c **client.Client, zl *zlog) *cobra.Command {
	return &cobra.Command{
		Use:   "telemetry",
		Short: "Send the host telemetry payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ok, err := (*c).SendTelemetry(ctx).Wait(ctx)
			if err != nil {
				return err
			}
			zl.Info().Bool("success", ok).Msg("telemetry")
			return nil
		},
	}
}

func countryCmd(c **client.Client, zl *zlog) *cobra.Command {
	return &cobra.Command{
		Use:        "country <ip>",
		Short:      "Resolve the country code for an IP address",
		Args:       cobra.ExactArgs(1),
		Deprecated: "the analytics API country lookup is being phased out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code, err := (*c).CountryFromIP(ctx, args[0]).Wait(ctx)
			if err != nil {
				return err
			}
			if code == "" {
				zl.Warn().Str("ip", args[0]).Msg("no country found")
				return nil
			}
			zl.Info().Str("ip", args[0]).Str("country", code).Msg("country resolved")
			return nil
		},
	}
}

func eventsCmd(c **client.Client, zl *zlog) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Send a smoke-test event batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			batch := []client.Event{{
				Name:   name,
				Origin: "forgemetrics-cli",
				SentAt: time.Now().UTC(),
			}}
			ok, err := (*c).SendEvents(ctx, batch).Wait(ctx)
			if err != nil {
				return err
			}
			zl.Info().Bool("accepted", ok).Str("name", name).Msg("event batch")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "cli_smoke_test", "event name to send")
	return cmd
}
