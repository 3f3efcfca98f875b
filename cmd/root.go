package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/config"
	"github.com/matheuskafuri/newsassist/internal/logging"
	"github.com/matheuskafuri/newsassist/internal/output"
	"github.com/matheuskafuri/newsassist/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "interactive"

var (
	flagConfig      string
	flagAPIURL      string
	flagVerbose     bool
	flagJSON        bool
	flagColor       string
	flagMetricsAddr string
)

// Built once per invocation by setup.
var (
	cfg      *config.Config
	client   *api.Client
	logger   *slog.Logger
	printer  *output.Printer
	registry *prometheus.Registry
	cleanups []func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "newsassist",
	Short: "Terminal client for the AI news assistant",
	Long: `newsassist browses, searches and summarizes news from an AI news backend.

Run without arguments to open the interactive dashboard, or use a subcommand
for scriptable output:
  newsassist feed --category Technology
  newsassist ask "What happened in AI this week?"
  newsassist trending --days 3
  newsassist collect --topics "ai, climate" --wait`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Annotations:   map[string]string{annotationInteractive: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd, cmd.Annotations[annotationInteractive] == "true")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default $XDG_CONFIG_HOME/newsassist/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "news service base URL (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running (e.g. :9090)")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, err)
	})

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsassist %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// Execute runs the command tree and exits with the code matching the error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	teardown()

	if err != nil {
		p := printer
		if p == nil {
			p = output.NewPrinter(os.Stdout, os.Stderr, output.ColorAuto)
		}
		cliErr := output.FromError(err)
		p.FormatError(cliErr)
		os.Exit(cliErr.ExitCode)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// setup loads configuration and builds the logger, tracer, metrics and API
// client. Interactive sessions log to a file instead of stderr.
func setup(cmd *cobra.Command, interactive bool) error {
	mode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return usageError(cmd, err)
	}
	printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	if interactive && flagJSON {
		return usageError(cmd, errors.New("--json is not supported by the interactive dashboard"))
	}

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return output.ConfigError(err)
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = strings.TrimSpace(flagAPIURL)
		if err := config.Validate(cfg); err != nil {
			return output.ConfigError(err)
		}
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if interactive {
		l, closeLog, err := logging.NewFile(config.LogPath(), logOpts)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logger = l
		cleanups = append(cleanups, func(context.Context) error { return closeLog() })
	} else {
		logger = logging.New(cmd.ErrOrStderr(), logOpts)
	}

	tp, shutdown, err := telemetry.Setup(cmd.Context(), telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceVersion: version,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return output.ConfigError(err)
	}
	cleanups = append(cleanups, shutdown)

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if flagMetricsAddr != "" {
		cleanups = append(cleanups, startMetricsServer(flagMetricsAddr, registry, logger))
	}

	client, err = api.New(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.TimeoutDuration(),
		UserAgent: "newsassist/" + version,
	},
		api.WithLogger(logger),
		api.WithMetrics(api.NewMetrics(registry)),
		api.WithTracerProvider(tp),
	)
	if err != nil {
		return output.ConfigError(err)
	}

	logger.Debug("configuration loaded",
		"base_url", client.BaseURL(),
		"timeout", cfg.TimeoutDuration(),
		"otlp_endpoint", cfg.Telemetry.OTLPEndpoint,
	)
	return nil
}

// teardown runs cleanups in reverse order.
func teardown() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](context.Background()); err != nil && logger != nil {
			logger.Warn("shutdown", "error", err)
		}
	}
	cleanups = nil
}

func usageError(c *cobra.Command, err error) error {
	return &output.CLIError{
		Summary:    err.Error(),
		Suggestion: fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()),
		ExitCode:   output.ExitUsageError,
		Err:        err,
	}
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(c, args); err != nil {
			return usageError(c, err)
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reported as a usage error.
func minArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(c, args); err != nil {
			return usageError(c, err)
		}
		return nil
	}
}

// isCanceled reports whether err came from an interrupt.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
