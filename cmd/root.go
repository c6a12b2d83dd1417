// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reel/internal/config"
	"reel/internal/extract"
	"reel/internal/fetch"
	"reel/internal/httputil"
	"reel/internal/mediaflow"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes returned by Execute.
const (
	exitFailure  = 1
	exitNoMatch  = 2
	exitNotFound = 3
)

// Global flags
var (
	flagLocale            string
	flagMediaFlowURL      string
	flagMediaFlowPassword string
	flagServers           []string
	flagDebug             bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// log is configured from cfg before any command runs.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Resolve embed pages into playable stream URLs",
	Long: `Reel resolves third-party video embed pages into direct stream URLs.
Print the streams, play them with mpv/vlc, or download them with ffmpeg.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
// Interrupting cancels in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLocale, "locale", "l", "", "Locale tag for results: de | en | es | fr | it | mx")
	rootCmd.PersistentFlags().StringVar(&flagMediaFlowURL, "mediaflow-url", "", "MediaFlow proxy URL")
	rootCmd.PersistentFlags().StringVar(&flagMediaFlowPassword, "mediaflow-password", "", "MediaFlow proxy API password")
	rootCmd.PersistentFlags().StringSliceVar(&flagServers, "vidsrc-server", nil, "Allowed VidSrc server (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(extractorsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}
	if flagMediaFlowURL != "" {
		cfg.MediaFlowURL = flagMediaFlowURL
	}
	if flagMediaFlowPassword != "" {
		cfg.MediaFlowPassword = flagMediaFlowPassword
	}
	if len(flagServers) > 0 {
		cfg.VidSrcServers = flagServers
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !cfg.Debug,
		FullTimestamp:    cfg.Debug,
	})

	return nil
}

// newRegistry wires the built-in extractors over a shared HTTP fetcher.
// Registration order is priority order.
func newRegistry() *extract.Registry {
	f := fetch.NewHTTP(fetch.Config{
		Client:            httputil.NewClient(cfg.Timeout()),
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         cfg.UserAgent,
		Logger:            log,
	})

	return extract.NewRegistry(log,
		extract.NewUqload(f),
		extract.NewVidSrc(f, cfg.Servers()...),
	)
}

// requestContext carries the proxy settings to the extractors.
func requestContext(ctx context.Context) context.Context {
	return mediaflow.WithConfig(ctx, cfg.MediaFlow())
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, extract.ErrNoMatch):
		return exitNoMatch
	case errors.Is(err, extract.ErrNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}
