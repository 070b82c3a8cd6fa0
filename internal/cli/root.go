package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/branding"
	"github.com/juglab/portfolio/internal/catalog"
	"github.com/juglab/portfolio/internal/config"
	"github.com/juglab/portfolio/internal/datasets"
	"github.com/juglab/portfolio/internal/fetch"
	"github.com/juglab/portfolio/internal/logger"
	"github.com/juglab/portfolio/internal/registry"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath string
	logLevel   string
	logFormat  string

	log = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` lists publicly hosted microscopy datasets and fetches them:
download, MD5 verification and extraction into a local directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configPath); err != nil {
			return err
		}
		s := config.Current()
		level, format := s.LogLevel, s.LogFormat
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}
		log = logger.NewWriter(cmd.ErrOrStderr(), level, format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels a running download.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadPortfolio builds the catalog from the built-in datasets and any
// registry files listed in the config.
func loadPortfolio() (*catalog.Portfolio, error) {
	t := registry.New()
	if err := datasets.Register(t); err != nil {
		return nil, fmt.Errorf("registering built-in datasets: %w", err)
	}
	for _, path := range config.Current().Registries {
		log.Debug("loading registry file", slog.String("path", path))
		if err := registry.LoadFile(t, path); err != nil {
			return nil, fmt.Errorf("loading registry %s: %w", path, err)
		}
	}
	t.Seal()
	return catalog.New(t)
}

// newFetcher returns a fetcher configured from the loaded settings.
func newFetcher(progress fetch.ProgressFunc) *fetch.Fetcher {
	s := config.Current()
	opts := []fetch.Option{
		fetch.WithHTTPClient(&http.Client{Timeout: s.HTTPTimeout}),
		fetch.WithLogger(log),
	}
	if s.Mirror != "" {
		opts = append(opts, fetch.WithMirror(s.Mirror))
	}
	if progress != nil {
		opts = append(opts, fetch.WithProgress(progress))
	}
	return fetch.New(opts...)
}
