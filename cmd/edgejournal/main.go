// Command edgejournal computes trading statistics and tracks funded-account
// evaluations over a trade journal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/edge-journal/internal/analytics"
	"github.com/yourusername/edge-journal/internal/config"
	"github.com/yourusername/edge-journal/internal/database"
	applogger "github.com/yourusername/edge-journal/internal/logger"
	"github.com/yourusername/edge-journal/internal/repository"
	"github.com/yourusername/edge-journal/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	logger     *logrus.Logger
	cfg        *config.Config
	settings   analytics.Settings
	store      *database.Store
	analytic   *service.AnalyticsService
)

var rootCmd = &cobra.Command{
	Use:           "edgejournal",
	Short:         "Trading journal analytics and prop-firm evaluation tracking",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "edgejournal %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(versionCmd, statsCmd, evaluateCmd, predictCmd, importCmd, profileCmd, serveCmd)
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		secretsCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := config.LoadSecretsFromAWS(secretsCtx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	// reports go to stdout
	logger.SetOutput(os.Stderr)

	var err error
	settings, err = analytics.SettingsFromConfig(&cfg.Analytics)
	if err != nil {
		return err
	}

	store, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	repos, err := repository.NewRepositoriesFromStore(store)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	analytic, err = service.NewAnalyticsService(repos, settings, service.Options{
		CacheTTL:       time.Duration(cfg.Analytics.CacheTTLSeconds) * time.Second,
		PredictionRuns: cfg.Analytics.PredictionRuns,
	}, logger)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"storage":     cfg.Storage.Driver,
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Debug("Dependencies initialized")
	return nil
}
