package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
	"github.com/maxlayn1/DevOps-App-Database/internal/database"
	"github.com/maxlayn1/DevOps-App-Database/internal/logging"
)

// loadConfig reads viper's view of the config and layers the connection
// flags shared by every store-facing command on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Lookup(providerFlag) != nil {
		if provider, _ := cmd.Flags().GetString(providerFlag); provider != "" {
			cfg.Database.Provider = provider
		}
		if url, _ := cmd.Flags().GetString(urlFlag); url != "" {
			cfg.Database.URL = url
			cfg.Database.URLEnv = ""
		}
	}

	if err := applySeedFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*database.Store, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	store, err := database.Open(ctx, cfg.Database.Provider, dbURL, database.WithBatchSize(cfg.BatchSize))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log, os.Stderr)
}
