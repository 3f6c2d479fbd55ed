package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/jellyfit/internal/catalog"
	"github.com/meltforce/jellyfit/internal/coach"
	"github.com/meltforce/jellyfit/internal/config"
	"github.com/meltforce/jellyfit/internal/mcp"
	"github.com/meltforce/jellyfit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath string
	remoteURL  string
)

var rootCmd = &cobra.Command{
	Use:           "jellyfit-cli",
	Short:         "Inspect the jellyfit training log from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "base URL of a running jellyfit server (reads over HTTP instead of opening the store)")
}

// logger writes to stderr so stdout stays clean for output and the stdio
// MCP transport.
func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// openSource returns the data source selected by the flags and a func that
// releases it.
func openSource(ctx context.Context, log *slog.Logger) (mcp.DataSource, func(), error) {
	if remoteURL != "" {
		return mcp.NewHTTPClient(remoteURL), func() {}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	dsn := cfg.StorageDSN()
	if cfg.Storage.Driver == config.DriverPostgres {
		if err := storage.RunMigrations(dsn); err != nil {
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
	}
	kv, err := storage.Open(ctx, cfg.Storage.Driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	store := storage.NewStore(kv, log)

	var gen coach.Generator
	if cfg.Coach.APIKey != "" {
		gen = coach.NewGeminiClient(cfg.Coach.APIKey, cfg.Coach.Model, cfg.Coach.BaseURL, cfg.Coach.TimeoutDuration())
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warn("closing storage", "error", err)
		}
	}
	return mcp.NewLocal(store, coach.NewService(gen, store, log)), closeFn, nil
}

// loadCatalog returns the built-in templates plus the files named in the
// config. A missing config file yields only the built-in templates.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			return catalog.New(), nil
		}
		return nil, err
	}
	cat := catalog.New()
	for _, path := range cfg.Catalog.Files {
		templates, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		cat.Add(templates...)
	}
	return cat, nil
}
