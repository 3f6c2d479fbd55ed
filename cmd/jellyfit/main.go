package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/jellyfit/internal/catalog"
	"github.com/meltforce/jellyfit/internal/coach"
	"github.com/meltforce/jellyfit/internal/config"
	"github.com/meltforce/jellyfit/internal/mcp"
	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/plan"
	"github.com/meltforce/jellyfit/internal/server"
	"github.com/meltforce/jellyfit/internal/storage"
	"github.com/meltforce/jellyfit/internal/tracker"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("jellyfit starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations (postgres only; the sql backends create their table on open)
	dsn := cfg.StorageDSN()
	if cfg.Storage.Driver == config.DriverPostgres {
		if err := storage.RunMigrations(dsn); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
	}

	// Open storage
	ctx := context.Background()
	kv, err := storage.Open(ctx, cfg.Storage.Driver, dsn)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	store := storage.NewStore(kv, log)
	defer store.Close()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Template catalog
	var extra []models.Template
	for _, path := range cfg.Catalog.Files {
		templates, err := catalog.Load(path)
		if err != nil {
			log.Error("failed to load templates", "file", path, "error", err)
			os.Exit(1)
		}
		log.Info("templates loaded", "file", path, "count", len(templates))
		extra = append(extra, templates...)
	}
	cat := catalog.New(extra...)

	// Coach
	var gen coach.Generator
	if cfg.Coach.APIKey != "" {
		gen = coach.NewGeminiClient(cfg.Coach.APIKey, cfg.Coach.Model, cfg.Coach.BaseURL, cfg.Coach.TimeoutDuration())
	} else {
		log.Warn("coach.api_key not set, AI coaching disabled")
	}
	coachSvc := coach.NewService(gen, store, log)

	// Session tracker; its context outlives requests and ends at shutdown.
	loc, _ := cfg.Location()
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()
	tr := tracker.New(baseCtx, store, plan.NewSynchronizer(store, log), loc, log)
	defer tr.Close()

	// Create server
	srv := server.New(server.Deps{
		Store:    store,
		Tracker:  tr,
		Catalog:  cat,
		Coach:    coachSvc,
		Location: loc,
	}, cfg.Auth.APIKey, log)

	mcpSrv := mcp.New(mcp.NewLocal(store, coachSvc), Version, log)
	srv.MountMCP("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv, mcpserver.WithEndpointPath("/mcp")))

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	if _, err := tr.Active(); err == nil {
		log.Warn("discarding unfinished session")
	}
	log.Info("server stopped")
}
