package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/charsheet/internal/api"
	"github.com/dgallion1/charsheet/internal/config"
	"github.com/dgallion1/charsheet/internal/layout"
	"github.com/dgallion1/charsheet/internal/pipeline"
	"github.com/dgallion1/charsheet/internal/sheets"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	l, err := layout.Load(cfg.LayoutFile)
	if err != nil {
		log.Error("load layout", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize writer.
	var writer sheets.Writer
	if cfg.DryRun {
		writer = &sheets.DryRunWriter{Out: os.Stdout}
	} else {
		writer, err = sheets.NewGoogleClient(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Error("google client", "error", err)
			os.Exit(1)
		}
	}

	runs := pipeline.NewRunStore(1 * time.Hour)
	runs.StartJanitor(ctx, 5*time.Minute)

	srv := api.NewServer(l, writer, runs, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting charsheetd", "port", cfg.Port, "dry_run", cfg.DryRun)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
