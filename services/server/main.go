package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskboard/services/server/adapters/db"
	"taskboard/services/server/adapters/memory"
	"taskboard/services/server/adapters/rest"
	"taskboard/services/server/adapters/rest/handlers"
	"taskboard/services/server/config"
	"taskboard/services/server/core"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "backend server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting taskboard backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	svc := core.NewService(storage)

	mux := http.NewServeMux()
	handlers.Register(mux, log, handlers.Deps{Storage: svc, Users: svc, Tasks: svc}, cfg.HTTP.Timeout)

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           rest.Instrument(mux),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("backend http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStorage picks PostgreSQL when DB_ADDRESS is set and memory otherwise.
func openStorage(cfg config.Config, log *slog.Logger) (core.DB, func(), error) {
	if cfg.InMemory() {
		storage := memory.New(log)
		if cfg.SeedFile != "" {
			if err := storage.Seed(cfg.SeedFile); err != nil {
				return nil, nil, err
			}
		}
		log.Info("using memory storage")
		return storage, func() {}, nil
	}

	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	closeFn := func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}

	if err := storage.Migrate(); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	log.Info("using postgres storage")
	return storage, closeFn, nil
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
