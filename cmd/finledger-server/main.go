// Command finledger-server runs the ledger HTTP API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pigeonworks-llc/finledger/internal/api"
	"github.com/pigeonworks-llc/finledger/pkg/config"
	"github.com/pigeonworks-llc/finledger/pkg/db"
	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	conn, err := db.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to open ledger store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	service := ledger.NewService(conn)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      api.NewRouter(service),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		slog.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
		close(done)
	}()

	slog.Info("Starting finledger server", "addr", cfg.Server.ListenAddr, "db", cfg.Database.Path)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	<-done
}
