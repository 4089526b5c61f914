package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uidet "github.com/jamesainslie/go-uidet"
	"github.com/jamesainslie/go-uidet/internal/config"
	"github.com/jamesainslie/go-uidet/internal/server"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	det, err := uidet.New(cfg.ModelPath,
		uidet.WithConfidence(float32(cfg.Confidence)),
		uidet.WithLibraryPath(cfg.LibraryPath),
		uidet.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating detector: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = det.Close() }()

	srv := server.New(det, cfg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	logger.Info("server started", "version", version, "commit", commit, "built", date, "model", cfg.ModelPath)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server stopped", "error", err)
			_ = det.Close()
			os.Exit(1)
		}
	case <-sigChan:
		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
