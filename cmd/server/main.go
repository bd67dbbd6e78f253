// Package main is the entry point for the articles server.
//
// main only reads configuration, builds the logger and hands over to
// internal/server. All actual logic lives in the internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/articles/internal/auth"
	"github.com/sakif/articles/internal/config"
	"github.com/sakif/articles/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.Parse()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Parse already validated LOG_LEVEL.
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// === 3. DATABASE DIRECTORY ===
	// Like `mkdir -p`. For ":memory:" this is just ".".
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. AUTH ===
	// JWT_SECRET=$(openssl rand -hex 32)
	// ADMIN_PASSWORD_HASH=$(go run ./cmd/articlesctl hash-password)
	switch {
	case !cfg.AuthEnabled():
		logger.Warn("JWT_SECRET not set, article writes are NOT authenticated")
	case cfg.AdminPasswordHash == "":
		logger.Warn("ADMIN_PASSWORD_HASH not set, nobody can log in")
	default:
		if cost, err := auth.Cost(cfg.AdminPasswordHash); err != nil {
			logger.Error("ADMIN_PASSWORD_HASH is not a bcrypt hash", slog.String("error", err.Error()))
			os.Exit(1)
		} else if cost < auth.DefaultCost {
			logger.Warn("ADMIN_PASSWORD_HASH uses a low bcrypt cost",
				slog.Int("cost", cost),
				slog.Int("recommended", auth.DefaultCost),
			)
		}
	}

	// === 5. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
