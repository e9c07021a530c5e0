package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/agenthands/lattice/internal/config"
	"github.com/agenthands/lattice/internal/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults", "path", cfgPath, "err", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	srv, err := server.Bootstrap(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize server", "err", err)
	}
	if srv.Store != nil {
		defer srv.Store.Close(context.Background())
	}

	r := srv.SetupRouter()
	logger.Info("starting server", "addr", cfg.Server.Addr, "provider", cfg.LLM.Provider)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}
