// cmd/rayswap/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/bot"
	"github.com/soltrade/rayswap/internal/config"
	"github.com/soltrade/rayswap/internal/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Optional .env for RAYSWAP_* overrides.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting rayswap", zap.String("config", *configPath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner, err := bot.NewRunner(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize runner", zap.Error(err))
	}

	if err := runner.Run(ctx); err != nil {
		log.Fatal("Execution error", zap.Error(err))
	}

	runner.Shutdown()
}
