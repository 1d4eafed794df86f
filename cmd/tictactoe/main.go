package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"ctchen222/tictactoe-console/internal/config"
	"ctchen222/tictactoe-console/internal/console"
	"ctchen222/tictactoe-console/internal/db"
	"ctchen222/tictactoe-console/internal/logger"
	"ctchen222/tictactoe-console/internal/repository"
	"ctchen222/tictactoe-console/internal/telemetry"

	"github.com/muesli/termenv"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (default: search the XDG config directories)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	if err := logger.Init(os.Stderr, cfg.Log.Level); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Initialize the session scoreboard
	pool, err := db.OpenSession(ctx)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	defer pool.Close()

	results := repository.NewResultRepository(pool)

	out := termenv.NewOutput(os.Stdout)
	c, err := console.New(*cfg, os.Stdin, out, results)
	if err != nil {
		log.Fatalf("failed to create console: %v", err)
	}

	slog.InfoContext(ctx, "console started", "board.size", cfg.Game.DefaultSize)
	if err := c.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "console stopped", "error", err)
	}
}
