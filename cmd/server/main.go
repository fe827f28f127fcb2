package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/vancomm/minesweep/internal/app"
	"github.com/vancomm/minesweep/internal/config"
)

//go:embed migrations
var migrations embed.FS

func main() {
	var logger *slog.Logger
	if config.Development() {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", slog.Any("error", err))
		}
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	if err := app.New(logger, migrations).Start(ctx); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
