package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/vancomm/minesweep/internal/cli"
)

func main() {
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}),
	)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
