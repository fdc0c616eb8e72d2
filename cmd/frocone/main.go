package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/frocone/internal/cli"
	"github.com/fjod/frocone/internal/config"
	"github.com/fjod/frocone/internal/logger"
)

func main() {
	cfg := config.LoadClient()
	logger.Init(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.Run(ctx, os.Args[1:], cfg, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrReported):
		os.Exit(1)
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
