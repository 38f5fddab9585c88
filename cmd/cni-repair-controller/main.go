package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/skillcoder/cni-repair-controller/internal/app"
	"github.com/skillcoder/cni-repair-controller/internal/config"
	"github.com/skillcoder/cni-repair-controller/internal/infra/appstate"
	"github.com/skillcoder/cni-repair-controller/internal/infra/logging"
	"github.com/skillcoder/cni-repair-controller/internal/infra/pinger"
	"github.com/skillcoder/cni-repair-controller/internal/infra/shutdown"
)

func main() {
	appStart := time.Now()
	// Start listening for signals immediately as first thing, before any other initialization
	signals := shutdown.Notify()
	ctx := context.Background()

	err := run(ctx, signals, appStart)
	if err != nil {
		slog.ErrorContext(ctx, "failed to run", "reason", err)
		// Give the logger some time to flush
		time.Sleep(1 * time.Second)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "bye")
}

func run(ctx context.Context, signals <-chan os.Signal, appStart time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	logger.InfoContext(ctx, "starting cni repair controller",
		"node", cfg.NodeName,
		"mode", string(cfg.Mode),
	)

	clientset, err := app.NewClientset(cfg)
	if err != nil {
		return fmt.Errorf("new clientset: %w", err)
	}

	registry := prometheus.NewRegistry()
	pingers := pinger.New(logger, cfg.PingerInterval, registry, app.MetricsNamespace)
	appState := appstate.New(logger, appStart, signals, pingers)

	application, err := app.New(logger, cfg, appState, pingers, registry, clientset)
	if err != nil {
		return fmt.Errorf("new application: %w", err)
	}

	return application.Run(ctx)
}
