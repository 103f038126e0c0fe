package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mzhadan/matchwatch/internal/app"
	"github.com/mzhadan/matchwatch/internal/config"
	"github.com/mzhadan/matchwatch/internal/observability"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	syncer, err := app.BuildSyncer(cfg, logger)
	if err != nil {
		logger.Error("build syncer", "error", err)
		return 1
	}
	defer func() { _ = syncer.Close() }()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: syncer <job>\njobs: %s\n", strings.Join(syncer.Runner.KnownJobs(), ", "))
		return 2
	}
	job := os.Args[1]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := syncer.Runner.Run(ctx, job)
	if err != nil {
		logger.Error("run job", "job", job, "error", err)
		return 1
	}

	logger.Info("syncer finished", "job", job, "jobs_run", len(results))
	return 0
}
