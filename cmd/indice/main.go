package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristiansanchez/indice/internal/bootstrap"
	"github.com/cristiansanchez/indice/internal/cli"
	"github.com/cristiansanchez/indice/internal/config"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/server"
	"github.com/cristiansanchez/indice/internal/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	shutdownTracer := tracer.InitTracer("indice", cfg.App.Environment)
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)
	defer sysLogger.Sync()

	container := bootstrap.NewContainer(cfg, sysLogger)
	defer container.Close()

	app := &cli.App{
		Index:      container.IndexService,
		Enrichment: container.EnrichmentService,
		Analysis:   container.AnalysisService,
		Models:     container.Models,
		Serve: func(ctx context.Context) error {
			return server.Serve(ctx, cfg, container)
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
