package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristiansanchez/indice/internal/bootstrap"
	"github.com/cristiansanchez/indice/internal/config"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/server"
	"github.com/cristiansanchez/indice/internal/tracer"
)

func main() {
	if err := run(); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so that main can exit with a status code
// after they have finished.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (opt-in)
	shutdownTracer := tracer.InitTracer("indice", cfg.App.Environment)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	container := bootstrap.NewContainer(cfg, sysLogger)
	defer container.Close()

	// 4. Run server and background consumer
	if err := server.Serve(ctx, cfg, container); err != nil {
		sysLogger.Error("SERVER", "Server stopped with error", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}
