package server

import (
	"context"
	"time"

	"github.com/cristiansanchez/indice/internal/bootstrap"
	"github.com/cristiansanchez/indice/internal/config"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the audit consumer and the HTTP server until ctx is cancelled
// or either of them fails, then shuts both down.
func Serve(ctx context.Context, cfg *config.Config, container *bootstrap.Container) error {
	srv := New(cfg, container)
	g, gctx := errgroup.WithContext(ctx)

	if container.ConsumerService != nil {
		if err := container.ConsumerService.Consume(gctx); err != nil {
			return err
		}
		g.Go(func() error {
			container.ConsumerService.Wait()
			return nil
		})
	}

	g.Go(srv.Run)

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		container.Logger.Info("SERVER", "Shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
