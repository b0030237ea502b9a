package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	asofhttp "github.com/fwojciec/asof/http"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Run executes the serve command and blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if deps.Pinger != nil {
		if err := deps.Pinger.Ping(ctx); err != nil {
			deps.Logger.Warn("completion backend unavailable", "err", err)
		}
	}

	server := asofhttp.NewServer(deps.Controller, deps.Renderer, deps.Gatherer, deps.Logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Logger.Info("listening", "addr", c.Addr)
		return server.Start(c.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
