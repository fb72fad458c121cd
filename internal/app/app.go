// SPDX-License-Identifier: MIT

// Package app wires the store, the HTTP handlers and the server together.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/blockdct/internal/config"
	"github.com/katalvlaran/blockdct/internal/handler"
	"github.com/katalvlaran/blockdct/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API on cfg.ListenAddr until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()
	slog.Info("database ready", "dir", cfg.DataDir)

	var rl *handler.RateLimiter
	if cfg.RateLimit > 0 {
		rl = handler.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
		defer rl.Stop()
	}

	h := handler.New(st, cfg, slog.Default())
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h.Routes(rl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(sctx)
	}()

	slog.Info("server starting", "addr", cfg.ListenAddr, "workers", cfg.Workers)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
