// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iyunix/go-medisen/internal/config"
	"github.com/iyunix/go-medisen/internal/handlers"
	"github.com/iyunix/go-medisen/internal/middleware"
	"github.com/iyunix/go-medisen/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}
	logger := services.NewLogger("medisen")

	registryCtx, cancelRegistry := context.WithTimeout(context.Background(), cfg.DirectoryTimeout+5*time.Second)
	defer cancelRegistry()
	app, err := InitializeApplication(registryCtx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer app.SubmitLimiter.Close()

	go func() {
		<-app.RegistryLoaded
		logger.Info("doctor registry ready", "doctors", len(app.TriageService.Registry()))
	}()

	router := handlers.NewRouter(app.TriageHandler, app.LedgerHandler, app.LogHandler, app.SubmitLimiter, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           middleware.CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Idle session sweeper ---
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, app.TriageService, cfg.SessionIdleTimeout)

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "classifier", cfg.ClassifierURL, "ledger_db", cfg.LedgerDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		return
	}
	if sqlDB, err := app.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped gracefully")
}

func sweepSessions(ctx context.Context, svc *services.TriageService, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			svc.PruneIdle(maxIdle)
		case <-ctx.Done():
			return
		}
	}
}
