// cmd/capex-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"capex-entry/internal/common/config"
	httpclient "capex-entry/internal/common/http"
	"capex-entry/internal/common/logger"
	"capex-entry/internal/common/observability"
	"capex-entry/internal/common/sheets"
	submitentry "capex-entry/internal/handlers/submit-entry"
	"capex-entry/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting capex entry server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	entryCfg := submitentry.ConfigFromSheets(cfg.Sheets)
	if missing := entryCfg.MissingKeys(); len(missing) > 0 {
		// Not fatal: each submission reports the missing keys until they are set.
		zapLog.Warn("Google Sheets credentials incomplete", zap.Strings("missing", missing))
	}

	upstream := httpclient.NewClient(entryCfg.Timeout, cfg.App.Name+"/"+cfg.App.Version)
	factory := sheets.NewFactory(sheets.Options{
		AuthMode:   cfg.Sheets.AuthMode,
		Endpoint:   cfg.Sheets.Endpoint,
		TokenURL:   cfg.Sheets.TokenURL,
		HTTPClient: upstream.HTTPClient(),
	})

	handler := submitentry.NewHandler(entryCfg, factory, log, obs)

	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: router.New(router.Options{
			Logger:         log,
			SubmitEntry:    handler,
			MissingConfig:  entryCfg.MissingKeys,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
		}),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("otel shutdown failed", zap.Error(err))
	}

	zapLog.Info("Capex entry server stopped gracefully")
}
