package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/config"
	"github.com/mamadbah2/salestracker/internal/repository/archive"
	"github.com/mamadbah2/salestracker/internal/repository/ledger"
	"github.com/mamadbah2/salestracker/internal/repository/sheets"
	"github.com/mamadbah2/salestracker/internal/scheduler"
	"github.com/mamadbah2/salestracker/internal/server/handlers"
	"github.com/mamadbah2/salestracker/internal/server/router"
	analyticssvc "github.com/mamadbah2/salestracker/internal/service/analytics"
	exportsvc "github.com/mamadbah2/salestracker/internal/service/export"
	"github.com/mamadbah2/salestracker/internal/service/report"
	salessvc "github.com/mamadbah2/salestracker/internal/service/sales"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
	"github.com/mamadbah2/salestracker/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.App.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc := cfg.Location()

	kv, pinger, closeStore, err := openStore(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()
	baseLogger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	salesSvc := salessvc.NewService(ledger.NewRepository(kv), logger.Named(baseLogger, "svc.sales"))
	analyticsSvc := analyticssvc.NewService(salesSvc, loc, logger.Named(baseLogger, "svc.analytics"))

	renderer := chrome.NewRenderer(chrome.Config{
		RemoteURL: cfg.Chrome.RemoteURL,
		NoSandbox: cfg.Chrome.NoSandbox,
		Timeout:   cfg.Chrome.RenderTimeout,
		Logger:    baseLogger.Named("chrome"),
	})
	var probe handlers.BrowserProbe
	if cfg.Chrome.RemoteURL != "" {
		probe = chrome.NewProbe(cfg.Chrome.RemoteURL)
	}

	builder := report.NewBuilder(report.WithCurrency(cfg.App.CurrencySymbol), report.WithLocation(loc))
	exportSvc := exportsvc.NewService(builder, renderer, exportsvc.NewMetrics(prometheus.DefaultRegisterer), loc, logger.Named(baseLogger, "svc.export"))

	deps := scheduler.Deps{Dashboards: analyticsSvc, Exporter: exportSvc}
	if cfg.Archive.Enabled() {
		s3Archive, err := archive.NewS3Archive(context.Background(), archive.Config{
			Endpoint:     cfg.Archive.Endpoint,
			Region:       cfg.Archive.Region,
			Bucket:       cfg.Archive.Bucket,
			AccessKey:    cfg.Archive.AccessKey,
			SecretKey:    cfg.Archive.SecretKey,
			Prefix:       cfg.Archive.Prefix,
			UsePathStyle: cfg.Archive.UsePathStyle,
		}, baseLogger.Named("repo.archive"))
		if err != nil {
			baseLogger.Fatal("failed to init snapshot archive", zap.Error(err))
		}
		deps.Archive = s3Archive
	}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		deps.Publisher = sheetsRepo
	}

	sched, err := scheduler.NewScheduler(cfg.Snapshot, loc, deps, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Sales:     handlers.NewSalesHandler(salesSvc, baseLogger.Named("handlers.sales")),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc, baseLogger.Named("handlers.analytics")),
		Export:    handlers.NewExportHandler(exportSvc, baseLogger.Named("handlers.export")),
		Health:    handlers.NewHealthHandler(pinger, probe, baseLogger.Named("handlers.health")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Chrome.RenderTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
