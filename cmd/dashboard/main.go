package main

// @title Scooter Map API
// @version 1.0.0
// @description Дашборд доступности самокатов в Чикаго: снимки флотов провайдеров из S3, подсчет по ZIP-кодам, округам (wards) и community areas, choropleth карты в формате Plotly.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8050
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/scooter-map/docs"
	"github.com/scooter-map/internal/app"
	"github.com/scooter-map/internal/config"
	httpDelivery "github.com/scooter-map/internal/delivery/http"
	"github.com/scooter-map/internal/delivery/http/handler"
	"github.com/scooter-map/internal/pkg/logger"
	"github.com/scooter-map/internal/usecase"
	"github.com/scooter-map/internal/worker"
	"github.com/scooter-map/internal/worker/refresh"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log := logger.Must(cfg.Log.Level, cfg.Log.File)
	defer log.Sync()

	log.Info("Starting Scooter Map Dashboard")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("bucket", cfg.ObjectStore.Bucket),
		zap.String("window", cfg.WindowPrefix()),
	)

	// 3. Connections and pipeline
	deps, err := app.Build(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize pipeline", zap.Error(err))
	}
	defer deps.Close()

	dashboardUC := usecase.NewDashboardUseCase(deps.Pipeline, deps.Cache, deps.Archive, log)

	// 4. First run. Ошибка не фатальна: дашборд отвечает 503 до первого успешного прогона
	if _, err := dashboardUC.Refresh(context.Background()); err != nil {
		log.Error("Initial pipeline run failed", zap.Error(err))
	}

	// 5. Initialize HTTP Handlers
	dashboardHandler, err := handler.NewDashboardHandler(dashboardUC, log)
	if err != nil {
		log.Fatal("Failed to load dashboard templates", zap.Error(err))
	}

	server := httpDelivery.NewServer(
		cfg,
		log,
		dashboardHandler,
		handler.NewLayerHandler(dashboardUC, log),
		handler.NewPipelineHandler(dashboardUC, log),
	)

	// 6. Refresh worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workerManager *worker.WorkerManager
	if cfg.Refresh.Enabled {
		refreshWorker, err := refresh.NewRefreshWorker(dashboardUC, cfg.Refresh.Schedule, log)
		if err != nil {
			log.Fatal("Failed to create refresh worker", zap.Error(err))
		}

		workerManager = worker.NewWorkerManager(log, cfg.Pipeline.Timeout)
		workerManager.Register(refreshWorker)
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Bool("refresh_enabled", cfg.Refresh.Enabled),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	cancel()
	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
