package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/delivery/http/handler"
	"github.com/scooter-map/internal/delivery/http/middleware"
	"github.com/scooter-map/internal/metrics"
	apperrors "github.com/scooter-map/internal/pkg/errors"
	"github.com/scooter-map/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер дашборда на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	dashboardHandler *handler.DashboardHandler
	layerHandler     *handler.LayerHandler
	pipelineHandler  *handler.PipelineHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	dashboardHandler *handler.DashboardHandler,
	layerHandler *handler.LayerHandler,
	pipelineHandler *handler.PipelineHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Scooter Map Dashboard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Pipeline.Timeout + 10*time.Second, // POST /refresh выполняет прогон синхронно
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		dashboardHandler: dashboardHandler,
		layerHandler:     layerHandler,
		pipelineHandler:  pipelineHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/", s.dashboardHandler.Render)

	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.pipelineHandler.Health)

	// Layers
	api.Get("/layers/:layer/figure", s.layerHandler.GetFigure)
	api.Get("/layers/:layer/counts", s.layerHandler.GetCounts)

	// Pipeline
	api.Get("/inventory", s.pipelineHandler.GetInventory)
	api.Post("/refresh", s.pipelineHandler.Refresh)
	api.Get("/runs", s.pipelineHandler.ListRuns)
	api.Get("/runs/:id/layers/:layer/counts", s.pipelineHandler.GetRunCounts)
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок: AppError отдается как есть,
// ошибки fiber получают код по HTTP статусу
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			status := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			appErr = apperrors.New(statusCode(status), err.Error(), status)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", appErr.StatusCode),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)

		return utils.SendError(c, appErr)
	}
}

// statusCode: 404 -> NOT_FOUND, 405 -> METHOD_NOT_ALLOWED
func statusCode(status int) string {
	text := nethttp.StatusText(status)
	if text == "" || status == fiber.StatusInternalServerError {
		return "INTERNAL_SERVER_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
