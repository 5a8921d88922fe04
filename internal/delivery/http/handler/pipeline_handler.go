package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/scooter-map/internal/domain"
	apperrors "github.com/scooter-map/internal/pkg/errors"
	"github.com/scooter-map/internal/pkg/utils"
	"github.com/scooter-map/internal/pkg/validator"
	"github.com/scooter-map/internal/usecase"
	"github.com/scooter-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// PipelineHandler - состояние прогонов: инвентарь, перезапуск, история
type PipelineHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewPipelineHandler создает новый экземпляр PipelineHandler
func NewPipelineHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *PipelineHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:     "healthy",
		Refreshing: h.dashboardUC.Refreshing(),
	}
	if latest := h.dashboardUC.Latest(); latest != nil {
		resp.Ready = true
		resp.RunID = latest.RunID
	}
	return c.JSON(resp)
}

// GetInventory godoc
// @Summary Сводка инвентаря
// @Description Провайдеры, выбранные снимки, исключенные провайдеры и отброшенные колонки последнего прогона
// @Tags Pipeline
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.InventoryResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/inventory [get]
func (h *PipelineHandler) GetInventory(c *fiber.Ctx) error {
	summary, err := h.dashboardUC.Summary()
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, summary, &utils.Meta{Total: summary.Total, RunID: summary.RunID})
}

// Refresh godoc
// @Summary Перезапуск прогона
// @Description Синхронно выполняет прогон за настроенное окно; при ошибке остается предыдущий результат
// @Tags Pipeline
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RefreshResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/refresh [post]
func (h *PipelineHandler) Refresh(c *fiber.Ctx) error {
	start := time.Now()

	result, err := h.dashboardUC.Refresh(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Pipeline refreshed via API", zap.String("run_id", result.RunID))

	return utils.SendSuccess(c, dto.RefreshResponse{
		RunID:      result.RunID,
		FinishedAt: result.FinishedAt,
		Total:      result.Inventory.Total,
		Excluded:   result.Excluded,
	}, &utils.Meta{
		RunID:    result.RunID,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// ListRuns godoc
// @Summary История прогонов
// @Description Последние прогоны из архива, новые первыми; без архива список пуст
// @Tags Pipeline
// @Produce json
// @Param limit query int false "Количество прогонов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.RunsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/runs [get]
func (h *PipelineHandler) ListRuns(c *fiber.Ctx) error {
	req := dto.RunsRequest{Limit: c.QueryInt("limit", 20)}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	runs, err := h.dashboardUC.History(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		return utils.SendError(c, apperrors.ErrDatabaseError)
	}

	return utils.SendSuccess(c, dto.RunsResponse{Runs: runs}, &utils.Meta{
		Total: len(runs),
		Limit: req.Limit,
	})
}

// GetRunCounts godoc
// @Summary Счетчики слоя архивного прогона
// @Description Счетчики по областям слоя, сохраненные в архиве для прогона с указанным id
// @Tags Pipeline
// @Produce json
// @Param id path string true "ID прогона (UUID)"
// @Param layer path string true "Слой" Enums(zip, ward, community)
// @Success 200 {object} utils.SuccessResponse{data=dto.RunCountsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/runs/{id}/layers/{layer}/counts [get]
func (h *PipelineHandler) GetRunCounts(c *fiber.Ctx) error {
	req := dto.RunCountsRequest{
		RunID: c.Params("id"),
		Layer: c.Params("layer"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	kind, err := domain.ParseLayerKind(req.Layer)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidLayer.WithDetails(map[string]interface{}{"layer": req.Layer}))
	}

	counts, err := h.dashboardUC.RunCounts(c.Context(), req.RunID, kind)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, err)
		}
		h.logger.Error("Failed to get run counts", zap.String("run_id", req.RunID), zap.Error(err))
		return utils.SendError(c, apperrors.ErrDatabaseError)
	}

	return utils.SendSuccess(c, counts, &utils.Meta{
		Total: counts.Total,
		RunID: counts.RunID,
	})
}
