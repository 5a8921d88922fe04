package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scooter-map/internal/domain"
	apperrors "github.com/scooter-map/internal/pkg/errors"
	"github.com/scooter-map/internal/pkg/utils"
	"github.com/scooter-map/internal/pkg/validator"
	"github.com/scooter-map/internal/usecase"
	"github.com/scooter-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// LayerHandler - карты и счетчики по слоям
type LayerHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewLayerHandler создает новый экземпляр LayerHandler
func NewLayerHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *LayerHandler {
	return &LayerHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

func parseLayer(c *fiber.Ctx) (domain.LayerKind, error) {
	req := dto.LayerRequest{Layer: c.Params("layer")}
	if err := validator.Validate(&req); err != nil {
		return "", apperrors.ErrInvalidLayer.WithDetails(map[string]interface{}{"layer": req.Layer})
	}
	return domain.ParseLayerKind(req.Layer)
}

// GetFigure godoc
// @Summary Choropleth карта слоя
// @Description Возвращает figure в формате Plotly (data + layout) из последнего успешного прогона
// @Tags Layers
// @Produce json
// @Param layer path string true "Слой" Enums(zip, ward, community)
// @Success 200 {object} utils.SuccessResponse "Plotly figure в поле data"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/layers/{layer}/figure [get]
func (h *LayerHandler) GetFigure(c *fiber.Ctx) error {
	kind, err := parseLayer(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	figure, err := h.dashboardUC.Figure(c.Context(), kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: len(figure.Data)}
	if latest := h.dashboardUC.Latest(); latest != nil {
		meta.RunID = latest.RunID
	}
	return utils.SendSuccess(c, figure, meta)
}

// GetCounts godoc
// @Summary Количество самокатов по областям слоя
// @Description Счетчики по всем областям (включая нулевые), min/max и точки вне областей
// @Tags Layers
// @Produce json
// @Param layer path string true "Слой" Enums(zip, ward, community)
// @Success 200 {object} utils.SuccessResponse{data=dto.LayerCountsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/layers/{layer}/counts [get]
func (h *LayerHandler) GetCounts(c *fiber.Ctx) error {
	kind, err := parseLayer(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	counts, err := h.dashboardUC.Counts(kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, counts, &utils.Meta{Total: len(counts.Counts)})
}
