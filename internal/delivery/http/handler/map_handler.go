package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/pkg/metrics"
	"github.com/tourist-map/internal/pkg/utils"
	"github.com/tourist-map/internal/pkg/validator"
	"github.com/tourist-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapQuerier - выборки карты (реализует usecase.MapQueryUseCase)
type MapQuerier interface {
	ListRegions(ctx context.Context) ([]dto.RegionItem, error)
	ListPlacesInRegion(ctx context.Context, citySlug string) ([]dto.PlaceItem, error)
	ListNearby(ctx context.Context, center domain.LatLng, radiusKm float64) ([]dto.PlaceItem, error)
}

// MapHandler - обработчик эндпоинта карты
type MapHandler struct {
	mapUC  MapQuerier
	logger *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(mapUC MapQuerier, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// GetMap godoc
// @Summary Данные для карты
// @Description Один эндпоинт, три режима: mode=regions (регионы с количеством мест), city=<slug> (места региона, до 50), lat+lng+radius (места в радиусе, по возрастанию расстояния). Некорректный или пустой запрос возвращает пустой массив.
// @Tags Map
// @Produce json
// @Param mode query string false "regions"
// @Param city query string false "Slug региона"
// @Param lat query number false "Широта центра"
// @Param lng query number false "Долгота центра"
// @Param radius query number false "Радиус, км"
// @Success 200 {array} dto.PlaceItem
// @Failure 429 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/map [get]
func (h *MapHandler) GetMap(c *fiber.Ctx) error {
	var req dto.MapQueryRequest
	if err := c.QueryParser(&req); err != nil {
		h.logger.Debug("Unparsable map query", zap.String("query", string(c.Request().URI().QueryString())), zap.Error(err))
		return h.empty(c)
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Debug("Invalid map query", zap.Any("fields", validator.FieldErrors(err)))
		return h.empty(c)
	}

	ctx := c.UserContext()

	switch req.Resolve() {
	case dto.MapModeRegions:
		items, err := h.mapUC.ListRegions(ctx)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendList(c, items)

	case dto.MapModeCity:
		items, err := h.mapUC.ListPlacesInRegion(ctx, req.City)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendList(c, items)

	case dto.MapModeNearby:
		items, err := h.mapUC.ListNearby(ctx, req.Center(), *req.Radius)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendList(c, items)
	}

	return h.empty(c)
}

func (h *MapHandler) empty(c *fiber.Ctx) error {
	metrics.MapQueries.WithLabelValues(string(dto.MapModeEmpty)).Inc()
	return utils.SendList(c, []dto.PlaceItem{})
}
