package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/domain/repository"
	"github.com/tourist-map/internal/pkg/errors"
	"github.com/tourist-map/internal/pkg/metrics"
	"github.com/tourist-map/internal/pkg/utils"
	"github.com/tourist-map/internal/usecase/dto"
)

const (
	cacheKeyRegions    = "map:regions"
	cacheKeyCityPrefix = "map:city:"

	// DefaultRegionPlaceLimit - сколько мест региона отдается карте
	DefaultRegionPlaceLimit = 50
)

func cityCacheKey(citySlug string) string {
	return cacheKeyCityPrefix + citySlug
}

// MapQueryUseCase - выборки для карты: регионы, места региона, места рядом
type MapQueryUseCase struct {
	placeRepo   repository.PlaceRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
	regionLimit int
	group       singleflight.Group
}

// NewMapQueryUseCase - создание MapQueryUseCase. cacheRepo может быть nil (без кеша)
func NewMapQueryUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	regionLimit int,
) *MapQueryUseCase {
	if regionLimit <= 0 {
		regionLimit = DefaultRegionPlaceLimit
	}
	return &MapQueryUseCase{
		placeRepo:   placeRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
		regionLimit: regionLimit,
	}
}

// ListRegions - регионы, в которых есть хотя бы одно опубликованное место
func (uc *MapQueryUseCase) ListRegions(ctx context.Context) ([]dto.RegionItem, error) {
	metrics.MapQueries.WithLabelValues(string(dto.MapModeRegions)).Inc()

	items, err := cached(ctx, uc, cacheKeyRegions, "regions", func(ctx context.Context) ([]dto.RegionItem, error) {
		regions, err := uc.placeRepo.CountPublishedByCity(ctx)
		if err != nil {
			return nil, err
		}

		items := make([]dto.RegionItem, 0, len(regions))
		for _, r := range regions {
			if r.PlaceCount < 1 {
				continue
			}
			items = append(items, dto.NewRegionItem(r))
		}
		return items, nil
	})
	if err != nil {
		uc.logger.Error("Failed to list regions", zap.Error(err))
		return nil, err
	}

	metrics.MapQueryResults.WithLabelValues(string(dto.MapModeRegions)).Observe(float64(len(items)))
	return items, nil
}

// ListPlacesInRegion - опубликованные места региона, не больше regionLimit
func (uc *MapQueryUseCase) ListPlacesInRegion(ctx context.Context, citySlug string) ([]dto.PlaceItem, error) {
	metrics.MapQueries.WithLabelValues(string(dto.MapModeCity)).Inc()

	citySlug = strings.TrimSpace(citySlug)
	if citySlug == "" {
		return []dto.PlaceItem{}, nil
	}

	items, err := cached(ctx, uc, cityCacheKey(citySlug), "city", func(ctx context.Context) ([]dto.PlaceItem, error) {
		places, err := uc.placeRepo.ListPublishedByCity(ctx, citySlug, uc.regionLimit)
		if err != nil {
			return nil, err
		}

		items := make([]dto.PlaceItem, 0, len(places))
		for _, p := range places {
			if !p.HasValidLocation() {
				uc.skipInvalid(p)
				continue
			}
			items = append(items, dto.NewPlaceItem(p))
		}
		return items, nil
	})
	if err != nil {
		uc.logger.Error("Failed to list places in region",
			zap.String("city", citySlug),
			zap.Error(err))
		return nil, err
	}

	metrics.MapQueryResults.WithLabelValues(string(dto.MapModeCity)).Observe(float64(len(items)))
	return items, nil
}

// ListNearby - опубликованные места в радиусе radiusKm, по возрастанию расстояния.
// Прямоугольник отсекает кандидатов в SQL, точное расстояние считается по Haversine.
func (uc *MapQueryUseCase) ListNearby(ctx context.Context, center domain.LatLng, radiusKm float64) ([]dto.PlaceItem, error) {
	metrics.MapQueries.WithLabelValues(string(dto.MapModeNearby)).Inc()

	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	box := utils.BoundingBoxAround(center, radiusKm)
	candidates, err := uc.placeRepo.ListPublishedInBBox(ctx, box)
	if err != nil {
		uc.logger.Error("Failed to list places in bbox",
			zap.Stringer("center", center),
			zap.Float64("radius_km", radiusKm),
			zap.Error(err))
		return nil, err
	}

	items := make([]dto.PlaceItem, 0, len(candidates))
	for _, p := range candidates {
		if !p.HasValidLocation() {
			uc.skipInvalid(p)
			continue
		}

		distance := utils.DistanceKm(center, *p.Location)
		if distance > radiusKm {
			continue
		}

		item := dto.NewPlaceItem(p)
		item.DistanceKm = &distance
		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b dto.PlaceItem) int {
		switch {
		case *a.DistanceKm < *b.DistanceKm:
			return -1
		case *a.DistanceKm > *b.DistanceKm:
			return 1
		default:
			return strings.Compare(a.Slug, b.Slug)
		}
	})

	uc.logger.Debug("Nearby places found",
		zap.Stringer("center", center),
		zap.Float64("radius_km", radiusKm),
		zap.Int("candidates", len(candidates)),
		zap.Int("found", len(items)))

	metrics.MapQueryResults.WithLabelValues(string(dto.MapModeNearby)).Observe(float64(len(items)))
	return items, nil
}

// InvalidateCity сбрасывает кеш региона и списка регионов
func (uc *MapQueryUseCase) InvalidateCity(ctx context.Context, citySlug string) error {
	keys := []string{cacheKeyRegions}
	if citySlug != "" {
		keys = append(keys, cityCacheKey(citySlug))
	}

	for _, key := range keys {
		uc.group.Forget(key)
	}

	metrics.CacheInvalidations.Inc()

	if uc.cacheRepo == nil {
		return nil
	}
	if err := uc.cacheRepo.Delete(ctx, keys...); err != nil {
		uc.logger.Error("Failed to invalidate map cache",
			zap.String("city", citySlug),
			zap.Error(err))
		return errors.ErrCacheError.Wrap(err)
	}

	uc.logger.Info("Map cache invalidated", zap.String("city", citySlug))
	return nil
}

func (uc *MapQueryUseCase) skipInvalid(p domain.Place) {
	metrics.InvalidCoordinates.Inc()
	uc.logger.Warn("Place skipped: invalid coordinates",
		zap.String("place_id", p.ID.String()),
		zap.String("slug", p.Slug),
		zap.Any("location", p.Location))
}

// cached - cache-aside с объединением одновременных промахов.
// Ошибки кеша не ломают выборку: данные берутся из базы.
func cached[T any](
	ctx context.Context,
	uc *MapQueryUseCase,
	key, operation string,
	load func(ctx context.Context) ([]T, error),
) ([]T, error) {
	if uc.cacheRepo != nil {
		data, err := uc.cacheRepo.Get(ctx, key)
		switch {
		case err != nil:
			uc.logger.Warn("Cache read failed, querying database",
				zap.String("key", key),
				zap.Error(err))
		case data != nil:
			var items []T
			if err := json.Unmarshal(data, &items); err == nil {
				metrics.CacheHits.WithLabelValues(operation).Inc()
				return items, nil
			}
			uc.logger.Warn("Corrupted cache entry", zap.String("key", key))
		}
	}
	metrics.CacheMisses.WithLabelValues(operation).Inc()

	v, err, shared := uc.group.Do(key, func() (interface{}, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		uc.store(ctx, key, items)
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", operation, err)
	}
	if shared {
		uc.logger.Debug("Map query shared with concurrent caller", zap.String("key", key))
	}

	return v.([]T), nil
}

func (uc *MapQueryUseCase) store(ctx context.Context, key string, value interface{}) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		uc.logger.Warn("Failed to marshal map cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to write map cache", zap.String("key", key), zap.Error(err))
	}
}
