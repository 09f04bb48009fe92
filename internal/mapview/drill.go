package mapview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tourist-map/internal/domain"
	"go.uber.org/zap"
)

const nearbyTagPrefix = "nearby:"

// requestTag - метка запроса, ответ применяется только для последней метки
type requestTag struct {
	slug string
	seq  uint64
}

type fetchFunc func(ctx context.Context) ([]domain.MapItem, error)

// RegionDrillController переключает карту между регионами и местами региона
type RegionDrillController struct {
	loop     *Loop
	querier  Querier
	registry *MarkerRegistry
	viewport *ViewportController
	notifier Notifier
	logger   *zap.Logger

	base     context.Context
	national *domain.BoundingBox
	bounds   map[string]*domain.BoundingBox
	latest   requestTag
	seq      uint64
	cancel   context.CancelFunc
	pending  bool
	current  string
}

func NewRegionDrillController(
	loop *Loop,
	querier Querier,
	registry *MarkerRegistry,
	viewport *ViewportController,
	notifier Notifier,
	national *domain.BoundingBox,
	logger *zap.Logger,
) *RegionDrillController {
	return &RegionDrillController{
		loop:     loop,
		querier:  querier,
		registry: registry,
		viewport: viewport,
		notifier: notifier,
		logger:   logger,
		base:     context.Background(),
		national: national,
		bounds:   make(map[string]*domain.BoundingBox),
	}
}

// Bind задаёт контекст смонтированной карты
func (d *RegionDrillController) Bind(ctx context.Context) {
	d.base = ctx
}

// Load загружает регионы
func (d *RegionDrillController) Load() {
	d.issue("", func(ctx context.Context) ([]domain.MapItem, error) {
		regions, err := d.querier.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.MapItem, 0, len(regions))
		for _, r := range regions {
			items = append(items, domain.RegionItem(r))
		}
		return items, nil
	})
}

// Reset возвращает карту к обзору регионов
func (d *RegionDrillController) Reset() {
	d.Load()
}

// Enter загружает места региона
func (d *RegionDrillController) Enter(citySlug string) {
	d.issue(citySlug, func(ctx context.Context) ([]domain.MapItem, error) {
		places, err := d.querier.ListPlacesInRegion(ctx, citySlug)
		if err != nil {
			return nil, err
		}
		return placeItems(places), nil
	})
}

// Nearby загружает места в радиусе от точки
func (d *RegionDrillController) Nearby(center domain.LatLng, radiusKm float64) {
	slug := fmt.Sprintf("%s%s:%g", nearbyTagPrefix, center, radiusKm)
	d.issue(slug, func(ctx context.Context) ([]domain.MapItem, error) {
		places, err := d.querier.ListNearby(ctx, center, radiusKm)
		if err != nil {
			return nil, err
		}
		return placeItems(places), nil
	})
}

// Current - что сейчас на карте: "" - регионы, иначе slug региона или метка поиска рядом
func (d *RegionDrillController) Current() string {
	return d.current
}

// Pending - есть ли неприменённый запрос
func (d *RegionDrillController) Pending() bool {
	return d.pending
}

// Cancel отменяет запрос в полёте, его ответ будет отброшен
func (d *RegionDrillController) Cancel() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
	d.latest = requestTag{seq: d.seq}
	d.pending = false
}

func (d *RegionDrillController) issue(slug string, fetch fetchFunc) {
	if d.cancel != nil {
		d.cancel()
	}

	d.seq++
	tag := requestTag{slug: slug, seq: d.seq}
	d.latest = tag
	d.pending = true

	ctx, cancel := context.WithCancel(d.base)
	d.cancel = cancel

	go func() {
		items, err := fetch(ctx)
		d.loop.Post(func() { d.apply(tag, items, err) })
	}()
}

func (d *RegionDrillController) apply(tag requestTag, items []domain.MapItem, err error) {
	if tag != d.latest {
		d.logger.Debug("Discarding stale map response",
			zap.String("slug", tag.slug),
			zap.Uint64("seq", tag.seq),
			zap.String("latest", d.latest.slug))
		return
	}

	d.pending = false
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		d.logger.Error("Map query failed", zap.String("slug", tag.slug), zap.Error(err))
		d.notifier.Notify(noticeQueryFailed)
		return
	}

	if len(items) == 0 {
		switch {
		case tag.slug == "":
			d.notifier.Notify(noticeEmptyRegions)
		case strings.HasPrefix(tag.slug, nearbyTagPrefix):
			d.notifier.Notify(noticeEmptyNearby)
		default:
			d.notifier.Notify(noticeEmptyRegion)
		}
		return
	}

	if tag.slug == "" {
		d.rememberBounds(items)
	}

	d.registry.Populate(items)
	d.current = tag.slug
	d.viewport.Frame(items, d.frameBox(tag.slug))
}

func (d *RegionDrillController) frameBox(slug string) *domain.BoundingBox {
	if slug == "" {
		return d.national
	}
	return d.bounds[slug]
}

func (d *RegionDrillController) rememberBounds(items []domain.MapItem) {
	for _, item := range items {
		if item.Region != nil && item.Region.Bounds != nil {
			d.bounds[item.Region.Slug] = item.Region.Bounds
		}
	}
}

func placeItems(places []domain.Place) []domain.MapItem {
	items := make([]domain.MapItem, 0, len(places))
	for _, p := range places {
		items = append(items, domain.PlaceItem(p))
	}
	return items
}
