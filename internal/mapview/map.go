package mapview

import (
	"context"
	"fmt"
	"time"

	"github.com/tourist-map/internal/domain"
	"go.uber.org/zap"
)

// ClickEvent - клик по карте. Target заполнен, если клик пришёлся на маркер.
type ClickEvent struct {
	At     domain.LatLng
	Target *domain.ItemKey
}

// Options - зависимости карты
type Options struct {
	Surface            Surface
	Querier            Querier
	Positions          PositionSource
	Notifier           Notifier
	Logger             *zap.Logger
	Viewport           ViewportConfig
	GeolocationTimeout time.Duration
	NationalBounds     *domain.BoundingBox
}

// Map - смонтированная карта: контроллеры вокруг одной поверхности и одного цикла.
// Экспортируемые методы Map можно вызывать из любой горутины,
// методы контроллеров - только из цикла.
type Map struct {
	loop     *Loop
	registry *MarkerRegistry
	popups   *PopupController
	viewport *ViewportController
	geo      *GeolocationResolver
	picker   *PickerMode
	drill    *RegionDrillController
	logger   *zap.Logger

	route   func(ev ClickEvent)
	cancel  context.CancelFunc
	mounted bool
}

func NewMap(opts Options) (*Map, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("map surface is required")
	}
	if opts.Querier == nil {
		return nil, fmt.Errorf("map querier is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Viewport == (ViewportConfig{}) {
		opts.Viewport = DefaultViewportConfig()
	}

	m := &Map{
		loop:   NewLoop(opts.Logger.Named("loop")),
		popups: NewPopupController(),
		logger: opts.Logger,
	}

	m.viewport = NewViewportController(opts.Surface, m.popups, opts.Viewport)
	m.registry = NewMarkerRegistry(opts.Surface, m.bind, opts.Logger.Named("markers"))
	m.picker = NewPickerMode(m.onPickerToggle)
	m.drill = NewRegionDrillController(
		m.loop,
		opts.Querier,
		m.registry,
		m.viewport,
		opts.Notifier,
		opts.NationalBounds,
		opts.Logger.Named("drill"),
	)
	if opts.Positions != nil {
		m.geo = NewGeolocationResolver(
			m.loop,
			opts.Surface,
			m.viewport,
			opts.Positions,
			opts.Notifier,
			opts.GeolocationTimeout,
			opts.Logger.Named("geolocation"),
		)
	}
	m.route = m.navigate

	return m, nil
}

// Loop - цикл карты. Хост запускает Run или вызывает RunPending.
func (m *Map) Loop() *Loop {
	return m.loop
}

// Mount загружает регионы и запускает геолокацию
func (m *Map) Mount(ctx context.Context) {
	m.loop.Post(func() {
		if m.mounted {
			return
		}
		m.mounted = true

		mctx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.drill.Bind(mctx)
		m.drill.Load()

		if m.geo != nil {
			m.geo.Locate()
		}
		m.logger.Info("Map mounted")
	})
}

// Unmount освобождает подписки платформы и убирает маркеры
func (m *Map) Unmount() {
	m.loop.Post(func() {
		if !m.mounted {
			return
		}
		m.mounted = false

		m.drill.Cancel()
		if m.geo != nil {
			m.geo.Close()
		}
		m.picker.Disable()
		m.registry.Clear()
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.logger.Info("Map unmounted")
	})
}

func (m *Map) Click(ev ClickEvent) {
	m.loop.Post(func() { m.route(ev) })
}

func (m *Map) HoverEnter(key domain.ItemKey) {
	m.loop.Post(func() { m.registry.Dispatch(key, IntentHoverEnter) })
}

func (m *Map) HoverLeave(key domain.ItemKey) {
	m.loop.Post(func() { m.registry.Dispatch(key, IntentHoverLeave) })
}

// Locate - кнопка "где я"
func (m *Map) Locate() {
	m.loop.Post(func() {
		if m.geo == nil {
			return
		}
		m.geo.Locate()
	})
}

// DrillIn открывает места региона
func (m *Map) DrillIn(citySlug string) {
	m.loop.Post(func() { m.drill.Enter(citySlug) })
}

// ShowNearby показывает места в радиусе от точки
func (m *Map) ShowNearby(center domain.LatLng, radiusKm float64) {
	m.loop.Post(func() { m.drill.Nearby(center, radiusKm) })
}

// Reset возвращает обзор регионов
func (m *Map) Reset() {
	m.loop.Post(func() { m.drill.Reset() })
}

func (m *Map) EnablePicker(handler PickHandler) {
	m.loop.Post(func() { m.picker.Enable(handler) })
}

func (m *Map) DisablePicker() {
	m.loop.Post(func() { m.picker.Disable() })
}

// BeginCreation создаёт контекст формы нового места и включает выбор точки
func (m *Map) BeginCreation(citySlug string) *CreationContext {
	cc := NewCreationContext(m.loop, m.picker, citySlug, m.logger.Named("creation"))
	m.loop.Post(cc.Begin)
	return cc
}

func (m *Map) Registry() *MarkerRegistry {
	return m.registry
}

func (m *Map) Popups() *PopupController {
	return m.popups
}

func (m *Map) Viewport() *ViewportController {
	return m.viewport
}

func (m *Map) Picker() *PickerMode {
	return m.picker
}

// Geolocation - nil, если источник координат не задан
func (m *Map) Geolocation() *GeolocationResolver {
	return m.geo
}

func (m *Map) Drill() *RegionDrillController {
	return m.drill
}

// onPickerToggle подменяет обработку кликов целиком
func (m *Map) onPickerToggle(armed bool) {
	if armed {
		m.route = m.pick
	} else {
		m.route = m.navigate
	}
}

func (m *Map) navigate(ev ClickEvent) {
	if ev.Target == nil {
		return
	}
	m.registry.Dispatch(*ev.Target, IntentActivate)
}

func (m *Map) pick(ev ClickEvent) {
	m.picker.HandleClick(ev.At)
}

func (m *Map) bind(h *MarkerHandle) Intents {
	return Intents{
		IntentActivate:   func() { m.activate(h) },
		IntentHoverEnter: func() { m.popups.Show(h) },
		IntentHoverLeave: func() { m.popups.Hide(h) },
	}
}

func (m *Map) activate(h *MarkerHandle) {
	m.viewport.Focus(h)
	if h.Item.Type == domain.MapItemRegion {
		m.drill.Enter(h.Item.Region.Slug)
	}
}
