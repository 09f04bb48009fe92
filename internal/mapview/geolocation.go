package mapview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tourist-map/internal/domain"
	"go.uber.org/zap"
)

// GeoState - состояние определения местоположения
type GeoState string

const (
	GeoIdle        GeoState = "idle"
	GeoRequesting  GeoState = "requesting"
	GeoResolved    GeoState = "resolved"
	GeoDenied      GeoState = "denied"
	GeoUnavailable GeoState = "unavailable"
	GeoTimedOut    GeoState = "timed_out"
)

// PositionErrorCode - причина отказа платформы в координатах
type PositionErrorCode int

const (
	PositionDenied PositionErrorCode = iota + 1
	PositionUnavailable
	PositionTimeout
)

type PositionError struct {
	Code    PositionErrorCode
	Message string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position error %d: %s", e.Code, e.Message)
}

// PositionSource - геолокация платформы.
// Watch отслеживает положение до вызова stop, колбэки приходят из любой горутины.
type PositionSource interface {
	Watch(onPosition func(domain.LatLng), onError func(error)) (stop func())
	Current(ctx context.Context) (domain.LatLng, error)
}

// DefaultGeolocationTimeout - предел разового запроса координат
const DefaultGeolocationTimeout = 12 * time.Second

var (
	userMarkerStyle     = MarkerStyle{Kind: MarkerUser, Size: 16, Color: "#2563eb", Halo: true}
	fallbackMarkerStyle = MarkerStyle{Kind: MarkerFallback, Size: 22, Color: "#2563eb"}
)

// GeolocationResolver показывает положение пользователя.
// Основной путь - отслеживание, при его ошибке один разовый запрос с таймаутом.
// Ответы старых подписок отбрасываются по номеру поколения.
type GeolocationResolver struct {
	loop     *Loop
	surface  Surface
	viewport *ViewportController
	source   PositionSource
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration

	state          GeoState
	gen            uint64
	stop           func()
	cancelFallback context.CancelFunc
	fallbackUsed   bool
	primaryFix     bool
	userMarker     Element
	fallbackMarker Element
	position       *domain.LatLng
}

func NewGeolocationResolver(
	loop *Loop,
	surface Surface,
	viewport *ViewportController,
	source PositionSource,
	notifier Notifier,
	timeout time.Duration,
	logger *zap.Logger,
) *GeolocationResolver {
	if timeout <= 0 {
		timeout = DefaultGeolocationTimeout
	}
	return &GeolocationResolver{
		loop:     loop,
		surface:  surface,
		viewport: viewport,
		source:   source,
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
		state:    GeoIdle,
	}
}

// Locate (пере)запускает отслеживание. Используется и при монтировании,
// и по кнопке "где я", когда платформа требует жест пользователя.
func (g *GeolocationResolver) Locate() {
	g.teardown()

	g.gen++
	gen := g.gen
	g.state = GeoRequesting
	g.primaryFix = false

	g.stop = g.source.Watch(
		func(p domain.LatLng) {
			g.loop.Post(func() { g.onPosition(gen, p) })
		},
		func(err error) {
			g.loop.Post(func() { g.onWatchError(gen, err) })
		},
	)
}

// Close отключает отслеживание и убирает маркеры положения
func (g *GeolocationResolver) Close() {
	g.teardown()
	g.gen++
	g.state = GeoIdle

	if g.userMarker != nil {
		g.userMarker.Remove()
		g.userMarker = nil
	}
	g.removeFallback()
}

func (g *GeolocationResolver) State() GeoState {
	return g.state
}

// Position - последнее известное положение
func (g *GeolocationResolver) Position() (domain.LatLng, bool) {
	if g.position == nil {
		return domain.LatLng{}, false
	}
	return *g.position, true
}

func (g *GeolocationResolver) teardown() {
	if g.stop != nil {
		g.stop()
		g.stop = nil
	}
	if g.cancelFallback != nil {
		g.cancelFallback()
		g.cancelFallback = nil
	}
	g.fallbackUsed = false
}

func (g *GeolocationResolver) onPosition(gen uint64, p domain.LatLng) {
	if gen != g.gen {
		return
	}
	if !p.Valid() {
		g.logger.Warn("Ignoring invalid device position", zap.String("position", p.String()))
		return
	}

	g.state = GeoResolved
	g.primaryFix = true
	g.position = &p

	if g.userMarker == nil {
		g.userMarker = g.surface.CreateMarker(userMarkerStyle, p)
	} else {
		g.userMarker.SetAnchor(p)
	}

	// основной источник заработал - запасной маркер больше не нужен
	g.removeFallback()
}

func (g *GeolocationResolver) onWatchError(gen uint64, err error) {
	if gen != g.gen {
		return
	}

	// разовый запрос - один на поколение отслеживания
	if g.primaryFix || g.fallbackUsed {
		g.logger.Debug("Ignoring repeated position watch error", zap.Error(err))
		return
	}
	g.fallbackUsed = true

	g.logger.Info("Position watch failed, trying one-shot request", zap.Error(err))

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	g.cancelFallback = cancel

	go func() {
		defer cancel()
		p, err := g.current(ctx)
		g.loop.Post(func() { g.onFallback(gen, p, err) })
	}()
}

// current - разовый запрос, который не может зависнуть дольше таймаута контекста
func (g *GeolocationResolver) current(ctx context.Context) (domain.LatLng, error) {
	type result struct {
		p   domain.LatLng
		err error
	}
	ch := make(chan result, 1)

	go func() {
		p, err := g.source.Current(ctx)
		ch <- result{p: p, err: err}
	}()

	select {
	case res := <-ch:
		return res.p, res.err
	case <-ctx.Done():
		return domain.LatLng{}, &PositionError{Code: PositionTimeout, Message: ctx.Err().Error()}
	}
}

func (g *GeolocationResolver) onFallback(gen uint64, p domain.LatLng, err error) {
	if gen != g.gen {
		return
	}
	g.cancelFallback = nil

	if err == nil && !p.Valid() {
		err = &PositionError{Code: PositionUnavailable, Message: "invalid position " + p.String()}
	}

	// основной источник успел ответить
	if g.primaryFix {
		return
	}

	if err != nil {
		g.fail(err)
		return
	}

	g.state = GeoResolved
	g.position = &p

	// индикатор прошлого отслеживания устарел
	if g.userMarker != nil {
		g.userMarker.Remove()
		g.userMarker = nil
	}

	if g.fallbackMarker == nil {
		g.fallbackMarker = g.surface.CreateMarker(fallbackMarkerStyle, p)
	} else {
		g.fallbackMarker.SetAnchor(p)
	}
	g.viewport.FlyTo(p)
}

func (g *GeolocationResolver) fail(err error) {
	code := positionErrorCode(err)

	switch code {
	case PositionDenied:
		g.state = GeoDenied
		g.notifier.Notify(noticeGeoDenied)
	case PositionTimeout:
		g.state = GeoTimedOut
		g.notifier.Notify(noticeGeoTimeout)
	default:
		g.state = GeoUnavailable
		g.notifier.Notify(noticeGeoUnavailable)
	}

	g.logger.Warn("Could not determine user position",
		zap.String("state", string(g.state)),
		zap.Error(err))
}

func (g *GeolocationResolver) removeFallback() {
	if g.fallbackMarker != nil {
		g.fallbackMarker.Remove()
		g.fallbackMarker = nil
	}
}

func positionErrorCode(err error) PositionErrorCode {
	var perr *PositionError
	if errors.As(err, &perr) {
		return perr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return PositionTimeout
	}
	return PositionUnavailable
}
