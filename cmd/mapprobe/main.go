// mapprobe - headless-хост движка карты: монтирует карту поверх API
// и печатает, что увидел бы пользователь. Используется для smoke-проверки стенда.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tourist-map/internal/config"
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/infrastructure/mapapi"
	"github.com/tourist-map/internal/mapview"
	"github.com/tourist-map/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	city := flag.String("city", "", "region slug to drill into")
	lat := flag.Float64("lat", 0, "nearby search latitude")
	lng := flag.Float64("lng", 0, "nearby search longitude")
	radius := flag.Float64("radius", 0, "nearby search radius, km")
	meLat := flag.Float64("me-lat", 0, "simulated device latitude")
	meLng := flag.Float64("me-lng", 0, "simulated device longitude")
	wait := flag.Duration("wait", 15*time.Second, "max time to wait for each step")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	// 3. Map API client
	client := mapapi.NewClient(&cfg.MapAPI, logger.Named(log, "mapapi"))

	// 4. Map engine
	surface := newLogSurface(logger.Named(log, "surface"))
	notifier := mapview.NotifierFunc(func(n mapview.Notice) {
		log.Warn("map notice",
			zap.String("kind", string(n.Kind)),
			zap.String("code", n.Code),
			zap.String("message", n.Message))
	})
	viewport := mapview.ViewportConfig{
		DetailZoom:    cfg.Map.DetailZoom,
		OverviewZoom:  cfg.Map.OverviewZoom,
		Padding:       cfg.Map.FitPadding,
		DefaultCenter: domain.LatLng{Lat: cfg.Map.DefaultCenterLat, Lng: cfg.Map.DefaultCenterLng},
	}

	opts := mapview.Options{
		Surface:            surface,
		Querier:            client,
		Notifier:           notifier,
		Logger:             logger.Named(log, "mapview"),
		Viewport:           viewport,
		GeolocationTimeout: cfg.Geolocation.Timeout,
	}
	if *meLat != 0 || *meLng != 0 {
		opts.Positions = staticPosition{at: domain.LatLng{Lat: *meLat, Lng: *meLng}}
	}

	m, err := mapview.NewMap(opts)
	if err != nil {
		log.Fatal("Failed to create map", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Mount and wait for regions
	m.Mount(ctx)
	if !settle(m, *wait) {
		log.Error("Regions did not load in time", zap.Duration("wait", *wait))
		os.Exit(1)
	}
	report(log, m, surface, "regions")

	// 6. Optional drill-in / nearby search
	if *city != "" {
		m.DrillIn(*city)
		if !settle(m, *wait) {
			log.Error("Region places did not load in time", zap.String("city", *city))
			os.Exit(1)
		}
		report(log, m, surface, "city")
	}

	if *radius > 0 {
		m.ShowNearby(domain.LatLng{Lat: *lat, Lng: *lng}, *radius)
		if !settle(m, *wait) {
			log.Error("Nearby places did not load in time")
			os.Exit(1)
		}
		report(log, m, surface, "nearby")
	}

	// 7. Unmount
	m.Unmount()
	m.Loop().RunPending()

	log.Info("Map probe finished", zap.String("circuit_breaker", client.State()))
}

// settle крутит цикл карты, пока не применится последний запрос
func settle(m *mapview.Map, wait time.Duration) bool {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		m.Loop().RunPending()
		if !m.Drill().Pending() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func report(log *zap.Logger, m *mapview.Map, surface *logSurface, step string) {
	for _, h := range m.Registry().Handles() {
		at := h.Anchor()
		log.Info("marker",
			zap.String("step", step),
			zap.String("type", string(h.Item.Type)),
			zap.String("slug", h.Item.Slug()),
			zap.String("name", h.Item.Name()),
			zap.String("at", at.String()))
	}

	counts := surface.countByKind()
	state := m.Viewport().State()
	fields := []zap.Field{
		zap.String("step", step),
		zap.Int("markers", m.Registry().Len()),
		zap.Int("user_markers", counts[mapview.MarkerUser]+counts[mapview.MarkerFallback]),
		zap.String("camera_center", state.Center.String()),
		zap.Float64("camera_zoom", state.Zoom),
	}
	if geo := m.Geolocation(); geo != nil {
		fields = append(fields, zap.String("geolocation", string(geo.State())))
	}
	log.Info("Map state", fields...)
}

// staticPosition - имитация геолокации устройства
type staticPosition struct {
	at domain.LatLng
}

func (p staticPosition) Watch(onPosition func(domain.LatLng), onError func(error)) func() {
	go onPosition(p.at)
	return func() {}
}

func (p staticPosition) Current(ctx context.Context) (domain.LatLng, error) {
	return p.at, nil
}
