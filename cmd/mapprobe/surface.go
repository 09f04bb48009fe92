package main

import (
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/mapview"
	"go.uber.org/zap"
)

// logSurface - поверхность без отрисовки: пишет команды движка в лог
type logSurface struct {
	logger *zap.Logger
	camera mapview.ViewportState
	live   map[*logElement]struct{}
}

func newLogSurface(logger *zap.Logger) *logSurface {
	return &logSurface{
		logger: logger,
		live:   make(map[*logElement]struct{}),
	}
}

func (s *logSurface) CreateMarker(style mapview.MarkerStyle, at domain.LatLng) mapview.Element {
	e := &logElement{surface: s, style: style, anchor: at}
	s.live[e] = struct{}{}
	s.logger.Debug("marker created",
		zap.String("kind", string(style.Kind)),
		zap.String("at", at.String()),
		zap.String("color", style.Color),
		zap.String("label", style.Label),
		zap.Bool("halo", style.Halo))
	return e
}

func (s *logSurface) FitBounds(box domain.BoundingBox, padding int) {
	s.camera = mapview.ViewportState{Center: box.Center(), Bounds: &box}
	s.logger.Info("camera fit bounds",
		zap.Float64s("bbox", []float64{box.West, box.South, box.East, box.North}),
		zap.Int("padding", padding))
}

func (s *logSurface) EaseTo(center domain.LatLng, zoom float64) {
	s.camera = mapview.ViewportState{Center: center, Zoom: zoom}
	s.logger.Info("camera ease", zap.String("center", center.String()), zap.Float64("zoom", zoom))
}

func (s *logSurface) FlyTo(center domain.LatLng, zoom float64) {
	s.camera = mapview.ViewportState{Center: center, Zoom: zoom}
	s.logger.Info("camera fly", zap.String("center", center.String()), zap.Float64("zoom", zoom))
}

func (s *logSurface) Camera() mapview.ViewportState {
	return s.camera
}

// countByKind - живые маркеры по типу
func (s *logSurface) countByKind() map[mapview.MarkerKind]int {
	out := make(map[mapview.MarkerKind]int)
	for e := range s.live {
		out[e.style.Kind]++
	}
	return out
}

type logElement struct {
	surface *logSurface
	style   mapview.MarkerStyle
	anchor  domain.LatLng
}

func (e *logElement) Anchor() domain.LatLng {
	return e.anchor
}

func (e *logElement) SetAnchor(at domain.LatLng) {
	e.anchor = at
	e.surface.logger.Debug("marker moved", zap.String("kind", string(e.style.Kind)), zap.String("at", at.String()))
}

func (e *logElement) OpenPopup(content mapview.PopupContent) {
	e.surface.logger.Debug("popup opened", zap.String("title", content.Title), zap.String("link", content.Link))
}

func (e *logElement) ClosePopup() {}

func (e *logElement) Remove() {
	delete(e.surface.live, e)
}
