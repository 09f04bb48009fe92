package mapview

import (
	"github.com/tourist-map/internal/domain"
)

// ViewportConfig - параметры камеры
type ViewportConfig struct {
	DetailZoom    float64
	OverviewZoom  float64
	Padding       int
	DefaultCenter domain.LatLng
}

// DefaultViewportConfig - обзор Перу
func DefaultViewportConfig() ViewportConfig {
	return ViewportConfig{
		DetailZoom:    14,
		OverviewZoom:  5,
		Padding:       60,
		DefaultCenter: domain.LatLng{Lat: -9.19, Lng: -75.0152},
	}
}

// ViewportController - единственный владелец камеры карты.
// Переходы не ждут завершения анимации.
type ViewportController struct {
	surface Surface
	popups  *PopupController
	cfg     ViewportConfig
	state   ViewportState
}

func NewViewportController(surface Surface, popups *PopupController, cfg ViewportConfig) *ViewportController {
	return &ViewportController{
		surface: surface,
		popups:  popups,
		cfg:     cfg,
		state:   ViewportState{Center: cfg.DefaultCenter, Zoom: cfg.OverviewZoom},
	}
}

// Frame показывает набор элементов. Если известна рамка - вписывает её,
// иначе рамку элементов; один элемент или пустой набор - переход к центру.
func (v *ViewportController) Frame(items []domain.MapItem, box *domain.BoundingBox) {
	if box != nil {
		v.fit(*box)
		return
	}

	points := make([]domain.LatLng, 0, len(items))
	for _, item := range items {
		if loc, ok := item.Location(); ok {
			points = append(points, loc)
		}
	}

	if len(points) == 0 {
		v.EaseTo(v.cfg.DefaultCenter, v.cfg.OverviewZoom)
		return
	}

	bounds, _ := domain.BoundsOf(points)
	// все точки совпадают - вписывать нечего
	if bounds.West == bounds.East && bounds.South == bounds.North {
		v.EaseTo(points[0], v.cfg.DetailZoom)
		return
	}
	v.fit(bounds)
}

// Focus - перелёт к маркеру и переключение его попапа
func (v *ViewportController) Focus(h *MarkerHandle) {
	v.FlyTo(h.Anchor())
	v.popups.Toggle(h)
}

// FlyTo - перелёт к точке с детальным зумом
func (v *ViewportController) FlyTo(center domain.LatLng) {
	v.surface.FlyTo(center, v.cfg.DetailZoom)
	v.state = ViewportState{Center: center, Zoom: v.cfg.DetailZoom}
}

func (v *ViewportController) EaseTo(center domain.LatLng, zoom float64) {
	v.surface.EaseTo(center, zoom)
	v.state = ViewportState{Center: center, Zoom: zoom}
}

// State - последнее запрошенное положение камеры.
// После вписывания рамки зум выбирает поверхность, поэтому Zoom = 0.
func (v *ViewportController) State() ViewportState {
	return v.state
}

func (v *ViewportController) Config() ViewportConfig {
	return v.cfg
}

func (v *ViewportController) fit(box domain.BoundingBox) {
	v.surface.FitBounds(box, v.cfg.Padding)
	v.state = ViewportState{Center: box.Center(), Bounds: &box}
}
