package mapview

import "github.com/tourist-map/internal/domain"

// MarkerKind - тип визуального маркера
type MarkerKind string

const (
	MarkerRegion   MarkerKind = "region"
	MarkerPlace    MarkerKind = "place"
	MarkerUser     MarkerKind = "user"
	MarkerFallback MarkerKind = "fallback"
)

// MarkerStyle - как отрисовать маркер
type MarkerStyle struct {
	Kind  MarkerKind
	Size  int
	Color string
	Label string
	Halo  bool
}

// PopupContent - содержимое попапа маркера
type PopupContent struct {
	Title       string
	Description string
	Thumbnail   string
	Link        string
	// DrillIn - у региона вместо ссылки кнопка перехода к местам
	DrillIn bool
	Count   int
}

// ViewportState - последнее запрошенное положение камеры
type ViewportState struct {
	Center domain.LatLng
	Zoom   float64
	Bounds *domain.BoundingBox
}

// Surface - движок отрисовки карты (в браузере эту роль играет JS-библиотека).
// Переходы камеры асинхронные и fire-and-forget: новый переход отменяет предыдущий.
type Surface interface {
	CreateMarker(style MarkerStyle, at domain.LatLng) Element
	FitBounds(box domain.BoundingBox, padding int)
	EaseTo(center domain.LatLng, zoom float64)
	FlyTo(center domain.LatLng, zoom float64)
	Camera() ViewportState
}

// Element - визуальный элемент маркера на поверхности
type Element interface {
	Anchor() domain.LatLng
	SetAnchor(at domain.LatLng)
	OpenPopup(content PopupContent)
	ClosePopup()
	Remove()
}
