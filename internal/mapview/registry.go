package mapview

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/tourist-map/internal/domain"
	"go.uber.org/zap"
)

// Intent - именованное действие пользователя над маркером
type Intent int

const (
	IntentActivate Intent = iota
	IntentHoverEnter
	IntentHoverLeave
)

func (i Intent) String() string {
	switch i {
	case IntentActivate:
		return "activate"
	case IntentHoverEnter:
		return "hover_enter"
	case IntentHoverLeave:
		return "hover_leave"
	}
	return "unknown"
}

// Intents - таблица обработчиков маркера
type Intents map[Intent]func()

// Binder строит таблицу обработчиков для нового маркера
type Binder func(h *MarkerHandle) Intents

const (
	regionMarkerSize = 44
	placeMarkerSize  = 18
	regionColor      = "#1d4ed8"
	defaultColor     = "#6b7280"
)

// categoryColors - фиксированные цвета для основных категорий
var categoryColors = map[string]string{
	"attraction": "#dc2626",
	"museum":     "#7c3aed",
	"restaurant": "#ea580c",
	"hotel":      "#0891b2",
	"nature":     "#16a34a",
	"beach":      "#0ea5e9",
	"adventure":  "#ca8a04",
	"nightlife":  "#db2777",
	"shopping":   "#9333ea",
}

// palette - цвета для остальных категорий, выбираются по хешу названия
var palette = []string{
	"#b91c1c", "#c2410c", "#a16207", "#4d7c0f",
	"#047857", "#0f766e", "#0369a1", "#4338ca",
	"#6d28d9", "#a21caf", "#be123c", "#57534e",
}

// CategoryColor - стабильный цвет категории места
func CategoryColor(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return defaultColor
	}
	if c, ok := categoryColors[key]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}

// MarkerHandle - живой маркер на карте: элемент, попап и якорь.
// Принадлежит MarkerRegistry, при обновлении данных пересоздаётся, а не меняется.
type MarkerHandle struct {
	Key     domain.ItemKey
	Item    domain.MapItem
	element Element
	popup   popupState
	intents Intents
}

// Anchor - географическая точка маркера
func (h *MarkerHandle) Anchor() domain.LatLng {
	return h.element.Anchor()
}

// MarkerRegistry - таблица маркеров по стабильному ключу элемента
type MarkerRegistry struct {
	surface Surface
	bind    Binder
	logger  *zap.Logger
	handles map[domain.ItemKey]*MarkerHandle
	order   []domain.ItemKey
}

func NewMarkerRegistry(surface Surface, bind Binder, logger *zap.Logger) *MarkerRegistry {
	return &MarkerRegistry{
		surface: surface,
		bind:    bind,
		logger:  logger,
		handles: make(map[domain.ItemKey]*MarkerHandle),
	}
}

// Populate удаляет все маркеры и создаёт новые по списку элементов.
// Элементы без корректных координат и дубликаты пропускаются.
// Возвращает количество созданных маркеров.
func (r *MarkerRegistry) Populate(items []domain.MapItem) int {
	r.Clear()

	skipped := 0
	for _, item := range items {
		loc, ok := item.Location()
		if !ok {
			skipped++
			r.logger.Warn("Skipping map item with invalid coordinates",
				zap.String("key", item.Key().String()),
				zap.String("slug", item.Slug()))
			continue
		}

		key := item.Key()
		if _, dup := r.handles[key]; dup {
			skipped++
			r.logger.Warn("Skipping duplicate map item", zap.String("key", key.String()))
			continue
		}

		h := &MarkerHandle{
			Key:     key,
			Item:    item,
			element: r.surface.CreateMarker(styleFor(item), loc),
		}
		if r.bind != nil {
			h.intents = r.bind(h)
		}

		r.handles[key] = h
		r.order = append(r.order, key)
	}

	r.logger.Debug("Markers populated",
		zap.Int("markers", len(r.order)),
		zap.Int("skipped", skipped))

	return len(r.order)
}

// Clear удаляет все маркеры с карты
func (r *MarkerRegistry) Clear() {
	for _, key := range r.order {
		r.handles[key].element.Remove()
	}
	r.handles = make(map[domain.ItemKey]*MarkerHandle)
	r.order = nil
}

func (r *MarkerRegistry) Get(key domain.ItemKey) (*MarkerHandle, bool) {
	h, ok := r.handles[key]
	return h, ok
}

// Handles - маркеры в порядке создания
func (r *MarkerRegistry) Handles() []*MarkerHandle {
	out := make([]*MarkerHandle, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.handles[key])
	}
	return out
}

// Items - исходные элементы текущих маркеров
func (r *MarkerRegistry) Items() []domain.MapItem {
	out := make([]domain.MapItem, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.handles[key].Item)
	}
	return out
}

func (r *MarkerRegistry) Len() int {
	return len(r.order)
}

// Dispatch вызывает обработчик намерения у маркера. false - маркера или обработчика нет.
func (r *MarkerRegistry) Dispatch(key domain.ItemKey, intent Intent) bool {
	h, ok := r.handles[key]
	if !ok {
		return false
	}
	fn, ok := h.intents[intent]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

func styleFor(item domain.MapItem) MarkerStyle {
	if item.Type == domain.MapItemRegion {
		return MarkerStyle{
			Kind:  MarkerRegion,
			Size:  regionMarkerSize,
			Color: regionColor,
			Label: strconv.Itoa(item.Region.PlaceCount),
		}
	}
	return MarkerStyle{
		Kind:  MarkerPlace,
		Size:  placeMarkerSize,
		Color: CategoryColor(item.Place.Category),
		Halo:  item.Place.Featured,
	}
}
