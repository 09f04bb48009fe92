package mapview

import "github.com/tourist-map/internal/domain"

// PickHandler получает выбранную на карте точку
type PickHandler func(at domain.LatLng)

// PickerState - состояние режима выбора точки
type PickerState struct {
	Enabled    bool
	LastPicked *domain.LatLng
}

// PickerMode - режим "клик выбирает координату".
// Пока режим включён, клики по карте не доходят до маркеров.
type PickerMode struct {
	enabled  bool
	handler  PickHandler
	last     *domain.LatLng
	onToggle func(armed bool)
}

func NewPickerMode(onToggle func(armed bool)) *PickerMode {
	return &PickerMode{onToggle: onToggle}
}

// Enable включает режим. Повторный вызов только меняет обработчик.
func (p *PickerMode) Enable(handler PickHandler) {
	p.handler = handler
	if p.enabled {
		return
	}
	p.enabled = true
	if p.onToggle != nil {
		p.onToggle(true)
	}
}

// Disable выключает режим, последняя выбранная точка сохраняется
func (p *PickerMode) Disable() {
	if !p.enabled {
		return
	}
	p.enabled = false
	p.handler = nil
	if p.onToggle != nil {
		p.onToggle(false)
	}
}

// HandleClick передаёт точку обработчику. false - режим выключен.
func (p *PickerMode) HandleClick(at domain.LatLng) bool {
	if !p.enabled {
		return false
	}
	picked := at
	p.last = &picked
	if p.handler != nil {
		p.handler(at)
	}
	return true
}

func (p *PickerMode) Enabled() bool {
	return p.enabled
}

func (p *PickerMode) LastPicked() (domain.LatLng, bool) {
	if p.last == nil {
		return domain.LatLng{}, false
	}
	return *p.last, true
}

// Reset забывает выбранную точку (например, при смене города в форме)
func (p *PickerMode) Reset() {
	p.last = nil
}

func (p *PickerMode) State() PickerState {
	state := PickerState{Enabled: p.enabled}
	if p.last != nil {
		last := *p.last
		state.LastPicked = &last
	}
	return state
}
