package domain

import "github.com/google/uuid"

// PlaceDraft - данные формы создания места.
// Координаты приходят из режима выбора точки на карте.
type PlaceDraft struct {
	CitySlug string   `json:"citySlug" validate:"required"`
	AreaSlug *string  `json:"areaSlug,omitempty"`
	Name     string   `json:"name" validate:"required,min=2,max=120"`
	Category string   `json:"category" validate:"required"`
	Lat      *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng      *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Images   []string `json:"images" validate:"omitempty,max=10,dive,url"`
}

// SetLocation - выставить координаты из выбранной точки
func (d *PlaceDraft) SetLocation(p LatLng) {
	lat, lng := p.Lat, p.Lng
	d.Lat, d.Lng = &lat, &lng
}

// ClearLocation - сбросить координаты (например, при смене города)
func (d *PlaceDraft) ClearLocation() {
	d.Lat, d.Lng = nil, nil
}

// CreatedPlace - ответ сервиса создания мест
type CreatedPlace struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}
