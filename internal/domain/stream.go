package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (публикует подсистема управления местами)
const (
	StreamPlacesChanged = "stream:places:changed"
)

// PlaceChangeKind - что произошло с местом
type PlaceChangeKind string

const (
	PlaceCreated   PlaceChangeKind = "created"
	PlaceUpdated   PlaceChangeKind = "updated"
	PlaceDeleted   PlaceChangeKind = "deleted"
	PlaceModerated PlaceChangeKind = "moderated"
)

// PlaceChangedEvent - событие изменения места; по нему сбрасывается кеш карты
type PlaceChangedEvent struct {
	EventID          uuid.UUID       `json:"event_id"`
	PlaceID          uuid.UUID       `json:"place_id"`
	CitySlug         string          `json:"city_slug"`
	PreviousCitySlug *string         `json:"previous_city_slug,omitempty"` // если место перенесли в другой регион
	Kind             PlaceChangeKind `json:"kind"`
	Status           PlaceStatus     `json:"status"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

// AffectedCities - регионы, чей кеш нужно сбросить
func (e *PlaceChangedEvent) AffectedCities() []string {
	cities := make([]string, 0, 2)
	if e.CitySlug != "" {
		cities = append(cities, e.CitySlug)
	}
	if e.PreviousCitySlug != nil && *e.PreviousCitySlug != "" && *e.PreviousCitySlug != e.CitySlug {
		cities = append(cities, *e.PreviousCitySlug)
	}
	return cities
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
