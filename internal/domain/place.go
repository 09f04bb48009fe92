package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlaceStatus - статус модерации места
type PlaceStatus string

const (
	PlaceStatusDraft     PlaceStatus = "draft"
	PlaceStatusPending   PlaceStatus = "pending"
	PlaceStatusPublished PlaceStatus = "published"
	PlaceStatusRejected  PlaceStatus = "rejected"
)

// CityRef - ссылка места на регион (город/департамент)
type CityRef struct {
	Slug string `json:"slug" db:"city_slug"`
	Name string `json:"name" db:"city_name"`
}

// Region - регион верхнего уровня с количеством опубликованных мест.
// Вычисляется при каждом запросе, отдельно не хранится.
type Region struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	Name       string       `json:"name" db:"name"`
	Slug       string       `json:"slug" db:"slug"`
	Center     LatLng       `json:"center"`
	Bounds     *BoundingBox `json:"bbox,omitempty"`
	PlaceCount int          `json:"count" db:"place_count"`
}

// Place - проекция места для карты
type Place struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Name             string      `json:"name" db:"name"`
	Slug             string      `json:"slug" db:"slug"`
	Category         string      `json:"category" db:"category"`
	Location         *LatLng     `json:"location,omitempty"`
	Featured         bool        `json:"featured" db:"featured"`
	ShortDescription *string     `json:"shortDescription,omitempty" db:"short_description"`
	Images           []string    `json:"images" db:"images"`
	RatingAvg        *float64    `json:"ratingAvg,omitempty" db:"rating_avg"`
	Status           PlaceStatus `json:"status" db:"status"`
	City             CityRef     `json:"city"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}

// HasValidLocation - есть ли у места корректные координаты
func (p *Place) HasValidLocation() bool {
	return p.Location != nil && p.Location.Valid()
}

// MainImage - первое изображение или nil
func (p *Place) MainImage() *string {
	if len(p.Images) == 0 {
		return nil
	}
	img := p.Images[0]
	return &img
}

// DetailPath - адрес страницы места
func (p *Place) DetailPath() string {
	return PlaceDetailPath(p.City.Slug, p.Slug)
}

// PlaceDetailPath - URL страницы места вида /{citySlug}/places/{slug}
func PlaceDetailPath(citySlug, slug string) string {
	return fmt.Sprintf("/%s/places/%s", citySlug, slug)
}
