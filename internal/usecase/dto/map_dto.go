package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tourist-map/internal/domain"
)

// MapQueryMode - режим запроса эндпоинта карты
type MapQueryMode string

const (
	MapModeRegions MapQueryMode = "regions"
	MapModeCity    MapQueryMode = "city"
	MapModeNearby  MapQueryMode = "nearby"
	MapModeEmpty   MapQueryMode = "empty"
)

// MapQueryRequest - параметры GET /places/map
type MapQueryRequest struct {
	Mode   string   `query:"mode" validate:"omitempty,oneof=regions"`
	City   string   `query:"city" validate:"omitempty,max=100"`
	Lat    *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lng    *float64 `query:"lng" validate:"omitempty,min=-180,max=180"`
	Radius *float64 `query:"radius" validate:"omitempty,gt=0"` // км
}

// Resolve определяет режим: regions, затем city, затем lat+lng+radius
func (r *MapQueryRequest) Resolve() MapQueryMode {
	switch {
	case r.Mode == string(MapModeRegions):
		return MapModeRegions
	case strings.TrimSpace(r.City) != "":
		return MapModeCity
	case r.Lat != nil && r.Lng != nil && r.Radius != nil:
		return MapModeNearby
	default:
		return MapModeEmpty
	}
}

// Center - точка поиска для режима nearby
func (r *MapQueryRequest) Center() domain.LatLng {
	if r.Lat == nil || r.Lng == nil {
		return domain.LatLng{}
	}
	return domain.LatLng{Lat: *r.Lat, Lng: *r.Lng}
}

// RegionItem - элемент ответа mode=regions
type RegionItem struct {
	ID    uuid.UUID           `json:"id"`
	Name  string              `json:"name"`
	Slug  string              `json:"slug"`
	Lat   float64             `json:"lat"`
	Lng   float64             `json:"lng"`
	Count int                 `json:"count"`
	BBox  *domain.BoundingBox `json:"bbox,omitempty"`
}

// CityRefDTO - ссылка на регион в элементе места
type CityRefDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// PlaceItem - элемент ответа city / nearby
type PlaceItem struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Lat              float64    `json:"lat"`
	Lng              float64    `json:"lng"`
	Category         string     `json:"category"`
	Featured         bool       `json:"featured"`
	ShortDescription *string    `json:"shortDescription"`
	Images           []string   `json:"images"`
	MainImage        *string    `json:"mainImage"`
	RatingAvg        *float64   `json:"ratingAvg"`
	City             CityRefDTO `json:"city"`
	DistanceKm       *float64   `json:"distanceKm,omitempty"`
}

func NewRegionItem(r domain.Region) RegionItem {
	return RegionItem{
		ID:    r.ID,
		Name:  r.Name,
		Slug:  r.Slug,
		Lat:   r.Center.Lat,
		Lng:   r.Center.Lng,
		Count: r.PlaceCount,
		BBox:  r.Bounds,
	}
}

// NewPlaceItem - проекция места; вызывающий проверяет координаты заранее
func NewPlaceItem(p domain.Place) PlaceItem {
	item := PlaceItem{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Category:         p.Category,
		Featured:         p.Featured,
		ShortDescription: p.ShortDescription,
		Images:           p.Images,
		MainImage:        p.MainImage(),
		RatingAvg:        p.RatingAvg,
		City:             CityRefDTO{Slug: p.City.Slug, Name: p.City.Name},
	}
	if item.Images == nil {
		item.Images = []string{}
	}
	if p.Location != nil {
		item.Lat = p.Location.Lat
		item.Lng = p.Location.Lng
	}
	return item
}

// ToRegion - обратное преобразование для клиента карты
func (i RegionItem) ToRegion() domain.Region {
	return domain.Region{
		ID:         i.ID,
		Name:       i.Name,
		Slug:       i.Slug,
		Center:     domain.LatLng{Lat: i.Lat, Lng: i.Lng},
		Bounds:     i.BBox,
		PlaceCount: i.Count,
	}
}

// ToPlace - обратное преобразование для клиента карты
func (i PlaceItem) ToPlace() domain.Place {
	loc := domain.LatLng{Lat: i.Lat, Lng: i.Lng}
	return domain.Place{
		ID:               i.ID,
		Name:             i.Name,
		Slug:             i.Slug,
		Category:         i.Category,
		Location:         &loc,
		Featured:         i.Featured,
		ShortDescription: i.ShortDescription,
		Images:           i.Images,
		RatingAvg:        i.RatingAvg,
		Status:           domain.PlaceStatusPublished,
		City:             domain.CityRef{Slug: i.City.Slug, Name: i.City.Name},
	}
}
