package domain

import "github.com/google/uuid"

// MapItemType - уровень элемента карты
type MapItemType string

const (
	MapItemRegion MapItemType = "region"
	MapItemPlace  MapItemType = "place"
)

// ItemKey - стабильный ключ элемента карты
type ItemKey struct {
	Type MapItemType
	ID   uuid.UUID
}

func (k ItemKey) String() string {
	return string(k.Type) + ":" + k.ID.String()
}

// MapItem - размеченное объединение региона и места,
// которое потребляет слой отрисовки независимо от уровня запроса.
// Ровно одно из полей Region / Place не nil.
type MapItem struct {
	Type   MapItemType
	Region *Region
	Place  *Place
}

func RegionItem(r Region) MapItem {
	return MapItem{Type: MapItemRegion, Region: &r}
}

func PlaceItem(p Place) MapItem {
	return MapItem{Type: MapItemPlace, Place: &p}
}

func (i MapItem) Key() ItemKey {
	switch i.Type {
	case MapItemRegion:
		return ItemKey{Type: MapItemRegion, ID: i.Region.ID}
	default:
		return ItemKey{Type: MapItemPlace, ID: i.Place.ID}
	}
}

// Location возвращает координаты элемента; ok = false, если их нет или они некорректны
func (i MapItem) Location() (LatLng, bool) {
	switch i.Type {
	case MapItemRegion:
		if i.Region == nil || !i.Region.Center.Valid() {
			return LatLng{}, false
		}
		return i.Region.Center, true
	case MapItemPlace:
		if i.Place == nil || !i.Place.HasValidLocation() {
			return LatLng{}, false
		}
		return *i.Place.Location, true
	}
	return LatLng{}, false
}

func (i MapItem) Name() string {
	if i.Type == MapItemRegion {
		return i.Region.Name
	}
	return i.Place.Name
}

func (i MapItem) Slug() string {
	if i.Type == MapItemRegion {
		return i.Region.Slug
	}
	return i.Place.Slug
}
