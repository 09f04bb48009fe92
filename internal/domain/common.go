package domain

import (
	"fmt"

	"github.com/goccy/go-json"
)

// LatLng - географическая точка (WGS84)
type LatLng struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Valid проверяет диапазоны широты и долготы
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func (p LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// BoundingBox - прямоугольник [west, south, east, north].
// West > East означает, что прямоугольник пересекает антимеридиан.
type BoundingBox struct {
	West  float64 `db:"bbox_west"`
	South float64 `db:"bbox_south"`
	East  float64 `db:"bbox_east"`
	North float64 `db:"bbox_north"`
}

// CrossesAntimeridian - пересекает ли прямоугольник меридиан 180°
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.West > b.East
}

// Contains проверяет попадание точки в прямоугольник
func (b BoundingBox) Contains(p LatLng) bool {
	if p.Lat < b.South || p.Lat > b.North {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Lng >= b.West || p.Lng <= b.East
	}
	return p.Lng >= b.West && p.Lng <= b.East
}

// Center - центр прямоугольника
func (b BoundingBox) Center() LatLng {
	east := b.East
	if b.CrossesAntimeridian() {
		east += 360
	}
	lng := (b.West + east) / 2
	if lng > 180 {
		lng -= 360
	}
	return LatLng{Lat: (b.South + b.North) / 2, Lng: lng}
}

func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.West, b.South, b.East, b.North})
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bounding box must be [west, south, east, north]: %w", err)
	}
	b.West, b.South, b.East, b.North = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// BoundsOf возвращает минимальный прямоугольник, содержащий все точки.
// ok = false, если точек нет.
func BoundsOf(points []LatLng) (box BoundingBox, ok bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	box = BoundingBox{West: points[0].Lng, South: points[0].Lat, East: points[0].Lng, North: points[0].Lat}
	for _, p := range points[1:] {
		box.West = min(box.West, p.Lng)
		box.East = max(box.East, p.Lng)
		box.South = min(box.South, p.Lat)
		box.North = max(box.North, p.Lat)
	}
	return box, true
}
