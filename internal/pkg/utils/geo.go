package utils

import (
	"math"

	"github.com/tourist-map/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// погрешность float может дать a чуть больше 1 для антиподов
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm - расстояние между двумя точками в километрах
func DistanceKm(a, b domain.LatLng) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса поиска
func ValidateRadius(radiusKm float64) bool {
	return radiusKm > 0 && !math.IsInf(radiusKm, 1) && !math.IsNaN(radiusKm)
}

// BoundingBoxAround возвращает прямоугольник, гарантированно содержащий
// круг радиусом radiusKm вокруг center. Используется как предфильтр в SQL,
// точная проверка расстояния делается после.
func BoundingBoxAround(center domain.LatLng, radiusKm float64) domain.BoundingBox {
	angular := radiusKm / earthRadiusKm
	latRad := center.Lat * math.Pi / 180.0
	latDelta := angular * 180.0 / math.Pi

	south := center.Lat - latDelta
	north := center.Lat + latDelta

	ratio := math.Sin(angular) / math.Cos(latRad)

	// круг накрывает полюс: по долготе ограничений нет
	if north >= 90 || south <= -90 || angular >= math.Pi/2 || ratio >= 1 {
		return domain.BoundingBox{
			West:  -180,
			South: math.Max(south, -90),
			East:  180,
			North: math.Min(north, 90),
		}
	}

	lngDelta := math.Asin(ratio) * 180.0 / math.Pi
	west := center.Lng - lngDelta
	east := center.Lng + lngDelta

	if west < -180 {
		west += 360
	}
	if east > 180 {
		east -= 360
	}

	return domain.BoundingBox{West: west, South: south, East: east, North: north}
}
