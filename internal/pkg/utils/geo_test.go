package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tourist-map/internal/domain"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.LatLng
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        domain.LatLng{Lat: -12.0464, Lng: -77.0428},
			b:        domain.LatLng{Lat: -12.0464, Lng: -77.0428},
			expected: 0,
			delta:    1e-9,
		},
		{
			name:     "one degree of latitude",
			a:        domain.LatLng{Lat: 0, Lng: 0},
			b:        domain.LatLng{Lat: 1, Lng: 0},
			expected: 111.19,
			delta:    0.01,
		},
		{
			name:     "lima to cusco",
			a:        domain.LatLng{Lat: -12.0464, Lng: -77.0428},
			b:        domain.LatLng{Lat: -13.5320, Lng: -71.9675},
			expected: 573,
			delta:    5,
		},
		{
			name:     "antipodes",
			a:        domain.LatLng{Lat: 0, Lng: 0},
			b:        domain.LatLng{Lat: 0, Lng: 180},
			expected: math.Pi * earthRadiusKm,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	points := []domain.LatLng{
		{Lat: -12.0464, Lng: -77.03},
		{Lat: -13.5320, Lng: -71.9675},
		{Lat: 64.1466, Lng: -21.9426},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 0, Lng: 179.9},
	}

	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
			assert.GreaterOrEqual(t, DistanceKm(a, b), 0.0)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(10))
	assert.True(t, ValidateRadius(0.05))
	assert.False(t, ValidateRadius(0))
	assert.False(t, ValidateRadius(-1))
	assert.False(t, ValidateRadius(math.Inf(1)))
	assert.False(t, ValidateRadius(math.NaN()))
}

func TestBoundingBoxAround_ContainsCircle(t *testing.T) {
	centers := []domain.LatLng{
		{Lat: -12.0464, Lng: -77.03},
		{Lat: 60, Lng: 10},
		{Lat: 0, Lng: 179.95},
		{Lat: -16.5, Lng: -179.99},
	}
	radii := []float64{1, 10, 50, 300}

	for _, center := range centers {
		for _, r := range radii {
			box := BoundingBoxAround(center, r)
			// точки на окружности с шагом 10°
			for bearing := 0.0; bearing < 360; bearing += 10 {
				p := destination(center, r*0.999, bearing)
				assert.Truef(t, box.Contains(p), "center=%s r=%.0f bearing=%.0f point=%s box=%+v", center, r, bearing, p, box)
			}
		}
	}
}

func TestBoundingBoxAround_Antimeridian(t *testing.T) {
	box := BoundingBoxAround(domain.LatLng{Lat: 0, Lng: 179.95}, 20)

	assert.True(t, box.CrossesAntimeridian())
	assert.True(t, box.Contains(domain.LatLng{Lat: 0, Lng: -179.95}))
	assert.False(t, box.Contains(domain.LatLng{Lat: 0, Lng: 0}))
}

func TestBoundingBoxAround_Pole(t *testing.T) {
	box := BoundingBoxAround(domain.LatLng{Lat: 89.9, Lng: 0}, 50)

	assert.Equal(t, -180.0, box.West)
	assert.Equal(t, 180.0, box.East)
	assert.Equal(t, 90.0, box.North)
}

// destination - точка на расстоянии distKm по азимуту bearing
func destination(from domain.LatLng, distKm, bearing float64) domain.LatLng {
	d := distKm / earthRadiusKm
	brng := bearing * math.Pi / 180
	lat1 := from.Lat * math.Pi / 180
	lng1 := from.Lng * math.Pi / 180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	lng := lng2 * 180 / math.Pi
	lng = math.Mod(lng+540, 360) - 180
	return domain.LatLng{Lat: lat2 * 180 / math.Pi, Lng: lng}
}
