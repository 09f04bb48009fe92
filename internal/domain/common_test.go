package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatLng_Valid(t *testing.T) {
	assert.True(t, LatLng{Lat: -12.0464, Lng: -77.03}.Valid())
	assert.True(t, LatLng{Lat: 90, Lng: -180}.Valid())
	assert.False(t, LatLng{Lat: -90.01, Lng: 0}.Valid())
	assert.False(t, LatLng{Lat: 0, Lng: 180.01}.Valid())
}

func TestBoundingBox_JSONIsWestSouthEastNorth(t *testing.T) {
	box := BoundingBox{West: -77.2, South: -12.3, East: -76.8, North: -11.8}

	data, err := json.Marshal(box)
	require.NoError(t, err)
	assert.JSONEq(t, `[-77.2,-12.3,-76.8,-11.8]`, string(data))

	var decoded BoundingBox
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, box, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"west":1}`), &decoded))
}

func TestBoundingBox_Center(t *testing.T) {
	box := BoundingBox{West: -10, South: -10, East: 10, North: 10}
	assert.Equal(t, LatLng{Lat: 0, Lng: 0}, box.Center())

	crossing := BoundingBox{West: 170, South: -10, East: -170, North: 10}
	assert.InDelta(t, 180.0, abs(crossing.Center().Lng), 1e-9)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	box, ok := BoundsOf([]LatLng{
		{Lat: -12.04, Lng: -77.03},
		{Lat: -13.53, Lng: -71.97},
		{Lat: -16.40, Lng: -71.53},
	})
	require.True(t, ok)
	assert.Equal(t, BoundingBox{West: -77.03, South: -16.40, East: -71.53, North: -12.04}, box)
}

func TestMapItem_Location(t *testing.T) {
	region := RegionItem(Region{ID: uuid.New(), Slug: "cusco", Center: LatLng{Lat: -13.53, Lng: -71.97}})
	loc, ok := region.Location()
	assert.True(t, ok)
	assert.Equal(t, -13.53, loc.Lat)
	assert.Equal(t, MapItemRegion, region.Key().Type)

	noLoc := PlaceItem(Place{ID: uuid.New(), Slug: "nowhere"})
	_, ok = noLoc.Location()
	assert.False(t, ok)

	broken := PlaceItem(Place{ID: uuid.New(), Location: &LatLng{Lat: 200, Lng: 0}})
	_, ok = broken.Location()
	assert.False(t, ok)
}

func TestPlaceDetailPath(t *testing.T) {
	p := Place{Slug: "machu-picchu", City: CityRef{Slug: "cusco"}}
	assert.Equal(t, "/cusco/places/machu-picchu", p.DetailPath())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
