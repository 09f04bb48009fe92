package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourist-map/internal/domain"
)

func TestPickerMode_EnableDisableIdempotent(t *testing.T) {
	var toggles []bool
	picker := NewPickerMode(func(armed bool) { toggles = append(toggles, armed) })

	picker.Enable(func(domain.LatLng) {})
	picker.Enable(func(domain.LatLng) {})
	picker.Disable()
	picker.Disable()

	assert.Equal(t, []bool{true, false}, toggles)
}

func TestPickerMode_LastPickedSurvivesDisable(t *testing.T) {
	picker := NewPickerMode(nil)

	assert.False(t, picker.HandleClick(domain.LatLng{Lat: 1, Lng: 1}))

	var got []domain.LatLng
	picker.Enable(func(at domain.LatLng) { got = append(got, at) })
	assert.True(t, picker.HandleClick(domain.LatLng{Lat: -12.0464, Lng: -77.03}))
	picker.Disable()

	assert.Len(t, got, 1)
	state := picker.State()
	assert.False(t, state.Enabled)
	require.NotNil(t, state.LastPicked)
	assert.Equal(t, domain.LatLng{Lat: -12.0464, Lng: -77.03}, *state.LastPicked)

	picker.Reset()
	_, ok := picker.LastPicked()
	assert.False(t, ok)
}
