package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlaceChangedEvent_AffectedCities(t *testing.T) {
	tests := []struct {
		name     string
		event    PlaceChangedEvent
		expected []string
	}{
		{
			name:     "single city",
			event:    PlaceChangedEvent{PlaceID: uuid.New(), CitySlug: "cusco"},
			expected: []string{"cusco"},
		},
		{
			name:     "moved between cities",
			event:    PlaceChangedEvent{PlaceID: uuid.New(), CitySlug: "cusco", PreviousCitySlug: strPtr("lima")},
			expected: []string{"cusco", "lima"},
		},
		{
			name:     "previous equals current",
			event:    PlaceChangedEvent{PlaceID: uuid.New(), CitySlug: "cusco", PreviousCitySlug: strPtr("cusco")},
			expected: []string{"cusco"},
		},
		{
			name:     "no city",
			event:    PlaceChangedEvent{PlaceID: uuid.New()},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.AffectedCities())
		})
	}
}

func strPtr(s string) *string {
	return &s
}
