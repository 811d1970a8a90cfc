package valueobjects

import (
	"testing"

	"github.com/parkpal/parkpal-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name        string
		latitude    float64
		longitude   float64
		shouldError bool
	}{
		{
			name:        "valid coordinates",
			latitude:    51.5074,
			longitude:   -0.1278,
			shouldError: false,
		},
		{
			name:        "invalid latitude - too high",
			latitude:    91.0,
			longitude:   0.0,
			shouldError: true,
		},
		{
			name:        "invalid latitude - too low",
			latitude:    -91.0,
			longitude:   0.0,
			shouldError: true,
		},
		{
			name:        "invalid longitude - too high",
			latitude:    0.0,
			longitude:   181.0,
			shouldError: true,
		},
		{
			name:        "invalid longitude - too low",
			latitude:    0.0,
			longitude:   -181.0,
			shouldError: true,
		},
		{
			name:        "edge case - max valid values",
			latitude:    90.0,
			longitude:   180.0,
			shouldError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := NewGeoPoint(tt.latitude, tt.longitude)
			if tt.shouldError {
				assert.Error(t, err)
				assert.Nil(t, point)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, point)
				assert.Equal(t, tt.latitude, point.Latitude())
				assert.Equal(t, tt.longitude, point.Longitude())
			}
		})
	}
}

func TestGeoPointDistanceKm(t *testing.T) {
	// London Waterloo to London Bridge is roughly 2.6 km as the crow flies.
	waterloo, err := NewGeoPoint(51.5031, -0.1132)
	require.NoError(t, err)
	bridge, err := NewGeoPoint(51.5055, -0.0865)
	require.NoError(t, err)

	d := waterloo.DistanceKm(*bridge)
	assert.InDelta(t, 1.87, d, 0.2)

	// Distance is symmetric and zero to itself.
	assert.InDelta(t, d, bridge.DistanceKm(*waterloo), 1e-9)
	assert.InDelta(t, 0, waterloo.DistanceKm(*waterloo), 1e-9)
}

func TestGeoPointIsWithinRadiusKm(t *testing.T) {
	a, err := NewGeoPoint(51.4879, -0.1059)
	require.NoError(t, err)
	b, err := NewGeoPoint(51.5045, -0.0865)
	require.NoError(t, err)

	assert.True(t, a.IsWithinRadiusKm(*b, 5))
	assert.False(t, a.IsWithinRadiusKm(*b, 0.5))
	assert.False(t, a.IsWithinRadiusKm(*b, -1))
}

func TestNewGeoPointFromCoordinates(t *testing.T) {
	point, err := NewGeoPointFromCoordinates(types.Coordinates{Lat: 51.5, Lng: -0.1})
	require.NoError(t, err)
	assert.Equal(t, types.Coordinates{Lat: 51.5, Lng: -0.1}, point.ToCoordinates())

	_, err = NewGeoPointFromCoordinates(types.Coordinates{Lat: 120, Lng: 0})
	assert.Error(t, err)
}
