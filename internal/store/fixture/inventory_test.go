package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventory(t *testing.T) {
	inv, err := NewInventory()
	require.NoError(t, err)

	spaces, err := inv.GetAllSpaces(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, spaces)

	byID := make(map[string]int)
	for i, s := range spaces {
		byID[s.ID] = i
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Postcode)
	}

	// String coordinates in the snapshot parse into valid values.
	borough := spaces[byID["1f0e2c84-77e8-4a5e-8a8a-0a4255101002"]]
	coords, ok := borough.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 51.5013, coords.Lat, 0.0001)
	assert.Equal(t, []string{"Covered", "Electric Charging"}, []string(borough.Features))

	// Unparseable coordinates are invalid, not an error.
	elephant := spaces[byID["77bc4e0f-6a1d-4dd2-930e-0a4255101006"]]
	_, ok = elephant.Coordinates()
	assert.False(t, ok)
	assert.True(t, elephant.IsAvailable())

	// Missing capacity defaults to a single unbooked space.
	walworth := spaces[byID["c7a9a0be-08c4-4f3f-a1ce-0a4255101004"]]
	assert.Equal(t, 1, walworth.AvailableSpaces())
}

func TestInventoryCopyIsolation(t *testing.T) {
	inv, err := NewInventory()
	require.NoError(t, err)

	first, err := inv.GetAllSpaces(context.Background())
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := inv.GetAllSpaces(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Title)
}
