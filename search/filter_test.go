package search

import (
	"testing"

	"github.com/parkpal/parkpal-backend/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testInventory() []types.ParkingSpace {
	return []types.ParkingSpace{
		{
			ID:          "kennington",
			Title:       "Kennington Lane Car Park",
			Location:    "Kennington, London",
			Address:     "12 Kennington Lane",
			Postcode:    "SE11 4XX",
			Latitude:    types.NewFlexFloat(51.4879),
			Longitude:   types.NewFlexFloat(-0.1059),
			Features:    types.FeatureList{"Covered, 24/7 Access"},
			PricePerDay: price(12),
			TotalSpaces: intPtr(10),
		},
		{
			ID:           "borough",
			Title:        "Borough Market Parking",
			Location:     "Borough, London",
			Address:      "3 Stoney Street",
			Postcode:     "SE1 9AA",
			Latitude:     types.NewFlexFloat(51.5045),
			Longitude:    types.NewFlexFloat(-0.0865),
			Features:     types.FeatureList{"Residential"},
			PricePerDay:  price(20),
			TotalSpaces:  intPtr(4),
			BookedSpaces: intPtr(1),
		},
		{
			ID:           "fully-booked",
			Title:        "Walworth Road Spot",
			Location:     "Walworth, London",
			Postcode:     "SE17 2BB",
			Features:     types.FeatureList{"24/7 Security"},
			PricePerDay:  price(8),
			TotalSpaces:  intPtr(2),
			BookedSpaces: intPtr(2),
		},
		{
			// Missing capacity fields: treated as one unbooked slot.
			ID:          "sparse",
			Title:       "Camberwell Driveway",
			Location:    "Camberwell",
			Postcode:    "SE5 8TR",
			PricePerDay: price(6),
		},
	}
}

func TestFilterAvailabilityOnly(t *testing.T) {
	got := Filter(types.SearchConstraints{}, testInventory())

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	// The fully booked space never comes back; the record with missing
	// capacity fields does.
	assert.Equal(t, []string{"kennington", "borough", "sparse"}, ids)
	for _, s := range got {
		assert.Greater(t, s.AvailableSpaces(), 0)
	}
}

func TestFilterByLocationPhrase(t *testing.T) {
	got := Filter(types.SearchConstraints{Location: strPtr("kennington")}, testInventory())
	require.Len(t, got, 1)
	assert.Equal(t, "kennington", got[0].ID)

	// Phrase matching is case-insensitive across title, location, address
	// and postcode.
	got = Filter(types.SearchConstraints{Location: strPtr("STONEY")}, testInventory())
	require.Len(t, got, 1)
	assert.Equal(t, "borough", got[0].ID)
}

func TestFilterByPostcode(t *testing.T) {
	got := Filter(types.SearchConstraints{Postcode: strPtr("SE1 9AA")}, testInventory())
	require.Len(t, got, 1)
	assert.Equal(t, "borough", got[0].ID)

	// A fully booked space is excluded even when its postcode matches.
	got = Filter(types.SearchConstraints{Postcode: strPtr("SE17 2BB")}, testInventory())
	assert.Empty(t, got)
}

func TestFilterByFeatures(t *testing.T) {
	constraints := types.SearchConstraints{Features: []string{FeatureSecurity, FeatureCovered}}
	got := Filter(constraints, testInventory())

	// "Covered, 24/7 Access" satisfies the Covered label; "Residential" does
	// not satisfy either requested label.
	require.Len(t, got, 1)
	assert.Equal(t, "kennington", got[0].ID)
}

func TestFilterByMaxPrice(t *testing.T) {
	got := Filter(types.SearchConstraints{MaxPrice: intPtr(15)}, testInventory())

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	// £20/day is over the ceiling, £12 and £6 are kept.
	assert.Equal(t, []string{"kennington", "sparse"}, ids)
}

func TestFilterCombinedConstraints(t *testing.T) {
	constraints := types.SearchConstraints{
		Location: strPtr("london"),
		MaxPrice: intPtr(15),
	}
	got := Filter(constraints, testInventory())
	require.Len(t, got, 1)
	assert.Equal(t, "kennington", got[0].ID)
}

func TestFilterEmptyInventory(t *testing.T) {
	assert.Empty(t, Filter(types.SearchConstraints{}, nil))
	assert.Empty(t, Filter(types.SearchConstraints{Location: strPtr("anywhere")}, []types.ParkingSpace{}))
}

func TestFilterByWhat3Words(t *testing.T) {
	inventory := testInventory()
	inventory[0].What3Words = "///index.home.raft"

	got := Filter(types.SearchConstraints{What3Words: strPtr("///index.home.raft")}, inventory)
	require.Len(t, got, 1)
	assert.Equal(t, "kennington", got[0].ID)

	got = Filter(types.SearchConstraints{What3Words: strPtr("///other.words.here")}, inventory)
	assert.Empty(t, got)
}
