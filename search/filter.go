package search

import (
	"strings"

	"github.com/parkpal/parkpal-backend/types"
	"github.com/shopspring/decimal"
)

// Filter returns the subset of the inventory snapshot that is both available
// and relevant to the constraint set. An empty constraint set degenerates to
// availability-only; an empty result is a valid outcome, not an error.
func Filter(constraints types.SearchConstraints, inventory []types.ParkingSpace) []types.ParkingSpace {
	var candidates []types.ParkingSpace
	for _, space := range inventory {
		if !space.IsAvailable() {
			continue
		}
		if !matchesLocation(constraints, &space) {
			continue
		}
		if !matchesPostcode(constraints, &space) {
			continue
		}
		if !matchesWhat3Words(constraints, &space) {
			continue
		}
		if !matchesFeatures(constraints, &space) {
			continue
		}
		if !matchesPrice(constraints, &space) {
			continue
		}
		candidates = append(candidates, space)
	}
	return candidates
}

// matchesLocation checks the location phrase against title, location, address
// and postcode; any one field matching suffices.
func matchesLocation(c types.SearchConstraints, space *types.ParkingSpace) bool {
	if c.Location == nil {
		return true
	}
	phrase := strings.ToLower(*c.Location)
	for _, field := range []string{space.Title, space.Location, space.Address, space.Postcode} {
		if strings.Contains(strings.ToLower(field), phrase) {
			return true
		}
	}
	return false
}

func matchesPostcode(c types.SearchConstraints, space *types.ParkingSpace) bool {
	if c.Postcode == nil {
		return true
	}
	return strings.Contains(strings.ToLower(space.Postcode), strings.ToLower(*c.Postcode))
}

func matchesWhat3Words(c types.SearchConstraints, space *types.ParkingSpace) bool {
	if c.What3Words == nil {
		return true
	}
	return strings.Contains(strings.ToLower(space.What3Words), strings.ToLower(strings.TrimPrefix(*c.What3Words, "///")))
}

// matchesFeatures requires at least one requested canonical label to appear
// in at least one of the space's own feature tags. Any single overlap
// suffices; the user asking for more features than a space advertises does
// not exclude it.
func matchesFeatures(c types.SearchConstraints, space *types.ParkingSpace) bool {
	if len(c.Features) == 0 {
		return true
	}
	for _, wanted := range c.Features {
		w := strings.ToLower(wanted)
		for _, have := range space.Features {
			h := strings.ToLower(have)
			if strings.Contains(h, w) || strings.Contains(w, h) {
				return true
			}
		}
	}
	return false
}

func matchesPrice(c types.SearchConstraints, space *types.ParkingSpace) bool {
	if c.MaxPrice == nil {
		return true
	}
	return space.PricePerDay.LessThanOrEqual(decimal.NewFromInt(int64(*c.MaxPrice)))
}
