package search

import "github.com/parkpal/parkpal-backend/types"

// Search runs the whole pipeline for one message: interpret the free text,
// filter the supplied inventory snapshot, and rank the survivors. It is
// deterministic and side-effect free; concurrent calls are safe as long as
// each caller passes its own freshly-fetched snapshot so live capacity is
// respected.
func Search(message string, inventory []types.ParkingSpace, userCoords *types.Coordinates) (types.SearchConstraints, []types.RankedCandidate) {
	constraints := Interpret(message)
	candidates := Filter(constraints, inventory)
	ranked := Rank(candidates, userCoords, LocationKeywords(constraints))
	return constraints, ranked
}
