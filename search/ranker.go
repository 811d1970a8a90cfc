package search

import (
	"sort"
	"strings"

	"github.com/parkpal/parkpal-backend/pkg/valueobjects"
	"github.com/parkpal/parkpal-backend/types"
)

// MaxResults bounds the ranked output handed to the chat layer.
const MaxResults = 3

// Rank orders filtered candidates by relevance and truncates to MaxResults.
//
// With user coordinates the relevance signal is haversine distance; a
// candidate without a usable coordinate pair sorts last rather than failing
// the sort. Without coordinates the signal is how many location keywords
// appear in the candidate's location, address or postcode. Ties break on
// ascending daily price and then original input order, so identical input
// always produces identical output.
func Rank(candidates []types.ParkingSpace, userCoords *types.Coordinates, locationKeywords []string) []types.RankedCandidate {
	ranked := make([]types.RankedCandidate, 0, len(candidates))

	var userPoint *valueobjects.GeoPoint
	if userCoords != nil {
		// An out-of-range user coordinate falls back to keyword ranking.
		userPoint, _ = valueobjects.NewGeoPointFromCoordinates(*userCoords)
	}

	for _, space := range candidates {
		rc := types.RankedCandidate{ParkingSpace: space}
		if userPoint != nil {
			if coords, ok := space.Coordinates(); ok {
				if spacePoint, err := valueobjects.NewGeoPointFromCoordinates(coords); err == nil {
					d := userPoint.DistanceKm(*spacePoint)
					rc.Distance = &d
				}
			}
		} else {
			rc.MatchScore = keywordOverlap(&space, locationKeywords)
		}
		ranked = append(ranked, rc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if userPoint != nil {
			da, db := distanceOrMax(a), distanceOrMax(b)
			if da != db {
				return da < db
			}
		} else if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		// Tie-break on price; equal prices keep input order via stable sort.
		return a.PricePerDay.LessThan(b.PricePerDay)
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}

// distanceOrMax treats candidates with no computed distance as maximally
// distant so they sort last without aborting the search.
func distanceOrMax(c *types.RankedCandidate) float64 {
	if c.Distance == nil {
		return maxDistanceKm
	}
	return *c.Distance
}

// maxDistanceKm exceeds any great-circle distance on Earth (half the
// circumference is ~20015 km).
const maxDistanceKm = 1 << 20

// keywordOverlap counts how many location keywords appear as substrings in
// the candidate's location, address or postcode fields.
func keywordOverlap(space *types.ParkingSpace, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	haystack := strings.ToLower(space.Location + " " + space.Address + " " + space.Postcode)
	count := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			count++
		}
	}
	return count
}

// LocationKeywords derives the keyword list used for keyword-overlap ranking
// from an interpreted constraint set: the words of the location phrase plus
// the postcode, when present.
func LocationKeywords(c types.SearchConstraints) []string {
	var keywords []string
	if c.Location != nil {
		for _, word := range strings.Fields(*c.Location) {
			if len(word) > 2 {
				keywords = append(keywords, word)
			}
		}
	}
	if c.Postcode != nil {
		keywords = append(keywords, *c.Postcode)
	}
	return keywords
}
