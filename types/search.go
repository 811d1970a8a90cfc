package types

// SearchConstraints is the structured result of interpreting a free-text
// search query. Every field is optional; an empty constraint set is valid and
// degenerates to an availability-only search.
type SearchConstraints struct {
	Location   *string  `json:"location,omitempty"`
	Postcode   *string  `json:"postcode,omitempty"`
	What3Words *string  `json:"what3words,omitempty"`
	Features   []string `json:"features,omitempty"`
	StartDate  *string  `json:"start_date,omitempty"` // ISO YYYY-MM-DD
	EndDate    *string  `json:"end_date,omitempty"`   // ISO YYYY-MM-DD
	MaxPrice   *int     `json:"max_price,omitempty"`
}

// IsEmpty reports whether no constraint field is set.
func (c SearchConstraints) IsEmpty() bool {
	return c.Location == nil &&
		c.Postcode == nil &&
		c.What3Words == nil &&
		len(c.Features) == 0 &&
		c.StartDate == nil &&
		c.EndDate == nil &&
		c.MaxPrice == nil
}

// RankedCandidate is a parking space that survived filtering, annotated with
// its relevance signal. Distance is set only when coordinate-based ranking
// was used.
type RankedCandidate struct {
	ParkingSpace
	Distance   *float64 `json:"distance,omitempty"` // kilometers
	MatchScore int      `json:"match_score,omitempty"`
}

// SearchRequest is the structured search endpoint payload. Message is run
// through the query interpreter; Coordinates switches the ranker to
// proximity ordering.
type SearchRequest struct {
	Message     string       `json:"message"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// SearchResponse carries the ranked results and the constraints that
// produced them, so the caller can show what was understood.
type SearchResponse struct {
	Constraints SearchConstraints `json:"constraints"`
	Results     []RankedCandidate `json:"results"`
}
