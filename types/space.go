package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FlexFloat is an optional float64 that tolerates JSON numbers and numeric
// strings. Inventory records come from an external store that is not
// consistent about coordinate types; a value that is absent, null or fails to
// parse is simply invalid, never an unmarshal error.
type FlexFloat struct {
	Value float64
	Valid bool
}

// NewFlexFloat returns a valid FlexFloat holding v.
func NewFlexFloat(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		f.Valid = false
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			f.Valid = false
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			f.Valid = false
			return nil
		}
		f.Value, f.Valid = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		f.Valid = false
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FeatureList tolerates a JSON array of strings or a single comma-separated
// string, both of which appear in inventory records.
type FeatureList []string

func (l *FeatureList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

// ParkingSpace is an inventory record. It is created and mutated by the
// external inventory management process; this service only reads it.
type ParkingSpace struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Location      string          `json:"location"`
	Address       string          `json:"address"`
	Postcode      string          `json:"postcode"`
	Latitude      FlexFloat       `json:"latitude"`
	Longitude     FlexFloat       `json:"longitude"`
	What3Words    string          `json:"what3words,omitempty"`
	Features      FeatureList     `json:"features,omitempty"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	PricePerMonth decimal.Decimal `json:"price_per_month"`
	TotalSpaces   *int            `json:"total_spaces,omitempty"`
	BookedSpaces  *int            `json:"booked_spaces,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
}

// AvailableSpaces returns remaining capacity. Records with missing capacity
// fields are treated as a single unbooked space rather than excluded; the
// inventory source does not always populate capacity for new listings.
func (s *ParkingSpace) AvailableSpaces() int {
	total := 1
	booked := 0
	if s.TotalSpaces != nil {
		total = *s.TotalSpaces
	}
	if s.BookedSpaces != nil {
		booked = *s.BookedSpaces
	}
	remaining := total - booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsAvailable reports whether the space has remaining capacity.
func (s *ParkingSpace) IsAvailable() bool {
	return s.AvailableSpaces() > 0
}

// Coordinates returns the space's coordinate pair, or false when either
// component is absent or failed to parse.
func (s *ParkingSpace) Coordinates() (Coordinates, bool) {
	if !s.Latitude.Valid || !s.Longitude.Valid {
		return Coordinates{}, false
	}
	return Coordinates{Lat: s.Latitude.Value, Lng: s.Longitude.Value}, true
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
