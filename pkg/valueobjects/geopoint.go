package valueobjects

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/types"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// GeoPoint represents a geographic point with latitude and longitude
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a new GeoPoint with validation
func NewGeoPoint(lat, lng float64) (*GeoPoint, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	return &GeoPoint{
		latitude:  lat,
		longitude: lng,
	}, nil
}

// Latitude returns the latitude value
func (g GeoPoint) Latitude() float64 {
	return g.latitude
}

// Longitude returns the longitude value
func (g GeoPoint) Longitude() float64 {
	return g.longitude
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula.
func (g GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := degreesToRadians(g.latitude)
	lng1 := degreesToRadians(g.longitude)
	lat2 := degreesToRadians(other.latitude)
	lng2 := degreesToRadians(other.longitude)

	dlat := lat2 - lat1
	dlng := lng2 - lng1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsWithinRadiusKm checks if another point is within the given radius.
func (g GeoPoint) IsWithinRadiusKm(other GeoPoint, radiusKm float64) bool {
	if radiusKm < 0 {
		return false
	}
	return g.DistanceKm(other) <= radiusKm
}

// String returns a string representation of the geographic point
func (g GeoPoint) String() string {
	return fmt.Sprintf("(%f, %f)", g.latitude, g.longitude)
}

// ToCoordinates converts the point to the domain coordinate pair.
func (g GeoPoint) ToCoordinates() types.Coordinates {
	return types.Coordinates{
		Lat: g.latitude,
		Lng: g.longitude,
	}
}

// NewGeoPointFromCoordinates builds a validated point from a domain pair.
func NewGeoPointFromCoordinates(coords types.Coordinates) (*GeoPoint, error) {
	return NewGeoPoint(coords.Lat, coords.Lng)
}

// MarshalJSON controls serialization so the private fields round-trip.
func (g GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	}{
		Latitude:  g.latitude,
		Longitude: g.longitude,
	})
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errors.ValidationFailed(
			"invalid latitude",
			fmt.Sprintf("latitude %f is outside valid range [-90, 90]", lat),
		)
	}

	if lng < -180 || lng > 180 {
		return errors.ValidationFailed(
			"invalid longitude",
			fmt.Sprintf("longitude %f is outside valid range [-180, 180]", lng),
		)
	}

	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
