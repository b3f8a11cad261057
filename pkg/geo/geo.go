package geo

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for coordinates outside WGS84 bounds.
var ErrOutOfRange = errors.New("coordinates out of range")

// Point is a WGS84 coordinate pair
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidateCoordinates checks that a latitude/longitude pair is within bounds.
// A (0,0) pair is rejected as well; it is what broken client geolocation sends.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %f", ErrOutOfRange, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %f", ErrOutOfRange, lon)
	}
	if lat == 0 && lon == 0 {
		return fmt.Errorf("%w: null island", ErrOutOfRange)
	}
	return nil
}

// FormatPoint renders a point for display and logs
func FormatPoint(p Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}
