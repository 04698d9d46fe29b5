// Package validation provides request parameter validation helpers.
package validation

import (
	"fmt"
	"strconv"
	"time"
)

// ParseCoordinates validates and parses latitude/longitude query parameters.
func ParseCoordinates(latStr, lonStr string) (float64, float64, error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, fmt.Errorf("latitude and longitude are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonStr)
	}

	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude %v out of range", lon)
	}

	return lat, lon, nil
}

// ParseDate validates a YYYY-MM-DD date parameter.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}
