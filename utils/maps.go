package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildCoordinateMapURL builds a Google Maps link from a coordinate pair.
// Returns "" unless both coordinates are finite.
func BuildCoordinateMapURL(lat, lng *float64) string {
	if FiniteOrNil(lat) == nil || FiniteOrNil(lng) == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", *lat, *lng)
}

// BuildAddressMapURL builds a Google Maps search link for a free-text
// address. Returns "" for an empty address.
func BuildAddressMapURL(address string) string {
	value := strings.TrimSpace(address)
	if value == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(value)
}
