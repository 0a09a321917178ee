// Package location resolves the geographic location an assessment runs for,
// either from the caller's public IP or from a user-entered city query.
package location

import (
	"errors"
	"fmt"
	"strings"
)

// Location errors.
var (
	// ErrLocationNotFound is returned when a forward-geocoding query
	// matches nothing. The user can correct the query and resubmit.
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderUnavailable is returned when a lookup provider failed.
	ErrProviderUnavailable = errors.New("location provider unavailable")
)

// Location is a resolved geographic location. All downstream environmental
// fetches for one submission use the same Location so they stay
// geographically consistent.
type Location struct {
	// Name is the locality name (e.g. "Amsterdam").
	Name string `json:"name"`

	// Region is the state or administrative region, may be empty.
	Region string `json:"region,omitempty"`

	// Country name.
	Country string `json:"country"`

	// Lat and Lon in decimal degrees.
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String returns "Name, Region, Country" with empty parts omitted.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Valid reports whether the coordinates are in range.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// BuildQuery joins city, state, and country into a geocoding query string,
// omitting empty parts.
func BuildQuery(city, state, country string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, state, country} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ",")
}

// coordError annotates invalid provider coordinates.
func coordError(l Location) error {
	return fmt.Errorf("provider returned invalid coordinates %f,%f: %w", l.Lat, l.Lon, ErrProviderUnavailable)
}
