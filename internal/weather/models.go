package weather

import (
	"errors"
	"fmt"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Snapshot represents current weather conditions at a location.
type Snapshot struct {
	// Location as reported by the provider.
	LocationName string
	Region       string
	Country      string
	Lat          float64
	Lon          float64

	// Temperature
	TempC      float64
	TempF      float64
	FeelsLikeC float64
	FeelsLikeF float64

	// Condition is a human-readable description ("Partly cloudy").
	Condition string

	// Humidity percentage (0-100)
	Humidity float64

	// UVIndex on the standard 0-11+ scale.
	UVIndex float64

	// Wind data
	WindMPH float64
	WindKPH float64
	WindDir string

	// FetchedAt is when the observation was retrieved.
	FetchedAt time.Time
}

// Summary returns a compact one-line description for logs.
func (s *Snapshot) Summary() string {
	return fmt.Sprintf("%s, %.1f°C, humidity %.0f%%, UV %.1f", s.Condition, s.TempC, s.Humidity, s.UVIndex)
}

// UVCategory classifies the UV index per the WHO scale.
type UVCategory string

const (
	UVLow      UVCategory = "LOW"       // 0-2
	UVModerate UVCategory = "MODERATE"  // 3-5
	UVHigh     UVCategory = "HIGH"      // 6-7
	UVVeryHigh UVCategory = "VERY_HIGH" // 8-10
	UVExtreme  UVCategory = "EXTREME"   // 11+
)

// GetUVCategory returns the UV exposure category for the snapshot.
func (s *Snapshot) GetUVCategory() UVCategory {
	switch {
	case s.UVIndex < 3:
		return UVLow
	case s.UVIndex < 6:
		return UVModerate
	case s.UVIndex < 8:
		return UVHigh
	case s.UVIndex < 11:
		return UVVeryHigh
	default:
		return UVExtreme
	}
}
