// Package colormap maps air-quality and pollen severity categories to display
// colors, and converts provider-supplied float RGB channels to byte channels.
package colormap

import (
	"fmt"
	"math"
	"strings"
)

// Color is a display color with 8-bit channels.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromChannels converts 0-1 float channels to a Color.
// Each channel is scaled to 0-255, rounded, and clamped. A channel the
// provider omitted decodes as 0 and therefore maps to 0.
func FromChannels(r, g, b float64) Color {
	return Color{
		R: clampChannel(r),
		G: clampChannel(g),
		B: clampChannel(b),
	}
}

func clampChannel(f float64) uint8 {
	v := math.Round(f * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ForCategory returns the display color name for a severity category.
// Unknown categories map to a neutral gray.
func ForCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "good":
		return "green"
	case "moderate":
		return "gold"
	case "unhealthy for sensitive groups":
		return "orange"
	case "unhealthy":
		return "red"
	case "very unhealthy":
		return "purple"
	case "hazardous":
		return "darkred"
	default:
		return "gray"
	}
}
