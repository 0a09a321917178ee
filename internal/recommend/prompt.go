package recommend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/healthguardian/healthguardian/internal/airquality"
	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/profile"
	"github.com/healthguardian/healthguardian/internal/weather"
)

// PromptData bundles everything the prompt builder needs. Weather is
// required; air and pollen snapshots may be unavailable.
type PromptData struct {
	Profile profile.UserProfile
	Weather *weather.Snapshot
	Air     *airquality.Snapshot
	Pollen  *pollen.Snapshot
}

// BuildPrompt renders the environmental report prompt sent to the
// generator. The sections mirror the data collected per assessment:
// user profile, current weather, air quality, and pollen.
func BuildPrompt(data PromptData) string {
	var b strings.Builder

	b.WriteString("Based on the environmental data and user profile, create a concise health recommendation report.\n\n")

	writeProfileSection(&b, data.Profile)
	writeWeatherSection(&b, data.Weather)
	writeAirQualitySection(&b, data.Air)
	writePollenSection(&b, data.Pollen)
	writeFocusAreas(&b)

	return b.String()
}

func writeProfileSection(b *strings.Builder, p profile.UserProfile) {
	allergies, _ := json.Marshal(emptyIfNil(p.Allergies))
	conditions, _ := json.Marshal(emptyIfNil(p.Conditions))

	fmt.Fprintf(b, "USER PROFILE:\n")
	fmt.Fprintf(b, "- Age: %d\n", p.Age)
	fmt.Fprintf(b, "- Gender: %s\n", p.Gender)
	fmt.Fprintf(b, "- Allergies: %s\n", allergies)
	fmt.Fprintf(b, "- Medical Conditions: %s\n\n", conditions)
}

func writeWeatherSection(b *strings.Builder, w *weather.Snapshot) {
	location := w.LocationName
	if w.Region != "" {
		location += ", " + w.Region
	}
	if w.Country != "" {
		location += ", " + w.Country
	}

	fmt.Fprintf(b, "CURRENT WEATHER:\n")
	fmt.Fprintf(b, "- Location: %s\n", location)
	fmt.Fprintf(b, "- Temperature: %.1f°C / %.1f°F\n", w.TempC, w.TempF)
	fmt.Fprintf(b, "- Condition: %s\n", w.Condition)
	fmt.Fprintf(b, "- Humidity: %.0f%%\n", w.Humidity)
	fmt.Fprintf(b, "- UV Index: %.1f (%s)\n", w.UVIndex, w.GetUVCategory())
	fmt.Fprintf(b, "- Wind: %.1f mph (%s)\n", w.WindMPH, w.WindDir)
	fmt.Fprintf(b, "- Feels Like: %.1f°C / %.1f°F\n\n", w.FeelsLikeC, w.FeelsLikeF)
}

func writeAirQualitySection(b *strings.Builder, air *airquality.Snapshot) {
	aqi := "N/A"
	category := "N/A"
	dominant := "N/A"

	if air != nil && air.Available {
		if air.AQI != 0 {
			aqi = strconv.FormatFloat(air.AQI, 'f', -1, 64)
		} else if air.AQIDisplay != "" {
			aqi = air.AQIDisplay
		}
		if air.Category != "" {
			category = air.Category
		}
		if air.DominantPollutant != "" {
			dominant = air.DominantPollutant
		}
	}

	fmt.Fprintf(b, "AIR QUALITY:\n")
	fmt.Fprintf(b, "- Air Quality Index (AQI): %s\n", aqi)
	fmt.Fprintf(b, "- Category: %s\n", category)
	fmt.Fprintf(b, "- Dominant Pollutant: %s\n", dominant)
	fmt.Fprintf(b, "- Pollutant Levels:\n")
	if air != nil {
		for _, p := range air.Pollutants {
			value := "N/A"
			if p.Known {
				value = strconv.FormatFloat(p.Value, 'f', -1, 64)
			}
			fmt.Fprintf(b, "  * %s: %s %s\n", p.Name, value, p.Unit)
		}
	}
	b.WriteString("\n")
}

func writePollenSection(b *strings.Builder, pln *pollen.Snapshot) {
	fmt.Fprintf(b, "POLLEN:\n")

	if pln == nil || !pln.Available || pln.Today() == nil {
		fmt.Fprintf(b, "- Pollen data is unavailable for this location\n\n")
		return
	}

	region := pln.RegionCode
	if region == "" {
		region = "Unknown"
	}

	today := pln.Today()
	fmt.Fprintf(b, "- Region: %s\n", region)
	fmt.Fprintf(b, "- Date: %s\n", today.Date)
	fmt.Fprintf(b, "- Pollen Types:\n")
	for _, t := range today.Types {
		index := "N/A"
		category := "Unknown"
		if t.HasIndex {
			index = strconv.Itoa(t.Index)
			if t.Category != "" {
				category = t.Category
			}
		}
		season := ""
		if t.InSeason {
			season = " - In Season"
		}
		fmt.Fprintf(b, "  * %s: %s (%s)%s\n", t.Name, category, index, season)
		if len(t.Recommendations) > 0 {
			fmt.Fprintf(b, "    Recommendations: %s\n", strings.Join(t.Recommendations, ", "))
		}
	}
	b.WriteString("\n")
}

func writeFocusAreas(b *strings.Builder) {
	b.WriteString(`FOCUS AREAS:
1. Start with a brief, one-sentence acknowledgment of the user's allergies and conditions
2. Provide a very brief environmental summary (1-2 sentences only)
3. For each of the user's allergies and conditions, assess the risk level in current conditions
4. For pollen allergies specifically: if pollen data is unavailable, grade them as undefined risk and explain that pollen data is unavailable for the location, but provide general advice
5. For each risk assessment, provide brief specific recommendations
6. Avoid repeating information`)
}

// structuredInstructions asks the generator for a parseable JSON body.
const structuredInstructions = `

Please structure your response in JSON format with the following fields:
- summary: A brief summary of the environmental health assessment specific to this user's needs
- riskLevel: An overall risk assessment (low, moderate, high, or very_high)
- categories: An array of recommendation categories for general environmental factors, each with:
  - name: Category name (e.g., "Weather Precautions", "Air Quality", "UV Protection")
  - items: Array of specific recommendations as strings

Most importantly, provide highly personalized recommendations for each specific allergy and condition:

- allergyRecommendations: An array of recommendations for EACH allergy listed by the user, with:
  - allergy: The specific allergy exactly as listed by the user (e.g., "Pollen", "Dust", "Pet Dander")
  - recommendations: Array of detailed, tailored recommendations for managing this allergy in current conditions
  - riskLevel: Risk level specific to this allergy in current conditions (low, moderate, high, or very_high)

- conditionRecommendations: An array of recommendations for EACH medical condition listed by the user, with:
  - condition: The specific condition exactly as listed by the user (e.g., "Asthma", "Eczema", "COPD")
  - recommendations: Array of detailed, tailored recommendations for managing this condition in current conditions
  - riskLevel: Risk level specific to this condition in current conditions (low, moderate, high, or very_high)

The JSON should be valid and parseable. If the user has not listed any allergies or conditions, include empty arrays for those fields.

Importantly, use the exact terminology the user provided for their allergies and conditions, and make the recommendations highly specific to those exact issues.`

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
