// Package recommend generates personalized health recommendation
// reports from environmental data.
package recommend

import (
	"errors"
	"strings"
)

// Recommendation errors.
var (
	ErrGeneratorUnavailable = errors.New("recommendation generator unavailable")
	ErrEmptyCompletion      = errors.New("empty completion from generator")
)

// RiskLevel grades the health risk of current conditions.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"

	// RiskUndefined marks assessments where the data needed to grade
	// the risk was unavailable.
	RiskUndefined RiskLevel = "undefined"
)

// ParseRiskLevel normalizes a free-form risk string to a RiskLevel.
// Unrecognized values map to RiskUndefined.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow
	case "moderate", "medium":
		return RiskModerate
	case "high":
		return RiskHigh
	case "very_high", "very high":
		return RiskVeryHigh
	default:
		return RiskUndefined
	}
}

// Category groups general environmental recommendations under a name
// such as "Weather Precautions" or "UV Protection".
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// AllergyAdvice carries recommendations for one allergy the user listed.
type AllergyAdvice struct {
	Allergy         string    `json:"allergy"`
	Recommendations []string  `json:"recommendations"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// ConditionAdvice carries recommendations for one medical condition the
// user listed.
type ConditionAdvice struct {
	Condition       string    `json:"condition"`
	Recommendations []string  `json:"recommendations"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// Result is a generated health recommendation report.
type Result struct {
	// Narrative is the rendered markdown report.
	Narrative string `json:"recommendations"`

	Summary   string    `json:"summary"`
	RiskLevel RiskLevel `json:"riskLevel"`

	Categories               []Category        `json:"categories"`
	AllergyRecommendations   []AllergyAdvice   `json:"allergyRecommendations"`
	ConditionRecommendations []ConditionAdvice `json:"conditionRecommendations"`

	// Structured is false when the generator's output could not be
	// parsed and the narrative holds its raw text instead.
	Structured bool `json:"structured"`
}
