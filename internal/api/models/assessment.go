package models

import (
	"github.com/healthguardian/healthguardian/internal/assessment"
	"github.com/healthguardian/healthguardian/internal/profile"
	"github.com/healthguardian/healthguardian/internal/recommend"
)

// AssessmentRequest is the submission payload for a health assessment.
type AssessmentRequest struct {
	Age               int             `json:"age"`
	Gender            string          `json:"gender"`
	Allergies         []string        `json:"allergies"`
	Conditions        []string        `json:"conditions"`
	UseCustomLocation bool            `json:"useCustomLocation"`
	CustomLocation    *CustomLocation `json:"customLocation,omitempty"`
}

// CustomLocation is a user-specified location override.
type CustomLocation struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// ToProfile converts the request to a domain profile.
func (r *AssessmentRequest) ToProfile() profile.UserProfile {
	p := profile.UserProfile{
		Age:               r.Age,
		Gender:            r.Gender,
		Allergies:         r.Allergies,
		Conditions:        r.Conditions,
		UseCustomLocation: r.UseCustomLocation,
	}
	if r.CustomLocation != nil {
		p.CustomLocation = &profile.CustomLocation{
			City:    r.CustomLocation.City,
			State:   r.CustomLocation.State,
			Country: r.CustomLocation.Country,
		}
	}
	return p
}

// Assessment is the API view of a submission and, when complete, its
// report.
type Assessment struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	FailureReason string `json:"failureReason,omitempty"`

	Location   *Location   `json:"location,omitempty"`
	Weather    *Weather    `json:"weather,omitempty"`
	AirQuality *AirQuality `json:"airQuality,omitempty"`
	Pollen     *Pollen     `json:"pollen,omitempty"`
	Report     *Report     `json:"report,omitempty"`

	SubmittedAt Timestamp  `json:"submittedAt"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
}

// Location is the resolved location for an assessment.
type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country"`
	Point   Point  `json:"point"`
}

// Weather is the current-conditions view used in assessment responses.
type Weather struct {
	TempC      float64 `json:"tempC"`
	TempF      float64 `json:"tempF"`
	FeelsLikeC float64 `json:"feelsLikeC"`
	FeelsLikeF float64 `json:"feelsLikeF"`
	Condition  string  `json:"condition"`
	Humidity   float64 `json:"humidity"`
	UVIndex    float64 `json:"uvIndex"`
	WindMPH    float64 `json:"windMph"`
	WindDir    string  `json:"windDir"`
}

// AirQuality is the normalized air quality view.
type AirQuality struct {
	Available             bool              `json:"available"`
	IndexCode             string            `json:"indexCode,omitempty"`
	AQI                   float64           `json:"aqi,omitempty"`
	AQIDisplay            string            `json:"aqiDisplay,omitempty"`
	Category              string            `json:"category,omitempty"`
	DominantPollutant     string            `json:"dominantPollutant,omitempty"`
	Color                 string            `json:"color,omitempty"`
	Pollutants            []PollutantLevel  `json:"pollutants,omitempty"`
	HealthRecommendations map[string]string `json:"healthRecommendations,omitempty"`
}

// PollutantLevel is one pollutant reading.
type PollutantLevel struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

// Pollen is the pollen forecast view.
type Pollen struct {
	Available  bool        `json:"available"`
	RegionCode string      `json:"regionCode,omitempty"`
	Days       []PollenDay `json:"days,omitempty"`
}

// PollenDay is one forecast day.
type PollenDay struct {
	Date  string       `json:"date"`
	Types []PollenType `json:"types,omitempty"`
}

// PollenType is one pollen type reading.
type PollenType struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	InSeason        bool     `json:"inSeason"`
	Index           *int     `json:"index,omitempty"`
	Category        string   `json:"category,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Report is the generated recommendation report.
type Report struct {
	Summary                  string                      `json:"summary"`
	RiskLevel                string                      `json:"riskLevel"`
	Markdown                 string                      `json:"markdown"`
	Categories               []recommend.Category        `json:"categories,omitempty"`
	AllergyRecommendations   []recommend.AllergyAdvice   `json:"allergyRecommendations,omitempty"`
	ConditionRecommendations []recommend.ConditionAdvice `json:"conditionRecommendations,omitempty"`
	Structured               bool                        `json:"structured"`
}

// NewAssessment builds the API view from a tracked submission record.
func NewAssessment(rec assessment.Record) Assessment {
	out := Assessment{
		ID:            rec.ID,
		Status:        string(rec.Stage),
		FailureReason: rec.FailureReason,
		SubmittedAt:   Timestamp(rec.SubmittedAt),
	}

	result := rec.Result
	if result == nil {
		return out
	}

	completedAt := Timestamp(result.CompletedAt)
	out.CompletedAt = &completedAt

	if result.Location != nil {
		out.Location = &Location{
			Name:    result.Location.Name,
			Region:  result.Location.Region,
			Country: result.Location.Country,
			Point:   Point{Lat: result.Location.Lat, Lon: result.Location.Lon},
		}
	}

	if result.Weather != nil {
		out.Weather = &Weather{
			TempC:      result.Weather.TempC,
			TempF:      result.Weather.TempF,
			FeelsLikeC: result.Weather.FeelsLikeC,
			FeelsLikeF: result.Weather.FeelsLikeF,
			Condition:  result.Weather.Condition,
			Humidity:   result.Weather.Humidity,
			UVIndex:    result.Weather.UVIndex,
			WindMPH:    result.Weather.WindMPH,
			WindDir:    result.Weather.WindDir,
		}
	}

	if result.Air != nil {
		aq := &AirQuality{
			Available:             result.Air.Available,
			IndexCode:             result.Air.IndexCode,
			AQI:                   result.Air.AQI,
			AQIDisplay:            result.Air.AQIDisplay,
			Category:              result.Air.Category,
			DominantPollutant:     result.Air.DominantPollutant,
			HealthRecommendations: result.Air.HealthRecommendations,
		}
		if result.Air.Available {
			aq.Color = result.Air.DisplayColor()
		}
		for _, p := range result.Air.Pollutants {
			level := PollutantLevel{
				Code: p.Code,
				Name: p.Name,
				Unit: p.Unit,
			}
			if p.Known {
				value := p.Value
				level.Value = &value
			}
			aq.Pollutants = append(aq.Pollutants, level)
		}
		out.AirQuality = aq
	}

	if result.Pollen != nil {
		pln := &Pollen{
			Available:  result.Pollen.Available,
			RegionCode: result.Pollen.RegionCode,
		}
		for _, day := range result.Pollen.Days {
			outDay := PollenDay{Date: day.Date.String()}
			for _, t := range day.Types {
				pt := PollenType{
					Code:            t.Code,
					Name:            t.Name,
					InSeason:        t.InSeason,
					Category:        t.Category,
					Recommendations: t.Recommendations,
				}
				if t.HasIndex {
					index := t.Index
					pt.Index = &index
				}
				outDay.Types = append(outDay.Types, pt)
			}
			pln.Days = append(pln.Days, outDay)
		}
		out.Pollen = pln
	}

	if result.Report != nil {
		out.Report = &Report{
			Summary:                  result.Report.Summary,
			RiskLevel:                string(result.Report.RiskLevel),
			Markdown:                 result.Report.Narrative,
			Categories:               result.Report.Categories,
			AllergyRecommendations:   result.Report.AllergyRecommendations,
			ConditionRecommendations: result.Report.ConditionRecommendations,
			Structured:               result.Report.Structured,
		}
	}

	return out
}
