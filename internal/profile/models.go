// Package profile defines the user health profile submitted with each
// assessment request.
package profile

import (
	"errors"
	"strings"
)

// Profile validation errors.
var (
	ErrMissingCity    = errors.New("custom location requires a city")
	ErrMissingCountry = errors.New("custom location requires a country")
)

// CustomLocation is a user-entered location override.
type CustomLocation struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// UserProfile is the health profile collected from the submission form.
// It is immutable once handed to the assessment pipeline and never persisted.
type UserProfile struct {
	// Age in years.
	Age int `json:"age"`

	// Gender as entered or selected by the user.
	Gender string `json:"gender"`

	// Allergies as free-text entries. Order is preserved and duplicates
	// are allowed; empty entries are filtered before the pipeline runs.
	Allergies []string `json:"allergies"`

	// Conditions are medical conditions, same shape as Allergies.
	Conditions []string `json:"conditions"`

	// UseCustomLocation selects the geocoding path instead of IP lookup.
	UseCustomLocation bool `json:"useCustomLocation,omitempty"`

	// CustomLocation is required when UseCustomLocation is true.
	CustomLocation *CustomLocation `json:"customLocation,omitempty"`
}

// Sanitized returns a copy with empty allergy/condition entries removed,
// whitespace trimmed, and defaults applied for absent fields.
func (p UserProfile) Sanitized() UserProfile {
	out := p

	if out.Age < 0 {
		out.Age = 0
	}
	out.Gender = strings.TrimSpace(out.Gender)
	if out.Gender == "" {
		out.Gender = "unknown"
	}

	out.Allergies = filterBlank(p.Allergies)
	out.Conditions = filterBlank(p.Conditions)

	if !out.UseCustomLocation {
		out.CustomLocation = nil
	} else if p.CustomLocation != nil {
		loc := CustomLocation{
			City:    strings.TrimSpace(p.CustomLocation.City),
			State:   strings.TrimSpace(p.CustomLocation.State),
			Country: strings.TrimSpace(p.CustomLocation.Country),
		}
		out.CustomLocation = &loc
	}

	return out
}

// Validate checks a sanitized profile for submission errors.
func (p UserProfile) Validate() error {
	if !p.UseCustomLocation {
		return nil
	}
	if p.CustomLocation == nil || p.CustomLocation.City == "" {
		return ErrMissingCity
	}
	if p.CustomLocation.Country == "" {
		return ErrMissingCountry
	}
	return nil
}

func filterBlank(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
