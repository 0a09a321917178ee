// Package assessment orchestrates the health assessment pipeline:
// resolve the user's location, gather environmental data, and generate
// a personalized recommendation report.
package assessment

import (
	"fmt"
	"time"

	"github.com/healthguardian/healthguardian/internal/airquality"
	"github.com/healthguardian/healthguardian/internal/location"
	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/profile"
	"github.com/healthguardian/healthguardian/internal/recommend"
	"github.com/healthguardian/healthguardian/internal/weather"
)

// Stage identifies where in the pipeline a submission currently is.
type Stage string

const (
	StageIdle                     Stage = "idle"
	StageResolvingLocation        Stage = "resolving_location"
	StageFetchingWeather          Stage = "fetching_weather"
	StageFetchingAirQuality       Stage = "fetching_air_quality"
	StageFetchingPollen           Stage = "fetching_pollen"
	StageGeneratingRecommendation Stage = "generating_recommendation"
	StageDone                     Stage = "done"
	StageFailed                   Stage = "failed"
)

// StageError records which pipeline stage a failure happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Assessment is a completed pipeline run.
type Assessment struct {
	ID      string
	Profile profile.UserProfile

	Location *location.Location
	Weather  *weather.Snapshot
	Air      *airquality.Snapshot
	Pollen   *pollen.Snapshot
	Report   *recommend.Result

	StartedAt   time.Time
	CompletedAt time.Time
}
