package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/healthguardian/healthguardian/internal/airquality"
	"github.com/healthguardian/healthguardian/internal/location"
	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/profile"
	"github.com/healthguardian/healthguardian/internal/recommend"
	"github.com/healthguardian/healthguardian/internal/weather"
)

// LocationResolver resolves the submission's location.
type LocationResolver interface {
	Resolve(ctx context.Context, custom *profile.CustomLocation) (*location.Location, error)
}

// WeatherSource fetches current weather conditions.
type WeatherSource interface {
	GetCurrent(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
}

// AirQualitySource fetches normalized air quality data.
type AirQualitySource interface {
	GetCurrent(ctx context.Context, lat, lon float64) (*airquality.Snapshot, error)
}

// PollenSource fetches pollen forecasts.
type PollenSource interface {
	GetForecast(ctx context.Context, lat, lon float64, days int) (*pollen.Snapshot, error)
}

// ReportGenerator produces the recommendation report.
type ReportGenerator interface {
	Generate(ctx context.Context, data recommend.PromptData) (*recommend.Result, error)
}

// ServiceConfig holds the pipeline dependencies.
type ServiceConfig struct {
	Resolver  LocationResolver
	Weather   WeatherSource
	Air       AirQualitySource
	Pollen    PollenSource
	Generator ReportGenerator

	// Logger for pipeline operations.
	Logger zerolog.Logger

	// PollenDays is the forecast window requested per run (default: 1).
	PollenDays int
}

// Service runs the assessment pipeline.
type Service struct {
	resolver   LocationResolver
	weather    WeatherSource
	air        AirQualitySource
	pollen     PollenSource
	generator  ReportGenerator
	logger     zerolog.Logger
	pollenDays int
}

// NewService creates a new assessment service.
func NewService(cfg ServiceConfig) *Service {
	pollenDays := cfg.PollenDays
	if pollenDays == 0 {
		pollenDays = 1
	}

	return &Service{
		resolver:   cfg.Resolver,
		weather:    cfg.Weather,
		air:        cfg.Air,
		pollen:     cfg.Pollen,
		generator:  cfg.Generator,
		logger:     cfg.Logger,
		pollenDays: pollenDays,
	}
}

// Run executes the pipeline for a sanitized profile. onStage, if
// non-nil, is invoked as each stage begins. Errors carry the stage they
// happened in via StageError.
//
// A failure in any data stage is terminal for the run, with one
// exception: a region without pollen coverage yields an empty pollen
// snapshot and the run continues.
func (s *Service) Run(ctx context.Context, prof profile.UserProfile, onStage func(Stage)) (*Assessment, error) {
	report := func(stage Stage) {
		if onStage != nil {
			onStage(stage)
		}
	}

	startedAt := time.Now()

	report(StageResolvingLocation)
	loc, err := s.resolver.Resolve(ctx, prof.CustomLocation)
	if err != nil {
		return nil, &StageError{Stage: StageResolvingLocation, Err: err}
	}

	s.logger.Info().
		Str("location", loc.String()).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Msg("location resolved")

	report(StageFetchingWeather)
	weatherSnap, err := s.weather.GetCurrent(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return nil, &StageError{Stage: StageFetchingWeather, Err: err}
	}

	s.logger.Info().
		Str("conditions", weatherSnap.Summary()).
		Msg("weather fetched")

	// Air quality and pollen are independent; fetch them concurrently.
	report(StageFetchingAirQuality)

	var (
		airSnap    *airquality.Snapshot
		pollenSnap *pollen.Snapshot
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		snap, err := s.air.GetCurrent(groupCtx, loc.Lat, loc.Lon)
		if err != nil {
			return &StageError{Stage: StageFetchingAirQuality, Err: err}
		}
		airSnap = snap
		return nil
	})

	group.Go(func() error {
		report(StageFetchingPollen)
		snap, err := s.pollen.GetForecast(groupCtx, loc.Lat, loc.Lon, s.pollenDays)
		if err != nil {
			if errors.Is(err, pollen.ErrNoDataForRegion) {
				s.logger.Info().
					Str("location", loc.String()).
					Msg("no pollen coverage for region, continuing without")
				pollenSnap = &pollen.Snapshot{}
				return nil
			}
			return &StageError{Stage: StageFetchingPollen, Err: err}
		}
		pollenSnap = snap
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	report(StageGeneratingRecommendation)
	result, err := s.generator.Generate(ctx, recommend.PromptData{
		Profile: prof,
		Weather: weatherSnap,
		Air:     airSnap,
		Pollen:  pollenSnap,
	})
	if err != nil {
		return nil, &StageError{Stage: StageGeneratingRecommendation, Err: err}
	}

	return &Assessment{
		Profile:     prof,
		Location:    loc,
		Weather:     weatherSnap,
		Air:         airSnap,
		Pollen:      pollenSnap,
		Report:      result,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}, nil
}
