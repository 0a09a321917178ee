// Package main provides the entrypoint for the HealthGuardian API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/airquality"
	"github.com/healthguardian/healthguardian/internal/airquality/googleaq"
	"github.com/healthguardian/healthguardian/internal/api"
	"github.com/healthguardian/healthguardian/internal/api/middleware"
	"github.com/healthguardian/healthguardian/internal/assessment"
	"github.com/healthguardian/healthguardian/internal/config"
	"github.com/healthguardian/healthguardian/internal/location"
	"github.com/healthguardian/healthguardian/internal/location/ipify"
	locationweatherapi "github.com/healthguardian/healthguardian/internal/location/weatherapi"
	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/pollen/ambee"
	"github.com/healthguardian/healthguardian/internal/pollen/googlepollen"
	"github.com/healthguardian/healthguardian/internal/recommend"
	"github.com/healthguardian/healthguardian/internal/recommend/openai"
	"github.com/healthguardian/healthguardian/internal/telemetry"
	"github.com/healthguardian/healthguardian/internal/weather"
	"github.com/healthguardian/healthguardian/internal/weather/openweathermap"
	"github.com/healthguardian/healthguardian/internal/weather/weatherapi"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "healthguardian-api"

	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting HealthGuardian API")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Initialize location resolution (IP path and geocoding path)
	resolver := location.NewResolver(location.ResolverConfig{
		IPProvider: ipify.NewClient(ipify.ClientConfig{
			Logger: log,
		}),
		GeoProvider: locationweatherapi.NewClient(locationweatherapi.ClientConfig{
			APIKey: cfg.WeatherAPIKey,
			Logger: log,
		}),
		Logger: log,
	})
	log.Info().Msg("location resolver initialized")

	// Initialize weather service
	weatherProvider := newWeatherProvider(cfg, log)
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Logger:   log,
		Metrics:  providerMetrics,
	})
	log.Info().Str("provider", weatherProvider.Name()).Msg("weather service initialized")

	// Initialize air quality service
	airService := airquality.NewService(airquality.ServiceConfig{
		Provider: googleaq.NewClient(googleaq.ClientConfig{
			APIKey: cfg.GoogleAPIKey,
			Logger: log,
		}),
		Logger:  log,
		Metrics: providerMetrics,
	})
	log.Info().Msg("air quality service initialized")

	// Initialize pollen service
	pollenProvider := newPollenProvider(cfg, log)
	pollenService := pollen.NewService(pollen.ServiceConfig{
		Provider: pollenProvider,
		Logger:   log,
		Metrics:  providerMetrics,
	})
	log.Info().Str("provider", pollenProvider.Name()).Msg("pollen service initialized")

	// Initialize recommendation service
	recommendService := recommend.NewService(recommend.ServiceConfig{
		Completer: openai.NewClient(openai.ClientConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: log,
		}),
		Logger:  log,
		Metrics: providerMetrics,
	})
	log.Info().Str("model", cfg.OpenAIModel).Msg("recommendation service initialized")

	// Assemble the assessment pipeline
	assessmentService := assessment.NewService(assessment.ServiceConfig{
		Resolver:   resolver,
		Weather:    weatherService,
		Air:        airService,
		Pollen:     pollenService,
		Generator:  recommendService,
		Logger:     log,
		PollenDays: cfg.PollenForecastDays,
	})
	tracker := assessment.NewTracker()

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Runner:      assessmentService,
		Tracker:     tracker,
		Providers: []string{
			ipify.ProviderName,
			locationweatherapi.ProviderName,
			weatherProvider.Name(),
			googleaq.ProviderName,
			pollenProvider.Name(),
			openai.ProviderName,
		},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // submissions wait on upstream providers and the generator
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// newWeatherProvider builds the configured current-conditions provider.
// Unknown selectors are rejected by config.FromEnv before this runs.
func newWeatherProvider(cfg config.Config, log zerolog.Logger) weather.Provider {
	if cfg.WeatherProvider == config.WeatherProviderOpenWeatherMap {
		return openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey: cfg.OpenWeatherMapAPIKey,
			Logger: log,
		})
	}
	return weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey: cfg.WeatherAPIKey,
		Logger: log,
	})
}

// newPollenProvider builds the configured pollen forecast provider.
func newPollenProvider(cfg config.Config, log zerolog.Logger) pollen.Provider {
	if cfg.PollenProvider == config.PollenProviderAmbee {
		return ambee.NewClient(ambee.ClientConfig{
			APIKey: cfg.AmbeeAPIKey,
			Logger: log,
		})
	}
	return googlepollen.NewClient(googlepollen.ClientConfig{
		APIKey: cfg.GoogleAPIKey,
		Logger: log,
	})
}
