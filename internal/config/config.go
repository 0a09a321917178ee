// Package config loads service configuration from the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrMissingCredential indicates a required provider API key is absent.
// This is a fatal configuration error: the service refuses to start rather
// than degrade or retry.
var ErrMissingCredential = errors.New("missing required credential")

// Default values for optional settings.
const (
	DefaultPort               = "8080"
	DefaultEnvironment        = "development"
	DefaultOTLPEndpoint       = "localhost:4317"
	DefaultOpenAIModel        = "gpt-4o-mini"
	DefaultPollenForecastDays = 1
)

// Selectable upstream providers.
const (
	WeatherProviderWeatherAPI     = "weatherapi"
	WeatherProviderOpenWeatherMap = "openweathermap"

	PollenProviderGoogle = "google"
	PollenProviderAmbee  = "ambee"
)

// Config holds the service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// WeatherAPIKey authenticates against api.weatherapi.com
	// (geocoding, IP lookup, current conditions).
	WeatherAPIKey string

	// GoogleAPIKey authenticates against the Google Air Quality and
	// Pollen APIs.
	GoogleAPIKey string

	// WeatherProvider selects the current-conditions provider
	// ("weatherapi" or "openweathermap").
	WeatherProvider string

	// OpenWeatherMapAPIKey authenticates against OpenWeatherMap.
	// Required only when WeatherProvider is "openweathermap".
	OpenWeatherMapAPIKey string

	// PollenProvider selects the pollen forecast provider
	// ("google" or "ambee").
	PollenProvider string

	// AmbeeAPIKey authenticates against Ambee. Required only when
	// PollenProvider is "ambee".
	AmbeeAPIKey string

	// OpenAIAPIKey authenticates against the recommendation generator.
	OpenAIAPIKey string

	// OpenAIModel is the chat model used for recommendation generation.
	OpenAIModel string

	// PollenForecastDays is the number of pollen forecast days requested,
	// clamped to the provider's 1-5 range.
	PollenForecastDays int

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled turns OTLP export on.
	TelemetryEnabled bool
}

// ErrUnknownProvider indicates a provider selector names a provider the
// service does not implement.
var ErrUnknownProvider = errors.New("unknown provider")

// FromEnv builds a Config from environment variables.
// Missing required API keys return an error wrapping ErrMissingCredential.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:                 envOrDefault("APP_PORT", DefaultPort),
		Environment:          envOrDefault("APP_ENV", DefaultEnvironment),
		WeatherAPIKey:        os.Getenv("WEATHER_API_KEY"),
		GoogleAPIKey:         os.Getenv("GOOGLE_MAPS_API_KEY"),
		WeatherProvider:      envOrDefault("WEATHER_PROVIDER", WeatherProviderWeatherAPI),
		OpenWeatherMapAPIKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
		PollenProvider:       envOrDefault("POLLEN_PROVIDER", PollenProviderGoogle),
		AmbeeAPIKey:          os.Getenv("AMBEE_API_KEY"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          envOrDefault("OPENAI_MODEL", DefaultOpenAIModel),
		PollenForecastDays:   intEnvOrDefault("POLLEN_FORECAST_DAYS", DefaultPollenForecastDays),
		OTLPEndpoint:         envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", DefaultOTLPEndpoint),
		TelemetryEnabled:     os.Getenv("OTEL_ENABLED") == "true",
	}

	// WEATHER_API_KEY stays required regardless of the weather provider:
	// the location resolver geocodes through the same upstream.
	required := []struct {
		name  string
		value string
	}{
		{"WEATHER_API_KEY", cfg.WeatherAPIKey},
		{"GOOGLE_MAPS_API_KEY", cfg.GoogleAPIKey},
		{"OPENAI_API_KEY", cfg.OpenAIAPIKey},
	}

	switch cfg.WeatherProvider {
	case WeatherProviderWeatherAPI:
	case WeatherProviderOpenWeatherMap:
		required = append(required, struct{ name, value string }{"OPENWEATHERMAP_API_KEY", cfg.OpenWeatherMapAPIKey})
	default:
		return Config{}, fmt.Errorf("%w: WEATHER_PROVIDER=%s", ErrUnknownProvider, cfg.WeatherProvider)
	}

	switch cfg.PollenProvider {
	case PollenProviderGoogle:
	case PollenProviderAmbee:
		required = append(required, struct{ name, value string }{"AMBEE_API_KEY", cfg.AmbeeAPIKey})
	default:
		return Config{}, fmt.Errorf("%w: POLLEN_PROVIDER=%s", ErrUnknownProvider, cfg.PollenProvider)
	}

	for _, req := range required {
		if req.value == "" {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingCredential, req.name)
		}
	}

	cfg.PollenForecastDays = clampForecastDays(cfg.PollenForecastDays)

	return cfg, nil
}

// clampForecastDays keeps the forecast window within the provider's range.
func clampForecastDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 5 {
		return 5
	}
	return days
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
