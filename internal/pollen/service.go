// Package pollen provides pollen forecast data with caching.
package pollen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/telemetry"
)

// Forecast day bounds supported by the provider.
const (
	MinForecastDays = 1
	MaxForecastDays = 5
)

// ClampDays bounds a requested day count to the supported range.
func ClampDays(days int) int {
	if days < MinForecastDays {
		return MinForecastDays
	}
	if days > MaxForecastDays {
		return MaxForecastDays
	}
	return days
}

// Provider defines the interface for pollen forecast providers.
type Provider interface {
	// GetForecast fetches the raw forecast document for a coordinate
	// pair. Implementations return ErrNoDataForRegion for locations the
	// provider does not cover.
	GetForecast(ctx context.Context, lat, lon float64, days int) (*Document, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the pollen service.
type ServiceConfig struct {
	// Provider is the pollen forecast provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records provider call metrics (optional).
	Metrics *telemetry.ProviderMetrics

	// CacheTTL is how long to cache forecasts (default: 30 minutes).
	// Pollen forecasts are daily, so a long TTL is fine.
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.1).
	CacheGridSize float64
}

// Service provides pollen forecasts with caching.
type Service struct {
	provider      Provider
	logger        zerolog.Logger
	metrics       *telemetry.ProviderMetrics
	cacheTTL      time.Duration
	cacheGridSize float64

	mu    sync.RWMutex
	cache map[string]*cachedForecast
}

type cachedForecast struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// NewService creates a new pollen service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.1
	}

	return &Service{
		provider:      cfg.Provider,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		cacheTTL:      cacheTTL,
		cacheGridSize: cacheGridSize,
		cache:         make(map[string]*cachedForecast),
	}
}

// GetForecast returns the normalized pollen forecast for a location.
// The day count is clamped to the provider-supported range. A region
// without coverage yields ErrNoDataForRegion.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64, days int) (*Snapshot, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, ErrInvalidCoordinates
	}

	days = ClampDays(days)
	cacheKey := s.cacheKey(lat, lon, days)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.RecordCacheHit(s.provider.Name(), "forecast")
		return cached.snapshot, nil
	}
	s.mu.RUnlock()

	s.metrics.RecordCacheMiss(s.provider.Name(), "forecast")

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		return cached.snapshot, nil
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Int("days", days).
		Str("provider", s.provider.Name()).
		Msg("fetching pollen forecast from provider")

	start := time.Now()
	doc, err := s.provider.GetForecast(ctx, lat, lon, days)
	s.metrics.RecordRequest(s.provider.Name(), "forecast", time.Since(start), err)
	if err != nil {
		if errors.Is(err, ErrNoDataForRegion) {
			return nil, err
		}
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch pollen forecast")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	snap := Normalize(doc)
	if !snap.Available {
		s.logger.Info().
			Str("region", snap.RegionCode).
			Msg("pollen forecast empty for region")
	}

	s.cache[cacheKey] = &cachedForecast{
		snapshot:  snap,
		expiresAt: time.Now().Add(s.cacheTTL),
	}

	return snap, nil
}

// cacheKey generates a cache key for a location and day count.
func (s *Service) cacheKey(lat, lon float64, days int) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLon := math.Floor(lon/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.2f:%.2f:%d", gridLat, gridLon, days)
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedForecast)
}
