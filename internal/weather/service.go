// Package weather provides current weather conditions with caching.
package weather

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/telemetry"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// GetCurrent fetches current conditions for a coordinate pair.
	GetCurrent(ctx context.Context, lat, lon float64) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records provider call metrics (optional).
	Metrics *telemetry.ProviderMetrics

	// CacheTTL is how long to cache weather data (default: 10 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.1).
	// Points within the same grid cell share cached data.
	CacheGridSize float64
}

// Service provides weather data with caching.
type Service struct {
	provider      Provider
	logger        zerolog.Logger
	metrics       *telemetry.ProviderMetrics
	cacheTTL      time.Duration
	cacheGridSize float64

	mu    sync.RWMutex
	cache map[string]*cachedSnapshot
}

type cachedSnapshot struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.1 // ~11km at equator
	}

	return &Service{
		provider:      cfg.Provider,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		cacheTTL:      cacheTTL,
		cacheGridSize: cacheGridSize,
		cache:         make(map[string]*cachedSnapshot),
	}
}

// GetCurrent returns current weather for a location.
// Uses cached data if available and not expired.
func (s *Service) GetCurrent(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.RecordCacheHit(s.provider.Name(), "current")
		return cached.snapshot, nil
	}
	s.mu.RUnlock()

	s.metrics.RecordCacheMiss(s.provider.Name(), "current")

	return s.fetch(ctx, lat, lon, cacheKey)
}

// fetch retrieves current conditions from the provider and updates the cache.
func (s *Service) fetch(ctx context.Context, lat, lon float64, cacheKey string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		return cached.snapshot, nil
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	start := time.Now()
	snap, err := s.provider.GetCurrent(ctx, lat, lon)
	s.metrics.RecordRequest(s.provider.Name(), "current", time.Since(start), err)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch weather")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	s.cache[cacheKey] = &cachedSnapshot{
		snapshot:  snap,
		expiresAt: time.Now().Add(s.cacheTTL),
	}

	return snap, nil
}

// cacheKey generates a cache key for a location.
// Groups nearby points into grid cells to reduce API calls.
func (s *Service) cacheKey(lat, lon float64) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLon := math.Floor(lon/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.2f:%.2f", gridLat, gridLon)
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedSnapshot)
}

// validateCoordinates checks if coordinates are valid.
func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
