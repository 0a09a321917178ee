// Package airquality provides normalized air quality data with caching.
package airquality

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/telemetry"
)

// Provider defines the interface for air quality data providers.
type Provider interface {
	// GetCurrentConditions fetches the raw current-conditions document
	// for a coordinate pair.
	GetCurrentConditions(ctx context.Context, lat, lon float64) (*Document, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics records provider call metrics (optional).
	Metrics *telemetry.ProviderMetrics

	// CacheTTL is how long to cache conditions (default: 5 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.1).
	CacheGridSize float64
}

// Service provides normalized air quality data with caching.
type Service struct {
	provider      Provider
	logger        zerolog.Logger
	metrics       *telemetry.ProviderMetrics
	cacheTTL      time.Duration
	cacheGridSize float64

	mu    sync.RWMutex
	cache map[string]*cachedConditions
}

type cachedConditions struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
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
		cache:         make(map[string]*cachedConditions),
	}
}

// GetCurrent returns normalized current air quality for a location.
// Uses cached data if available and not expired.
func (s *Service) GetCurrent(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, ErrInvalidCoordinates
	}

	cacheKey := s.cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.RecordCacheHit(s.provider.Name(), "conditions")
		return cached.snapshot, nil
	}
	s.mu.RUnlock()

	s.metrics.RecordCacheMiss(s.provider.Name(), "conditions")

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
		Msg("fetching air quality from provider")

	start := time.Now()
	doc, err := s.provider.GetCurrentConditions(ctx, lat, lon)
	s.metrics.RecordRequest(s.provider.Name(), "conditions", time.Since(start), err)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch air quality")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	snap := Normalize(doc)
	if !snap.Available {
		s.logger.Warn().
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("air quality document carried no usable index")
	}

	s.cache[cacheKey] = &cachedConditions{
		snapshot:  snap,
		expiresAt: time.Now().Add(s.cacheTTL),
	}

	return snap, nil
}

// cacheKey generates a cache key for a location.
func (s *Service) cacheKey(lat, lon float64) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLon := math.Floor(lon/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.2f:%.2f", gridLat, gridLon)
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedConditions)
}
