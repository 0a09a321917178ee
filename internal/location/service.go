package location

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/profile"
)

// IPProvider resolves the caller's public IP address.
type IPProvider interface {
	// GetPublicIP returns the public IP address of this host.
	GetPublicIP(ctx context.Context) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// GeoProvider resolves locations by text query or IP address.
type GeoProvider interface {
	// Search performs forward geocoding for a free-text query and
	// returns matches ordered best-first.
	Search(ctx context.Context, query string) ([]Location, error)

	// LookupIP resolves an IP address to a location.
	LookupIP(ctx context.Context, ip string) (*Location, error)

	// Name returns the provider name for logging.
	Name() string
}

// ResolverConfig holds configuration for the location resolver.
type ResolverConfig struct {
	// IPProvider resolves the caller's public IP (IP path).
	IPProvider IPProvider

	// GeoProvider performs geocoding and IP-to-location lookups.
	GeoProvider GeoProvider

	// Logger for resolver operations.
	Logger zerolog.Logger
}

// Resolver turns a profile's location preference into a Location.
type Resolver struct {
	ipProvider  IPProvider
	geoProvider GeoProvider
	logger      zerolog.Logger
}

// NewResolver creates a location resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		ipProvider:  cfg.IPProvider,
		geoProvider: cfg.GeoProvider,
		logger:      cfg.Logger,
	}
}

// Resolve returns the location an assessment should run for.
//
// When a custom location is given, it performs one forward-geocoding lookup
// and takes the first match; zero matches yield ErrLocationNotFound.
// Otherwise it resolves the caller's public IP and looks the IP up.
func (r *Resolver) Resolve(ctx context.Context, custom *profile.CustomLocation) (*Location, error) {
	if custom != nil && custom.City != "" {
		return r.resolveCustom(ctx, custom)
	}
	return r.resolveByIP(ctx)
}

func (r *Resolver) resolveCustom(ctx context.Context, custom *profile.CustomLocation) (*Location, error) {
	query := BuildQuery(custom.City, custom.State, custom.Country)

	r.logger.Debug().
		Str("query", query).
		Str("provider", r.geoProvider.Name()).
		Msg("resolving custom location")

	matches, err := r.geoProvider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no matches for %q: %w", query, ErrLocationNotFound)
	}

	best := matches[0]
	if !best.Valid() {
		return nil, coordError(best)
	}
	return &best, nil
}

func (r *Resolver) resolveByIP(ctx context.Context) (*Location, error) {
	ip, err := r.ipProvider.GetPublicIP(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving public IP: %w", err)
	}

	r.logger.Debug().
		Str("ip", ip).
		Str("provider", r.geoProvider.Name()).
		Msg("resolving location by IP")

	loc, err := r.geoProvider.LookupIP(ctx, ip)
	if err != nil {
		return nil, fmt.Errorf("looking up IP location: %w", err)
	}
	if !loc.Valid() {
		return nil, coordError(*loc)
	}
	return loc, nil
}
