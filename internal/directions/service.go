package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/params"
)

// ServiceConfig holds configuration for the directions service.
type ServiceConfig struct {
	// Engine is the routing search engine client.
	Engine Engine

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache computed directions (default: 5 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.01
	// ~ 1.1km). Origins and destinations within the same cell share entries.
	CacheGridSize float64

	// StaleIfErrorTTL allows serving stale results on engine errors (default: 15 minutes).
	StaleIfErrorTTL time.Duration

	// CleanupInterval is how often expired entries are removed (default: 5 minutes).
	CleanupInterval time.Duration

	// Isochrones is the optional isochrone computation boundary. Engines that
	// serve reachability contours inject a builder here; without one,
	// ComputeIsochrones fails with ErrEngineUnavailable.
	Isochrones IsochroneBuilder
}

// Service computes directions through the engine with response caching.
type Service struct {
	engine          Engine
	isochrones      IsochroneBuilder
	logger          zerolog.Logger
	cacheTTL        time.Duration
	cacheGridSize   float64
	staleIfErrorTTL time.Duration
	cleanupInterval time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedResponse
	lastCleanup time.Time
}

type cachedResponse struct {
	response   *Response
	computedAt time.Time
	expiresAt  time.Time
}

// NewService creates a new directions service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.01 // ~1.1km at equator
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 15 * time.Minute
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval == 0 {
		cleanupInterval = 5 * time.Minute
	}

	return &Service{
		engine:          cfg.Engine,
		isochrones:      cfg.Isochrones,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		cacheGridSize:   cacheGridSize,
		staleIfErrorTTL: staleIfErrorTTL,
		cleanupInterval: cleanupInterval,
		cache:           make(map[string]*cachedResponse),
	}
}

// ComputeDirections returns directions for the request, using a cached
// response when one is available and not expired.
func (s *Service) ComputeDirections(ctx context.Context, req Request) (*Response, error) {
	if err := validateCoordinates(req.Origin); err != nil {
		return nil, &Error{
			Engine:  s.engine.Name(),
			Code:    "INVALID_ORIGIN",
			Message: "invalid origin coordinates",
			Err:     ErrInvalidCoordinates,
		}
	}
	if err := validateCoordinates(req.Destination); err != nil {
		return nil, &Error{
			Engine:  s.engine.Name(),
			Code:    "INVALID_DESTINATION",
			Message: "invalid destination coordinates",
			Err:     ErrInvalidCoordinates,
		}
	}

	// Avoidance polygons are free-form geometry and cannot be keyed onto the
	// cache grid, so those requests always go to the engine.
	if len(req.Search.AvoidAreas) > 0 {
		return s.engine.ComputeDirections(ctx, req)
	}

	cacheKey := s.cacheKey(req)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit for directions")
		return cached.response, nil
	}
	s.mu.RUnlock()

	return s.computeAndCache(ctx, req, cacheKey)
}

// computeAndCache runs the engine search and updates the cache.
func (s *Service) computeAndCache(ctx context.Context, req Request, cacheKey string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache (prevents thundering herd)
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit after double-check")
		return cached.response, nil
	}

	s.logger.Debug().
		Str("profile", req.Search.Profile.String()).
		Int("avoid_features", req.Search.AvoidFeatures).
		Str("engine", s.engine.Name()).
		Msg("computing directions through engine")

	resp, err := s.engine.ComputeDirections(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).
			Str("profile", req.Search.Profile.String()).
			Msg("engine search failed")

		// Stale-if-error: serve the previous result while the engine recovers.
		if cached, ok := s.cache[cacheKey]; ok {
			if time.Now().Before(cached.computedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("computed_at", cached.computedAt).
					Str("cache_key", cacheKey).
					Msg("serving stale directions due to engine error")
				return cached.response, nil
			}
		}

		return nil, err
	}

	now := time.Now()
	s.cache[cacheKey] = &cachedResponse{
		response:   resp,
		computedAt: now,
		expiresAt:  now.Add(s.cacheTTL),
	}

	s.logger.Debug().
		Str("cache_key", cacheKey).
		Int("route_count", len(resp.Routes)).
		Msg("cached directions response")

	s.cleanupIfNeeded()

	return resp, nil
}

// cacheKey quantizes origin and destination onto the cache grid and folds in
// every search parameter that changes the result, including a digest of the
// profile-specific parameters and the alternative count.
func (s *Service) cacheKey(req Request) string {
	gridOriginLat := math.Floor(req.Origin.Lat/s.cacheGridSize) * s.cacheGridSize
	gridOriginLon := math.Floor(req.Origin.Lon/s.cacheGridSize) * s.cacheGridSize
	gridDestLat := math.Floor(req.Destination.Lat/s.cacheGridSize) * s.cacheGridSize
	gridDestLon := math.Floor(req.Destination.Lon/s.cacheGridSize) * s.cacheGridSize

	borders := "-"
	if req.Search.AvoidBorders != nil {
		borders = req.Search.AvoidBorders.String()
	}

	return fmt.Sprintf("%s:%d:%s:%s:%d:%.2f,%.2f:%.2f,%.2f",
		req.Search.Profile,
		req.Search.AvoidFeatures,
		borders,
		profileParamsDigest(req.Search.ProfileParams),
		req.MaxAlternatives,
		gridOriginLat, gridOriginLon,
		gridDestLat, gridDestLon,
	)
}

// profileParamsDigest hashes the profile-specific parameters and weightings so
// requests that differ only in restrictions, vehicle attributes or weightings
// never share a cache entry. The variant type is implied by the profile, which
// the key already carries. JSON encoding of the variants is deterministic:
// struct fields keep declaration order and map keys are sorted.
func profileParamsDigest(routeParams params.RouteParameters) string {
	if routeParams == nil {
		return "-"
	}

	payload := struct {
		Variant    params.RouteParameters `json:"variant"`
		Weightings []*params.Weighting    `json:"weightings,omitempty"`
	}{routeParams, routeParams.Weightings()}

	encoded, err := json.Marshal(payload)
	if err != nil {
		// The variants carry only numbers and strings; encoding cannot fail
		// for them. Anything exotic enough to fail is not cacheable.
		return fmt.Sprintf("%p", routeParams)
	}

	h := fnv.New64a()
	_, _ = h.Write(encoded)
	return strconv.FormatUint(h.Sum64(), 16)
}

// cleanupIfNeeded removes expired entries if the cleanup interval has passed.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.cache {
		if now.After(cached.computedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired directions cache entries")
	}
}

// InvalidateCache clears all cached responses.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedResponse)
}

// CacheStats contains cache statistics.
type CacheStats struct {
	TotalEntries int
	FreshEntries int
	StaleEntries int
	Engine       string
}

// Stats returns cache statistics.
func (s *Service) Stats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	stale := 0

	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		} else if now.Before(c.computedAt.Add(s.staleIfErrorTTL)) {
			stale++
		}
	}

	return CacheStats{
		TotalEntries: len(s.cache),
		FreshEntries: fresh,
		StaleEntries: stale,
		Engine:       s.engine.Name(),
	}
}

// EngineName returns the name of the underlying engine.
func (s *Service) EngineName() string {
	return s.engine.Name()
}

// validateCoordinates checks if coordinates are within valid ranges.
func validateCoordinates(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}
