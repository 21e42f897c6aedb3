// Package directions provides route computation against the routing search
// engine, with validated search parameters and response caching.
package directions

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"

	"github.com/routecraft/routecraft/internal/params"
)

// Sentinel errors for directions operations.
var (
	// ErrEngineUnavailable indicates the search engine is down or the circuit breaker is open.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the engine quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Engine is the boundary contract of the routing search engine. The engine
// itself lives outside this service; only its request/response surface is
// modeled here.
type Engine interface {
	// ComputeDirections runs a route search with fully validated parameters.
	ComputeDirections(ctx context.Context, req Request) (*Response, error)
	// Name returns the engine identifier for logging and metrics.
	Name() string
	// Profiles returns the routing profiles the engine serves.
	Profiles() []params.ProfileType
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// SearchParameters is the strongly-typed engine input assembled by the
// parameter translation layer. All fields have already been validated against
// the resolved profile.
type SearchParameters struct {
	Profile       params.ProfileType
	AvoidFeatures int
	AvoidBorders  *params.AvoidBorders
	AvoidAreas    []orb.Polygon
	ProfileParams params.RouteParameters
}

// Request is a route search request.
type Request struct {
	Origin          Coordinate
	Destination     Coordinate
	Search          SearchParameters
	MaxAlternatives int // Maximum number of alternative routes (default: 2)
}

// Response contains the computed route alternatives.
type Response struct {
	Routes     []Route
	Engine     string
	ComputedAt time.Time
}

// Route represents a single route option.
type Route struct {
	Geometry        orb.LineString // Decoded route geometry
	DistanceMeters  int
	DurationSeconds int
	Summary         string
	BoundingBox     *BoundingBox
	Instructions    []Instruction
}

// BoundingBox represents a geographic bounding box.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Instruction represents a turn-by-turn instruction.
type Instruction struct {
	Text           string
	DistanceMeters int
	DurationSecs   int
	Type           int // Engine instruction type code
}

// Error provides detailed error information from the search engine.
type Error struct {
	Engine  string // Engine that generated the error
	Code    string // Error code from the engine
	Message string // Human-readable error message
	Err     error  // Underlying sentinel error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrEngineUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
