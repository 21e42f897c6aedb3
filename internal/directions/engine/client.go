// Package engine provides the HTTP client for the routing search engine.
// The engine itself is an external collaborator; this package only moves
// validated search parameters across its wire boundary.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/params"
	"github.com/routecraft/routecraft/internal/provider/resilience"
	"github.com/routecraft/routecraft/pkg/polyline"
)

const (
	// EngineName identifies this engine client.
	EngineName = "routecraft-engine"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the engine client.
type ClientConfig struct {
	// BaseURL is the engine base URL (required).
	BaseURL string

	// APIKey authenticates this service against the engine (optional).
	APIKey string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the upstream registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a routing search engine client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new engine client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(EngineName)
		clientCfg.Timeout = timeout
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the engine name.
func (c *Client) Name() string {
	return EngineName
}

// Profiles returns the routing profiles the engine serves.
func (c *Client) Profiles() []params.ProfileType {
	return []params.ProfileType{
		params.ProfileDrivingCar,
		params.ProfileDrivingHGV,
		params.ProfileCyclingRegular,
		params.ProfileCyclingRoad,
		params.ProfileCyclingMountain,
		params.ProfileCyclingElectric,
		params.ProfileFootWalking,
		params.ProfileFootHiking,
		params.ProfileWheelchair,
	}
}

// ComputeDirections runs a route search with validated parameters.
func (c *Client) ComputeDirections(ctx context.Context, req directions.Request) (*directions.Response, error) {
	maxAlts := req.MaxAlternatives
	if maxAlts <= 0 {
		maxAlts = 2
	}

	body, err := json.Marshal(c.toSearchRequest(req, maxAlts))
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/search/%s", c.baseURL, req.Search.Profile)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", c.apiKey)
	}

	c.logger.Debug().
		Str("profile", req.Search.Profile.String()).
		Int("avoid_features", req.Search.AvoidFeatures).
		Int("avoid_areas", len(req.Search.AvoidAreas)).
		Msg("submitting search to engine")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &directions.Error{
			Engine:  EngineName,
			Code:    "REQUEST_FAILED",
			Message: "failed to reach search engine",
			Err:     directions.ErrEngineUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, respBody)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	result := c.toResponse(&searchResp)

	c.logger.Debug().
		Int("route_count", len(result.Routes)).
		Msg("received routes from engine")

	return result, nil
}

// toSearchRequest encodes the domain request into the engine wire format.
func (c *Client) toSearchRequest(req directions.Request, maxAlts int) searchRequest {
	out := searchRequest{
		// The engine uses [lon, lat] order (GeoJSON)
		Coordinates: [][]float64{
			{req.Origin.Lon, req.Origin.Lat},
			{req.Destination.Lon, req.Destination.Lat},
		},
		AlternativeRoutes: &alternativeOpts{
			TargetCount: maxAlts + 1, // the first route is not counted as alternative
		},
		Instructions:  true,
		Geometry:      true,
		Units:         "m",
		AvoidFeatures: req.Search.AvoidFeatures,
		AvoidPolygons: avoidPolygonsGeometry(req.Search.AvoidAreas),
	}

	if req.Search.AvoidBorders != nil {
		out.AvoidBorders = req.Search.AvoidBorders.String()
	}
	if req.Search.ProfileParams != nil {
		out.ProfileParams = encodeProfileParams(req.Search.ProfileParams)
	}

	return out
}

// avoidPolygonsGeometry folds the avoidance polygons back into a single
// GeoJSON geometry for the wire.
func avoidPolygonsGeometry(areas []orb.Polygon) *geojson.Geometry {
	switch len(areas) {
	case 0:
		return nil
	case 1:
		return geojson.NewGeometry(areas[0])
	default:
		multi := make(orb.MultiPolygon, len(areas))
		copy(multi, areas)
		return geojson.NewGeometry(multi)
	}
}

// encodeProfileParams flattens a parameter variant into the wire shape.
func encodeProfileParams(routeParams params.RouteParameters) *profileParams {
	restrictions := make(map[string]interface{})

	switch p := routeParams.(type) {
	case *params.CyclingParams:
		putInt(restrictions, params.RestrictionGradient, p.MaximumGradient)
		putInt(restrictions, params.RestrictionTrailDifficulty, p.MaximumTrailDifficulty)
	case *params.WalkingParams:
		putInt(restrictions, params.RestrictionGradient, p.MaximumGradient)
		putInt(restrictions, params.RestrictionTrailDifficulty, p.MaximumTrailDifficulty)
	case *params.VehicleParams:
		putFloat(restrictions, params.RestrictionLength, p.Length)
		putFloat(restrictions, params.RestrictionWidth, p.Width)
		putFloat(restrictions, params.RestrictionHeight, p.Height)
		putFloat(restrictions, params.RestrictionWeight, p.Weight)
		putFloat(restrictions, params.RestrictionAxleLoad, p.AxleLoad)
		putInt(restrictions, "load_characteristics", p.LoadCharacteristics)
	case *params.WheelchairParams:
		putInt(restrictions, params.RestrictionSurfaceType, p.SurfaceType)
		putInt(restrictions, params.RestrictionTrackType, p.TrackType)
		putInt(restrictions, params.RestrictionSmoothnessType, p.SmoothnessType)
		putFloat(restrictions, params.RestrictionMaxSlopedKerb, p.MaximumSlopedKerb)
		putInt(restrictions, params.RestrictionMaxIncline, p.MaximumIncline)
		putFloat(restrictions, params.RestrictionMinWidth, p.MinimumWidth)
	}

	weightings := make([]weighting, 0, len(routeParams.Weightings()))
	for _, w := range routeParams.Weightings() {
		weightings = append(weightings, weighting{Name: w.Name, Params: w.Params})
	}

	if len(restrictions) == 0 && len(weightings) == 0 {
		return nil
	}
	return &profileParams{Restrictions: restrictions, Weightings: weightings}
}

func putInt(m map[string]interface{}, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putFloat(m map[string]interface{}, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

// handleErrorResponse maps engine error responses to domain errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var engineErr engineErrorResponse
	if err := json.Unmarshal(body, &engineErr); err != nil {
		return &directions.Error{
			Engine:  EngineName,
			Code:    fmt.Sprintf("HTTP_%d", statusCode),
			Message: fmt.Sprintf("search engine returned status %d", statusCode),
			Err:     directions.ErrEngineUnavailable,
		}
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return &directions.Error{
			Engine:  EngineName,
			Code:    "RATE_LIMIT",
			Message: "engine rate limit exceeded, please try again later",
			Err:     directions.ErrRateLimitExceeded,
		}
	case http.StatusNotFound:
		return &directions.Error{
			Engine:  EngineName,
			Code:    "NO_ROUTE",
			Message: "no route found between the given points",
			Err:     directions.ErrNoRouteFound,
		}
	case http.StatusBadRequest:
		if engineErr.Error.Code == engineErrorCodeNoRoute {
			return &directions.Error{
				Engine:  EngineName,
				Code:    "NO_ROUTE",
				Message: engineErr.Error.Message,
				Err:     directions.ErrNoRouteFound,
			}
		}
		return &directions.Error{
			Engine:  EngineName,
			Code:    "BAD_REQUEST",
			Message: engineErr.Error.Message,
			Err:     directions.ErrInvalidCoordinates,
		}
	default:
		if statusCode >= 500 {
			return &directions.Error{
				Engine:  EngineName,
				Code:    fmt.Sprintf("SERVER_%d", statusCode),
				Message: "search engine is temporarily unavailable",
				Err:     directions.ErrEngineUnavailable,
			}
		}
		return &directions.Error{
			Engine:  EngineName,
			Code:    fmt.Sprintf("HTTP_%d", statusCode),
			Message: engineErr.Error.Message,
			Err:     directions.ErrEngineUnavailable,
		}
	}
}

// toResponse converts the engine response to the domain model.
func (c *Client) toResponse(resp *searchResponse) *directions.Response {
	routes := make([]directions.Route, 0, len(resp.Routes))

	for i := range resp.Routes {
		engineRoute := &resp.Routes[i]
		route := directions.Route{
			Geometry:        polyline.Decode(engineRoute.Geometry),
			DistanceMeters:  int(engineRoute.Summary.Distance),
			DurationSeconds: int(engineRoute.Summary.Duration),
		}

		if len(engineRoute.BBox) >= 4 {
			route.BoundingBox = &directions.BoundingBox{
				MinLon: engineRoute.BBox[0],
				MinLat: engineRoute.BBox[1],
				MaxLon: engineRoute.BBox[2],
				MaxLat: engineRoute.BBox[3],
			}
		}

		for j := range engineRoute.Segments {
			segment := &engineRoute.Segments[j]
			for k := range segment.Steps {
				step := &segment.Steps[k]
				route.Instructions = append(route.Instructions, directions.Instruction{
					Text:           step.Instruction,
					DistanceMeters: int(step.Distance),
					DurationSecs:   int(step.Duration),
					Type:           step.Type,
				})
			}
		}

		if len(route.Instructions) > 0 {
			route.Summary = routeSummaryText(route.Instructions)
		}

		routes = append(routes, route)
	}

	return &directions.Response{
		Routes:     routes,
		Engine:     EngineName,
		ComputedAt: time.Now(),
	}
}

// routeSummaryText picks the first long instruction as the route summary.
func routeSummaryText(instructions []directions.Instruction) string {
	for _, inst := range instructions {
		if inst.DistanceMeters > 500 && inst.Text != "" {
			return inst.Text
		}
	}
	return ""
}
