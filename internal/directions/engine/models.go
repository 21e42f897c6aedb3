package engine

import "github.com/paulmach/orb/geojson"

// searchRequest is the engine search API request body.
type searchRequest struct {
	Coordinates       [][]float64       `json:"coordinates"`
	AlternativeRoutes *alternativeOpts  `json:"alternative_routes,omitempty"`
	Instructions      bool              `json:"instructions"`
	Geometry          bool              `json:"geometry"`
	Units             string            `json:"units"`
	AvoidFeatures     int               `json:"avoid_features,omitempty"`
	AvoidBorders      string            `json:"avoid_borders,omitempty"`
	AvoidPolygons     *geojson.Geometry `json:"avoid_polygons,omitempty"`
	ProfileParams     *profileParams    `json:"profile_params,omitempty"`
}

// alternativeOpts configures alternative route generation.
type alternativeOpts struct {
	TargetCount int `json:"target_count"`
}

// profileParams carries the profile-specific restrictions and weightings.
type profileParams struct {
	Restrictions map[string]interface{} `json:"restrictions,omitempty"`
	Weightings   []weighting            `json:"weightings,omitempty"`
}

// weighting is a named soft preference; order in the slice is application order.
type weighting struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// searchResponse is the engine search API response.
type searchResponse struct {
	Routes []searchRoute `json:"routes"`
	BBox   []float64     `json:"bbox,omitempty"`
}

// searchRoute is a single route in the engine response.
type searchRoute struct {
	Summary  routeSummary   `json:"summary"`
	Segments []routeSegment `json:"segments,omitempty"`
	BBox     []float64      `json:"bbox,omitempty"`
	Geometry string         `json:"geometry"`
}

type routeSummary struct {
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
}

type routeSegment struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Steps    []routeStep `json:"steps,omitempty"`
}

type routeStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name"`
}

// engineErrorResponse is an error response from the engine.
type engineErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Engine error codes for error mapping.
const (
	engineErrorCodeNoRoute = 2009
)
