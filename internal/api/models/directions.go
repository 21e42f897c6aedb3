package models

import "github.com/routecraft/routecraft/internal/params"

// DirectionsRequest is the request body for computing directions. The
// profile comes from the URL path; everything else is carried here.
type DirectionsRequest struct {
	Origin          *Point        `json:"origin" validate:"required"`
	Destination     *Point        `json:"destination" validate:"required"`
	MaxAlternatives *int          `json:"maxAlternatives,omitempty" validate:"omitempty,gte=0,lte=5"`
	Preset          *string       `json:"preset,omitempty"`
	Options         *RouteOptions `json:"options,omitempty"`
}

// RouteOptions carries the untyped route options to be translated and
// validated against the requested profile.
type RouteOptions struct {
	AvoidFeatures []string            `json:"avoid_features,omitempty"`
	AvoidBorders  *string             `json:"avoid_borders,omitempty"`
	AvoidPolygons *params.GeoJSON     `json:"avoid_polygons,omitempty"`
	VehicleType   *string             `json:"vehicle_type,omitempty"`
	ProfileParams *ProfileParamsInput `json:"profile_params,omitempty"`
}

// ProfileParamsInput carries profile-specific restrictions and weightings.
type ProfileParamsInput struct {
	Restrictions *params.Restrictions `json:"restrictions,omitempty"`
	Weightings   *params.Weightings   `json:"weightings,omitempty"`
}

// DirectionsResponse is the response for a directions computation.
type DirectionsResponse struct {
	GeneratedAt Timestamp     `json:"generatedAt"`
	Engine      string        `json:"engine"`
	Routes      []RouteResult `json:"routes"`
}

// RouteResult represents a single computed route.
type RouteResult struct {
	DurationSeconds  int           `json:"durationSeconds"`
	DistanceMeters   int           `json:"distanceMeters"`
	Summary          *string       `json:"summary,omitempty"`
	BoundingBox      *GeoBox       `json:"boundingBox,omitempty"`
	GeometryPolyline string        `json:"geometryPolyline"`
	Instructions     []Instruction `json:"instructions,omitempty"`
}

// Instruction represents a turn-by-turn instruction.
type Instruction struct {
	Text           string `json:"text"`
	DistanceMeters int    `json:"distanceMeters"`
	DurationSecs   int    `json:"durationSeconds"`
	Type           int    `json:"type"`
}
