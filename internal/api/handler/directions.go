package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/routecraft/routecraft/internal/api/models"
	"github.com/routecraft/routecraft/internal/api/response"
	"github.com/routecraft/routecraft/internal/directions"
	"github.com/routecraft/routecraft/internal/params"
	"github.com/routecraft/routecraft/internal/preset"
	"github.com/routecraft/routecraft/pkg/polyline"
)

// DirectionsHandler handles route computation endpoints.
type DirectionsHandler struct {
	directions *directions.Service
	presets    *preset.Service
	params     *params.Handler
}

// NewDirectionsHandler creates a new DirectionsHandler.
func NewDirectionsHandler(svc *directions.Service, presets *preset.Service, p *params.Handler) *DirectionsHandler {
	return &DirectionsHandler{
		directions: svc,
		presets:    presets,
		params:     p,
	}
}

// ComputeDirections handles POST /v1/directions/{profile} - compute route
// alternatives between two points.
func (h *DirectionsHandler) ComputeDirections(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")

	var input models.DirectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Origin == nil || input.Destination == nil {
		response.BadRequest(w, r, "origin and destination are required", []models.FieldError{
			{Field: "origin", Message: "required"},
			{Field: "destination", Message: "required"},
		})
		return
	}

	maxAlternatives := 0
	if input.MaxAlternatives != nil {
		if *input.MaxAlternatives < 0 || *input.MaxAlternatives > 5 {
			response.BadRequest(w, r, "maxAlternatives out of range", []models.FieldError{
				{Field: "maxAlternatives", Message: "must be between 0 and 5"},
			})
			return
		}
		maxAlternatives = *input.MaxAlternatives
	}

	profileType, err := h.params.ConvertRouteProfileType(profile)
	if err != nil {
		writeParamsError(w, r, err)
		return
	}

	opts := input.Options
	if input.Preset != nil {
		merged, ok := h.applyPreset(w, r, *input.Preset, profile, opts)
		if !ok {
			return
		}
		opts = merged
	}

	search, err := h.assembleSearch(profileType, opts)
	if err != nil {
		writeParamsError(w, r, err)
		return
	}

	result, err := h.directions.ComputeDirections(r.Context(), directions.Request{
		Origin:          directions.Coordinate{Lat: input.Origin.Lat, Lon: input.Origin.Lon},
		Destination:     directions.Coordinate{Lat: input.Destination.Lat, Lon: input.Destination.Lon},
		Search:          search,
		MaxAlternatives: maxAlternatives,
	})
	if err != nil {
		writeDirectionsError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, toDirectionsResponse(result))
}

// applyPreset resolves a named preset and layers the request options on top of
// it. Request-level options win field by field. A false return means the
// response has already been written.
func (h *DirectionsHandler) applyPreset(w http.ResponseWriter, r *http.Request, name, profile string, opts *models.RouteOptions) (*models.RouteOptions, bool) {
	p, err := h.presets.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			response.BadRequest(w, r, "unknown preset", []models.FieldError{
				{Field: "preset", Message: "no preset named " + strconv.Quote(name)},
			})
			return nil, false
		}
		response.InternalError(w, r, "failed to resolve preset")
		return nil, false
	}
	if p.Profile != profile {
		response.BadRequest(w, r, "preset profile mismatch", []models.FieldError{
			{Field: "preset", Message: "preset " + strconv.Quote(name) + " is defined for profile " + p.Profile},
		})
		return nil, false
	}

	merged := &models.RouteOptions{
		AvoidFeatures: p.Options.AvoidFeatures,
		AvoidBorders:  p.Options.AvoidBorders,
		VehicleType:   p.Options.VehicleType,
	}
	if p.Options.Restrictions != nil || p.Options.Weightings != nil {
		merged.ProfileParams = &models.ProfileParamsInput{
			Restrictions: p.Options.Restrictions,
			Weightings:   p.Options.Weightings,
		}
	}

	if opts == nil {
		return merged, true
	}
	if len(opts.AvoidFeatures) > 0 {
		merged.AvoidFeatures = opts.AvoidFeatures
	}
	if opts.AvoidBorders != nil {
		merged.AvoidBorders = opts.AvoidBorders
	}
	if opts.AvoidPolygons != nil {
		merged.AvoidPolygons = opts.AvoidPolygons
	}
	if opts.VehicleType != nil {
		merged.VehicleType = opts.VehicleType
	}
	if opts.ProfileParams != nil {
		merged.ProfileParams = opts.ProfileParams
	}
	return merged, true
}

// assembleSearch translates the untyped route options into validated search
// parameters for the resolved profile.
func (h *DirectionsHandler) assembleSearch(profileType params.ProfileType, opts *models.RouteOptions) (directions.SearchParameters, error) {
	search := directions.SearchParameters{Profile: profileType}

	profileOpts := params.ProfileOptions{}
	if opts != nil {
		if len(opts.AvoidFeatures) > 0 {
			flags, err := h.params.ConvertFeatureTypes(opts.AvoidFeatures, profileType)
			if err != nil {
				return search, err
			}
			search.AvoidFeatures = flags
		}
		search.AvoidBorders = h.params.ConvertAvoidBorders(opts.AvoidBorders)
		if opts.AvoidPolygons != nil {
			areas, err := h.params.ConvertAvoidAreas(*opts.AvoidPolygons)
			if err != nil {
				return search, err
			}
			search.AvoidAreas = areas
		}
		profileOpts.VehicleType = opts.VehicleType
		if opts.ProfileParams != nil {
			profileOpts.Restrictions = opts.ProfileParams.Restrictions
			profileOpts.Weightings = opts.ProfileParams.Weightings
		}
	}

	routeParams, err := h.params.ConvertParameters(profileOpts, profileType)
	if err != nil {
		return search, err
	}
	search.ProfileParams = routeParams
	return search, nil
}

func toDirectionsResponse(result *directions.Response) models.DirectionsResponse {
	routes := make([]models.RouteResult, len(result.Routes))
	for i, route := range result.Routes {
		rr := models.RouteResult{
			DurationSeconds:  route.DurationSeconds,
			DistanceMeters:   route.DistanceMeters,
			GeometryPolyline: polyline.Encode(route.Geometry),
		}
		if route.Summary != "" {
			summary := route.Summary
			rr.Summary = &summary
		}
		if route.BoundingBox != nil {
			rr.BoundingBox = &models.GeoBox{
				MinLat: route.BoundingBox.MinLat,
				MinLon: route.BoundingBox.MinLon,
				MaxLat: route.BoundingBox.MaxLat,
				MaxLon: route.BoundingBox.MaxLon,
			}
		}
		if len(route.Instructions) > 0 {
			rr.Instructions = make([]models.Instruction, len(route.Instructions))
			for j, ins := range route.Instructions {
				rr.Instructions[j] = models.Instruction{
					Text:           ins.Text,
					DistanceMeters: ins.DistanceMeters,
					DurationSecs:   ins.DurationSecs,
					Type:           ins.Type,
				}
			}
		}
		routes[i] = rr
	}
	return models.DirectionsResponse{
		GeneratedAt: models.Timestamp(time.Now()),
		Engine:      result.Engine,
		Routes:      routes,
	}
}

// writeParamsError maps a parameter conversion failure onto a 400 problem,
// surfacing the offending parameters as field errors.
func writeParamsError(w http.ResponseWriter, r *http.Request, err error) {
	var convErr *params.Error
	if !errors.As(err, &convErr) {
		response.InternalError(w, r, "parameter conversion failed")
		return
	}

	fields := make([]models.FieldError, len(convErr.Params))
	for i, p := range convErr.Params {
		fields[i] = models.FieldError{
			Field:   p.Name,
			Message: paramsFieldMessage(convErr, p),
			Code:    strconv.Itoa(convErr.Code),
		}
	}
	response.BadRequest(w, r, convErr.Err.Error(), fields)
}

func paramsFieldMessage(convErr *params.Error, p params.Param) string {
	switch {
	case errors.Is(convErr, params.ErrUnknownValue):
		return "unknown value " + strconv.Quote(p.Value)
	case errors.Is(convErr, params.ErrIncompatibleValue):
		if p.Value == "" {
			return "not applicable"
		}
		return strconv.Quote(p.Value) + " does not apply to the requested profile"
	case errors.Is(convErr, params.ErrInvalidJSON):
		return "malformed GeoJSON geometry"
	default:
		if p.Value == "" {
			return "invalid value"
		}
		return "invalid value " + strconv.Quote(p.Value)
	}
}

// writeDirectionsError maps directions service failures onto problem responses.
func writeDirectionsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, directions.ErrInvalidCoordinates):
		response.BadRequest(w, r, "coordinates out of range", []models.FieldError{
			{Field: "origin", Message: "latitude must be in [-90, 90], longitude in [-180, 180]"},
			{Field: "destination", Message: "latitude must be in [-90, 90], longitude in [-180, 180]"},
		})
	case errors.Is(err, directions.ErrNoRouteFound):
		response.NotFound(w, r, "no route found between the given points")
	case errors.Is(err, directions.ErrRateLimitExceeded):
		response.TooManyRequests(w, r, "routing engine quota exceeded, retry later")
	case errors.Is(err, directions.ErrEngineUnavailable):
		response.ServiceUnavailable(w, r, "routing engine unavailable")
	default:
		response.InternalError(w, r, "route computation failed")
	}
}
