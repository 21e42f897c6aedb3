package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/routecraft/routecraft/internal/api/models"
	"github.com/routecraft/routecraft/internal/api/response"
	"github.com/routecraft/routecraft/internal/params"
	"github.com/routecraft/routecraft/internal/preset"
)

// maxPresetNameLength bounds preset names so they stay usable as URL path
// segments.
const maxPresetNameLength = 64

// PresetHandler handles the administrative preset endpoints.
type PresetHandler struct {
	presets *preset.Service
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(presets *preset.Service) *PresetHandler {
	return &PresetHandler{presets: presets}
}

// ListPresets handles GET /v1/admin/presets.
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	items, err := h.presets.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list presets")
		return
	}

	list := models.PresetList{Items: make([]models.PresetResponse, len(items))}
	for i, p := range items {
		list.Items[i] = toPresetResponse(p)
	}
	response.JSON(w, r, http.StatusOK, list)
}

// GetPreset handles GET /v1/admin/presets/{name}.
func (h *PresetHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, err := h.presets.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			response.NotFound(w, r, "preset not found")
			return
		}
		response.InternalError(w, r, "failed to load preset")
		return
	}
	response.JSON(w, r, http.StatusOK, toPresetResponse(p))
}

// CreatePreset handles POST /v1/admin/presets.
func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	input, ok := decodePresetInput(w, r, "")
	if !ok {
		return
	}

	p := toPreset(input)
	if err := h.presets.Create(r.Context(), p); err != nil {
		writePresetError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/admin/presets/"+p.Name, toPresetResponse(p))
}

// UpdatePreset handles PUT /v1/admin/presets/{name}.
func (h *PresetHandler) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	input, ok := decodePresetInput(w, r, name)
	if !ok {
		return
	}

	p := toPreset(input)
	if err := h.presets.Update(r.Context(), p); err != nil {
		writePresetError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, toPresetResponse(p))
}

// DeletePreset handles DELETE /v1/admin/presets/{name}.
func (h *PresetHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.presets.Delete(r.Context(), name); err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			response.NotFound(w, r, "preset not found")
			return
		}
		response.InternalError(w, r, "failed to delete preset")
		return
	}
	response.NoContent(w, r)
}

// decodePresetInput parses and validates a preset body. When name is
// non-empty it overrides any name in the body, matching the URL-addressed
// update form. A false return means the response has been written.
func decodePresetInput(w http.ResponseWriter, r *http.Request, name string) (models.PresetInput, bool) {
	var input models.PresetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return input, false
	}
	if name != "" {
		input.Name = name
	}

	var fields []models.FieldError
	if input.Name == "" {
		fields = append(fields, models.FieldError{Field: "name", Message: "required"})
	}
	if len(input.Name) > maxPresetNameLength {
		fields = append(fields, models.FieldError{Field: "name", Message: "must be at most 64 characters"})
	}
	if input.Profile == "" {
		fields = append(fields, models.FieldError{Field: "profile", Message: "required"})
	}
	if input.Options != nil && input.Options.AvoidPolygons != nil {
		fields = append(fields, models.FieldError{
			Field:   "options.avoid_polygons",
			Message: "avoidance geometry cannot be stored in a preset",
		})
	}
	if len(fields) > 0 {
		response.BadRequest(w, r, "invalid preset", fields)
		return input, false
	}
	return input, true
}

func toPreset(input models.PresetInput) *preset.Preset {
	p := &preset.Preset{
		Name:    input.Name,
		Profile: input.Profile,
	}
	if input.Options != nil {
		p.Options = preset.Options{
			AvoidFeatures: input.Options.AvoidFeatures,
			AvoidBorders:  input.Options.AvoidBorders,
			VehicleType:   input.Options.VehicleType,
		}
		if input.Options.ProfileParams != nil {
			p.Options.Restrictions = input.Options.ProfileParams.Restrictions
			p.Options.Weightings = input.Options.ProfileParams.Weightings
		}
	}
	return p
}

func toPresetResponse(p *preset.Preset) models.PresetResponse {
	resp := models.PresetResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Profile:   p.Profile,
		CreatedAt: models.Timestamp(p.CreatedAt),
		UpdatedAt: models.Timestamp(p.UpdatedAt),
	}
	opts := &models.RouteOptions{
		AvoidFeatures: p.Options.AvoidFeatures,
		AvoidBorders:  p.Options.AvoidBorders,
		VehicleType:   p.Options.VehicleType,
	}
	if p.Options.Restrictions != nil || p.Options.Weightings != nil {
		opts.ProfileParams = &models.ProfileParamsInput{
			Restrictions: p.Options.Restrictions,
			Weightings:   p.Options.Weightings,
		}
	}
	resp.Options = opts
	return resp
}

// writePresetError maps preset service failures onto problem responses.
// Validation runs the same parameter conversion as a live request, so
// conversion failures surface identically.
func writePresetError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, preset.ErrNameTaken):
		response.Conflict(w, r, "a preset with this name already exists")
	case errors.Is(err, preset.ErrPresetNotFound):
		response.NotFound(w, r, "preset not found")
	default:
		var convErr *params.Error
		if errors.As(err, &convErr) {
			writeParamsError(w, r, err)
			return
		}
		response.InternalError(w, r, "failed to store preset")
	}
}
