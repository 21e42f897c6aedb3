package handler

import (
	"net/http"

	"github.com/routecraft/routecraft/internal/api/models"
	"github.com/routecraft/routecraft/internal/api/response"
	"github.com/routecraft/routecraft/internal/params"
)

// MetadataHandler handles API metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// Enums handles GET /v1/metadata/enums - enumerated request parameter values.
func (h *MetadataHandler) Enums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Profiles:      params.ProfileNames(),
		VehicleTypes:  params.VehicleTypeNames(),
		AvoidFeatures: params.AvoidFeatureNames(),
		AvoidBorders:  params.AvoidBorderNames(),
		Restrictions: map[string][]string{
			"cycling":       (&params.CyclingParams{}).ValidRestrictions(),
			"walking":       (&params.WalkingParams{}).ValidRestrictions(),
			"heavy_vehicle": (&params.VehicleParams{}).ValidRestrictions(),
			"wheelchair":    (&params.WheelchairParams{}).ValidRestrictions(),
		},
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, enums)
}
