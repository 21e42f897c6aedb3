// Package preset manages named, pre-validated routing parameter presets.
// Operators store commonly used option sets (avoid features, vehicle
// dimensions, weightings) under a name; clients reference the name instead
// of repeating the options on every request.
package preset

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/routecraft/routecraft/internal/params"
)

// Predefined preset errors.
var (
	// ErrPresetNotFound is returned when a preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrNameTaken is returned when a preset name is already in use.
	ErrNameTaken = errors.New("preset name already in use")
)

// Options is the stored option set of a preset. The shape mirrors the
// directions request options so a preset can be applied verbatim.
type Options struct {
	AvoidFeatures []string             `json:"avoid_features,omitempty"`
	AvoidBorders  *string              `json:"avoid_borders,omitempty"`
	VehicleType   *string              `json:"vehicle_type,omitempty"`
	Restrictions  *params.Restrictions `json:"restrictions,omitempty"`
	Weightings    *params.Weightings   `json:"weightings,omitempty"`
}

// Preset is a named, validated option set for a single routing profile.
type Preset struct {
	ID        uuid.UUID
	Name      string
	Profile   string
	Options   Options
	CreatedAt time.Time
	UpdatedAt time.Time
}
