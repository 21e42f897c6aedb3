package models

// PresetInput is the request body for creating or updating a preset.
type PresetInput struct {
	Name    string        `json:"name" validate:"required"`
	Profile string        `json:"profile" validate:"required"`
	Options *RouteOptions `json:"options,omitempty"`
}

// PresetResponse is a stored preset.
type PresetResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Profile   string        `json:"profile"`
	Options   *RouteOptions `json:"options,omitempty"`
	CreatedAt Timestamp     `json:"createdAt"`
	UpdatedAt Timestamp     `json:"updatedAt"`
}

// PresetList is the response for listing presets.
type PresetList struct {
	Items []PresetResponse `json:"items"`
}
