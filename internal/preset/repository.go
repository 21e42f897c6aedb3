package preset

import "context"

// Repository defines the interface for preset storage.
type Repository interface {
	// GetPreset retrieves a preset by name.
	GetPreset(ctx context.Context, name string) (*Preset, error)

	// ListPresets retrieves all presets ordered by name.
	ListPresets(ctx context.Context) ([]*Preset, error)

	// CreatePreset stores a new preset.
	CreatePreset(ctx context.Context, p *Preset) error

	// UpdatePreset replaces the profile and options of a stored preset.
	UpdatePreset(ctx context.Context, p *Preset) error

	// DeletePreset removes a preset by name.
	DeletePreset(ctx context.Context, name string) error
}
