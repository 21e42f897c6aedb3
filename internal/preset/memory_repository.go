package preset

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu      sync.RWMutex
	presets map[string]*Preset
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		presets: make(map[string]*Preset),
	}
}

// GetPreset retrieves a preset by name.
func (r *InMemoryRepository) GetPreset(_ context.Context, name string) (*Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[name]
	if !ok {
		return nil, ErrPresetNotFound
	}
	clone := *p
	return &clone, nil
}

// ListPresets retrieves all presets ordered by name.
func (r *InMemoryRepository) ListPresets(_ context.Context) ([]*Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	presets := make([]*Preset, 0, len(r.presets))
	for _, p := range r.presets {
		clone := *p
		presets = append(presets, &clone)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// CreatePreset stores a new preset.
func (r *InMemoryRepository) CreatePreset(_ context.Context, p *Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.presets[p.Name]; ok {
		return ErrNameTaken
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	clone := *p
	r.presets[p.Name] = &clone
	return nil
}

// UpdatePreset replaces the profile and options of a stored preset.
func (r *InMemoryRepository) UpdatePreset(_ context.Context, p *Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.presets[p.Name]
	if !ok {
		return ErrPresetNotFound
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()

	clone := *p
	r.presets[p.Name] = &clone
	return nil
}

// DeletePreset removes a preset by name.
func (r *InMemoryRepository) DeletePreset(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.presets[name]; !ok {
		return ErrPresetNotFound
	}
	delete(r.presets, name)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
