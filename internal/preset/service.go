package preset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/routecraft/routecraft/internal/params"
)

// ServiceConfig holds configuration for the preset service.
type ServiceConfig struct {
	Repository Repository

	// Params validates preset options before they are stored.
	Params *params.Handler

	Logger zerolog.Logger

	// CacheTTL is how long resolved presets are cached in memory.
	CacheTTL time.Duration
}

// Service provides validated preset management with read caching.
// Every preset passes through the full parameter translation before it is
// stored, so a stored preset is always applicable.
type Service struct {
	repo     Repository
	params   *params.Handler
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	cache       map[string]*Preset
	cacheExpiry time.Time
}

// NewService creates a new preset service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	p := cfg.Params
	if p == nil {
		p = params.NewHandler(params.HandlerConfig{Logger: cfg.Logger})
	}

	return &Service{
		repo:     cfg.Repository,
		params:   p,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*Preset),
	}
}

// Get retrieves a preset by name, serving from cache when fresh.
func (s *Service) Get(ctx context.Context, name string) (*Preset, error) {
	if p := s.getCached(name); p != nil {
		return p, nil
	}

	p, err := s.repo.GetPreset(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrPresetNotFound) {
			s.logger.Warn().Err(err).Str("preset", name).Msg("failed to load preset from repository")
		}
		return nil, err
	}

	s.setCached(p)
	return p, nil
}

// List retrieves all presets.
func (s *Service) List(ctx context.Context) ([]*Preset, error) {
	return s.repo.ListPresets(ctx)
}

// Create validates and stores a new preset. The preset ID is assigned here.
func (s *Service) Create(ctx context.Context, p *Preset) error {
	if err := s.validate(p); err != nil {
		return err
	}

	p.ID = uuid.New()
	if err := s.repo.CreatePreset(ctx, p); err != nil {
		return err
	}

	s.logger.Info().
		Str("preset", p.Name).
		Str("profile", p.Profile).
		Msg("created routing preset")

	s.setCached(p)
	return nil
}

// Update validates and replaces a stored preset.
func (s *Service) Update(ctx context.Context, p *Preset) error {
	if err := s.validate(p); err != nil {
		return err
	}

	if err := s.repo.UpdatePreset(ctx, p); err != nil {
		return err
	}

	s.logger.Info().
		Str("preset", p.Name).
		Str("profile", p.Profile).
		Msg("updated routing preset")

	s.setCached(p)
	return nil
}

// Delete removes a preset by name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.DeletePreset(ctx, name); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()

	s.logger.Info().Str("preset", name).Msg("deleted routing preset")
	return nil
}

// InvalidateCache clears the in-memory preset cache.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Preset)
	s.cacheExpiry = time.Time{}
}

// validate runs the preset options through the parameter translation. A
// preset that fails translation is rejected with the translation error.
func (s *Service) validate(p *Preset) error {
	profile, err := s.params.ConvertRouteProfileType(p.Profile)
	if err != nil {
		return err
	}

	if len(p.Options.AvoidFeatures) > 0 {
		if _, err := s.params.ConvertFeatureTypes(p.Options.AvoidFeatures, profile); err != nil {
			return err
		}
	}

	_, err = s.params.ConvertParameters(params.ProfileOptions{
		VehicleType:  p.Options.VehicleType,
		Restrictions: p.Options.Restrictions,
		Weightings:   p.Options.Weightings,
	}, profile)
	return err
}

func (s *Service) getCached(name string) *Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if time.Now().After(s.cacheExpiry) {
		return nil
	}
	return s.cache[name]
}

func (s *Service) setCached(p *Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.After(s.cacheExpiry) {
		// Expired entries all leave together on the next write.
		s.cache = make(map[string]*Preset)
	}
	s.cache[p.Name] = p
	s.cacheExpiry = now.Add(s.cacheTTL)
}
