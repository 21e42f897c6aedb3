package params

// Weighting is a named soft preference applied to route cost, carrying
// formatted engine parameters.
type Weighting struct {
	Name   string
	Params map[string]string
}

// NewWeighting creates a weighting with the given name.
func NewWeighting(name string) *Weighting {
	return &Weighting{Name: name, Params: make(map[string]string)}
}

// AddParam attaches a formatted parameter to the weighting.
func (w *Weighting) AddParam(name, value string) {
	w.Params[name] = value
}

// RouteParameters is the validated, profile-specific result of parameter
// conversion. It is implemented by the base ProfileParams and every profile
// variant. Each variant declares its own fixed legal restriction-name subset.
type RouteParameters interface {
	// ValidRestrictions returns the restriction names the variant accepts.
	// The returned list is fixed per variant and never mutated at runtime.
	ValidRestrictions() []string
	// AddWeighting appends a weighting. Application order downstream follows
	// append order, so callers must append in request order.
	AddWeighting(w *Weighting)
	// Weightings returns the appended weightings in append order.
	Weightings() []*Weighting
}

// ProfileParams is the base parameter set shared by all variants. Profiles
// outside the known categories receive only this base set, which accepts no
// restrictions at all.
type ProfileParams struct {
	weightings []*Weighting
}

// ValidRestrictions implements RouteParameters. The base set accepts none.
func (p *ProfileParams) ValidRestrictions() []string {
	return nil
}

// AddWeighting implements RouteParameters.
func (p *ProfileParams) AddWeighting(w *Weighting) {
	p.weightings = append(p.weightings, w)
}

// Weightings implements RouteParameters.
func (p *ProfileParams) Weightings() []*Weighting {
	return p.weightings
}

// CyclingParams are the parameters accepted by cycling profiles.
type CyclingParams struct {
	ProfileParams
	MaximumGradient        *int
	MaximumTrailDifficulty *int
}

// ValidRestrictions implements RouteParameters.
func (p *CyclingParams) ValidRestrictions() []string {
	return []string{RestrictionGradient, RestrictionTrailDifficulty}
}

// WalkingParams are the parameters accepted by walking profiles.
type WalkingParams struct {
	ProfileParams
	MaximumGradient        *int
	MaximumTrailDifficulty *int
}

// ValidRestrictions implements RouteParameters.
func (p *WalkingParams) ValidRestrictions() []string {
	return []string{RestrictionGradient, RestrictionTrailDifficulty}
}

// VehicleParams are the parameters accepted by heavy-vehicle profiles.
// Dimension and load fields are only populated when the request names a
// concrete vehicle type.
type VehicleParams struct {
	ProfileParams
	Length              *float64
	Width               *float64
	Height              *float64
	Weight              *float64
	AxleLoad            *float64
	LoadCharacteristics *int
}

// ValidRestrictions implements RouteParameters.
func (p *VehicleParams) ValidRestrictions() []string {
	return []string{
		RestrictionLength,
		RestrictionWidth,
		RestrictionHeight,
		RestrictionWeight,
		RestrictionAxleLoad,
		RestrictionHazardousMaterial,
	}
}

// WheelchairParams are the parameters accepted by the wheelchair profile.
// Surface, track and smoothness values hold the integer attribute encodings.
type WheelchairParams struct {
	ProfileParams
	SurfaceType       *int
	TrackType         *int
	SmoothnessType    *int
	MaximumSlopedKerb *float64
	MaximumIncline    *int
	MinimumWidth      *float64
}

// ValidRestrictions implements RouteParameters.
func (p *WheelchairParams) ValidRestrictions() []string {
	return []string{
		RestrictionSurfaceType,
		RestrictionTrackType,
		RestrictionSmoothnessType,
		RestrictionMaxSlopedKerb,
		RestrictionMaxIncline,
		RestrictionMinWidth,
	}
}
