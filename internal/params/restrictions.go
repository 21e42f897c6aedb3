package params

// Restriction field names as they appear in requests.
const (
	RestrictionGradient          = "gradient"
	RestrictionTrailDifficulty   = "trail_difficulty"
	RestrictionLength            = "length"
	RestrictionWidth             = "width"
	RestrictionHeight            = "height"
	RestrictionWeight            = "weight"
	RestrictionAxleLoad          = "axle_load"
	RestrictionHazardousMaterial = "hazardous_material"
	RestrictionSurfaceType       = "surface_type"
	RestrictionTrackType         = "track_type"
	RestrictionSmoothnessType    = "smoothness_type"
	RestrictionMaxSlopedKerb     = "maximum_sloped_kerb"
	RestrictionMaxIncline        = "maximum_incline"
	RestrictionMinWidth          = "minimum_width"
)

// Restrictions is the optional hard-constraint set of a routing request.
// A nil field means the restriction was not supplied. Not every restriction
// applies to every profile; the assembler validates the supplied subset
// against the resolved profile variant before converting.
type Restrictions struct {
	Gradient          *int     `json:"gradient,omitempty"`
	TrailDifficulty   *int     `json:"trail_difficulty,omitempty"`
	Length            *float64 `json:"length,omitempty"`
	Width             *float64 `json:"width,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	AxleLoad          *float64 `json:"axle_load,omitempty"`
	HazardousMaterial *bool    `json:"hazardous_material,omitempty"`
	SurfaceType       *string  `json:"surface_type,omitempty"`
	TrackType         *string  `json:"track_type,omitempty"`
	SmoothnessType    *string  `json:"smoothness_type,omitempty"`
	MaxSlopedKerb     *float64 `json:"maximum_sloped_kerb,omitempty"`
	MaxIncline        *int     `json:"maximum_incline,omitempty"`
	MinWidth          *float64 `json:"minimum_width,omitempty"`
}

// SetFields returns the names of the restrictions present in the set, in
// declaration order.
func (r *Restrictions) SetFields() []string {
	var set []string
	if r.Gradient != nil {
		set = append(set, RestrictionGradient)
	}
	if r.TrailDifficulty != nil {
		set = append(set, RestrictionTrailDifficulty)
	}
	if r.Length != nil {
		set = append(set, RestrictionLength)
	}
	if r.Width != nil {
		set = append(set, RestrictionWidth)
	}
	if r.Height != nil {
		set = append(set, RestrictionHeight)
	}
	if r.Weight != nil {
		set = append(set, RestrictionWeight)
	}
	if r.AxleLoad != nil {
		set = append(set, RestrictionAxleLoad)
	}
	if r.HazardousMaterial != nil {
		set = append(set, RestrictionHazardousMaterial)
	}
	if r.SurfaceType != nil {
		set = append(set, RestrictionSurfaceType)
	}
	if r.TrackType != nil {
		set = append(set, RestrictionTrackType)
	}
	if r.SmoothnessType != nil {
		set = append(set, RestrictionSmoothnessType)
	}
	if r.MaxSlopedKerb != nil {
		set = append(set, RestrictionMaxSlopedKerb)
	}
	if r.MaxIncline != nil {
		set = append(set, RestrictionMaxIncline)
	}
	if r.MinWidth != nil {
		set = append(set, RestrictionMinWidth)
	}
	return set
}
