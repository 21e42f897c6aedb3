package params

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ProfileOptions is the profile-specific portion of a routing request as it
// arrives from the HTTP layer. Optional inputs are nil when not supplied.
type ProfileOptions struct {
	VehicleType  *string
	Restrictions *Restrictions
	Weightings   *Weightings
}

// HandlerConfig holds configuration for the parameter handler.
type HandlerConfig struct {
	// Codes is the error code registry. Defaults to DefaultCodes().
	Codes *CodeRegistry

	// Logger for conversion diagnostics.
	Logger zerolog.Logger
}

// Handler converts request parameters into profile-specific search
// parameters. It holds no per-request state and is safe for concurrent use.
type Handler struct {
	codes  *CodeRegistry
	logger zerolog.Logger
}

// NewHandler creates a new parameter handler.
func NewHandler(cfg HandlerConfig) *Handler {
	codes := cfg.Codes
	if codes == nil {
		codes = DefaultCodes()
	}
	return &Handler{
		codes:  codes,
		logger: cfg.Logger,
	}
}

// ConvertRouteProfileType resolves an API profile name to its ProfileType.
// Unrecognized names fail with an unknown-value error.
func (h *Handler) ConvertRouteProfileType(profile string) (ProfileType, error) {
	p := ProfileFromString(profile)
	if p == ProfileUnknown {
		return ProfileUnknown, h.unknownValue("profile", profile)
	}
	return p, nil
}

// ConvertVehicleType resolves an optional vehicle type name against the
// resolved profile. Any vehicle type, including an absent one, is
// incompatible with non-heavy-vehicle profiles. A nil name on a heavy-vehicle
// profile resolves to the VehicleUnknown sentinel, not an error.
func (h *Handler) ConvertVehicleType(vehicleType *string, profile ProfileType) (VehicleType, error) {
	if profile.Category() != CategoryHeavyVehicle {
		name := ""
		if vehicleType != nil {
			name = *vehicleType
		}
		return VehicleUnknown, h.incompatible("vehicle_type", name, profile)
	}
	if vehicleType == nil {
		return VehicleUnknown, nil
	}
	return VehicleTypeFromString(*vehicleType), nil
}

// ConvertAvoidBorders maps an optional border avoidance name. A nil input
// yields nil, which is distinct from an explicit "none". Non-nil values that
// are neither "all" nor "controlled" map to BordersNone.
func (h *Handler) ConvertAvoidBorders(avoidBorders *string) *AvoidBorders {
	if avoidBorders == nil {
		return nil
	}
	mode := BordersNone
	switch *avoidBorders {
	case "all":
		mode = BordersAll
	case "controlled":
		mode = BordersControlled
	}
	return &mode
}

// ConvertFeatureTypes combines avoidance feature names into a single flag
// set. A name with no flag fails as unknown; a flag the profile does not
// support fails as incompatible.
func (h *Handler) ConvertFeatureTypes(avoidFeatures []string, profile ProfileType) (int, error) {
	flags := 0
	for _, name := range avoidFeatures {
		flag := AvoidFeatureFlag(name)
		if flag == 0 {
			return 0, h.unknownValue("avoid_features", name)
		}
		if !AvoidFeatureValid(profile, flag) {
			return 0, h.incompatible("avoid_features", name, profile)
		}
		flags |= flag
	}
	return flags, nil
}

// ConvertAPIEnum stringifies an API enumerated value for error payloads and
// string-keyed lookups.
func ConvertAPIEnum(value fmt.Stringer) string {
	return value.String()
}

// ConvertAPIEnumList stringifies a list of API enumerated values.
func ConvertAPIEnumList[T fmt.Stringer](values []T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return names
}

// ConvertParameters assembles the profile-specific search parameters for a
// request. Restrictions, when present, are validated against the variant of
// the resolved profile and copied field by field; weightings, when present,
// are appended afterwards in request order.
func (h *Handler) ConvertParameters(opts ProfileOptions, profile ProfileType) (RouteParameters, error) {
	var routeParams RouteParameters = &ProfileParams{}

	if opts.Restrictions != nil {
		vehicleType := VehicleUnknown
		if opts.VehicleType != nil || profile.Category() == CategoryHeavyVehicle {
			vt, err := h.ConvertVehicleType(opts.VehicleType, profile)
			if err != nil {
				return nil, err
			}
			vehicleType = vt
		}

		if err := h.validateRestrictions(opts.Restrictions, profile); err != nil {
			return nil, err
		}

		switch profile.Category() {
		case CategoryCycling:
			routeParams = convertCyclingParams(opts.Restrictions)
		case CategoryHeavyVehicle:
			routeParams = convertVehicleParams(opts.Restrictions, vehicleType)
		case CategoryWalking:
			routeParams = convertWalkingParams(opts.Restrictions)
		case CategoryWheelchair:
			wp, err := h.convertWheelchairParams(opts.Restrictions)
			if err != nil {
				return nil, err
			}
			routeParams = wp
		case CategoryGeneric:
			// Validation already rejected any restriction for generic
			// profiles; the base parameter set stands.
		}
	} else if opts.VehicleType != nil {
		if _, err := h.ConvertVehicleType(opts.VehicleType, profile); err != nil {
			return nil, err
		}
	}

	if opts.Weightings != nil {
		h.applyWeightings(opts.Weightings, routeParams)
	}

	h.logger.Debug().
		Str("profile", profile.String()).
		Int("weightings", len(routeParams.Weightings())).
		Msg("assembled profile parameters")

	return routeParams, nil
}

// variantFor returns an empty parameter variant for the profile, used to
// resolve the legal restriction subset during validation.
func variantFor(profile ProfileType) RouteParameters {
	switch profile.Category() {
	case CategoryCycling:
		return &CyclingParams{}
	case CategoryWalking:
		return &WalkingParams{}
	case CategoryHeavyVehicle:
		return &VehicleParams{}
	case CategoryWheelchair:
		return &WheelchairParams{}
	default:
		return &ProfileParams{}
	}
}

// validateRestrictions rejects the whole restriction set when any supplied
// field is outside the valid list of the profile's variant. The error lists
// every invalid field name, not just the first.
func (h *Handler) validateRestrictions(restrictions *Restrictions, profile ProfileType) error {
	valid := variantFor(profile).ValidRestrictions()

	var invalid []string
	for _, name := range restrictions.SetFields() {
		found := false
		for _, v := range valid {
			if v == name {
				found = true
				break
			}
		}
		if !found {
			invalid = append(invalid, name)
		}
	}

	if len(invalid) > 0 {
		return &Error{
			Code: h.codes.Code(CodeUnknownParameter),
			Err:  ErrIncompatibleValue,
			Params: []Param{
				{Name: "restrictions", Value: strings.Join(invalid, ", ")},
				{Name: "profile", Value: profile.String()},
			},
		}
	}
	return nil
}

func convertCyclingParams(restrictions *Restrictions) *CyclingParams {
	p := &CyclingParams{}
	if restrictions.Gradient != nil {
		p.MaximumGradient = restrictions.Gradient
	}
	if restrictions.TrailDifficulty != nil {
		p.MaximumTrailDifficulty = restrictions.TrailDifficulty
	}
	return p
}

func convertWalkingParams(restrictions *Restrictions) *WalkingParams {
	p := &WalkingParams{}
	if restrictions.Gradient != nil {
		p.MaximumGradient = restrictions.Gradient
	}
	if restrictions.TrailDifficulty != nil {
		p.MaximumTrailDifficulty = restrictions.TrailDifficulty
	}
	return p
}

// convertVehicleParams copies vehicle restrictions only when a concrete
// vehicle type is present. A validated restriction set without a vehicle type
// therefore yields an empty vehicle parameter set rather than an error.
func convertVehicleParams(restrictions *Restrictions, vehicleType VehicleType) *VehicleParams {
	p := &VehicleParams{}
	if vehicleType == VehicleUnknown {
		return p
	}

	if restrictions.Length != nil {
		p.Length = restrictions.Length
	}
	if restrictions.Width != nil {
		p.Width = restrictions.Width
	}
	if restrictions.Height != nil {
		p.Height = restrictions.Height
	}
	if restrictions.Weight != nil {
		p.Weight = restrictions.Weight
	}
	if restrictions.AxleLoad != nil {
		p.AxleLoad = restrictions.AxleLoad
	}

	loadCharacteristics := 0
	if restrictions.HazardousMaterial != nil && *restrictions.HazardousMaterial {
		loadCharacteristics |= LoadHazmat
	}
	if loadCharacteristics != 0 {
		p.LoadCharacteristics = &loadCharacteristics
	}

	return p
}

func (h *Handler) convertWheelchairParams(restrictions *Restrictions) (*WheelchairParams, error) {
	p := &WheelchairParams{}

	if restrictions.SurfaceType != nil {
		encoded, ok := SurfaceTypeFromString(*restrictions.SurfaceType)
		if !ok {
			return nil, h.unknownValue(RestrictionSurfaceType, *restrictions.SurfaceType)
		}
		p.SurfaceType = &encoded
	}
	if restrictions.TrackType != nil {
		encoded, ok := TrackTypeFromString(*restrictions.TrackType)
		if !ok {
			return nil, h.unknownValue(RestrictionTrackType, *restrictions.TrackType)
		}
		p.TrackType = &encoded
	}
	if restrictions.SmoothnessType != nil {
		encoded, ok := SmoothnessTypeFromString(*restrictions.SmoothnessType)
		if !ok {
			return nil, h.unknownValue(RestrictionSmoothnessType, *restrictions.SmoothnessType)
		}
		p.SmoothnessType = &encoded
	}
	if restrictions.MaxSlopedKerb != nil {
		p.MaximumSlopedKerb = restrictions.MaxSlopedKerb
	}
	if restrictions.MaxIncline != nil {
		p.MaximumIncline = restrictions.MaxIncline
	}
	if restrictions.MinWidth != nil {
		p.MinimumWidth = restrictions.MinWidth
	}

	return p, nil
}

// applyWeightings appends the supplied weightings to the parameter set in
// request order. Continuous factors are formatted with two decimal places,
// discrete levels as integers. Applying a weighting never aborts assembly.
func (h *Handler) applyWeightings(weightings *Weightings, routeParams RouteParameters) {
	if weightings.GreenIndex != nil {
		w := NewWeighting("green")
		w.AddParam("factor", fmt.Sprintf("%.2f", *weightings.GreenIndex))
		routeParams.AddWeighting(w)
	}
	if weightings.QuietIndex != nil {
		w := NewWeighting("quiet")
		w.AddParam("factor", fmt.Sprintf("%.2f", *weightings.QuietIndex))
		routeParams.AddWeighting(w)
	}
	if weightings.SteepnessDifficulty != nil {
		w := NewWeighting("steepness_difficulty")
		w.AddParam("level", fmt.Sprintf("%d", *weightings.SteepnessDifficulty))
		routeParams.AddWeighting(w)
	}
}

func (h *Handler) unknownValue(name, value string) *Error {
	return &Error{
		Code:   h.codes.Code(CodeInvalidParameterValue),
		Err:    ErrUnknownValue,
		Params: []Param{{Name: name, Value: value}},
	}
}

func (h *Handler) incompatible(name, value string, profile ProfileType) *Error {
	return &Error{
		Code: h.codes.Code(CodeInvalidParameterValue),
		Err:  ErrIncompatibleValue,
		Params: []Param{
			{Name: name, Value: value},
			{Name: "profile", Value: profile.String()},
		},
	}
}

func (h *Handler) invalidValue(name, value string) *Error {
	return &Error{
		Code:   h.codes.Code(CodeInvalidParameterValue),
		Err:    ErrInvalidValue,
		Params: []Param{{Name: name, Value: value}},
	}
}

func (h *Handler) invalidJSON(name string) *Error {
	return &Error{
		Code:   h.codes.Code(CodeInvalidJSONFormat),
		Err:    ErrInvalidJSON,
		Params: []Param{{Name: name}},
	}
}
