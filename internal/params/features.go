package params

// Avoidance feature bit flags. Flags are OR-combined into a single integer
// consumed by the search engine.
const (
	AvoidHighways = 1 << iota
	AvoidTollways
	AvoidFerries
	AvoidFords
	AvoidSteps
)

var avoidFeatureFlags = map[string]int{
	"highways": AvoidHighways,
	"tollways": AvoidTollways,
	"ferries":  AvoidFerries,
	"fords":    AvoidFords,
	"steps":    AvoidSteps,
}

// Per-category masks of the avoidance features a profile supports.
const (
	drivingAvoidMask    = AvoidHighways | AvoidTollways | AvoidFerries | AvoidFords
	cyclingAvoidMask    = AvoidFerries | AvoidFords | AvoidSteps
	walkingAvoidMask    = AvoidFerries | AvoidFords | AvoidSteps
	wheelchairAvoidMask = AvoidFerries | AvoidSteps
)

// AvoidFeatureFlag returns the bit flag for an avoidance feature name.
// Unrecognized names yield zero; a zero flag is never a valid result.
func AvoidFeatureFlag(name string) int {
	return avoidFeatureFlags[name]
}

// AvoidFeatureNames lists the recognized avoidance feature names.
func AvoidFeatureNames() []string {
	return []string{"highways", "tollways", "ferries", "fords", "steps"}
}

// AvoidFeatureValid reports whether the feature flag applies to the profile.
func AvoidFeatureValid(profile ProfileType, flag int) bool {
	switch profile.Category() {
	case CategoryCycling:
		return flag&cyclingAvoidMask == flag
	case CategoryWalking:
		return flag&walkingAvoidMask == flag
	case CategoryWheelchair:
		return flag&wheelchairAvoidMask == flag
	case CategoryHeavyVehicle, CategoryGeneric:
		return flag&drivingAvoidMask == flag
	default:
		return false
	}
}
