package params

// ProfileType identifies a routing profile. It is resolved once per request
// from the caller-supplied profile name and is immutable afterwards.
type ProfileType int

// Known routing profiles.
const (
	ProfileUnknown         ProfileType = 0
	ProfileDrivingCar      ProfileType = 1
	ProfileDrivingHGV      ProfileType = 2
	ProfileCyclingRegular  ProfileType = 10
	ProfileCyclingRoad     ProfileType = 11
	ProfileCyclingMountain ProfileType = 12
	ProfileCyclingElectric ProfileType = 13
	ProfileFootWalking     ProfileType = 20
	ProfileFootHiking      ProfileType = 21
	ProfileWheelchair      ProfileType = 30
)

var profileNames = map[string]ProfileType{
	"driving-car":      ProfileDrivingCar,
	"driving-hgv":      ProfileDrivingHGV,
	"cycling-regular":  ProfileCyclingRegular,
	"cycling-road":     ProfileCyclingRoad,
	"cycling-mountain": ProfileCyclingMountain,
	"cycling-electric": ProfileCyclingElectric,
	"foot-walking":     ProfileFootWalking,
	"foot-hiking":      ProfileFootHiking,
	"wheelchair":       ProfileWheelchair,
}

// ProfileFromString resolves an API profile name to its ProfileType.
// Unrecognized names resolve to ProfileUnknown.
func ProfileFromString(name string) ProfileType {
	if p, ok := profileNames[name]; ok {
		return p
	}
	return ProfileUnknown
}

// ProfileNames lists the recognized routing profile names.
func ProfileNames() []string {
	return []string{
		"driving-car",
		"driving-hgv",
		"cycling-regular",
		"cycling-road",
		"cycling-mountain",
		"cycling-electric",
		"foot-walking",
		"foot-hiking",
		"wheelchair",
	}
}

// String returns the API name of the profile, or "unknown".
func (p ProfileType) String() string {
	for name, profile := range profileNames {
		if profile == p {
			return name
		}
	}
	return "unknown"
}

// ProfileCategory is the closed set of profile families the parameter layer
// dispatches on. Every ProfileType resolves to exactly one category.
type ProfileCategory int

const (
	// CategoryGeneric covers profiles with no profile-specific restrictions
	// (plain car driving and unknown profiles).
	CategoryGeneric ProfileCategory = iota
	CategoryCycling
	CategoryWalking
	CategoryHeavyVehicle
	CategoryWheelchair
)

// Category resolves the profile family. The dispatch is a single exhaustive
// switch so a profile can never match zero or multiple families silently.
func (p ProfileType) Category() ProfileCategory {
	switch p {
	case ProfileCyclingRegular, ProfileCyclingRoad, ProfileCyclingMountain, ProfileCyclingElectric:
		return CategoryCycling
	case ProfileFootWalking, ProfileFootHiking:
		return CategoryWalking
	case ProfileDrivingHGV:
		return CategoryHeavyVehicle
	case ProfileWheelchair:
		return CategoryWheelchair
	default:
		return CategoryGeneric
	}
}
