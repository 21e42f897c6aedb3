package params

// Integer encodings of the OSM-style wheelchair attribute values consumed by
// the search engine.

var surfaceTypes = map[string]int{
	"paved":         1,
	"asphalt":       2,
	"concrete":      3,
	"paving_stones": 4,
	"cobblestone":   5,
	"unpaved":       6,
	"compacted":     7,
	"fine_gravel":   8,
	"gravel":        9,
	"pebblestone":   10,
	"ground":        11,
	"dirt":          12,
	"grass":         13,
	"sand":          14,
}

var trackTypes = map[string]int{
	"grade1": 1,
	"grade2": 2,
	"grade3": 3,
	"grade4": 4,
	"grade5": 5,
}

var smoothnessTypes = map[string]int{
	"excellent":     1,
	"good":          2,
	"intermediate":  3,
	"bad":           4,
	"very_bad":      5,
	"horrible":      6,
	"very_horrible": 7,
	"impassable":    8,
}

// SurfaceTypeFromString resolves a surface type name to its encoding.
func SurfaceTypeFromString(name string) (int, bool) {
	v, ok := surfaceTypes[name]
	return v, ok
}

// TrackTypeFromString resolves a track grade name to its encoding.
func TrackTypeFromString(name string) (int, bool) {
	v, ok := trackTypes[name]
	return v, ok
}

// SmoothnessTypeFromString resolves a smoothness name to its encoding.
func SmoothnessTypeFromString(name string) (int, bool) {
	v, ok := smoothnessTypes[name]
	return v, ok
}
