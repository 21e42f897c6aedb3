package params

// Weightings is the optional soft-preference set of a routing request.
// A nil field means the weighting was not supplied.
type Weightings struct {
	// GreenIndex is the preference factor for greener paths, 0..1.
	GreenIndex *float64 `json:"green,omitempty"`
	// QuietIndex is the preference factor for quieter paths, 0..1.
	QuietIndex *float64 `json:"quiet,omitempty"`
	// SteepnessDifficulty is the discrete steepness difficulty level.
	SteepnessDifficulty *int `json:"steepness_difficulty,omitempty"`
}
