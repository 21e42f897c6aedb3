package params

// AvoidBorders is the border-crossing avoidance policy.
type AvoidBorders int

const (
	// BordersNone disallows no border crossings.
	BordersNone AvoidBorders = iota
	// BordersControlled disallows crossings with border control.
	BordersControlled
	// BordersAll disallows every country border crossing.
	BordersAll
)

// AvoidBorderNames lists the recognized border avoidance mode names.
func AvoidBorderNames() []string {
	return []string{"none", "controlled", "all"}
}

// String returns the API name of the border avoidance mode.
func (b AvoidBorders) String() string {
	switch b {
	case BordersControlled:
		return "controlled"
	case BordersAll:
		return "all"
	default:
		return "none"
	}
}
