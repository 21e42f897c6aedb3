// Package params translates loosely-typed routing request parameters into
// strongly-typed, profile-specific search parameters, rejecting combinations
// that are not valid for the requested routing profile.
package params

// Symbolic error code names resolved through the CodeRegistry.
const (
	CodeInvalidJSONFormat     = "INVALID_JSON_FORMAT"
	CodeInvalidParameterValue = "INVALID_PARAMETER_VALUE"
	CodeUnknownParameter      = "UNKNOWN_PARAMETER"
)

// UnregisteredCode is returned for symbolic names with no registered code.
const UnregisteredCode = -1

// CodeRegistry maps symbolic error names to stable numeric error codes.
// It is populated once at construction and read-only afterwards, so a single
// instance can be shared by concurrent requests without synchronization.
type CodeRegistry struct {
	codes map[string]int
}

// NewCodeRegistry creates a registry from the given name-to-code mapping.
// The mapping is copied; later changes to the input map have no effect.
func NewCodeRegistry(codes map[string]int) *CodeRegistry {
	copied := make(map[string]int, len(codes))
	for name, code := range codes {
		copied[name] = code
	}
	return &CodeRegistry{codes: copied}
}

// DefaultCodes returns the registry used by the routing API.
func DefaultCodes() *CodeRegistry {
	return NewCodeRegistry(map[string]int{
		CodeInvalidJSONFormat:     2000,
		CodeInvalidParameterValue: 2003,
		CodeUnknownParameter:      2011,
	})
}

// Code resolves a symbolic error name to its numeric code.
// Unregistered names resolve to UnregisteredCode rather than failing.
func (r *CodeRegistry) Code(name string) int {
	if code, ok := r.codes[name]; ok {
		return code
	}
	return UnregisteredCode
}
