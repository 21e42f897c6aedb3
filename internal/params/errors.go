package params

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors distinguishing the conversion failure kinds.
// Use errors.Is against a returned *Error to classify it.
var (
	// ErrUnknownValue indicates an enumerated value with no internal mapping.
	ErrUnknownValue = errors.New("unknown parameter value")
	// ErrIncompatibleValue indicates a structurally valid value that does not
	// apply to the resolved routing profile.
	ErrIncompatibleValue = errors.New("parameter incompatible with profile")
	// ErrInvalidValue indicates a value failing independent validity checks.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrInvalidJSON indicates a payload that cannot be parsed as GeoJSON.
	ErrInvalidJSON = errors.New("invalid JSON format")
)

// Param is a (name, value) pair identifying an offending request parameter.
type Param struct {
	Name  string
	Value string
}

// Error is a typed parameter conversion failure. It carries the numeric error
// code resolved from the code registry plus one or two (name, value) pairs
// identifying the offending parameters.
type Error struct {
	Code   int
	Params []Param
	Err    error
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		if p.Value == "" {
			parts = append(parts, p.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, p.Value))
	}
	return fmt.Sprintf("%s: %s (code %d)", e.Err.Error(), strings.Join(parts, ", "), e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}
