package directions

import "context"

// IsochroneParameters describes an isochrone search around a center point.
type IsochroneParameters struct {
	Center Coordinate
	// RangeType is either "time" (seconds) or "distance" (meters).
	RangeType string
	// Ranges are the contour values, ascending.
	Ranges []float64
	Search SearchParameters
}

// Isochrone is a single reachability contour.
type Isochrone struct {
	Value    float64
	Geometry [][]Coordinate
}

// IsochroneMap is the result of an isochrone computation.
type IsochroneMap struct {
	Center     Coordinate
	Isochrones []Isochrone
}

// IsochroneBuilder is the boundary contract of the isochrone computation.
// Implementations live with the search engine; this service only carries
// validated parameters across the boundary via Service.ComputeIsochrones.
type IsochroneBuilder interface {
	// Initialize prepares the builder for the given search parameters.
	Initialize(search SearchParameters) error
	// Compute produces the isochrone map for the given parameters.
	Compute(ctx context.Context, p IsochroneParameters) (*IsochroneMap, error)
}

// ComputeIsochrones carries validated search parameters across the isochrone
// boundary. Results are not cached: contour ranges are free-form and do not
// key onto the directions grid.
func (s *Service) ComputeIsochrones(ctx context.Context, p IsochroneParameters) (*IsochroneMap, error) {
	if s.isochrones == nil {
		return nil, &Error{
			Engine:  s.engine.Name(),
			Code:    "NO_ISOCHRONE_BUILDER",
			Message: "engine serves no isochrone computation",
			Err:     ErrEngineUnavailable,
		}
	}
	if err := validateCoordinates(p.Center); err != nil {
		return nil, &Error{
			Engine:  s.engine.Name(),
			Code:    "INVALID_CENTER",
			Message: "invalid center coordinates",
			Err:     ErrInvalidCoordinates,
		}
	}

	if err := s.isochrones.Initialize(p.Search); err != nil {
		return nil, err
	}
	return s.isochrones.Compute(ctx, p)
}
