package params

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON is the loosely-typed avoidance geometry payload of a request.
// Coordinates keeps whatever nesting the decoder produced; the converter
// re-encodes it into strict GeoJSON before parsing because the inbound
// representation does not preserve nested array typing reliably.
type GeoJSON struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// ConvertAvoidAreas normalizes a GeoJSON Polygon or MultiPolygon payload into
// an ordered sequence of simple polygons. A MultiPolygon expands to one entry
// per member polygon, preserving member order.
func (h *Handler) ConvertAvoidAreas(geom GeoJSON) ([]orb.Polygon, error) {
	strict, err := json.Marshal(geom)
	if err != nil {
		return nil, h.invalidJSON("avoid_polygons")
	}

	parsed, err := geojson.UnmarshalGeometry(strict)
	if err != nil {
		return nil, h.invalidJSON("avoid_polygons")
	}

	switch g := parsed.Geometry().(type) {
	case orb.Polygon:
		return []orb.Polygon{g}, nil
	case orb.MultiPolygon:
		areas := make([]orb.Polygon, len(g))
		copy(areas, g)
		return areas, nil
	default:
		return nil, h.invalidValue("avoid_polygons", "")
	}
}
