package params

// VehicleType identifies a heavy vehicle category. It is only meaningful for
// heavy-vehicle profiles.
type VehicleType int

// Known heavy vehicle types. VehicleUnknown is the sentinel for an absent or
// unrecognized vehicle type, not an error by itself.
const (
	VehicleUnknown      VehicleType = 0
	VehicleGoods        VehicleType = 1
	VehicleHGV          VehicleType = 2
	VehicleBus          VehicleType = 4
	VehicleAgricultural VehicleType = 8
	VehicleForestry     VehicleType = 16
	VehicleDelivery     VehicleType = 32
)

var vehicleTypeNames = map[string]VehicleType{
	"goods":        VehicleGoods,
	"hgv":          VehicleHGV,
	"bus":          VehicleBus,
	"agricultural": VehicleAgricultural,
	"forestry":     VehicleForestry,
	"delivery":     VehicleDelivery,
}

// VehicleTypeFromString resolves a vehicle type name.
// Unrecognized names resolve to VehicleUnknown.
func VehicleTypeFromString(name string) VehicleType {
	if v, ok := vehicleTypeNames[name]; ok {
		return v
	}
	return VehicleUnknown
}

// VehicleTypeNames lists the recognized heavy vehicle type names.
func VehicleTypeNames() []string {
	return []string{"goods", "hgv", "bus", "agricultural", "forestry", "delivery"}
}

// String returns the API name of the vehicle type, or "unknown".
func (v VehicleType) String() string {
	for name, vt := range vehicleTypeNames {
		if vt == v {
			return name
		}
	}
	return "unknown"
}

// Load characteristics bit flags derived from vehicle restrictions.
const (
	// LoadHazmat marks a vehicle carrying hazardous materials.
	LoadHazmat = 1 << iota
)
