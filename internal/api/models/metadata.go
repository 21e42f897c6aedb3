package models

// Enums lists the accepted values for every translated request parameter.
type Enums struct {
	Profiles      []string            `json:"profiles"`
	VehicleTypes  []string            `json:"vehicleTypes"`
	AvoidFeatures []string            `json:"avoidFeatures"`
	AvoidBorders  []string            `json:"avoidBorders"`
	Restrictions  map[string][]string `json:"restrictions"`
}
