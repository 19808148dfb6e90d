package domain

// Constraints is the flat routing configuration record.
// All four fields are always populated; defaults are supplied at store
// initialization and a partial merge from storage never removes one.
type Constraints struct {
	MaxDistanceKm      float64 `json:"maxDistanceKm"`
	MaxDurationMin     float64 `json:"maxDurationMin"`
	VehicleCapacityKg  float64 `json:"vehicleCapacityKg"`
	UseAlternateSolver bool    `json:"useAlternateSolver"`
}

// ConstraintsPatch carries a field-wise update. Nil fields are left
// untouched by the store mutator.
type ConstraintsPatch struct {
	MaxDistanceKm      *float64
	MaxDurationMin     *float64
	VehicleCapacityKg  *float64
	UseAlternateSolver *bool
}

// DefaultConstraints returns the constraint values a fresh session starts with.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxDistanceKm:      200,
		MaxDurationMin:     480,
		VehicleCapacityKg:  1000,
		UseAlternateSolver: false,
	}
}
