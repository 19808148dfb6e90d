package dto

// StopPayload mirrors the console's stop shape on the wire. Address is
// optional; coordinates are pointers so "absent" is distinguishable
// from zero.
type StopPayload struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Kind    string   `json:"kind"`
}

type ConstraintsPayload struct {
	MaxDistanceKm      float64 `json:"max_distance_km"`
	MaxDurationMin     float64 `json:"max_duration_min"`
	VehicleCapacityKg  float64 `json:"vehicle_capacity_kg"`
	UseAlternateSolver bool    `json:"use_alternate_solver"`
}

type OptimizeRequest struct {
	Stops       []StopPayload      `json:"stops"`
	Constraints ConstraintsPayload `json:"constraints"`
}

type SavingsPayload struct {
	DistancePct float64 `json:"distance_pct"`
	TimePct     float64 `json:"time_pct"`
	FuelPct     float64 `json:"fuel_pct"`
}

type OptimizeResponse struct {
	TotalDistanceKm          float64         `json:"total_distance_km"`
	EstimatedDurationMinutes float64         `json:"estimated_duration_minutes"`
	FuelCost                 float64         `json:"fuel_cost"`
	SolutionQualityScore     float64         `json:"solution_quality_score"`
	SolverUsed               string          `json:"solver_used"`
	ExecutionTimeMs          float64         `json:"execution_time_ms"`
	OrderedStops             []StopPayload   `json:"ordered_stops"`
	Savings                  *SavingsPayload `json:"savings,omitempty"`
}
