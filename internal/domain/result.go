package domain

// Savings compares the optimized route against the unoptimized stop order.
type Savings struct {
	DistancePct float64 `json:"distancePct"`
	TimePct     float64 `json:"timePct"`
	FuelPct     float64 `json:"fuelPct"`
}

// OptimizationResult is the outcome of one optimizer run.
// It is nil until a run completes and is overwritten wholesale on each
// run, never merged. SolverLabel distinguishes a genuine backend
// optimization from a synthesized local estimate.
type OptimizationResult struct {
	TotalDistanceKm    float64  `json:"totalDistanceKm"`
	EstimatedMinutes   float64  `json:"estimatedMinutes"`
	FuelCost           float64  `json:"fuelCost"`
	SolutionQualityPct float64  `json:"solutionQualityPct"`
	SolverLabel        string   `json:"solverLabel"`
	ComputeSeconds     float64  `json:"computeSeconds"`
	OrderedStops       []Stop   `json:"orderedStops"`
	Savings            *Savings `json:"savings,omitempty"`
}
