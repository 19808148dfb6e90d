package ports

import (
	"context"
	"errors"

	"omniroute-console/internal/domain"
)

// RemoteStatus classifies why a backend call failed.
// The three-way split is load-bearing: callers pick a local fallback on
// Offline, force re-authentication on AuthExpired, and surface the
// message on AppError.
type RemoteStatus int

const (
	StatusAuthExpired RemoteStatus = iota + 1
	StatusOffline
	StatusAppError
)

// RemoteError is the typed failure every backend adapter returns.
// Nothing above the gateway ever sees a raw transport error.
type RemoteError struct {
	Status  RemoteStatus
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// IsOffline reports whether err is a connectivity failure.
func IsOffline(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == StatusOffline
}

// IsAuthExpired reports whether err is an authentication failure.
func IsAuthExpired(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == StatusAuthExpired
}

// RemoteVehicle is the backend's view of a confirmed vehicle.
type RemoteVehicle struct {
	ID          string  `json:"id"`
	VehicleType string  `json:"vehicle_type"`
	PlateNumber string  `json:"plate_number"`
	Status      string  `json:"status"`
	FuelPercent float64 `json:"fuel_percent"`
}

// RemoteDriver is the backend's view of a confirmed driver.
type RemoteDriver struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
}

// RemoteSavings mirrors the optimizer's savings payload.
type RemoteSavings struct {
	DistancePct float64 `json:"distance_pct"`
	TimePct     float64 `json:"time_pct"`
	FuelPct     float64 `json:"fuel_pct"`
}

// RemoteOptimization is the optimize endpoint's result payload.
// Field names follow the backend wire format; the workflow maps them
// onto the canonical domain.OptimizationResult shape.
type RemoteOptimization struct {
	TotalDistanceKm          float64        `json:"total_distance_km"`
	EstimatedDurationMinutes float64        `json:"estimated_duration_minutes"`
	FuelCost                 float64        `json:"fuel_cost"`
	SolutionQualityScore     float64        `json:"solution_quality_score"`
	SolverUsed               string         `json:"solver_used"`
	ExecutionTimeMs          float64        `json:"execution_time_ms"`
	OrderedStops             []domain.Stop  `json:"ordered_stops"`
	Savings                  *RemoteSavings `json:"savings,omitempty"`
}

// Port: the remote fleet backend consumed by the store and the workflow.
// Every method returns either a payload or a *RemoteError.
type FleetBackend interface {
	CreateVehicle(ctx context.Context, v domain.Vehicle) (RemoteVehicle, error)
	CreateDriver(ctx context.Context, d domain.Driver) (RemoteDriver, error)
	Optimize(ctx context.Context, stops []domain.Stop, c domain.Constraints) (RemoteOptimization, error)
	Health(ctx context.Context) error
}
