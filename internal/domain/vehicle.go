package domain

// VehicleStatus is the operational state of a fleet vehicle.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleIdle        VehicleStatus = "idle"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleOffline     VehicleStatus = "offline"
)

// Represents a single fleet vehicle.
// LocalID is assigned when the vehicle enters the store and is stable
// for the lifetime of the session. RemoteID stays empty until the
// backend confirms creation and is never changed afterwards.
type Vehicle struct {
	LocalID       string        `json:"localId"`
	RemoteID      string        `json:"remoteId,omitempty"`
	Type          string        `json:"type"`
	Plate         string        `json:"plate"`
	DriverName    string        `json:"driverName"`
	Status        VehicleStatus `json:"status"`
	FuelPercent   float64       `json:"fuelPercent"`
	MileageKm     float64       `json:"mileageKm"`
	CurrentRoute  string        `json:"currentRoute"`
	LastSeenLabel string        `json:"lastSeenLabel"`
}

// ClampFuel forces a fuel reading into the 0..100 range.
// Out-of-range values are clamped, never rejected.
func ClampFuel(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
