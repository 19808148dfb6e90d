package domain

// DriverStatus is the duty state of a driver.
type DriverStatus string

const (
	DriverDriving   DriverStatus = "driving"
	DriverOnBreak   DriverStatus = "on_break"
	DriverOffDuty   DriverStatus = "off_duty"
	DriverAvailable DriverStatus = "available"
)

// Represents a driver that can be assigned to a vehicle.
// Phone doubles as the natural key when reconciling a locally-created
// driver against its server-confirmed counterpart.
type Driver struct {
	LocalID           string       `json:"localId"`
	RemoteID          string       `json:"remoteId,omitempty"`
	Name              string       `json:"name"`
	Status            DriverStatus `json:"status"`
	AssignedVehicleID string       `json:"assignedVehicleId,omitempty"`
	Rating            float64      `json:"rating"`
	Phone             string       `json:"phone"`
}

// ClampRating forces a driver rating into the 1..5 range.
func ClampRating(r float64) float64 {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}
