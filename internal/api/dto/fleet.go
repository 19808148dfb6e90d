package dto

type VehicleRequest struct {
	VehicleType string  `json:"vehicle_type"`
	PlateNumber string  `json:"plate_number"`
	DriverName  string  `json:"driver_name"`
	Status      string  `json:"status"`
	FuelPercent float64 `json:"fuel_percent"`
}

type DriverRequest struct {
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
}
