package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/ports"
)

// probeTimeout bounds the health probes; liveness checks must not hang
// on a dead backend.
const probeTimeout = 3 * time.Second

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type stopPayload struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
	Kind string   `json:"kind"`
}

type constraintsPayload struct {
	MaxDistanceKm      float64 `json:"max_distance_km"`
	MaxDurationMin     float64 `json:"max_duration_min"`
	VehicleCapacityKg  float64 `json:"vehicle_capacity_kg"`
	UseAlternateSolver bool    `json:"use_alternate_solver"`
}

type optimizeRequest struct {
	Stops       []stopPayload      `json:"stops"`
	Constraints constraintsPayload `json:"constraints"`
}

type vehicleCreateRequest struct {
	VehicleType string  `json:"vehicle_type"`
	PlateNumber string  `json:"plate_number"`
	DriverName  string  `json:"driver_name,omitempty"`
	Status      string  `json:"status"`
	FuelPercent float64 `json:"fuel_percent"`
}

type driverCreateRequest struct {
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
}

// Login authenticates and persists the credential on success. Auth
// endpoints are the only calls that store a new credential.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	raw, err := c.post(ctx, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return Credentials{}, err
	}
	return c.adoptCredentials(raw)
}

// Register creates an account and persists the returned credential.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (Credentials, error) {
	raw, err := c.post(ctx, "/api/v1/auth/register", registerRequest{FullName: fullName, Email: email, Password: password}, false)
	if err != nil {
		return Credentials{}, err
	}
	return c.adoptCredentials(raw)
}

func (c *Client) adoptCredentials(raw json.RawMessage) (Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode token payload: %v", err)}
	}
	if creds.AccessToken != "" {
		if err := c.creds.Save(creds); err != nil {
			return Credentials{}, &ports.RemoteError{Status: ports.StatusAppError, Message: err.Error()}
		}
	}
	return creds, nil
}

// Logout clears the stored credential. Purely local.
func (c *Client) Logout() {
	c.creds.Clear()
}

// Authenticated reports whether a usable token is stored.
func (c *Client) Authenticated() bool {
	return c.creds.Authenticated()
}

// CreateVehicle registers a vehicle with the backend.
func (c *Client) CreateVehicle(ctx context.Context, v domain.Vehicle) (ports.RemoteVehicle, error) {
	body := vehicleCreateRequest{
		VehicleType: v.Type,
		PlateNumber: v.Plate,
		DriverName:  v.DriverName,
		Status:      string(v.Status),
		FuelPercent: v.FuelPercent,
	}

	raw, err := c.post(ctx, "/api/v1/vehicles", body, true)
	if err != nil {
		return ports.RemoteVehicle{}, err
	}

	var out ports.RemoteVehicle
	if err := json.Unmarshal(raw, &out); err != nil {
		return ports.RemoteVehicle{}, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode vehicle payload: %v", err)}
	}
	return out, nil
}

// ListVehicles fetches all vehicles known to the backend.
func (c *Client) ListVehicles(ctx context.Context) ([]ports.RemoteVehicle, error) {
	raw, err := c.get(ctx, "/api/v1/vehicles", true)
	if err != nil {
		return nil, err
	}

	var out []ports.RemoteVehicle
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode vehicle list: %v", err)}
	}
	return out, nil
}

// UpdateVehicle replaces a vehicle's backend record.
func (c *Client) UpdateVehicle(ctx context.Context, remoteID string, v domain.Vehicle) (ports.RemoteVehicle, error) {
	body := vehicleCreateRequest{
		VehicleType: v.Type,
		PlateNumber: v.Plate,
		DriverName:  v.DriverName,
		Status:      string(v.Status),
		FuelPercent: v.FuelPercent,
	}

	raw, err := c.put(ctx, "/api/v1/vehicles/"+remoteID, body, true)
	if err != nil {
		return ports.RemoteVehicle{}, err
	}

	var out ports.RemoteVehicle
	if err := json.Unmarshal(raw, &out); err != nil {
		return ports.RemoteVehicle{}, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode vehicle payload: %v", err)}
	}
	return out, nil
}

// DeleteVehicle removes a vehicle by its server identifier.
func (c *Client) DeleteVehicle(ctx context.Context, remoteID string) error {
	_, err := c.delete(ctx, "/api/v1/vehicles/"+remoteID, true)
	return err
}

// CreateDriver registers a driver with the backend.
func (c *Client) CreateDriver(ctx context.Context, d domain.Driver) (ports.RemoteDriver, error) {
	body := driverCreateRequest{FullName: d.Name, Phone: d.Phone, Rating: d.Rating}

	raw, err := c.post(ctx, "/api/v1/drivers", body, true)
	if err != nil {
		return ports.RemoteDriver{}, err
	}

	var out ports.RemoteDriver
	if err := json.Unmarshal(raw, &out); err != nil {
		return ports.RemoteDriver{}, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode driver payload: %v", err)}
	}
	return out, nil
}

// ListDrivers fetches drivers, optionally only available ones.
func (c *Client) ListDrivers(ctx context.Context, availableOnly bool) ([]ports.RemoteDriver, error) {
	path := "/api/v1/drivers"
	if availableOnly {
		path += "?available_only=true"
	}

	raw, err := c.get(ctx, path, true)
	if err != nil {
		return nil, err
	}

	var out []ports.RemoteDriver
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode driver list: %v", err)}
	}
	return out, nil
}

// Optimize submits the stop list and constraints to the remote solver.
func (c *Client) Optimize(ctx context.Context, stops []domain.Stop, constraints domain.Constraints) (ports.RemoteOptimization, error) {
	req := optimizeRequest{
		Stops: make([]stopPayload, 0, len(stops)),
		Constraints: constraintsPayload{
			MaxDistanceKm:      constraints.MaxDistanceKm,
			MaxDurationMin:     constraints.MaxDurationMin,
			VehicleCapacityKg:  constraints.VehicleCapacityKg,
			UseAlternateSolver: constraints.UseAlternateSolver,
		},
	}
	for _, s := range stops {
		req.Stops = append(req.Stops, stopPayload{Name: s.Name, Lat: s.Lat, Lng: s.Lng, Kind: string(s.Kind)})
	}

	raw, err := c.post(ctx, "/api/v1/optimize", req, true)
	if err != nil {
		return ports.RemoteOptimization{}, err
	}

	var out ports.RemoteOptimization
	if err := json.Unmarshal(raw, &out); err != nil {
		return ports.RemoteOptimization{}, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("decode optimization payload: %v", err)}
	}
	return out, nil
}

// Health is the bounded-latency liveness probe.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := c.get(ctx, "/health", false)
	return err
}

// Ready checks the backend's dependencies, bounded like Health.
func (c *Client) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := c.get(ctx, "/health/ready", false)
	return err
}
