package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicatePlate = errors.New("plate number already registered")
)

// VehicleRecord is a fleet vehicle row as stored server-side.
type VehicleRecord struct {
	ID          string  `json:"id"`
	VehicleType string  `json:"vehicle_type"`
	PlateNumber string  `json:"plate_number"`
	DriverName  string  `json:"driver_name"`
	Status      string  `json:"status"`
	FuelPercent float64 `json:"fuel_percent"`
}

// DriverRecord is a driver row as stored server-side.
type DriverRecord struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Rating    float64 `json:"rating"`
	Available bool    `json:"available"`
}

// SQLFleetRepository persists vehicles and drivers through database/sql,
// working against SQLite or Postgres.
type SQLFleetRepository struct {
	db *sql.DB
}

func NewSQLFleetRepository(db *sql.DB) *SQLFleetRepository {
	return &SQLFleetRepository{db: db}
}

func (r *SQLFleetRepository) CreateVehicle(ctx context.Context, v VehicleRecord) (*VehicleRecord, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = "idle"
	}

	query := `
		INSERT INTO vehicles (id, vehicle_type, plate_number, driver_name, status, fuel_percent)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.VehicleType, v.PlateNumber, v.DriverName, v.Status, v.FuelPercent)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("create vehicle: insert: %w", err)
	}

	return &v, nil
}

func (r *SQLFleetRepository) GetVehicle(ctx context.Context, id string) (*VehicleRecord, error) {
	query := `
		SELECT id, vehicle_type, plate_number, driver_name, status, fuel_percent
		FROM vehicles WHERE id = $1`

	var v VehicleRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.VehicleType, &v.PlateNumber, &v.DriverName, &v.Status, &v.FuelPercent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: query: %w", err)
	}

	return &v, nil
}

func (r *SQLFleetRepository) ListVehicles(ctx context.Context) ([]VehicleRecord, error) {
	query := `
		SELECT id, vehicle_type, plate_number, driver_name, status, fuel_percent
		FROM vehicles ORDER BY plate_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query: %w", err)
	}
	defer rows.Close()

	vehicles := make([]VehicleRecord, 0)
	for rows.Next() {
		var v VehicleRecord
		if err := rows.Scan(&v.ID, &v.VehicleType, &v.PlateNumber, &v.DriverName, &v.Status, &v.FuelPercent); err != nil {
			return nil, fmt.Errorf("list vehicles: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: rows: %w", err)
	}

	return vehicles, nil
}

func (r *SQLFleetRepository) UpdateVehicle(ctx context.Context, v VehicleRecord) (*VehicleRecord, error) {
	query := `
		UPDATE vehicles
		SET vehicle_type = $1, driver_name = $2, status = $3, fuel_percent = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		v.VehicleType, v.DriverName, v.Status, v.FuelPercent, v.ID)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: exec: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return r.GetVehicle(ctx, v.ID)
}

func (r *SQLFleetRepository) DeleteVehicle(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: exec: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLFleetRepository) CreateDriver(ctx context.Context, d DriverRecord) (*DriverRecord, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Rating == 0 {
		d.Rating = 5
	}

	query := `
		INSERT INTO drivers (id, full_name, phone, rating, available)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.FullName, d.Phone, d.Rating, d.Available)
	if err != nil {
		return nil, fmt.Errorf("create driver: insert: %w", err)
	}

	return &d, nil
}

func (r *SQLFleetRepository) ListDrivers(ctx context.Context, availableOnly bool) ([]DriverRecord, error) {
	query := `
		SELECT id, full_name, phone, rating, available
		FROM drivers`
	if availableOnly {
		query += ` WHERE available`
	}
	query += ` ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query: %w", err)
	}
	defer rows.Close()

	drivers := make([]DriverRecord, 0)
	for rows.Next() {
		var d DriverRecord
		if err := rows.Scan(&d.ID, &d.FullName, &d.Phone, &d.Rating, &d.Available); err != nil {
			return nil, fmt.Errorf("list drivers: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: rows: %w", err)
	}

	return drivers, nil
}

// isUniqueViolation matches constraint failures from both drivers
// without importing their error types: SQLite reports "UNIQUE
// constraint failed", Postgres reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "23505")
}
