package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the backend database schema. Statements are portable
// across SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id           TEXT PRIMARY KEY,
			vehicle_type TEXT NOT NULL,
			plate_number TEXT NOT NULL UNIQUE,
			driver_name  TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'idle',
			fuel_percent REAL NOT NULL DEFAULT 100
		);`,
		`CREATE TABLE IF NOT EXISTS drivers (
			id        TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			phone     TEXT NOT NULL DEFAULT '',
			rating    REAL NOT NULL DEFAULT 5,
			available BOOLEAN NOT NULL DEFAULT TRUE
		);`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}

type seedFile struct {
	Vehicles []VehicleRecord `json:"vehicles"`
	Drivers  []DriverRecord  `json:"drivers"`
}

// SeedFromJSON loads demo fleet data for local runs. An empty path is a
// no-op; already-present plates are skipped so reseeding is idempotent.
func SeedFromJSON(db *sql.DB, path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: decode %q: %w", path, err)
	}

	ctx := context.Background()
	repo := NewSQLFleetRepository(db)
	for _, v := range seed.Vehicles {
		if _, err := repo.CreateVehicle(ctx, v); err != nil {
			if errors.Is(err, ErrDuplicatePlate) {
				continue
			}
			return fmt.Errorf("seed: vehicle %q: %w", v.PlateNumber, err)
		}
	}
	for _, d := range seed.Drivers {
		if _, err := repo.CreateDriver(ctx, d); err != nil {
			return fmt.Errorf("seed: driver %q: %w", d.FullName, err)
		}
	}

	return nil
}
