package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"omniroute-console/internal/adapters/repositories"
	"omniroute-console/internal/api/dto"
)

// FleetRepository is the vehicle and driver storage the fleet handlers
// depend on.
type FleetRepository interface {
	CreateVehicle(ctx context.Context, v repositories.VehicleRecord) (*repositories.VehicleRecord, error)
	ListVehicles(ctx context.Context) ([]repositories.VehicleRecord, error)
	UpdateVehicle(ctx context.Context, v repositories.VehicleRecord) (*repositories.VehicleRecord, error)
	DeleteVehicle(ctx context.Context, id string) error
	CreateDriver(ctx context.Context, d repositories.DriverRecord) (*repositories.DriverRecord, error)
	ListDrivers(ctx context.Context, availableOnly bool) ([]repositories.DriverRecord, error)
}

type FleetHandler struct {
	Repo FleetRepository
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.PlateNumber) == "" {
		writeError(w, r, http.StatusBadRequest, "plate_number is required")
		return
	}
	if strings.TrimSpace(req.VehicleType) == "" {
		writeError(w, r, http.StatusBadRequest, "vehicle_type is required")
		return
	}
	if req.FuelPercent < 0 || req.FuelPercent > 100 {
		writeError(w, r, http.StatusBadRequest, "fuel_percent must be between 0 and 100")
		return
	}

	created, err := h.Repo.CreateVehicle(r.Context(), repositories.VehicleRecord{
		VehicleType: req.VehicleType,
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		DriverName:  req.DriverName,
		Status:      req.Status,
		FuelPercent: req.FuelPercent,
	})
	if errors.Is(err, repositories.ErrDuplicatePlate) {
		writeError(w, r, http.StatusConflict, "plate number already registered")
		return
	}
	if err != nil {
		log.Printf("create vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, http.StatusCreated, created)
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, http.StatusOK, vehicles)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	updated, err := h.Repo.UpdateVehicle(r.Context(), repositories.VehicleRecord{
		ID:          r.PathValue("id"),
		VehicleType: req.VehicleType,
		DriverName:  req.DriverName,
		Status:      req.Status,
		FuelPercent: req.FuelPercent,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		log.Printf("update vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	err := h.Repo.DeleteVehicle(r.Context(), r.PathValue("id"))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		log.Printf("delete vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.FullName) == "" {
		writeError(w, r, http.StatusBadRequest, "full_name is required")
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		writeError(w, r, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}

	created, err := h.Repo.CreateDriver(r.Context(), repositories.DriverRecord{
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     req.Phone,
		Rating:    req.Rating,
		Available: true,
	})
	if err != nil {
		log.Printf("create driver failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, http.StatusCreated, created)
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available_only") == "true"

	drivers, err := h.Repo.ListDrivers(r.Context(), availableOnly)
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, r, http.StatusOK, drivers)
}
