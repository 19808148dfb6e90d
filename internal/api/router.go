package api

import (
	"database/sql"
	"net/http"

	"omniroute-console/internal/api/handlers"
	"omniroute-console/internal/platform/token"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(fleet handlers.FleetRepository, users handlers.UserRepository, issuer *token.Issuer, db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Users: users, Tokens: issuer}
	fleetHandler := &handlers.FleetHandler{Repo: fleet}
	optimizeHandler := &handlers.OptimizeHandler{}
	readyHandler := &handlers.ReadyHandler{DB: db}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /health/ready", readyHandler.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	protect := func(h http.HandlerFunc) http.Handler {
		return requireAuth(issuer, h)
	}

	mux.Handle("POST /api/v1/vehicles", protect(fleetHandler.CreateVehicle))
	mux.Handle("GET /api/v1/vehicles", protect(fleetHandler.ListVehicles))
	mux.Handle("PUT /api/v1/vehicles/{id}", protect(fleetHandler.UpdateVehicle))
	mux.Handle("DELETE /api/v1/vehicles/{id}", protect(fleetHandler.DeleteVehicle))

	mux.Handle("POST /api/v1/drivers", protect(fleetHandler.CreateDriver))
	mux.Handle("GET /api/v1/drivers", protect(fleetHandler.ListDrivers))

	mux.Handle("POST /api/v1/optimize", protect(optimizeHandler.Optimize))

	return loggingMiddleware(mux)
}
