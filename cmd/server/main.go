package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"omniroute-console/internal/adapters/repositories"
	"omniroute-console/internal/api"
	"omniroute-console/internal/config"
	"omniroute-console/internal/platform/db"
	"omniroute-console/internal/platform/token"
)

// main is the backend composition root.
// It wires concrete adapters (SQLite or Postgres storage, JWT signing)
// behind the handlers and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}

	// Postgres when DATABASE_URL is set, embedded SQLite otherwise.
	driver, dsn := "sqlite", cfg.DBPath
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		driver, dsn = "pgx", cfg.DatabaseURL
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromJSON(conn, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	fleet := repositories.NewSQLFleetRepository(conn)
	users := repositories.NewSQLUserRepository(conn)
	router := api.NewRouter(fleet, users, issuer, conn)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, driver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
