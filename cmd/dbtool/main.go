package main

import (
	"log"
	"strings"

	"github.com/joho/godotenv"

	"omniroute-console/internal/adapters/repositories"
	"omniroute-console/internal/config"
	"omniroute-console/internal/platform/db"
)

// dbtool initializes the backend schema and loads seed data without
// starting the server. Useful for provisioning a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}

	driver, dsn := "sqlite", cfg.DBPath
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		driver, dsn = "pgx", cfg.DatabaseURL
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if cfg.SeedPath == "" {
		log.Println("No SEED_PATH set, skipping seed.")
		return
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(conn, cfg.SeedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
