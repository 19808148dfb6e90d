package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"omniroute-console/internal/adapters/gateway"
	"omniroute-console/internal/adapters/localstore"
	"omniroute-console/internal/config"
	"omniroute-console/internal/domain"
	"omniroute-console/internal/platform/db"
	"omniroute-console/internal/ports"
	"omniroute-console/internal/store"
	"omniroute-console/internal/workflow"
)

// main wires the console session: local SQLite slot, remote gateway and
// the state store, then runs a short headless demo session against
// whatever backend (if any) is reachable.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open("sqlite", cfg.StatePath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	slot, err := localstore.NewSqliteSlot(conn)
	if err != nil {
		log.Fatal(err)
	}

	settings := config.NewSettingsStore(slot)
	bootstrapSettings(settings, cfg)

	creds := gateway.NewCredentialStore(slot)
	client := gateway.NewClient(settings, creds)

	ctx := context.Background()

	// A dead backend is not an error: the session still runs fully local.
	var backend ports.FleetBackend
	if err := client.Health(ctx); err != nil {
		log.Printf("console: backend unreachable, session is local-only: %v", err)
	} else {
		backend = client
		log.Printf("console: backend reachable at %s", settings.BaseURL())
	}

	st := store.Open(slot, backend)
	defer st.Close()

	runDemoSession(ctx, st, backend)
}

// bootstrapSettings seeds the persisted settings record from the
// environment on first run. An existing record always wins.
func bootstrapSettings(settings *config.SettingsStore, cfg config.ConsoleConfig) {
	s := settings.Load()
	if s.API.BaseURL != "" {
		return
	}

	s.API.BaseURL = cfg.BaseURL
	s.API.APIKey = cfg.APIKey
	if err := settings.Save(s); err != nil {
		log.Printf("console: bootstrap settings: %v", err)
	}
}

// runDemoSession exercises the optimistic fleet mutations and the full
// optimization workflow once, then reports the resulting state.
func runDemoSession(ctx context.Context, st *store.Store, backend ports.FleetBackend) {
	st.AddVehicle(domain.Vehicle{
		Type:        "van",
		Plate:       "DL-01-AB-1234",
		FuelPercent: 86,
		Status:      domain.VehicleActive,
	})
	st.AddDriver(domain.Driver{
		Name:   "Priya Sharma",
		Phone:  "+91-98100-12345",
		Rating: 4.8,
	})

	st.AddDepot("Central Depot", "Connaught Place, New Delhi", &domain.LatLng{Lat: 28.6139, Lng: 77.2090})
	st.AddStopAt("Karol Bagh", 28.6519, 77.1909)
	st.AddStopAt("Lajpat Nagar", 28.5672, 77.2436)
	st.AddStopAt("Dwarka Sector 21", 28.5521, 77.0585)

	wiz := workflow.New(st, backend)
	for wiz.Current() != workflow.Deploying {
		if !wiz.CanAdvance() {
			log.Printf("console: workflow blocked at %s", wiz.Current())
			return
		}
		wiz.Advance(ctx)
	}
	if err := wiz.Deploy(); err != nil {
		log.Printf("console: deploy: %v", err)
	}

	// Let detached confirmations settle before reading the final state.
	st.Wait()

	snap := st.Snapshot()
	if r := snap.Optimizer.Result; r != nil {
		log.Printf("console: route ready solver=%q distance=%.1fkm minutes=%.0f quality=%.0f%%",
			r.SolverLabel, r.TotalDistanceKm, r.EstimatedMinutes, r.SolutionQualityPct)
	}
	log.Printf("console: fleet online=%.0f/%.0f active_routes=%.0f",
		snap.Dashboard.FleetOnline.Value, snap.Dashboard.FleetTotal, snap.Dashboard.ActiveRoutes.Value)
}
