package services

import (
	"context"
	"strings"
	"testing"

	"omniroute-console/internal/domain"
)

func coord(lat, lng float64) (*float64, *float64) {
	return &lat, &lng
}

// Four stops around Delhi laid out so the submitted order (depot, far,
// near, mid) is clearly worse than nearest-neighbor order.
func testStops() []domain.Stop {
	depot := domain.Stop{Name: "Depot", Kind: domain.StopDepot}
	depot.Lat, depot.Lng = coord(28.6139, 77.2090)

	far := domain.Stop{Name: "Far", Kind: domain.StopDelivery}
	far.Lat, far.Lng = coord(28.7041, 77.1025)

	near := domain.Stop{Name: "Near", Kind: domain.StopDelivery}
	near.Lat, near.Lng = coord(28.6200, 77.2150)

	mid := domain.Stop{Name: "Mid", Kind: domain.StopDelivery}
	mid.Lat, mid.Lng = coord(28.6600, 77.1600)

	return []domain.Stop{depot, far, near, mid}
}

func TestOptimizeNearestNeighborOrder(t *testing.T) {
	out, err := Optimize(context.Background(), OptimizeRequest{
		Stops:       testStops(),
		Constraints: domain.DefaultConstraints(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.OrderedStops) != 4 {
		t.Fatalf("got %d ordered stops, want 4", len(out.OrderedStops))
	}
	if out.OrderedStops[0].Name != "Depot" {
		t.Fatalf("route does not start at depot: %q", out.OrderedStops[0].Name)
	}
	if out.OrderedStops[1].Name != "Near" {
		t.Fatalf("first leg = %q, want Near (greedy step)", out.OrderedStops[1].Name)
	}

	if out.TotalDistanceKm <= 0 {
		t.Errorf("distance = %v, want positive", out.TotalDistanceKm)
	}
	if out.EstimatedMinutes <= 0 {
		t.Errorf("minutes = %v, want positive", out.EstimatedMinutes)
	}
	if out.SolverUsed != "Nearest Neighbor (Classical)" {
		t.Errorf("solver = %q", out.SolverUsed)
	}
	if out.Savings == nil || out.Savings.DistancePct < 0 {
		t.Errorf("savings = %+v", out.Savings)
	}
}

func TestOptimizeAlternateSolverRefines(t *testing.T) {
	c := domain.DefaultConstraints()
	c.UseAlternateSolver = true

	out, err := Optimize(context.Background(), OptimizeRequest{Stops: testStops(), Constraints: c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.SolverUsed, "Alternate") {
		t.Fatalf("solver = %q, want alternate label", out.SolverUsed)
	}

	classical, err := Optimize(context.Background(), OptimizeRequest{
		Stops:       testStops(),
		Constraints: domain.DefaultConstraints(),
	})
	if err != nil {
		t.Fatalf("classical run: %v", err)
	}
	if out.TotalDistanceKm > classical.TotalDistanceKm {
		t.Fatalf("2-opt route (%v km) longer than greedy route (%v km)",
			out.TotalDistanceKm, classical.TotalDistanceKm)
	}
}

func TestOptimizeRejectsTooFewStops(t *testing.T) {
	_, err := Optimize(context.Background(), OptimizeRequest{
		Stops:       testStops()[:1],
		Constraints: domain.DefaultConstraints(),
	})
	if err == nil {
		t.Fatal("expected error for a single stop")
	}
}

func TestOptimizeRejectsMissingCoordinates(t *testing.T) {
	stops := testStops()
	stops[2].Lat = nil

	_, err := Optimize(context.Background(), OptimizeRequest{
		Stops:       stops,
		Constraints: domain.DefaultConstraints(),
	})
	if err == nil {
		t.Fatal("expected error for a stop without coordinates")
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Delhi -> Mumbai is roughly 1150 km great-circle.
	got := domain.HaversineKm(
		domain.LatLng{Lat: 28.6139, Lng: 77.2090},
		domain.LatLng{Lat: 19.0760, Lng: 72.8777},
	)
	if got < 1100 || got > 1200 {
		t.Fatalf("distance = %v km, want ~1150", got)
	}
}
