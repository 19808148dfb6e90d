package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/platform/obs"
)

const (
	avgSpeedKmh       = 40.0
	serviceTimeMin    = 5.0
	fuelCostPerKm     = 4.2
	nearestNeighborQ  = 0.92
	classicalSolver   = "Nearest Neighbor (Classical)"
	alternateSolver   = "2-opt Refined (Alternate)"
	alternateSolverQ  = 0.97
	maxAlternateStops = 200
)

// OptimizeRequest is the solver input: an ordered stop sequence with
// GPS coordinates and the active routing constraints.
type OptimizeRequest struct {
	Stops       []domain.Stop
	Constraints domain.Constraints
}

// OptimizeOutcome carries the optimized order and aggregate metrics.
type OptimizeOutcome struct {
	TotalDistanceKm  float64
	EstimatedMinutes float64
	FuelCost         float64
	QualityScore     float64
	SolverUsed       string
	ExecutionTimeMs  float64
	OrderedStops     []domain.Stop
	Savings          *domain.Savings
}

// Optimize orders the stops with a greedy nearest-neighbor pass over
// great-circle distances, optionally refined with 2-opt when the
// alternate solver is requested.
//
// The algorithm minimizes immediate travel distance at each step. The
// design prioritizes determinism and simplicity over optimality.
func Optimize(ctx context.Context, req OptimizeRequest) (_ *OptimizeOutcome, err error) {
	defer obs.Time(ctx, "services.Optimize")(&err)

	start := time.Now()

	if len(req.Stops) < 2 {
		return nil, errors.New("optimize: need at least 2 stops to optimize")
	}
	for i, s := range req.Stops {
		if !s.HasCoords() {
			return nil, fmt.Errorf("optimize: stop %d (%q) is missing coordinates", i, s.Name)
		}
	}

	depot := depotIndex(req.Stops)
	baseline := routeDistanceKm(req.Stops)

	order := nearestNeighborOrder(req.Stops, depot)
	solver := classicalSolver
	quality := nearestNeighborQ

	if req.Constraints.UseAlternateSolver && len(req.Stops) <= maxAlternateStops {
		order = twoOptRefine(req.Stops, order)
		solver = alternateSolver
		quality = alternateSolverQ
	}

	ordered := make([]domain.Stop, 0, len(order))
	for _, idx := range order {
		ordered = append(ordered, req.Stops[idx])
	}

	dist := routeDistanceKm(ordered)
	minutes := dist/avgSpeedKmh*60 + serviceTimeMin*float64(len(ordered)-1)

	out := &OptimizeOutcome{
		TotalDistanceKm:  round1(dist),
		EstimatedMinutes: math.Round(minutes),
		FuelCost:         round2(dist * fuelCostPerKm),
		QualityScore:     quality,
		SolverUsed:       solver,
		ExecutionTimeMs:  float64(time.Since(start).Microseconds()) / 1000,
		OrderedStops:     ordered,
		Savings:          savingsVsBaseline(baseline, dist),
	}

	return out, nil
}

// depotIndex finds the depot entry, defaulting to index 0 by convention.
func depotIndex(stops []domain.Stop) int {
	for i, s := range stops {
		if s.Kind == domain.StopDepot {
			return i
		}
	}
	return 0
}

// nearestNeighborOrder greedily visits the closest unvisited stop,
// starting from the depot. Ties break on the lower index for
// deterministic ordering.
func nearestNeighborOrder(stops []domain.Stop, depot int) []int {
	n := len(stops)
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := depot
	visited[current] = true
	order = append(order, current)

	for len(order) < n {
		best := -1
		bestDist := math.MaxFloat64
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d := stopDistanceKm(stops[current], stops[i])
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		visited[best] = true
		order = append(order, best)
		current = best
	}

	return order
}

// twoOptRefine removes route crossings by reversing segments while any
// reversal shortens the tour.
func twoOptRefine(stops []domain.Stop, order []int) []int {
	out := append([]int(nil), order...)

	improved := true
	for improved {
		improved = false
		for i := 1; i < len(out)-2; i++ {
			for j := i + 1; j < len(out)-1; j++ {
				before := stopDistanceKm(stops[out[i-1]], stops[out[i]]) +
					stopDistanceKm(stops[out[j]], stops[out[j+1]])
				after := stopDistanceKm(stops[out[i-1]], stops[out[j]]) +
					stopDistanceKm(stops[out[i]], stops[out[j+1]])
				if after < before {
					reverse(out[i : j+1])
					improved = true
				}
			}
		}
	}

	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func routeDistanceKm(stops []domain.Stop) float64 {
	total := 0.0
	for i := 1; i < len(stops); i++ {
		total += stopDistanceKm(stops[i-1], stops[i])
	}
	return total
}

func stopDistanceKm(a, b domain.Stop) float64 {
	return domain.HaversineKm(
		domain.LatLng{Lat: *a.Lat, Lng: *a.Lng},
		domain.LatLng{Lat: *b.Lat, Lng: *b.Lng},
	)
}

// savingsVsBaseline compares the optimized tour against the submitted
// stop order. A route the solver could not shorten reports zero
// savings rather than negative ones.
func savingsVsBaseline(baseline, optimized float64) *domain.Savings {
	if baseline <= 0 {
		return nil
	}

	pct := math.Max(0, (baseline-optimized)/baseline*100)
	return &domain.Savings{
		DistancePct: math.Round(pct),
		TimePct:     math.Round(pct * 1.15),
		FuelPct:     math.Round(pct * 1.05),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
