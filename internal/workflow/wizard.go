package workflow

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/ports"
	"omniroute-console/internal/store"
)

// Step is one stage of the route-optimization wizard.
type Step int

const (
	CollectingStops Step = iota
	SettingConstraints
	Optimizing
	PreviewingResult
	Deploying
)

func (s Step) String() string {
	switch s {
	case CollectingStops:
		return "collecting_stops"
	case SettingConstraints:
		return "setting_constraints"
	case Optimizing:
		return "optimizing"
	case PreviewingResult:
		return "previewing_result"
	case Deploying:
		return "deploying"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// classicalSolverLabel is the default label when the backend omits one.
const classicalSolverLabel = "OR-Tools (Classical)"

// Wizard drives the five-step optimization workflow on top of the store.
//
// Forward movement is strictly one step at a time; previously completed
// steps can be re-selected directly without clearing later-step data.
// The optimize transition never fails visibly: every path terminates in
// a structurally complete result, real or synthesized.
type Wizard struct {
	store   *store.Store
	backend ports.FleetBackend // nil forces the local estimate
	rng     *rand.Rand

	current  Step
	deployed bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithRand injects a deterministic random source for tests.
func WithRand(rng *rand.Rand) Option {
	return func(w *Wizard) { w.rng = rng }
}

func New(st *store.Store, backend ports.FleetBackend, opts ...Option) *Wizard {
	w := &Wizard{
		store:   st,
		backend: backend,
		current: CollectingStops,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return w
}

// Current returns the active step.
func (w *Wizard) Current() Step { return w.current }

// Deployed reports whether the route has been dispatched.
func (w *Wizard) Deployed() bool { return w.deployed }

// CanAdvance reports whether the forward transition is enabled.
// Leaving CollectingStops requires at least one stop; the gate disables
// the transition instead of rejecting it with an error.
func (w *Wizard) CanAdvance() bool {
	if w.current == Deploying {
		return false
	}
	if w.current == CollectingStops {
		return len(w.store.Snapshot().Optimizer.Stops) > 0
	}
	return true
}

// Advance moves one step forward. Leaving Optimizing runs the
// optimizer first; the state only becomes PreviewingResult once a
// result, real or synthetic, is in the store. A blocked or terminal
// transition leaves the current step unchanged.
func (w *Wizard) Advance(ctx context.Context) Step {
	if !w.CanAdvance() {
		return w.current
	}

	if w.current == Optimizing {
		w.runOptimizer(ctx)
	}

	w.current++
	return w.current
}

// Back moves to the immediately preceding step.
func (w *Wizard) Back() Step {
	if w.current > CollectingStops {
		w.current--
	}
	return w.current
}

// JumpTo re-selects a previously completed step directly, without
// walking intermediate states and without clearing later-step data.
func (w *Wizard) JumpTo(target Step) error {
	if target < CollectingStops || target >= w.current {
		return fmt.Errorf("jump to %s: only previously completed steps can be re-selected", target)
	}
	w.current = target
	return nil
}

// Deploy simulates the dispatch confirmation. Deploying is terminal.
func (w *Wizard) Deploy() error {
	if w.current != Deploying {
		return fmt.Errorf("deploy: workflow is at %s", w.current)
	}
	w.deployed = true
	w.store.RecordActivity("Route deployed to driver")
	return nil
}

// runOptimizer attempts the remote solver and falls back to a local
// estimate when the backend is unreachable, errors, or there are too
// few stops for a real optimization.
func (w *Wizard) runOptimizer(ctx context.Context) {
	snap := w.store.Snapshot()
	stops := snap.Optimizer.Stops
	constraints := snap.Optimizer.Constraints

	if w.backend != nil && len(stops) >= 2 {
		remote, err := w.backend.Optimize(ctx, stops, constraints)
		if err == nil {
			w.store.SetResult(adoptRemote(remote, stops))
			return
		}
		if ports.IsOffline(err) {
			log.Printf("workflow: optimizer backend offline, using local estimate")
		} else {
			log.Printf("workflow: optimizer call failed, using local estimate: %v", err)
		}
	}

	w.store.SetResult(localEstimate(stops, w.rng))
}

// adoptRemote maps the backend payload onto the canonical result shape,
// defaulting any missing field to a safe placeholder rather than
// failing the transition.
func adoptRemote(r ports.RemoteOptimization, stops []domain.Stop) domain.OptimizationResult {
	out := domain.OptimizationResult{
		TotalDistanceKm:    r.TotalDistanceKm,
		EstimatedMinutes:   r.EstimatedDurationMinutes,
		FuelCost:           r.FuelCost,
		SolutionQualityPct: r.SolutionQualityScore * 100,
		SolverLabel:        r.SolverUsed,
		ComputeSeconds:     r.ExecutionTimeMs / 1000,
		OrderedStops:       r.OrderedStops,
	}

	if out.SolverLabel == "" {
		out.SolverLabel = classicalSolverLabel
	}
	if r.SolutionQualityScore == 0 {
		out.SolutionQualityPct = 95
	}
	if len(out.OrderedStops) == 0 {
		out.OrderedStops = stops
	}
	if r.Savings != nil {
		out.Savings = &domain.Savings{
			DistancePct: r.Savings.DistancePct,
			TimePct:     r.Savings.TimePct,
			FuelPct:     r.Savings.FuelPct,
		}
	}

	return out
}
