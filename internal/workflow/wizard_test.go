package workflow

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/ports"
	"omniroute-console/internal/store"
)

type memSlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSlot() *memSlot { return &memSlot{data: map[string][]byte{}} }

func (m *memSlot) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memSlot) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memSlot) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// offlineBackend reports every call as a connectivity failure.
type offlineBackend struct{}

func (offlineBackend) CreateVehicle(ctx context.Context, v domain.Vehicle) (ports.RemoteVehicle, error) {
	return ports.RemoteVehicle{}, &ports.RemoteError{Status: ports.StatusOffline, Message: "offline"}
}

func (offlineBackend) CreateDriver(ctx context.Context, d domain.Driver) (ports.RemoteDriver, error) {
	return ports.RemoteDriver{}, &ports.RemoteError{Status: ports.StatusOffline, Message: "offline"}
}

func (offlineBackend) Optimize(ctx context.Context, stops []domain.Stop, c domain.Constraints) (ports.RemoteOptimization, error) {
	return ports.RemoteOptimization{}, &ports.RemoteError{Status: ports.StatusOffline, Message: "offline"}
}

func (offlineBackend) Health(ctx context.Context) error {
	return &ports.RemoteError{Status: ports.StatusOffline, Message: "offline"}
}

// solverBackend returns a scripted optimization payload.
type solverBackend struct {
	result ports.RemoteOptimization
	calls  int
}

func (s *solverBackend) CreateVehicle(ctx context.Context, v domain.Vehicle) (ports.RemoteVehicle, error) {
	return ports.RemoteVehicle{}, nil
}

func (s *solverBackend) CreateDriver(ctx context.Context, d domain.Driver) (ports.RemoteDriver, error) {
	return ports.RemoteDriver{}, nil
}

func (s *solverBackend) Optimize(ctx context.Context, stops []domain.Stop, c domain.Constraints) (ports.RemoteOptimization, error) {
	s.calls++
	return s.result, nil
}

func (s *solverBackend) Health(ctx context.Context) error { return nil }

func newTestStore(t *testing.T, backend ports.FleetBackend) *store.Store {
	t.Helper()
	st := store.Open(newMemSlot(), backend)
	t.Cleanup(st.Close)
	return st
}

func TestForwardTransitionGatedOnStops(t *testing.T) {
	st := newTestStore(t, nil)
	w := New(st, nil)

	if w.CanAdvance() {
		t.Fatal("forward transition enabled with 0 stops")
	}
	if got := w.Advance(context.Background()); got != CollectingStops {
		t.Fatalf("blocked advance moved to %s", got)
	}

	st.AddStop("Stop 1", "addr")
	if !w.CanAdvance() {
		t.Fatal("forward transition still blocked after adding a stop")
	}
}

func TestMonotonicProgressionNeverSkips(t *testing.T) {
	st := newTestStore(t, nil)
	st.AddStop("Stop 1", "addr")
	w := New(st, nil, WithRand(rand.New(rand.NewSource(1))))

	want := []Step{SettingConstraints, Optimizing, PreviewingResult, Deploying}
	for _, expected := range want {
		if got := w.Advance(context.Background()); got != expected {
			t.Fatalf("advance reached %s, want %s", got, expected)
		}
	}

	// Deploying is terminal: no further transitions defined.
	if got := w.Advance(context.Background()); got != Deploying {
		t.Fatalf("terminal state advanced to %s", got)
	}
}

func TestOfflineFallbackScenario(t *testing.T) {
	st := newTestStore(t, offlineBackend{})
	st.AddDepot("Depot", "", nil)
	st.AddStop("A", "")
	st.AddStop("B", "")
	st.UpdateConstraints(domain.ConstraintsPatch{
		MaxDistanceKm:     ptr(120.0),
		MaxDurationMin:    ptr(180.0),
		VehicleCapacityKg: ptr(2000.0),
	})

	w := New(st, offlineBackend{}, WithRand(rand.New(rand.NewSource(7))))
	w.Advance(context.Background()) // -> SettingConstraints
	w.Advance(context.Background()) // -> Optimizing
	if got := w.Advance(context.Background()); got != PreviewingResult {
		t.Fatalf("optimize transition ended at %s, want previewing_result", got)
	}

	r := st.Snapshot().Optimizer.Result
	if r == nil {
		t.Fatal("offline run produced no result")
	}

	// 3 stops: distance ≈ 3×4.7 + jitter(0..5), minutes ≈ 3×12 + jitter(0..15).
	if r.TotalDistanceKm < 14.1 || r.TotalDistanceKm > 19.1 {
		t.Errorf("distance = %v, want within 14.1..19.1", r.TotalDistanceKm)
	}
	if r.EstimatedMinutes < 36 || r.EstimatedMinutes > 51 {
		t.Errorf("minutes = %v, want within 36..51", r.EstimatedMinutes)
	}
	if r.SolutionQualityPct < 88 || r.SolutionQualityPct > 98 {
		t.Errorf("quality = %v, want within 88..98", r.SolutionQualityPct)
	}
	if !strings.Contains(strings.ToLower(r.SolverLabel), "offline") {
		t.Errorf("solver label %q does not mark the local estimate", r.SolverLabel)
	}
	if r.Savings == nil {
		t.Error("synthesized result missing savings")
	}
	if len(r.OrderedStops) != 3 {
		t.Errorf("ordered stops = %d, want 3", len(r.OrderedStops))
	}
}

func TestSingleStopSkipsBackendAndStillCompletes(t *testing.T) {
	backend := &solverBackend{}
	st := newTestStore(t, backend)
	st.AddStop("Only", "")

	w := New(st, backend, WithRand(rand.New(rand.NewSource(3))))
	w.Advance(context.Background())
	w.Advance(context.Background())
	w.Advance(context.Background())

	if backend.calls != 0 {
		t.Fatalf("backend called with fewer than 2 stops (%d calls)", backend.calls)
	}
	r := st.Snapshot().Optimizer.Result
	if r == nil || r.SolverLabel != OfflineSolverLabel {
		t.Fatalf("expected local estimate, got %+v", r)
	}
}

func TestRemoteResultAdoptedWithDefaults(t *testing.T) {
	backend := &solverBackend{result: ports.RemoteOptimization{
		TotalDistanceKm:          21.4,
		EstimatedDurationMinutes: 55,
		ExecutionTimeMs:          240,
		// solver label, quality and ordered stops intentionally absent
	}}
	st := newTestStore(t, backend)
	st.AddStop("A", "")
	st.AddStop("B", "")

	w := New(st, backend, WithRand(rand.New(rand.NewSource(5))))
	w.Advance(context.Background())
	w.Advance(context.Background())
	w.Advance(context.Background())

	r := st.Snapshot().Optimizer.Result
	if r == nil {
		t.Fatal("no result adopted")
	}
	if r.TotalDistanceKm != 21.4 || r.EstimatedMinutes != 55 {
		t.Errorf("metrics not adopted: %+v", r)
	}
	if r.SolverLabel != "OR-Tools (Classical)" {
		t.Errorf("solver label = %q, want classical default", r.SolverLabel)
	}
	if r.SolutionQualityPct != 95 {
		t.Errorf("quality = %v, want default 95", r.SolutionQualityPct)
	}
	if len(r.OrderedStops) != 2 {
		t.Errorf("ordered stops defaulted to %d entries, want input order (2)", len(r.OrderedStops))
	}
}

func TestJumpToCompletedStepKeepsLaterData(t *testing.T) {
	st := newTestStore(t, offlineBackend{})
	st.AddStop("A", "")
	st.AddStop("B", "")

	w := New(st, offlineBackend{}, WithRand(rand.New(rand.NewSource(11))))
	w.Advance(context.Background())
	w.Advance(context.Background())
	w.Advance(context.Background()) // PreviewingResult, result set

	if err := w.JumpTo(CollectingStops); err != nil {
		t.Fatalf("jump to completed step: %v", err)
	}
	if w.Current() != CollectingStops {
		t.Fatalf("current = %s", w.Current())
	}

	// Direct jump, not a rewind: the stale result is preserved.
	if st.Snapshot().Optimizer.Result == nil {
		t.Fatal("jumping back cleared the optimization result")
	}

	// Editing stops afterwards does not invalidate the stale result.
	st.AddStop("C", "")
	if st.Snapshot().Optimizer.Result == nil {
		t.Fatal("stop edit invalidated the result")
	}

	if err := w.JumpTo(PreviewingResult); err == nil {
		t.Fatal("jumped forward to a not-yet-completed step")
	}
}

func TestDeployOnlyAtTerminalStep(t *testing.T) {
	st := newTestStore(t, nil)
	st.AddStop("A", "")
	w := New(st, nil, WithRand(rand.New(rand.NewSource(13))))

	if err := w.Deploy(); err == nil {
		t.Fatal("deploy succeeded before reaching Deploying")
	}

	for w.Current() != Deploying {
		w.Advance(context.Background())
	}
	if err := w.Deploy(); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if !w.Deployed() {
		t.Fatal("deployed flag not set")
	}
}

func ptr[T any](v T) *T { return &v }
