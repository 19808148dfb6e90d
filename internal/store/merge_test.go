package store

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDeepMergeStoredScalarWins(t *testing.T) {
	dst := map[string]any{"a": 1.0, "nested": map[string]any{"x": 1.0, "y": 2.0}}
	src := map[string]any{"nested": map[string]any{"y": 9.0}}

	out := deepMerge(dst, src)

	nested, ok := out["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested is %T, want map", out["nested"])
	}
	if nested["x"] != 1.0 {
		t.Errorf("x = %v, want default 1", nested["x"])
	}
	if nested["y"] != 9.0 {
		t.Errorf("y = %v, want stored 9", nested["y"])
	}
	if out["a"] != 1.0 {
		t.Errorf("a = %v, want default 1", out["a"])
	}
}

func TestDeepMergeArraysReplaced(t *testing.T) {
	dst := map[string]any{"list": []any{"a", "b"}}
	src := map[string]any{"list": []any{"c"}}

	out := deepMerge(dst, src)

	list, ok := out["list"].([]any)
	if !ok || len(list) != 1 || list[0] != "c" {
		t.Fatalf("list = %v, want [c] (arrays replace, never concatenate)", out["list"])
	}
}

func TestDeepMergeDoesNotModifyInputs(t *testing.T) {
	dst := map[string]any{"nested": map[string]any{"x": 1.0}}
	src := map[string]any{"nested": map[string]any{"x": 2.0}}

	_ = deepMerge(dst, src)

	if dst["nested"].(map[string]any)["x"] != 1.0 {
		t.Fatal("deepMerge modified dst")
	}
}

func TestLoadSnapshotIdempotentOnDefaults(t *testing.T) {
	slot := newMemSlot()

	defaults := loadSnapshot(slot) // nothing stored yet
	raw, err := json.Marshal(defaults)
	if err != nil {
		t.Fatalf("marshal defaults: %v", err)
	}
	if err := slot.Put(StateKey, raw); err != nil {
		t.Fatalf("put: %v", err)
	}

	reloaded := loadSnapshot(slot)
	if !reflect.DeepEqual(defaults, reloaded) {
		t.Fatalf("loading a defaults-equal snapshot changed it:\n%+v\n%+v", defaults, reloaded)
	}
}

func TestLoadSnapshotSingleLeafOverride(t *testing.T) {
	slot := newMemSlot()
	if err := slot.Put(StateKey, []byte(`{"optimizer":{"constraints":{"maxDistanceKm":350}}}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	snap := loadSnapshot(slot)

	c := snap.Optimizer.Constraints
	if c.MaxDistanceKm != 350 {
		t.Errorf("MaxDistanceKm = %v, want stored 350", c.MaxDistanceKm)
	}
	if c.MaxDurationMin != 480 || c.VehicleCapacityKg != 1000 {
		t.Errorf("untouched constraint fields lost defaults: %+v", c)
	}
	if snap.Fleet.Vehicles == nil {
		t.Error("fleet collection missing after partial load")
	}
}

func TestLoadSnapshotCorruptDataFallsBackToDefaults(t *testing.T) {
	slot := newMemSlot()
	if err := slot.Put(StateKey, []byte(`{"fleet": not-json`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	snap := loadSnapshot(slot)
	if len(snap.Fleet.Vehicles) != 0 {
		t.Fatalf("corrupt snapshot produced vehicles: %+v", snap.Fleet.Vehicles)
	}
}
