package store

import (
	"encoding/json"
	"log"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/ports"
)

// StateKey is the slot key the snapshot persists under.
const StateKey = "omniroute_state"

// loadSnapshot reads the persisted snapshot and structurally merges it
// over the defaults. It never fails: missing, corrupt or partially
// shaped data degrades to the defaults for the affected keys.
func loadSnapshot(slot ports.KeyValueSlot) domain.Snapshot {
	defaults := domain.DefaultSnapshot()

	raw, ok, err := slot.Get(StateKey)
	if err != nil {
		log.Printf("store: load snapshot failed, using defaults: %v", err)
		return defaults
	}
	if !ok {
		return defaults
	}

	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("store: corrupt snapshot, using defaults: %v", err)
		return defaults
	}

	defaultsJSON, err := json.Marshal(defaults)
	if err != nil {
		return defaults
	}
	var base map[string]any
	if err := json.Unmarshal(defaultsJSON, &base); err != nil {
		return defaults
	}

	merged := deepMerge(base, stored)

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		log.Printf("store: re-encode merged snapshot failed, using defaults: %v", err)
		return defaults
	}

	snap := domain.DefaultSnapshot()
	if err := json.Unmarshal(mergedJSON, &snap); err != nil {
		log.Printf("store: decode merged snapshot failed, using defaults: %v", err)
		return domain.DefaultSnapshot()
	}

	return snap
}

// saveSnapshot persists the snapshot. Failures are logged and swallowed:
// the session keeps running, the state just does not survive a reload.
func saveSnapshot(slot ports.KeyValueSlot, snap domain.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		log.Printf("store: marshal snapshot failed, state not durable: %v", err)
		return
	}

	if err := slot.Put(StateKey, raw); err != nil {
		log.Printf("store: persist snapshot failed, state not durable: %v", err)
	}
}
