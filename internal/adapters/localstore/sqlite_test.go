package localstore

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestSlot(t *testing.T) *SqliteSlot {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "slot.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	slot, err := NewSqliteSlot(db)
	if err != nil {
		t.Fatalf("new slot: %v", err)
	}
	return slot
}

func TestSlotRoundTrip(t *testing.T) {
	slot := openTestSlot(t)

	if _, ok, err := slot.Get("omniroute_state"); err != nil || ok {
		t.Fatalf("empty slot: ok=%v err=%v, want absent", ok, err)
	}

	if err := slot.Put("omniroute_state", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := slot.Get("omniroute_state")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("value = %q, want %q", got, `{"a":1}`)
	}
}

func TestSlotLastWriterWins(t *testing.T) {
	slot := openTestSlot(t)

	if err := slot.Put("k", []byte("first")); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := slot.Put("k", []byte("second")); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, ok, err := slot.Get("k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != "second" {
		t.Fatalf("value = %q, want second", got)
	}
}

func TestSlotDelete(t *testing.T) {
	slot := openTestSlot(t)

	if err := slot.Put("k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := slot.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := slot.Get("k"); ok {
		t.Fatal("key still present after delete")
	}

	// Deleting an absent key is not an error.
	if err := slot.Delete("k"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
