package config

import (
	"sync"
	"testing"
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

func TestSettingsLoadDefaultsWhenAbsent(t *testing.T) {
	s := NewSettingsStore(newMemSlot())

	got := s.Load()
	if got.Profile.Role != "Admin" || !got.Notifications.DeliveryAlerts {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if s.BaseURL() != "http://localhost:8000" {
		t.Fatalf("base url = %q, want default", s.BaseURL())
	}
}

func TestSettingsPartialRecordKeepsDefaults(t *testing.T) {
	slot := newMemSlot()
	if err := slot.Put(SettingsKey, []byte(`{"api":{"baseUrl":"https://fleet.example.com/"}}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewSettingsStore(slot)

	if got := s.BaseURL(); got != "https://fleet.example.com" {
		t.Fatalf("base url = %q, want stored value without trailing slash", got)
	}
	if got := s.Load(); got.Profile.Role != "Admin" {
		t.Fatalf("partial record lost profile default: %+v", got)
	}
}

func TestSettingsReadFreshPerCall(t *testing.T) {
	slot := newMemSlot()
	s := NewSettingsStore(slot)

	before := s.BaseURL()

	settings := s.Load()
	settings.API.BaseURL = "http://10.0.0.5:9000"
	settings.API.APIKey = "key-1"
	if err := s.Save(settings); err != nil {
		t.Fatalf("save: %v", err)
	}

	// No restart, no cache invalidation: the next read sees the change.
	if got := s.BaseURL(); got == before || got != "http://10.0.0.5:9000" {
		t.Fatalf("base url = %q, want freshly saved value", got)
	}
	if got := s.APIKey(); got != "key-1" {
		t.Fatalf("api key = %q", got)
	}
}

func TestSettingsCorruptRecordFallsBackToDefaults(t *testing.T) {
	slot := newMemSlot()
	if err := slot.Put(SettingsKey, []byte(`{"api": garbage`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewSettingsStore(slot)

	if got := s.BaseURL(); got != "http://localhost:8000" {
		t.Fatalf("base url = %q, want default on corrupt record", got)
	}
}
