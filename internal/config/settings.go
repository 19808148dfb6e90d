package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"omniroute-console/internal/ports"
)

// SettingsKey is the slot key the settings record persists under.
const SettingsKey = "omniroute_settings"

const defaultBaseURL = "http://localhost:8000"

// Settings is the user-editable configuration record. It persists in
// the local slot under its own key, separate from state and credential.
type Settings struct {
	Profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"profile"`
	Notifications struct {
		DeliveryAlerts       bool `json:"deliveryAlerts"`
		RouteUpdates         bool `json:"routeUpdates"`
		MaintenanceReminders bool `json:"maintenanceReminders"`
		EmailReports         bool `json:"emailReports"`
	} `json:"notifications"`
	API struct {
		BaseURL string `json:"baseUrl"`
		APIKey  string `json:"apiKey"`
	} `json:"api"`
}

// DefaultSettings returns the record a fresh install starts with.
func DefaultSettings() Settings {
	var s Settings
	s.Profile.Role = "Admin"
	s.Notifications.DeliveryAlerts = true
	s.Notifications.RouteUpdates = true
	s.Notifications.MaintenanceReminders = true
	return s
}

// SettingsStore reads and writes the persisted settings record.
//
// It also implements the gateway's settings source: values are read
// fresh from the slot on every call so a saved change takes effect on
// the next request without a restart.
type SettingsStore struct {
	Slot ports.KeyValueSlot
}

func NewSettingsStore(slot ports.KeyValueSlot) *SettingsStore {
	return &SettingsStore{Slot: slot}
}

// Load returns the stored settings overlaid on defaults. Missing or
// corrupt data reads as the defaults; absent fields keep their default.
func (s *SettingsStore) Load() Settings {
	out := DefaultSettings()

	raw, ok, err := s.Slot.Get(SettingsKey)
	if err != nil || !ok {
		return out
	}
	// Unmarshal over the defaults: stored keys win, absent keys keep
	// the default value.
	if err := json.Unmarshal(raw, &out); err != nil {
		return DefaultSettings()
	}
	return out
}

// Save persists the settings record.
func (s *SettingsStore) Save(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("save settings: marshal: %w", err)
	}
	if err := s.Slot.Put(SettingsKey, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// BaseURL returns the configured backend base URL, trailing slash
// stripped, defaulting when unset.
func (s *SettingsStore) BaseURL() string {
	url := strings.TrimSpace(s.Load().API.BaseURL)
	if url == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

// APIKey returns the configured API key, empty when unset.
func (s *SettingsStore) APIKey() string {
	return s.Load().API.APIKey
}
