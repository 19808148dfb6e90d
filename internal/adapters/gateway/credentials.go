package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"omniroute-console/internal/ports"
)

// AuthKey is the slot key the credential persists under, separate from
// the state snapshot so logout does not touch session data.
const AuthKey = "omniroute_auth"

// Credentials is the token payload returned by the auth endpoints.
type Credentials struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Expired peeks at the JWT exp claim without verifying the signature.
// A token we cannot parse is treated as expired so the next request
// goes out unauthenticated and lets the backend decide.
func (c Credentials) Expired(now time.Time) bool {
	if c.AccessToken == "" {
		return true
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(c.AccessToken, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// CredentialStore persists the auth credential in the local slot.
// The token is read fresh on every request and cleared on 401 or
// explicit logout.
type CredentialStore struct {
	Slot ports.KeyValueSlot
	Now  func() time.Time
}

func NewCredentialStore(slot ports.KeyValueSlot) *CredentialStore {
	return &CredentialStore{Slot: slot, Now: time.Now}
}

// Load returns the stored credential, if any. Corrupt data reads as absent.
func (s *CredentialStore) Load() (Credentials, bool) {
	raw, ok, err := s.Slot.Get(AuthKey)
	if err != nil || !ok {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, false
	}
	return creds, true
}

// Token returns a usable bearer token or "" when absent or expired.
func (s *CredentialStore) Token() string {
	creds, ok := s.Load()
	if !ok || creds.Expired(s.Now()) {
		return ""
	}
	return creds.AccessToken
}

// Save persists a new credential.
func (s *CredentialStore) Save(creds Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("save credentials: marshal: %w", err)
	}
	if err := s.Slot.Put(AuthKey, raw); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear erases the stored credential.
func (s *CredentialStore) Clear() {
	if err := s.Slot.Delete(AuthKey); err != nil {
		log.Printf("gateway: clear credentials: %v", err)
	}
}

// Authenticated reports whether a usable token is stored.
func (s *CredentialStore) Authenticated() bool {
	return s.Token() != ""
}
