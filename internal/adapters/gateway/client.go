package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"omniroute-console/internal/ports"
)

// SettingsSource supplies the base URL and API key. It is consulted on
// every request, never cached, so a settings change takes effect on the
// next call without a restart.
type SettingsSource interface {
	BaseURL() string
	APIKey() string
}

// Client normalizes every remote call into a typed outcome.
//
// It is the sole boundary that converts raw transport failures into the
// three-way classification: authentication failure (credential cleared,
// re-auth signalled), connectivity failure (offline, caller picks a
// local fallback) and application error (message surfaced, no side
// effects). It never panics and never leaks a raw error upward.
type Client struct {
	session  *http.Client
	settings SettingsSource
	creds    *CredentialStore
}

func NewClient(settings SettingsSource, creds *CredentialStore) *Client {
	return &Client{
		session:  &http.Client{Timeout: 30 * time.Second},
		settings: settings,
		creds:    creds,
	}
}

// Request performs one backend call and returns the unwrapped payload.
// Failures come back as *ports.RemoteError, never as a raw transport error.
func (c *Client) Request(ctx context.Context, method, path string, body any, requiresAuth bool) (json.RawMessage, error) {
	url := strings.TrimRight(c.settings.BaseURL(), "/") + path

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("encode request body: %v", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &ports.RemoteError{Status: ports.StatusAppError, Message: fmt.Sprintf("build request: %v", err)}
	}

	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := c.settings.APIKey(); key != "" {
		req.Header.Set("X-API-Key", key)
	}
	if requiresAuth {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.session.Do(req)
	if err != nil {
		// DNS/connect errors, timeouts, cancelled probes: the backend
		// is unreachable, not broken.
		return nil, &ports.RemoteError{
			Status:  ports.StatusOffline,
			Message: "Backend offline — running in local mode.",
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ports.RemoteError{Status: ports.StatusOffline, Message: "Backend offline — running in local mode."}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired or invalid: clearing the credential is the one
		// side effect the gateway owns. Navigation policy lives above.
		c.creds.Clear()
		return nil, &ports.RemoteError{
			Status:  ports.StatusAuthExpired,
			Message: "Session expired. Please sign in again.",
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &ports.RemoteError{
			Status:  ports.StatusAppError,
			Message: errorMessage(raw, resp.StatusCode),
		}
	}

	return unwrap(raw), nil
}

// unwrap supports both {"data": …} envelopes and raw payloads; callers
// always receive the payload itself.
func unwrap(raw []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

// errorMessage digs the human-readable message out of a structured
// error body, falling back to the status code.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error.Message != "" {
			return body.Error.Message
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

func (c *Client) get(ctx context.Context, path string, auth bool) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, nil, auth)
}

func (c *Client) post(ctx context.Context, path string, body any, auth bool) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, body, auth)
}

func (c *Client) put(ctx context.Context, path string, body any, auth bool) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, path, body, auth)
}

func (c *Client) delete(ctx context.Context, path string, auth bool) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, auth)
}
