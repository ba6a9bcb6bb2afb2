// Package client is the gateway's HTTP client for the auth backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AuthPayload is the payload inside the backend's {"data": ...} envelope for
// login, register and refresh.
type AuthPayload struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user"`
}

// MePayload is the payload inside {"data": ...} for /api/auth/me.
type MePayload struct {
	User json.RawMessage `json:"user"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// BackendError carries a backend error response through to the gateway
// handler, which relays status and message to the browser untouched.
type BackendError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// BackendClient talks to the auth service.
type BackendClient struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *BackendClient {
	return &BackendClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login forwards a login body to the backend and decodes the auth payload.
func (c *BackendClient) Login(ctx context.Context, body []byte) (*AuthPayload, error) {
	return c.postAuth(ctx, "/api/auth/login", body)
}

// Register forwards a register body to the backend and decodes the auth payload.
func (c *BackendClient) Register(ctx context.Context, body []byte) (*AuthPayload, error) {
	return c.postAuth(ctx, "/api/auth/register", body)
}

// Refresh rotates a refresh token for a fresh token pair. A rejected token
// comes back as a BackendError with the backend's 401.
func (c *BackendClient) Refresh(ctx context.Context, refreshToken string) (*AuthPayload, error) {
	body, err := json.Marshal(struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	return c.postAuth(ctx, "/api/auth/refresh", body)
}

// Logout revokes the session behind the token. Best effort: the gateway
// clears the cookie no matter what this returns.
func (c *BackendClient) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}
	return nil
}

// Me resolves the token to its user.
func (c *BackendClient) Me(ctx context.Context, token string) (*MePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp)
	}

	var payload MePayload
	if err := decodeData(resp.Body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *BackendClient) postAuth(ctx context.Context, path string, body []byte) (*AuthPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, readError(resp)
	}

	var payload AuthPayload
	if err := decodeData(resp.Body, &payload); err != nil {
		return nil, err
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("backend auth payload missing token")
	}
	return &payload, nil
}

func decodeData(r io.Reader, v any) error {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return fmt.Errorf("decoding backend envelope: %w", err)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decoding backend payload: %w", err)
	}
	return nil
}

func readError(resp *http.Response) error {
	be := &BackendError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Message != "" {
		be.Message = body.Message
		be.Details = body.Details
	}
	return be
}
