package shopsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the session gateway. The cookie jar carries the httpOnly
// session cookie between calls, so the process-wide session behaves like a
// browser tab: authenticate once, then every request is authenticated until
// logout or expiry.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a gateway client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

// FetchUser asks the gateway who the current session belongs to.
//
// The three-way outcome matters:
//   - (user, nil): authenticated
//   - (nil, nil): settled as logged out, either a 401 or an unreachable
//     gateway; being offline is not an error state
//   - (nil, err): the gateway answered something unexpected
func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/auth/me"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}

	var payload userPayload
	if err := decodeData(resp, &payload, http.StatusOK); err != nil {
		if IsAuthError(err) {
			return nil, nil
		}
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("gateway response missing user")
	}
	return payload.User, nil
}

// Login authenticates the session. The gateway stores the credential in the
// cookie; only the user comes back.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	return c.postUser(ctx, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, http.StatusOK)
}

// Register creates an account and authenticates the session in one call.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	return c.postUser(ctx, "/api/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, http.StatusCreated)
}

// Logout ends the session. The gateway clears the cookie even when the
// backend revocation fails, so a non-nil error still means logged out.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/logout"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	var payload successPayload
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

const maxResponseBytes = 1 << 20

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) postUser(ctx context.Context, path string, reqBody any, expectedStatus int) (*User, error) {
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var payload userPayload
	if err := decodeData(resp, &payload, expectedStatus); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("gateway response missing user")
	}
	return payload.User, nil
}

// decodeData unwraps a {"data": ...} response into target, or turns a non-2xx
// body into an APIError carrying the server's message verbatim.
func decodeData(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseAPIError(resp.StatusCode, body)
	}

	env := dataEnvelope[json.RawMessage]{}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("failed to decode response payload: %w", err)
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
	}
	return apiErr
}
