package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/internal/gateway/cache"
	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

const (
	testToken      = "test-access-token"
	testRefresh    = "opaque-refresh"
	renewedToken   = "renewed-access-token"
	rotatedRefresh = "rotated-refresh"
)

// newBackendStub fakes the auth service with just enough behavior for the
// gateway: fixed token, fixed user, bearer-checked /me.
func newBackendStub(t *testing.T, meCalls *atomic.Int32) *httptest.Server {
	t.Helper()

	user := map[string]any{
		"id":    "01J9ZC3FZV5N8Q2T7W4X6Y8A0B",
		"name":  "Sam Greengrocer",
		"email": "sam@example.com",
		"role":  "USER",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			var body struct{ Email, Password string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "hunter22" {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"token": testToken, "refreshToken": testRefresh, "user": user},
			})
		case "/api/auth/register":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"token": testToken, "refreshToken": testRefresh, "user": user},
			})
		case "/api/auth/refresh":
			var body struct {
				RefreshToken string `json:"refreshToken"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.RefreshToken != testRefresh {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid refresh token"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"token": renewedToken, "refreshToken": rotatedRefresh, "user": user},
			})
		case "/api/auth/logout":
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
		case "/api/auth/me":
			if meCalls != nil {
				meCalls.Add(1)
			}
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid or expired token"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"user": user},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()

	sessions := cache.New(time.Minute)
	t.Cleanup(sessions.Stop)

	router := NewRouter(
		client.New(backendURL),
		sessions,
		168*time.Hour,
		false,
		slogx.New(slogx.Options{Service: "gateway-test", Format: "text", Level: "error"}),
	)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	return cookieByName(resp, SessionCookieName)
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	return cookieByName(resp, RefreshCookieName)
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGatewayLogin(t *testing.T) {
	t.Parallel()

	backend := newBackendStub(t, nil)
	gw := newGateway(t, backend.URL)

	t.Run("sets session cookie and strips tokens", func(t *testing.T) {
		resp, err := http.Post(gw.URL+"/api/auth/login", "application/json",
			strings.NewReader(`{"email":"sam@example.com","password":"hunter22"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		c := sessionCookie(t, resp)
		require.NotNil(t, c)
		require.Equal(t, testToken, c.Value)
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, "/", c.Path)
		require.Equal(t, int((168 * time.Hour).Seconds()), c.MaxAge)

		rc := refreshCookie(t, resp)
		require.NotNil(t, rc)
		require.Equal(t, testRefresh, rc.Value)
		require.True(t, rc.HttpOnly)

		var body struct {
			Data map[string]json.RawMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Contains(t, body.Data, "user")
		require.NotContains(t, body.Data, "token")
		require.NotContains(t, body.Data, "refreshToken")
	})

	t.Run("relays backend rejection verbatim", func(t *testing.T) {
		resp, err := http.Post(gw.URL+"/api/auth/login", "application/json",
			strings.NewReader(`{"email":"sam@example.com","password":"wrong"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Nil(t, sessionCookie(t, resp), "no cookie on failed login")

		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "invalid credentials", body.Message)
	})

	t.Run("backend down answers 502", func(t *testing.T) {
		dead := httptest.NewServer(nil)
		dead.Close()
		gwDown := newGateway(t, dead.URL)

		resp, err := http.Post(gwDown.URL+"/api/auth/login", "application/json",
			strings.NewReader(`{"email":"sam@example.com","password":"hunter22"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestGatewayRegister(t *testing.T) {
	t.Parallel()

	backend := newBackendStub(t, nil)
	gw := newGateway(t, backend.URL)

	resp, err := http.Post(gw.URL+"/api/auth/register", "application/json",
		strings.NewReader(`{"name":"Sam Greengrocer","email":"sam@example.com","password":"hunter22"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	c := sessionCookie(t, resp)
	require.NotNil(t, c)
	require.Equal(t, testToken, c.Value)
	require.True(t, c.HttpOnly)
}

func TestGatewayLogout(t *testing.T) {
	t.Parallel()

	t.Run("clears cookie without one present", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		resp, err := http.Post(gw.URL+"/api/auth/logout", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		c := sessionCookie(t, resp)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
		require.Less(t, c.MaxAge, 0)
	})

	t.Run("clears cookie when backend is unreachable", func(t *testing.T) {
		t.Parallel()

		dead := httptest.NewServer(nil)
		dead.Close()
		gw := newGateway(t, dead.URL)

		req, err := http.NewRequest(http.MethodPost, gw.URL+"/api/auth/logout", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testToken})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.True(t, body.Success)

		c := sessionCookie(t, resp)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
	})
}

func TestGatewayMe(t *testing.T) {
	t.Parallel()

	t.Run("no cookie is 401", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		resp, err := http.Get(gw.URL + "/api/auth/me")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testToken})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data struct {
				User struct {
					Email string `json:"email"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "sam@example.com", body.Data.User.Email)
	})

	t.Run("positive verdicts are cached", func(t *testing.T) {
		t.Parallel()

		var meCalls atomic.Int32
		backend := newBackendStub(t, &meCalls)
		gw := newGateway(t, backend.URL)

		for i := 0; i < 3; i++ {
			req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testToken})

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		require.Equal(t, int32(1), meCalls.Load())
	})

	t.Run("expired token renews through the refresh cookie", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-access-token"})
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: testRefresh})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data struct {
				User struct {
					Email string `json:"email"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "sam@example.com", body.Data.User.Email)

		// Both cookies rolled forward to the rotated pair.
		c := sessionCookie(t, resp)
		require.NotNil(t, c)
		require.Equal(t, renewedToken, c.Value)

		rc := refreshCookie(t, resp)
		require.NotNil(t, rc)
		require.Equal(t, rotatedRefresh, rc.Value)
	})

	t.Run("rejected refresh token ends the session", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-access-token"})
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "spent-or-forged"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		c := sessionCookie(t, resp)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
		require.Less(t, c.MaxAge, 0)

		rc := refreshCookie(t, resp)
		require.NotNil(t, rc)
		require.Empty(t, rc.Value)
		require.Less(t, rc.MaxAge, 0)
	})

	t.Run("rejected token clears the cookie", func(t *testing.T) {
		t.Parallel()

		backend := newBackendStub(t, nil)
		gw := newGateway(t, backend.URL)

		req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-or-forged"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		c := sessionCookie(t, resp)
		require.NotNil(t, c, "dead session cookie should be cleared")
		require.Empty(t, c.Value)
		require.Less(t, c.MaxAge, 0)
	})

	t.Run("unreachable backend keeps the cookie", func(t *testing.T) {
		t.Parallel()

		dead := httptest.NewServer(nil)
		dead.Close()
		gw := newGateway(t, dead.URL)

		req, _ := http.NewRequest(http.MethodGet, gw.URL+"/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testToken})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
		require.Nil(t, sessionCookie(t, resp), "an outage must not end the session")
	})
}
