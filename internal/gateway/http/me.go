package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/gateway/cache"
	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type MeHandler struct {
	Backend  *client.BackendClient
	Sessions *cache.SessionCache
	Cookie   cookiePolicy
}

// ServeHTTP resolves the session cookie to its user. A missing cookie is a
// plain 401. An expired access token is renewed through the refresh cookie
// when one is present; a token the backend rejects outright, or a backend 5xx
// on verification, clears both cookies so the browser stops presenting a dead
// session.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := sessionToken(r)
	if token == "" {
		httpx.NoCache(w)
		httpx.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if user, ok := h.Sessions.Get(token); ok {
		httpx.NoCache(w)
		httpx.WriteData(w, http.StatusOK, userEnvelope{User: user})
		return
	}

	payload, err := h.Backend.Me(ctx, token)
	if err != nil {
		var be *client.BackendError
		if !errors.As(err, &be) {
			// Backend unreachable: keep the cookies, the session may still
			// be good.
			log.Warn("auth backend unreachable", "err", err)
			httpx.WriteError(w, http.StatusBadGateway, "auth service unavailable")
			return
		}

		if be.StatusCode == http.StatusUnauthorized {
			user, rerr := h.renewSession(ctx, w, r)
			if rerr == nil {
				httpx.NoCache(w)
				httpx.WriteData(w, http.StatusOK, userEnvelope{User: user})
				return
			}
			var rbe *client.BackendError
			if !errors.As(rerr, &rbe) && !errors.Is(rerr, errNoRefreshCookie) {
				log.Warn("auth backend unreachable during renewal", "err", rerr)
				httpx.WriteError(w, http.StatusBadGateway, "auth service unavailable")
				return
			}
		} else if be.StatusCode >= http.StatusInternalServerError {
			log.Warn("backend session check failed", "status", be.StatusCode)
		}

		h.Sessions.Delete(token)
		h.Cookie.clear(w)
		httpx.NoCache(w)
		httpx.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	h.Sessions.Set(token, payload.User)
	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, userEnvelope{User: payload.User})
}

var errNoRefreshCookie = errors.New("no refresh cookie")

// renewSession rotates the refresh cookie into a fresh token pair and rolls
// both cookies forward, so an expired access token does not end the session
// before the cookies themselves expire.
func (h *MeHandler) renewSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	rt := refreshToken(r)
	if rt == "" {
		return nil, errNoRefreshCookie
	}

	payload, err := h.Backend.Refresh(ctx, rt)
	if err != nil {
		return nil, err
	}

	h.Cookie.set(w, payload.Token, payload.RefreshToken)
	h.Sessions.Set(payload.Token, payload.User)
	return payload.User, nil
}
