package http

import (
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/gateway/cache"
	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type LogoutHandler struct {
	Backend  *client.BackendClient
	Sessions *cache.SessionCache
	Cookie   cookiePolicy
}

type successBody struct {
	Success bool `json:"success"`
}

// ServeHTTP ends the browser session. The cookie is cleared unconditionally:
// a missing cookie, a dead backend, or a rejected revocation must all still
// leave the browser logged out.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if token := sessionToken(r); token != "" {
		h.Sessions.Delete(token)
		if err := h.Backend.Logout(ctx, token); err != nil {
			slogx.FromContext(ctx).Warn("backend logout failed", "err", err)
		}
	}

	h.Cookie.clear(w)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, successBody{Success: true})
}
