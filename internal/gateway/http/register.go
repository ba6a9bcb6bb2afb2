package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

// userEnvelope is what login and register hand to the browser: the user,
// never the tokens.
type userEnvelope struct {
	User json.RawMessage `json:"user"`
}

type RegisterHandler struct {
	Backend *client.BackendClient
	Cookie  cookiePolicy
}

// ServeHTTP forwards the register body to the auth service and starts a
// session for the new account, same contract as login.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload, err := h.Backend.Register(ctx, body)
	if err != nil {
		writeBackendFailure(w, log, err)
		return
	}

	h.Cookie.set(w, payload.Token, payload.RefreshToken)
	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusCreated, userEnvelope{User: payload.User})
}
