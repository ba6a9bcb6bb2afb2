package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

const maxBodyBytes = 1 << 20

type LoginHandler struct {
	Backend *client.BackendClient
	Cookie  cookiePolicy
}

// ServeHTTP forwards the login body to the auth service. On success both
// tokens move into their cookies and only the user reaches the browser.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload, err := h.Backend.Login(ctx, body)
	if err != nil {
		writeBackendFailure(w, log, err)
		return
	}

	h.Cookie.set(w, payload.Token, payload.RefreshToken)
	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, userEnvelope{User: payload.User})
}

// writeBackendFailure relays a backend error response verbatim, or answers
// 502 when the backend could not be reached at all.
func writeBackendFailure(w http.ResponseWriter, log *slog.Logger, err error) {
	var be *client.BackendError
	if errors.As(err, &be) {
		httpx.WriteJSON(w, be.StatusCode, httpx.ErrorBody{
			Message: be.Message,
			Details: be.Details,
		})
		return
	}
	log.Warn("auth backend unreachable", "err", err)
	httpx.WriteError(w, http.StatusBadGateway, "auth service unavailable")
}
