package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password, returning an access token and refresh token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"email, password"
//	@Success		200		{object}	httpx.Envelope{data=AuthResponse}	"token, refreshToken, user"
//	@Failure		400		{object}	httpx.ErrorBody	"invalid credentials"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := req.validate(); details != nil {
		httpx.WriteValidationError(w, details)
		return
	}

	user, pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Clients match on this exact message.
			httpx.WriteError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toAuthResponse(user, accessPair{
		access:    pair.AccessToken,
		refresh:   pair.RefreshToken,
		expiresIn: pair.ExpiresIn,
	}))
}
