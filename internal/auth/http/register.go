package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new customer account and start a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"name, email, password"
//	@Success		201		{object}	httpx.Envelope{data=AuthResponse}	"token, refreshToken, user"
//	@Failure		400		{object}	httpx.ErrorBody	"validation failed"
//	@Failure		409		{object}	httpx.ErrorBody	"email already registered"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := req.validate(); details != nil {
		httpx.WriteValidationError(w, details)
		return
	}

	user, pair, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email already registered")
			return
		}
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusCreated, toAuthResponse(user, accessPair{
		access:    pair.AccessToken,
		refresh:   pair.RefreshToken,
		expiresIn: pair.ExpiresIn,
	}))
}
