package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Endpoint
//	@Description	Exchange a refresh token for a new access token. The refresh token is rotated; the old one stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	true	"refreshToken"
//	@Success		200		{object}	httpx.Envelope{data=AuthResponse}	"token, refreshToken, user"
//	@Failure		401		{object}	httpx.ErrorBody	"invalid refresh token"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	pair, user, err := h.TokenService.Rotate(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		log.Error("refresh failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toAuthResponse(user, accessPair{
		access:    pair.AccessToken,
		refresh:   pair.RefreshToken,
		expiresIn: pair.ExpiresIn,
	}))
}
