package http

import (
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke every refresh token of the authenticated user. Idempotent: logging out twice is not an error.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	SuccessResponse	"success"
//	@Failure		401	{object}	httpx.ErrorBody	"missing or invalid token"
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if err := h.AuthService.Logout(ctx, userID); err != nil {
		slogx.FromContext(ctx).Error("logout failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
