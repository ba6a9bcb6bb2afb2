package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// MeResponse is the payload inside {"data": ...} for /me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the user the access token belongs to
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=MeResponse}	"user"
//	@Failure		401	{object}	httpx.ErrorBody	"missing or invalid token"
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Valid token for a user that no longer exists.
			httpx.WriteError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		slogx.FromContext(ctx).Error("loading current user failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, MeResponse{User: toUserResponse(user)})
}
