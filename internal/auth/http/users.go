package http

import (
	"net/http"
	"strconv"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List Users Endpoint
//	@Description	Paginated listing of all accounts. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Page size (max 100, default 20)"
//	@Param			offset	query		int	false	"Rows to skip"
//	@Success		200		{object}	httpx.Envelope{data=UserListResponse}	"users, total"
//	@Failure		401		{object}	httpx.ErrorBody	"missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorBody	"insufficient permissions"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/users [get].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	users, total, err := h.UserService.List(ctx, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("listing users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	httpx.WriteData(w, http.StatusOK, UserListResponse{
		Users:  out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
