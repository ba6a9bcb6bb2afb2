package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type PasswordResetHandler struct {
	ResetService *service.PasswordResetService
}

// HandleForgot godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Request a password reset token. Always answers 200 so the response does not reveal whether the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ForgotPasswordRequest	true	"email"
//	@Success		200		{object}	SuccessResponse	"success"
//	@Failure		400		{object}	httpx.ErrorBody	"validation failed"
//	@Router			/api/auth/forgot-password [post].
func (h *PasswordResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateEmail(req.Email); msg != "" {
		httpx.WriteValidationError(w, map[string]string{"email": msg})
		return
	}

	if err := h.ResetService.Request(ctx, req.Email); err != nil {
		// Still 200: a storage hiccup must not become an enumeration oracle.
		slogx.FromContext(ctx).Error("password reset request failed", "err", err)
	}

	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HandleReset godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Consume a reset token and set a new password. The token is single use and all refresh tokens of the account are revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResetPasswordRequest	true	"token, newPassword"
//	@Success		200		{object}	SuccessResponse	"success"
//	@Failure		400		{object}	httpx.ErrorBody	"invalid or expired reset token"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/auth/reset-password [post].
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := req.validate(); details != nil {
		httpx.WriteValidationError(w, details)
		return
	}

	if err := h.ResetService.Reset(ctx, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid or expired reset token")
			return
		}
		slogx.FromContext(ctx).Error("password reset failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "password reset failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
