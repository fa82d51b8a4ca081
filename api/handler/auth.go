package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/api/transport"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/pkg/httpcontext"
	authUC "github.com/fastygo/blog/usecase/auth"
)

// AuthService is implemented by usecase/auth.UseCase.
type AuthService interface {
	Register(ctx context.Context, in authUC.RegisterInput) (*domain.User, error)
	ConfirmEmail(ctx context.Context, token string) error
	Login(ctx context.Context, identifier, password string) (*authUC.LoginResult, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type AuthHandler struct {
	baseHandler
	uc AuthService
}

func NewAuthHandler(uc AuthService, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register account
// @Tags auth
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, authUC.RegisterInput{
		Login:    req.Login,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully, please confirm your email.",
		"user":    user,
	})
}

// @Summary Confirm email
// @Tags auth
// @Router /api/auth/confirm/{token} [get]
func (h *AuthHandler) ConfirmEmail(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ConfirmEmail(stdCtx, pathParam(ctx, "token")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Email confirmed successfully")
}

// @Summary Login
// @Tags auth
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Login(stdCtx, req.Identifier(), req.Password)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Logout
// @Tags auth
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Logout successful")
}

// @Summary Request password reset
// @Tags auth
// @Router /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordResetRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RequestPasswordReset(stdCtx, req.Email); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Password reset link sent to email")
}

// @Summary Confirm password reset
// @Tags auth
// @Router /api/auth/password-reset/{confirmToken} [post]
func (h *AuthHandler) ConfirmPasswordReset(ctx *fasthttp.RequestCtx) {
	var req transport.PasswordResetConfirmRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ConfirmPasswordReset(stdCtx, pathParam(ctx, "confirmToken"), req.NewPassword); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Password updated successfully")
}
