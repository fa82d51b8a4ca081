package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/pkg/httpcontext"
)

type UserService interface {
	Me(ctx context.Context, caller domain.Identity) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.PublicUser, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type UserHandler struct {
	baseHandler
	uc UserService
}

func NewUserHandler(uc UserService, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Current user
// @Tags users
// @Router /api/users/me [get]
func (h *UserHandler) Me(ctx *fasthttp.RequestCtx) {
	caller, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Me(stdCtx, caller)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Public user profile
// @Tags users
// @Router /api/users/{user_id} [get]
func (h *UserHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, pathParam(ctx, "user_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary List users (admin)
// @Tags users
// @Router /api/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	limit := parseInt(ctx.QueryArgs().Peek("limit"), 50)
	offset := parseInt(ctx.QueryArgs().Peek("offset"), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx, limit, offset)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}
