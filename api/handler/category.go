package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/api/transport"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/pkg/httpcontext"
	categoryUC "github.com/fastygo/blog/usecase/category"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	ListPosts(ctx context.Context, viewer domain.Identity, id string) ([]domain.Post, error)
	Create(ctx context.Context, in categoryUC.Input) (*domain.Category, error)
	Update(ctx context.Context, id string, in categoryUC.Input) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	baseHandler
	uc CategoryService
}

func NewCategoryHandler(uc CategoryService, adapter *httpcontext.Adapter, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List categories
// @Tags categories
// @Router /api/categories [get]
func (h *CategoryHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	categories, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, categories)
}

// @Summary Get category
// @Tags categories
// @Router /api/categories/{category_id} [get]
func (h *CategoryHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	category, err := h.uc.Get(stdCtx, pathParam(ctx, "category_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, category)
}

// @Summary Posts in category
// @Tags categories
// @Router /api/categories/{category_id}/posts [get]
func (h *CategoryHandler) Posts(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	posts, err := h.uc.ListPosts(stdCtx, viewer, pathParam(ctx, "category_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, posts)
}

// @Summary Create category (admin)
// @Tags categories
// @Router /api/categories [post]
func (h *CategoryHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	category, err := h.uc.Create(stdCtx, categoryUC.Input{Title: req.Title, Description: req.Description})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, category)
}

// @Summary Update category (admin)
// @Tags categories
// @Router /api/categories/{category_id} [patch]
func (h *CategoryHandler) Update(ctx *fasthttp.RequestCtx) {
	var req transport.CategoryRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	category, err := h.uc.Update(stdCtx, pathParam(ctx, "category_id"), categoryUC.Input{Title: req.Title, Description: req.Description})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, category)
}

// @Summary Delete category (admin)
// @Tags categories
// @Router /api/categories/{category_id} [delete]
func (h *CategoryHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, pathParam(ctx, "category_id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Category deleted successfully")
}
