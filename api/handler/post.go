package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/api/transport"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/pkg/httpcontext"
	postUC "github.com/fastygo/blog/usecase/post"
)

type PostService interface {
	ListPosts(ctx context.Context, viewer domain.Identity, page, pageSize int) (*domain.PostPage, error)
	GetPost(ctx context.Context, viewer domain.Identity, id string) (*domain.Post, error)
	RandomPost(ctx context.Context, viewer domain.Identity) (*domain.Post, error)
	CreatePost(ctx context.Context, author domain.Identity, in postUC.CreateInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, editor domain.Identity, id string, in postUC.UpdateInput) (*domain.Post, error)
	DeletePost(ctx context.Context, editor domain.Identity, id string) error
	ListComments(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, author domain.Identity, postID, content string) (*domain.Comment, error)
	ListCategories(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Category, error)
	ListLikes(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Like, error)
	Like(ctx context.Context, user domain.Identity, postID, likeType string) (*domain.Like, error)
	Unlike(ctx context.Context, user domain.Identity, postID string) error
}

type PostHandler struct {
	baseHandler
	uc PostService
}

func NewPostHandler(uc PostService, adapter *httpcontext.Adapter, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List posts
// @Tags posts
// @Router /api/posts [get]
func (h *PostHandler) List(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}
	page := parseInt(ctx.QueryArgs().Peek("page"), 1)
	pageSize := parseInt(ctx.QueryArgs().Peek("pageSize"), 10)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.ListPosts(stdCtx, viewer, page, pageSize)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Random post
// @Tags posts
// @Router /api/posts/random [get]
func (h *PostHandler) Random(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.RandomPost(stdCtx, viewer)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, post)
}

// @Summary Get post
// @Tags posts
// @Router /api/posts/{post_id} [get]
func (h *PostHandler) Get(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.GetPost(stdCtx, viewer, pathParam(ctx, "post_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, post)
}

// @Summary Create post
// @Tags posts
// @Router /api/posts [post]
func (h *PostHandler) Create(ctx *fasthttp.RequestCtx) {
	author, ok := h.identity(ctx)
	if !ok {
		return
	}
	var req transport.CreatePostRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.CreatePost(stdCtx, author, postUC.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		CategoryIDs: req.Categories,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, post)
}

// @Summary Update post (author only)
// @Tags posts
// @Router /api/posts/{post_id} [patch]
func (h *PostHandler) Update(ctx *fasthttp.RequestCtx) {
	editor, ok := h.identity(ctx)
	if !ok {
		return
	}
	var req transport.UpdatePostRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	post, err := h.uc.UpdatePost(stdCtx, editor, pathParam(ctx, "post_id"), postUC.UpdateInput{
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		CategoryIDs: req.Categories,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, post)
}

// @Summary Delete post (author only)
// @Tags posts
// @Router /api/posts/{post_id} [delete]
func (h *PostHandler) Delete(ctx *fasthttp.RequestCtx) {
	editor, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeletePost(stdCtx, editor, pathParam(ctx, "post_id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Post deleted successfully")
}

// @Summary List comments
// @Tags posts
// @Router /api/posts/{post_id}/comments [get]
func (h *PostHandler) Comments(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListComments(stdCtx, viewer, pathParam(ctx, "post_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Add comment
// @Tags posts
// @Router /api/posts/{post_id}/comments [post]
func (h *PostHandler) CreateComment(ctx *fasthttp.RequestCtx) {
	author, ok := h.identity(ctx)
	if !ok {
		return
	}
	var req transport.CommentRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comment, err := h.uc.CreateComment(stdCtx, author, pathParam(ctx, "post_id"), req.Content)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}

// @Summary Post categories
// @Tags posts
// @Router /api/posts/{post_id}/categories [get]
func (h *PostHandler) Categories(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	categories, err := h.uc.ListCategories(stdCtx, viewer, pathParam(ctx, "post_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, categories)
}

// @Summary List likes
// @Tags posts
// @Router /api/posts/{post_id}/like [get]
func (h *PostHandler) Likes(ctx *fasthttp.RequestCtx) {
	viewer, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	likes, err := h.uc.ListLikes(stdCtx, viewer, pathParam(ctx, "post_id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, likes)
}

// @Summary Like post
// @Tags posts
// @Router /api/posts/{post_id}/like [post]
func (h *PostHandler) Like(ctx *fasthttp.RequestCtx) {
	user, ok := h.identity(ctx)
	if !ok {
		return
	}
	var req transport.LikeRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	like, err := h.uc.Like(stdCtx, user, pathParam(ctx, "post_id"), req.Type)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, like)
}

// @Summary Remove like
// @Tags posts
// @Router /api/posts/{post_id}/like [delete]
func (h *PostHandler) Unlike(ctx *fasthttp.RequestCtx) {
	user, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Unlike(stdCtx, user, pathParam(ctx, "post_id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Like removed")
}
