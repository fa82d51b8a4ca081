package post

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type CreateInput struct {
	Title       string
	Content     string
	CategoryIDs []string
}

// UpdateInput is a partial update. Nil fields keep their current value.
type UpdateInput struct {
	Title       *string
	Content     *string
	Status      *string
	CategoryIDs *[]string
}

type UseCase struct {
	posts      repository.PostRepository
	comments   repository.CommentRepository
	categories repository.CategoryRepository
	likes      repository.LikeRepository
	logger     *zap.Logger
}

func New(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	categories repository.CategoryRepository,
	likes repository.LikeRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		posts:      posts,
		comments:   comments,
		categories: categories,
		likes:      likes,
		logger:     logger,
	}
}

// ListPosts returns one page. Admins see every status, everyone else only active posts.
func (uc *UseCase) ListPosts(ctx context.Context, viewer domain.Identity, page, pageSize int) (*domain.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := repository.PostFilter{
		Status: visibleStatus(viewer),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	posts, total, err := uc.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.PostPage{
		Posts:       posts,
		TotalPosts:  total,
		TotalPages:  (total + pageSize - 1) / pageSize,
		CurrentPage: page,
	}, nil
}

// GetPost hides inactive posts from everyone but admins and the author.
func (uc *UseCase) GetPost(ctx context.Context, viewer domain.Identity, id string) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(viewer, post) {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (uc *UseCase) RandomPost(ctx context.Context, viewer domain.Identity) (*domain.Post, error) {
	return uc.posts.Random(ctx, visibleStatus(viewer))
}

func (uc *UseCase) CreatePost(ctx context.Context, author domain.Identity, in CreateInput) (*domain.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrInvalidPayload
	}

	post := &domain.Post{
		UserID:  author.UserID,
		Title:   in.Title,
		Content: in.Content,
		Status:  domain.StatusActive,
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(in.CategoryIDs) > 0 {
		categories, err := uc.assignCategories(ctx, post.ID, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		post.Categories = categories
	}
	return post, nil
}

// UpdatePost applies a partial update. Only the author may edit.
func (uc *UseCase) UpdatePost(ctx context.Context, editor domain.Identity, id string, in UpdateInput) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(editor) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil && *in.Content != "" {
		post.Content = *in.Content
	}
	if in.Status != nil && *in.Status != "" {
		if *in.Status != domain.StatusActive && *in.Status != domain.StatusInactive {
			return nil, domain.ErrInvalidPayload
		}
		post.Status = *in.Status
	}

	if err := uc.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	if in.CategoryIDs != nil {
		categories, err := uc.assignCategories(ctx, post.ID, *in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		post.Categories = categories
	}
	return post, nil
}

func (uc *UseCase) DeletePost(ctx context.Context, editor domain.Identity, id string) error {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(editor) {
		return domain.ErrForbidden
	}
	return uc.posts.Delete(ctx, id)
}

// ListComments returns every comment to admins and only active ones to everyone else.
func (uc *UseCase) ListComments(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Comment, error) {
	if _, err := uc.GetPost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	return uc.comments.ListByPost(ctx, postID, visibleStatus(viewer))
}

func (uc *UseCase) CreateComment(ctx context.Context, author domain.Identity, postID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.GetPost(ctx, author, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:  postID,
		UserID:  author.UserID,
		Content: content,
		Status:  domain.StatusActive,
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *UseCase) ListCategories(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Category, error) {
	if _, err := uc.GetPost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	return uc.categories.ListByPost(ctx, postID)
}

func (uc *UseCase) ListLikes(ctx context.Context, viewer domain.Identity, postID string) ([]domain.Like, error) {
	if _, err := uc.GetPost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	return uc.likes.ListByPost(ctx, postID)
}

// Like records the caller's reaction. A second reaction to the same post is rejected.
func (uc *UseCase) Like(ctx context.Context, user domain.Identity, postID, likeType string) (*domain.Like, error) {
	if likeType == "" {
		likeType = domain.LikeTypeLike
	}
	if likeType != domain.LikeTypeLike && likeType != domain.LikeTypeDislike {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.GetPost(ctx, user, postID); err != nil {
		return nil, err
	}

	like := &domain.Like{PostID: postID, UserID: user.UserID, Type: likeType}
	if err := uc.likes.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

func (uc *UseCase) Unlike(ctx context.Context, user domain.Identity, postID string) error {
	return uc.likes.Delete(ctx, postID, user.UserID)
}

// assignCategories links the post to the given categories, silently skipping unknown ids.
func (uc *UseCase) assignCategories(ctx context.Context, postID string, ids []string) ([]domain.Category, error) {
	categories, err := uc.categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		uc.logger.Debug("ignoring unknown categories",
			zap.String("post_id", postID),
			zap.Int("requested", len(ids)),
			zap.Int("found", len(categories)))
	}

	found := make([]string, 0, len(categories))
	for _, c := range categories {
		found = append(found, c.ID)
	}
	if err := uc.posts.SetCategories(ctx, postID, found); err != nil {
		return nil, err
	}
	return categories, nil
}

func visibleStatus(viewer domain.Identity) string {
	if viewer.IsAdmin() {
		return ""
	}
	return domain.StatusActive
}

func canSee(viewer domain.Identity, post *domain.Post) bool {
	return post.IsActive() || viewer.IsAdmin() || post.OwnedBy(viewer)
}
