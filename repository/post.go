package repository

import (
	"context"

	"github.com/fastygo/blog/domain"
)

type PostFilter struct {
	Status string
	Limit  int
	Offset int
}

type PostRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]domain.Post, int, error)
	Random(ctx context.Context, status string) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	SetCategories(ctx context.Context, postID string, categoryIDs []string) error
	ListByCategory(ctx context.Context, categoryID, status string) ([]domain.Post, error)
}

type CommentRepository interface {
	ListByPost(ctx context.Context, postID string, status string) ([]domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) error
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Category, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type LikeRepository interface {
	ListByPost(ctx context.Context, postID string) ([]domain.Like, error)
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, postID, userID string) error
}
