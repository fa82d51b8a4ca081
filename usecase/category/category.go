package category

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

type Input struct {
	Title       *string
	Description *string
}

type UseCase struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
	logger     *zap.Logger
}

func New(categories repository.CategoryRepository, posts repository.PostRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		categories: categories,
		posts:      posts,
		logger:     logger,
	}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Category, error) {
	return uc.categories.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categories.GetByID(ctx, id)
}

// ListPosts returns the category's posts, hiding inactive ones from non-admins.
func (uc *UseCase) ListPosts(ctx context.Context, viewer domain.Identity, id string) ([]domain.Post, error) {
	if _, err := uc.categories.GetByID(ctx, id); err != nil {
		return nil, err
	}
	status := domain.StatusActive
	if viewer.IsAdmin() {
		status = ""
	}
	return uc.posts.ListByCategory(ctx, id, status)
}

func (uc *UseCase) Create(ctx context.Context, in Input) (*domain.Category, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrInvalidPayload
	}
	category := &domain.Category{Title: strings.TrimSpace(*in.Title)}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	uc.logger.Info("category created", zap.String("category_id", category.ID))
	return category, nil
}

// Update applies a partial update; nil fields are left untouched.
func (uc *UseCase) Update(ctx context.Context, id string, in Input) (*domain.Category, error) {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.ErrInvalidPayload
		}
		category.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if err := uc.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.categories.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}
