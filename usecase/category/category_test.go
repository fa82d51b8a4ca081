package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

type fakeCategories struct {
	repository.CategoryRepository
	known   map[string]domain.Category
	created *domain.Category
	updated *domain.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := f.known[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (f *fakeCategories) Create(_ context.Context, c *domain.Category) error {
	c.ID = "c-new"
	f.created = c
	return nil
}

func (f *fakeCategories) Update(_ context.Context, c *domain.Category) error {
	f.updated = c
	return nil
}

type fakePosts struct {
	repository.PostRepository
	lastStatus string
}

func (f *fakePosts) ListByCategory(_ context.Context, _ string, status string) ([]domain.Post, error) {
	f.lastStatus = status
	return []domain.Post{}, nil
}

func newUseCase() (*UseCase, *fakeCategories, *fakePosts) {
	categories := &fakeCategories{known: map[string]domain.Category{
		"c-go": {ID: "c-go", Title: "Go", Description: "gophers"},
	}}
	posts := &fakePosts{}
	return New(categories, posts, nil), categories, posts
}

func TestCreate(t *testing.T) {
	uc, categories, _ := newUseCase()
	title := "  Rust "
	desc := "crabs"

	created, err := uc.Create(context.Background(), Input{Title: &title, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Rust", created.Title)
	assert.Equal(t, "crabs", categories.created.Description)

	blank := " "
	_, err = uc.Create(context.Background(), Input{Title: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = uc.Create(context.Background(), Input{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestUpdate(t *testing.T) {
	uc, categories, _ := newUseCase()
	title := "Golang"

	updated, err := uc.Update(context.Background(), "c-go", Input{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Title)
	assert.Equal(t, "gophers", categories.updated.Description)

	_, err = uc.Update(context.Background(), "missing", Input{Title: &title})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestListPosts(t *testing.T) {
	uc, _, posts := newUseCase()
	ctx := context.Background()

	_, err := uc.ListPosts(ctx, domain.Identity{UserID: "u1", Role: domain.RoleUser}, "c-go")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, posts.lastStatus)

	_, err = uc.ListPosts(ctx, domain.Identity{UserID: "a1", Role: domain.RoleAdmin}, "c-go")
	require.NoError(t, err)
	assert.Empty(t, posts.lastStatus)

	_, err = uc.ListPosts(ctx, domain.Identity{}, "missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
