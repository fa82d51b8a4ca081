package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

type fakePosts struct {
	byID       map[string]domain.Post
	lastFilter repository.PostFilter
	total      int
	linked     map[string][]string
	deleted    []string
}

func (f *fakePosts) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (f *fakePosts) List(_ context.Context, filter repository.PostFilter) ([]domain.Post, int, error) {
	f.lastFilter = filter
	return []domain.Post{}, f.total, nil
}

func (f *fakePosts) Random(_ context.Context, status string) (*domain.Post, error) {
	for _, p := range f.byID {
		if status == "" || p.Status == status {
			return &p, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (f *fakePosts) Create(_ context.Context, p *domain.Post) error {
	p.ID = "new-post"
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePosts) Update(_ context.Context, p *domain.Post) error {
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakePosts) SetCategories(_ context.Context, postID string, ids []string) error {
	f.linked[postID] = ids
	return nil
}

func (f *fakePosts) ListByCategory(context.Context, string, string) ([]domain.Post, error) {
	return nil, nil
}

type fakeComments struct {
	lastStatus string
	created    []domain.Comment
}

func (f *fakeComments) ListByPost(_ context.Context, _ string, status string) ([]domain.Comment, error) {
	f.lastStatus = status
	return []domain.Comment{}, nil
}

func (f *fakeComments) Create(_ context.Context, c *domain.Comment) error {
	c.ID = "c1"
	f.created = append(f.created, *c)
	return nil
}

type fakeCategories struct {
	known map[string]domain.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := f.known[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (f *fakeCategories) List(context.Context) ([]domain.Category, error) { return nil, nil }

func (f *fakeCategories) ListByIDs(_ context.Context, ids []string) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, id := range ids {
		if c, ok := f.known[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) ListByPost(context.Context, string) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

func (f *fakeCategories) Create(context.Context, *domain.Category) error { return nil }
func (f *fakeCategories) Update(context.Context, *domain.Category) error { return nil }
func (f *fakeCategories) Delete(context.Context, string) error { return nil }

type fakeLikes struct {
	byUser map[string]bool
}

func (f *fakeLikes) ListByPost(context.Context, string) ([]domain.Like, error) {
	return []domain.Like{}, nil
}

func (f *fakeLikes) Create(_ context.Context, l *domain.Like) error {
	if f.byUser[l.PostID+l.UserID] {
		return domain.ErrDuplicateLike
	}
	f.byUser[l.PostID+l.UserID] = true
	return nil
}

func (f *fakeLikes) Delete(_ context.Context, postID, userID string) error {
	if !f.byUser[postID+userID] {
		return domain.ErrLikeNotFound
	}
	delete(f.byUser, postID+userID)
	return nil
}

var (
	alice = domain.Identity{UserID: "alice", Role: domain.RoleUser}
	bob   = domain.Identity{UserID: "bob", Role: domain.RoleUser}
	admin = domain.Identity{UserID: "root", Role: domain.RoleAdmin}
)

type fixture struct {
	uc         *UseCase
	posts      *fakePosts
	comments   *fakeComments
	categories *fakeCategories
	likes      *fakeLikes
}

func newFixture() *fixture {
	f := &fixture{
		posts: &fakePosts{
			byID: map[string]domain.Post{
				"p-active":   {ID: "p-active", UserID: "alice", Title: "Hello", Content: "World", Status: domain.StatusActive},
				"p-inactive": {ID: "p-inactive", UserID: "alice", Title: "Draft", Content: "...", Status: domain.StatusInactive},
			},
			linked: map[string][]string{},
		},
		comments: &fakeComments{},
		categories: &fakeCategories{known: map[string]domain.Category{
			"c-go":   {ID: "c-go", Title: "Go"},
			"c-rust": {ID: "c-rust", Title: "Rust"},
		}},
		likes: &fakeLikes{byUser: map[string]bool{}},
	}
	f.uc = New(f.posts, f.comments, f.categories, f.likes, nil)
	return f
}

func TestListPosts(t *testing.T) {
	tests := []struct {
		name       string
		viewer     domain.Identity
		page       int
		pageSize   int
		total      int
		wantStatus string
		wantLimit  int
		wantOffset int
		wantPages  int
		wantPage   int
	}{
		{name: "defaults for user", viewer: alice, total: 25, wantStatus: domain.StatusActive, wantLimit: 10, wantPages: 3, wantPage: 1},
		{name: "admin sees all", viewer: admin, page: 2, pageSize: 5, total: 11, wantLimit: 5, wantOffset: 5, wantPages: 3, wantPage: 2},
		{name: "page size capped", viewer: bob, page: 1, pageSize: 1000, total: 0, wantStatus: domain.StatusActive, wantLimit: 100, wantPages: 0, wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.posts.total = tt.total

			page, err := f.uc.ListPosts(context.Background(), tt.viewer, tt.page, tt.pageSize)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, f.posts.lastFilter.Status)
			assert.Equal(t, tt.wantLimit, f.posts.lastFilter.Limit)
			assert.Equal(t, tt.wantOffset, f.posts.lastFilter.Offset)
			assert.Equal(t, tt.total, page.TotalPosts)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantPage, page.CurrentPage)
		})
	}
}

func TestGetPost_Visibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.GetPost(ctx, bob, "p-inactive")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	_, err = f.uc.GetPost(ctx, alice, "p-inactive")
	assert.NoError(t, err)

	_, err = f.uc.GetPost(ctx, admin, "p-inactive")
	assert.NoError(t, err)

	_, err = f.uc.GetPost(ctx, bob, "missing")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestRandomPost_HidesInactive(t *testing.T) {
	f := newFixture()
	post, err := f.uc.RandomPost(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, "p-active", post.ID)
}

func TestCreatePost(t *testing.T) {
	f := newFixture()

	post, err := f.uc.CreatePost(context.Background(), bob, CreateInput{
		Title:       " New ",
		Content:     "Body",
		CategoryIDs: []string{"c-go", "c-unknown"},
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", post.UserID)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, domain.StatusActive, post.Status)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, []string{"c-go"}, f.posts.linked[post.ID])

	_, err = f.uc.CreatePost(context.Background(), bob, CreateInput{Title: "", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestUpdatePost(t *testing.T) {
	title := "Renamed"
	status := domain.StatusInactive
	empty := ""
	bad := "archived"
	cats := []string{"c-rust"}

	t.Run("owner partial update", func(t *testing.T) {
		f := newFixture()
		post, err := f.uc.UpdatePost(context.Background(), alice, "p-active", UpdateInput{
			Title:       &title,
			Content:     &empty,
			Status:      &status,
			CategoryIDs: &cats,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", post.Title)
		assert.Equal(t, "World", post.Content)
		assert.Equal(t, domain.StatusInactive, post.Status)
		assert.Equal(t, []string{"c-rust"}, f.posts.linked["p-active"])
	})

	t.Run("non owner forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.UpdatePost(context.Background(), bob, "p-active", UpdateInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin is not the owner", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.UpdatePost(context.Background(), admin, "p-active", UpdateInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.UpdatePost(context.Background(), alice, "p-active", UpdateInput{Status: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})
}

func TestDeletePost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.DeletePost(ctx, bob, "p-active"), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.DeletePost(ctx, alice, "missing"), domain.ErrPostNotFound)
	require.NoError(t, f.uc.DeletePost(ctx, alice, "p-active"))
	assert.Equal(t, []string{"p-active"}, f.posts.deleted)
}

func TestComments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.ListComments(ctx, bob, "p-active")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, f.comments.lastStatus)

	_, err = f.uc.ListComments(ctx, admin, "p-active")
	require.NoError(t, err)
	assert.Equal(t, "", f.comments.lastStatus)

	comment, err := f.uc.CreateComment(ctx, bob, "p-active", "nice")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.UserID)
	assert.Equal(t, domain.StatusActive, comment.Status)

	_, err = f.uc.CreateComment(ctx, bob, "p-active", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = f.uc.CreateComment(ctx, bob, "p-inactive", "hidden")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestLikes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	like, err := f.uc.Like(ctx, bob, "p-active", "")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeTypeLike, like.Type)

	_, err = f.uc.Like(ctx, bob, "p-active", domain.LikeTypeDislike)
	assert.ErrorIs(t, err, domain.ErrDuplicateLike)

	_, err = f.uc.Like(ctx, alice, "p-active", "love")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = f.uc.Like(ctx, bob, "missing", "")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	require.NoError(t, f.uc.Unlike(ctx, bob, "p-active"))
	assert.ErrorIs(t, f.uc.Unlike(ctx, bob, "p-active"), domain.ErrLikeNotFound)

	_, err = f.uc.ListLikes(ctx, bob, "missing")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	// likes on a hidden post are as hidden as the post
	_, err = f.uc.ListLikes(ctx, bob, "p-inactive")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	_, err = f.uc.ListLikes(ctx, alice, "p-inactive")
	assert.NoError(t, err)
	_, err = f.uc.ListLikes(ctx, admin, "p-inactive")
	assert.NoError(t, err)
}

func TestListCategories_FollowsPostVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	categories, err := f.uc.ListCategories(ctx, bob, "p-active")
	require.NoError(t, err)
	assert.NotNil(t, categories)

	_, err = f.uc.ListCategories(ctx, bob, "p-inactive")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	_, err = f.uc.ListCategories(ctx, alice, "p-inactive")
	assert.NoError(t, err)
}
