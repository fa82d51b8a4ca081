package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

var (
	postRowColumns     = []string{"id", "user_id", "title", "content", "status", "created_at", "updated_at", "login", "full_name", "role"}
	categoryRowColumns = []string{"id", "title", "description", "created_at", "updated_at"}
)

func TestPostRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`WHERE p.id = \$1`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(postRowColumns).
			AddRow("p1", "u1", "Hello", "World", "active", now, now, "alice", "Alice A", "user"))
	mock.ExpectQuery(`JOIN post_categories pc ON pc.category_id = c.id`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(categoryRowColumns).
			AddRow("c1", "Go", "", now, now))

	post, err := NewPostRepository(mock).GetByID(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Login)
	assert.Equal(t, "u1", post.Author.ID)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, "Go", post.Categories[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM posts p`).WithArgs("p1").WillReturnError(pgx.ErrNoRows)

	_, err = NewPostRepository(mock).GetByID(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM posts`).
		WithArgs("active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`LIMIT \$2 OFFSET \$3`).
		WithArgs("active", 10, 10).
		WillReturnRows(pgxmock.NewRows(postRowColumns).
			AddRow("p11", "u1", "Eleven", "", "active", now, now, "alice", "Alice A", "user").
			AddRow("p12", "u2", "Twelve", "", "active", now, now, "bob", "Bob B", "user"))
	mock.ExpectQuery(`JOIN post_categories pc`).WithArgs("p11").WillReturnRows(pgxmock.NewRows(categoryRowColumns))
	mock.ExpectQuery(`JOIN post_categories pc`).WithArgs("p12").WillReturnRows(pgxmock.NewRows(categoryRowColumns))

	posts, total, err := NewPostRepository(mock).List(context.Background(), repository.PostFilter{
		Status: "active",
		Limit:  10,
		Offset: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, posts, 2)
	assert.Equal(t, "bob", posts[1].Author.Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  pgconn.CommandTag
		wantErr error
	}{
		{name: "deleted", result: pgxmock.NewResult("DELETE", 1)},
		{name: "missing", result: pgxmock.NewResult("DELETE", 0), wantErr: domain.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).WithArgs("p1").WillReturnResult(tt.result)

			err = NewPostRepository(mock).Delete(context.Background(), "p1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLikeRepository_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO likes`).
		WithArgs(pgxmock.AnyArg(), "p1", "u1", domain.LikeTypeLike).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err = NewLikeRepository(mock).Create(context.Background(), &domain.Like{PostID: "p1", UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLike)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListByIDs_Empty(t *testing.T) {
	categories, err := NewCategoryRepository(nil).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestPostRepository_MalformedIDIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE p.id = \$1`).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})

	repo := NewPostRepository(mock)
	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "not-a-uuid"), domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
