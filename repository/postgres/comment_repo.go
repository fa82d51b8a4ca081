package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

type commentRepository struct {
	db DB
}

func NewCommentRepository(db DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// ListByPost returns the post's comments; an empty status returns every comment.
func (r *commentRepository) ListByPost(ctx context.Context, postID string, status string) ([]domain.Comment, error) {
	const query = `
	SELECT c.id, c.post_id, c.user_id, c.content, c.status, c.created_at, c.updated_at,
		u.login, u.full_name, u.role
	FROM comments c
	JOIN users u ON u.id = c.user_id
	WHERE c.post_id = $1 AND ($2 = '' OR c.status = $2)
	ORDER BY c.created_at
	`
	rows, err := r.db.Query(ctx, query, postID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var (
			c      domain.Comment
			author domain.PublicUser
			role   string
		)
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.UserID,
			&c.Content,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
			&author.Login,
			&author.FullName,
			&role,
		); err != nil {
			return nil, err
		}
		author.ID = c.UserID
		author.Role = domain.Role(role)
		c.Author = &author
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidPayload
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.Status == "" {
		comment.Status = domain.StatusActive
	}

	const query = `
	INSERT INTO comments (id, post_id, user_id, content, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(ctx, query,
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.Status,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}
