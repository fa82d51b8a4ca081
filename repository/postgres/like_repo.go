package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

type likeRepository struct {
	db DB
}

func NewLikeRepository(db DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ListByPost(ctx context.Context, postID string) ([]domain.Like, error) {
	const query = `
	SELECT id, post_id, user_id, type, created_at
	FROM likes
	WHERE post_id = $1
	ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(&like.ID, &like.PostID, &like.UserID, &like.Type, &like.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	if like == nil {
		return domain.ErrInvalidPayload
	}
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	if like.Type == "" {
		like.Type = domain.LikeTypeLike
	}

	const query = `
	INSERT INTO likes (id, post_id, user_id, type)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query, like.ID, like.PostID, like.UserID, like.Type).Scan(&like.CreatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateLike
		case isForeignKeyViolation(err):
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrLikeNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}
