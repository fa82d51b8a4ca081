package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

const postColumns = `p.id, p.user_id, p.title, p.content, p.status, p.created_at, p.updated_at,
	u.login, u.full_name, u.role`

type postRepository struct {
	db DB
}

// NewPostRepository returns a Postgres-backed implementation of PostRepository.
func NewPostRepository(db DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	categories, err := r.categoriesFor(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Categories = categories
	return post, nil
}

func (r *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]domain.Post, int, error) {
	const countQuery = `SELECT COUNT(*) FROM posts WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, filter.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	WHERE ($1 = '' OR p.status = $1)
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`

	posts, err := r.queryPosts(ctx, query, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		categories, err := r.categoriesFor(ctx, posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Categories = categories
	}
	return posts, total, nil
}

// Random picks one post; an empty status draws from every post.
func (r *postRepository) Random(ctx context.Context, status string) (*domain.Post, error) {
	const query = `SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	WHERE ($1 = '' OR p.status = $1)
	ORDER BY random()
	LIMIT 1`
	return scanPost(r.db.QueryRow(ctx, query, status))
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID, status string) ([]domain.Post, error) {
	const query = `SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	JOIN post_categories pc ON pc.post_id = p.id
	WHERE pc.category_id = $1 AND ($2 = '' OR p.status = $2)
	ORDER BY p.created_at DESC`
	return r.queryPosts(ctx, query, categoryID, status)
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	if post == nil {
		return domain.ErrInvalidPayload
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = domain.StatusActive
	}

	const query = `
	INSERT INTO posts (id, user_id, title, content, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(ctx, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Content,
		post.Status,
	).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	if post == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE posts
	SET title = $2,
		content = $3,
		status = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.db.QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Status,
	).Scan(&post.UpdatedAt); err != nil {
		if isNoRows(err) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrPostNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// SetCategories replaces the post's categories with the subset of ids that exist.
func (r *postRepository) SetCategories(ctx context.Context, postID string, categoryIDs []string) error {
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	const query = `
	WITH removed AS (
		DELETE FROM post_categories
		WHERE post_id = $1 AND NOT (category_id = ANY($2::uuid[]))
	)
	INSERT INTO post_categories (post_id, category_id)
	SELECT $1, c.id FROM categories c WHERE c.id = ANY($2::uuid[])
	ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, postID, categoryIDs)
	return err
}

func (r *postRepository) categoriesFor(ctx context.Context, postID string) ([]domain.Category, error) {
	const query = `SELECT ` + categoryColumns + `
	FROM categories c
	JOIN post_categories pc ON pc.category_id = c.id
	WHERE pc.post_id = $1
	ORDER BY c.title`
	return queryCategories(ctx, r.db, query, postID)
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(row scanner) (*domain.Post, error) {
	var (
		post   domain.Post
		author domain.PublicUser
		role   string
	)

	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.Login,
		&author.FullName,
		&role,
	); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	author.ID = post.UserID
	author.Role = domain.Role(role)
	post.Author = &author
	return &post, nil
}
