package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

const categoryColumns = `c.id, c.title, COALESCE(c.description, ''), c.created_at, c.updated_at`

type categoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $1`
	return scanCategory(r.db.QueryRow(ctx, query, id))
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories c ORDER BY c.title`
	return queryCategories(ctx, r.db, query)
}

func (r *categoryRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	const query = `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = ANY($1::uuid[]) ORDER BY c.title`
	return queryCategories(ctx, r.db, query, ids)
}

func (r *categoryRepository) ListByPost(ctx context.Context, postID string) ([]domain.Category, error) {
	const query = `SELECT ` + categoryColumns + `
	FROM categories c
	JOIN post_categories pc ON pc.category_id = c.id
	WHERE pc.post_id = $1
	ORDER BY c.title`
	return queryCategories(ctx, r.db, query, postID)
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return domain.ErrInvalidPayload
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO categories (id, title, description)
	VALUES ($1, $2, $3)
	RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		category.ID,
		category.Title,
		nullString(category.Description),
	).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE categories
	SET title = $2,
		description = $3,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.db.QueryRow(ctx, query,
		category.ID,
		category.Title,
		nullString(category.Description),
	).Scan(&category.UpdatedAt); err != nil {
		if isNoRows(err) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func queryCategories(ctx context.Context, db DB, query string, args ...any) ([]domain.Category, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func scanCategory(row scanner) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Title,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}
