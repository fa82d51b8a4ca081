package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

const userColumns = `id, login, email, password_hash, full_name, role, email_confirmed,
	COALESCE(confirmation_token, ''), created_at, updated_at`

type userRepository struct {
	db DB
}

// NewUserRepository instantiates a Postgres-backed credential store.
func NewUserRepository(db DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) FindByLoginOrEmail(ctx context.Context, login, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
	WHERE ($1 <> '' AND login = $1) OR ($2 <> '' AND email = $2)
	ORDER BY created_at
	LIMIT 1`
	return scanUser(r.db.QueryRow(ctx, query, login, email))
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	const query = `
	INSERT INTO users (id, login, email, password_hash, full_name, role, email_confirmed, confirmation_token)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.FullName,
		string(user.Role),
		user.EmailConfirmed,
		tokenArg(user.ConfirmationToken),
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users
	SET login = $2,
		email = $3,
		password_hash = $4,
		full_name = $5,
		role = $6,
		email_confirmed = $7,
		confirmation_token = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Login,
		user.Email,
		user.PasswordHash,
		user.FullName,
		string(user.Role),
		user.EmailConfirmed,
		tokenArg(user.ConfirmationToken),
	).Scan(&user.UpdatedAt); err != nil {
		switch {
		case isNoRows(err):
			return domain.ErrUserNotFound
		case isUniqueViolation(err):
			return domain.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func tokenArg(token *string) any {
	if token == nil {
		return nil
	}
	return nullString(*token)
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user  domain.User
		role  string
		token string
	)

	if err := row.Scan(
		&user.ID,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&role,
		&user.EmailConfirmed,
		&token,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Role = domain.Role(role)
	if token != "" {
		user.SetPendingToken(token)
	}
	return &user, nil
}
