package repository

import (
	"context"

	"github.com/fastygo/blog/domain"
)

// UserRepository is the credential store. Implementations must enforce login and email
// uniqueness atomically and report violations as domain.ErrDuplicateIdentity.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByLoginOrEmail matches either column; an empty argument matches nothing.
	FindByLoginOrEmail(ctx context.Context, login, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
}
