package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/repository"
)

const maxListSize = 100

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// Me returns the caller's own account, including private fields such as email.
func (uc *UseCase) Me(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	return uc.users.FindByID(ctx, caller.UserID)
}

// Get returns the public view of another account.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := u.Public()
	return &public, nil
}

func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > maxListSize {
		limit = maxListSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.users.List(ctx, limit, offset)
}
