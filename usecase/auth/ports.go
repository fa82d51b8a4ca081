package auth

import (
	"context"
	"time"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/token"
)

// Users is the slice of the credential store the auth flows need.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByLoginOrEmail(ctx context.Context, login, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
}

type Hasher interface {
	Hash(plain string) (string, error)
}

type Tokens interface {
	Issue(claims token.Claims, ttl time.Duration) (string, error)
	Verify(tokenString string) (token.Claims, error)
}

// Mailer delivers confirmation and reset links. Delivery is fire-and-forget: an error is
// logged by the caller and never undoes the transition that triggered it.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, link string) error
	SendReset(ctx context.Context, to, link string) error
}
