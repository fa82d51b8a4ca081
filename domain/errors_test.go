package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDomainError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrEmailUnconfirmed)

	assert.True(t, IsDomainError(wrapped, ErrCodeEmailUnconfirmed))
	assert.False(t, IsDomainError(wrapped, ErrCodeInvalidCredentials))
	assert.False(t, IsDomainError(errors.New("boom"), ErrCodeNotFound))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, CodeOf(ErrUserNotFound))
	assert.Equal(t, ErrCodeOperationFailed, CodeOf(errors.New("connection refused")))
	assert.Equal(t, ErrCodeDuplicateIdentity, CodeOf(fmt.Errorf("create: %w", ErrDuplicateIdentity)))
}

func TestOperationFailed_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := OperationFailed("registration failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsDomainError(err, ErrCodeOperationFailed))
	assert.Equal(t, "registration failed: dial tcp: refused", err.Error())
}

func TestError_IsMatchesCopies(t *testing.T) {
	cp := NewError(ErrCodeInvalidToken, "invalid or expired token")

	assert.ErrorIs(t, cp, ErrInvalidToken)
	assert.NotErrorIs(t, cp, ErrUnauthenticated)
}

func TestUser_PendingToken(t *testing.T) {
	u := &User{}
	assert.False(t, u.HasPendingToken("abc"))

	u.SetPendingToken("abc")
	assert.True(t, u.HasPendingToken("abc"))
	assert.False(t, u.HasPendingToken("abd"))
	assert.False(t, u.HasPendingToken(""))

	u.ClearPendingToken()
	assert.Nil(t, u.ConfirmationToken)
	assert.False(t, u.HasPendingToken("abc"))
}

func TestPost_OwnedBy(t *testing.T) {
	p := &Post{UserID: "u1"}

	assert.True(t, p.OwnedBy(Identity{UserID: "u1", Role: RoleUser}))
	assert.False(t, p.OwnedBy(Identity{UserID: "u2", Role: RoleAdmin}))
	assert.False(t, (&Post{}).OwnedBy(Identity{}))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("moderator").Valid())
}
