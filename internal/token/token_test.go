package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/config"
)

func newService(t *testing.T, secret string) *Service {
	t.Helper()
	svc, err := New(config.JWTConfig{Secret: secret, Issuer: "blog-test"})
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresSecret(t *testing.T) {
	svc, err := New(config.JWTConfig{})
	require.ErrorIs(t, err, config.ErrMissingSecret)
	assert.Nil(t, svc)
}

func TestIssueVerify_Session(t *testing.T) {
	svc := newService(t, "secret")

	tok, err := svc.Issue(SessionClaims("u1", domain.RoleAdmin), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Empty(t, claims.Email)
	assert.True(t, claims.IsSession())
	assert.False(t, claims.IsEmail())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)
}

func TestIssueVerify_Email(t *testing.T) {
	svc := newService(t, "secret")

	tok, err := svc.Issue(EmailClaims("alice@x.com"), ConfirmationTTL)
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.True(t, claims.IsEmail())
	assert.False(t, claims.IsSession())
}

func TestVerify_Failures(t *testing.T) {
	svc := newService(t, "secret")
	other := newService(t, "other-secret")

	expired, err := svc.Issue(SessionClaims("u1", domain.RoleUser), -time.Second)
	require.NoError(t, err)

	foreign, err := other.Issue(SessionClaims("u1", domain.RoleUser), time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "u1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidToken))
		})
	}
}

func TestVerify_ExpiresWithClock(t *testing.T) {
	svc := newService(t, "secret")

	tok, err := svc.Issue(SessionClaims("u1", domain.RoleUser), time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
