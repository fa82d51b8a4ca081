package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/config"
)

// ConfirmationTTL is the lifetime of email confirmation tokens.
const ConfirmationTTL = 7 * 24 * time.Hour

// Claims is the payload carried by every token the service issues. Session tokens set
// UserID and Role, confirmation and reset tokens set Email. The service itself never
// decides which kind a token is.
type Claims struct {
	UserID    string      `json:"id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	Email     string      `json:"email,omitempty"`
	IssuedAt  time.Time   `json:"-"`
	ExpiresAt time.Time   `json:"-"`
}

func SessionClaims(userID string, role domain.Role) Claims {
	return Claims{UserID: userID, Role: role}
}

func EmailClaims(email string) Claims {
	return Claims{Email: email}
}

// IsSession reports whether the claims identify a user.
func (c Claims) IsSession() bool {
	return c.UserID != "" && c.Role.Valid()
}

// IsEmail reports whether the claims carry the email used by confirmation and reset flows.
func (c Claims) IsEmail() bool {
	return c.Email != ""
}

type jwtClaims struct {
	UserID string      `json:"id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	Email  string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 tokens with a single process-wide secret. It keeps no
// state: a token is valid iff its signature checks out and it has not expired.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// New builds the service. An empty secret is a configuration error.
func New(cfg config.JWTConfig) (*Service, error) {
	if cfg.Secret == "" {
		return nil, config.ErrMissingSecret
	}
	return &Service{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// Issue signs claims with issued-at and expiry derived from ttl.
func (s *Service) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := s.now()
	payload := jwtClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
	if err != nil {
		return "", domain.OperationFailed("token signing failed", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure maps to
// domain.ErrInvalidToken.
func (s *Service) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, domain.ErrInvalidToken
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, domain.WrapError(domain.ErrCodeInvalidToken, domain.ErrInvalidToken.Message, err)
	}

	c, ok := parsed.Claims.(*jwtClaims)
	if !ok || c.ExpiresAt == nil {
		return Claims{}, domain.ErrInvalidToken
	}
	// jwt/v4 validates exp against the wall clock; re-check with the injectable clock.
	if !c.ExpiresAt.Time.After(s.now()) {
		return Claims{}, domain.ErrInvalidToken
	}

	out := Claims{
		UserID:    c.UserID,
		Role:      c.Role,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	return out, nil
}
