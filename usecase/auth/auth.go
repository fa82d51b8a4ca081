package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/metrics"
	"github.com/fastygo/blog/internal/password"
	"github.com/fastygo/blog/internal/token"
	appLogger "github.com/fastygo/blog/pkg/logger"
)

const (
	confirmPath = "/api/auth/confirm/"
	resetPath   = "/api/auth/password-reset/"
)

var errLoginHasAt = domain.NewError(domain.ErrCodeInvalid, "login must not contain '@'")

type Config struct {
	// FrontendURL is the base of the links sent by email.
	FrontendURL string
	// TokenTTL applies to session and password reset tokens.
	TokenTTL time.Duration
}

type RegisterInput struct {
	Login    string
	Email    string
	FullName string
	Password string
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *domain.User `json:"user"`
}

type UseCase struct {
	users  Users
	hasher Hasher
	tokens Tokens
	mailer Mailer
	cfg    Config
	logger *zap.Logger
}

func New(users Users, hasher Hasher, tokens Tokens, mailer Mailer, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &UseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
	}
}

// Register creates an unconfirmed account and sends the confirmation link.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (user *domain.User, err error) {
	defer func() { uc.record("register", err) }()

	in.Login = strings.TrimSpace(in.Login)
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Login == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidPayload
	}
	if strings.Contains(in.Login, "@") {
		return nil, errLoginHasAt
	}

	if _, err := uc.users.FindByLoginOrEmail(ctx, in.Login, in.Email); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, uc.fail(ctx, "register", err)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, uc.fail(ctx, "register", err)
	}

	confirmation, err := uc.tokens.Issue(token.EmailClaims(in.Email), token.ConfirmationTTL)
	if err != nil {
		return nil, uc.fail(ctx, "register", err)
	}

	user = &domain.User{
		Login:          in.Login,
		Email:          in.Email,
		PasswordHash:   hash,
		FullName:       in.FullName,
		Role:           domain.RoleUser,
		EmailConfirmed: false,
	}
	user.SetPendingToken(confirmation)

	// the store enforces uniqueness, so a concurrent registration still ends as a duplicate
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, uc.fail(ctx, "register", err)
	}

	if err := uc.mailer.SendConfirmation(ctx, user.Email, uc.cfg.FrontendURL+confirmPath+confirmation); err != nil {
		uc.logger.Warn("confirmation email not sent",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}
	return user, nil
}

// ConfirmEmail consumes a confirmation token. The token must still be the one stored on the
// account, so replaying it after confirmation fails.
func (uc *UseCase) ConfirmEmail(ctx context.Context, confirmation string) (err error) {
	defer func() { uc.record("confirm_email", err) }()

	user, err := uc.userForPendingToken(ctx, "confirm_email", confirmation)
	if err != nil {
		return err
	}

	user.EmailConfirmed = true
	user.ClearPendingToken()
	if err := uc.users.Save(ctx, user); err != nil {
		return uc.fail(ctx, "confirm_email", err)
	}
	return nil
}

// Login resolves the account by login, or by email when the identifier contains '@'.
// Checks run in a fixed order: not found, unconfirmed, wrong password.
func (uc *UseCase) Login(ctx context.Context, identifier, plain string) (result *LoginResult, err error) {
	defer func() { uc.record("login", err) }()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		return nil, domain.ErrInvalidPayload
	}

	var login, email string
	if strings.Contains(identifier, "@") {
		email = normalizeEmail(identifier)
	} else {
		login = identifier
	}

	user, err := uc.users.FindByLoginOrEmail(ctx, login, email)
	if err != nil {
		return nil, uc.fail(ctx, "login", err)
	}
	if !user.EmailConfirmed {
		return nil, domain.ErrEmailUnconfirmed
	}
	if !password.VerifyPassword(user.PasswordHash, plain) {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := uc.tokens.Issue(token.SessionClaims(user.ID, user.Role), uc.cfg.TokenTTL)
	if err != nil {
		return nil, uc.fail(ctx, "login", err)
	}

	return &LoginResult{
		Token:     session,
		ExpiresIn: int64(uc.cfg.TokenTTL.Seconds()),
		User:      user,
	}, nil
}

// Logout only acknowledges. Session tokens stay valid until they expire.
func (uc *UseCase) Logout(ctx context.Context) error {
	uc.record("logout", nil)
	return nil
}

// RequestPasswordReset stores a fresh reset token on the account and mails the link.
// Unknown emails fail before any token is issued.
func (uc *UseCase) RequestPasswordReset(ctx context.Context, email string) (err error) {
	defer func() { uc.record("request_password_reset", err) }()

	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidPayload
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return uc.fail(ctx, "request_password_reset", err)
	}

	reset, err := uc.tokens.Issue(token.EmailClaims(user.Email), uc.cfg.TokenTTL)
	if err != nil {
		return uc.fail(ctx, "request_password_reset", err)
	}

	user.SetPendingToken(reset)
	if err := uc.users.Save(ctx, user); err != nil {
		return uc.fail(ctx, "request_password_reset", err)
	}

	if err := uc.mailer.SendReset(ctx, user.Email, uc.cfg.FrontendURL+resetPath+reset); err != nil {
		uc.logger.Warn("password reset email not sent",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}
	return nil
}

// ConfirmPasswordReset replaces the password and clears the pending token.
func (uc *UseCase) ConfirmPasswordReset(ctx context.Context, reset, newPassword string) (err error) {
	defer func() { uc.record("confirm_password_reset", err) }()

	if newPassword == "" {
		return domain.ErrInvalidPayload
	}

	user, err := uc.userForPendingToken(ctx, "confirm_password_reset", reset)
	if err != nil {
		return err
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return uc.fail(ctx, "confirm_password_reset", err)
	}

	user.PasswordHash = hash
	user.ClearPendingToken()
	if err := uc.users.Save(ctx, user); err != nil {
		return uc.fail(ctx, "confirm_password_reset", err)
	}
	return nil
}

// Identify resolves a bearer token into the identity embedded at login.
func (uc *UseCase) Identify(ctx context.Context, bearer string) (domain.Identity, error) {
	if bearer == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	claims, err := uc.tokens.Verify(bearer)
	if err != nil || !claims.IsSession() {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

func (uc *UseCase) userForPendingToken(ctx context.Context, operation, presented string) (*domain.User, error) {
	claims, err := uc.tokens.Verify(presented)
	if err != nil || !claims.IsEmail() {
		return nil, domain.ErrInvalidToken
	}

	user, err := uc.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, uc.fail(ctx, operation, err)
	}
	if !user.HasPendingToken(presented) {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

// fail passes domain errors through and collapses everything else into OperationFailed.
func (uc *UseCase) fail(ctx context.Context, operation string, err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Error("auth operation failed",
		zap.String("operation", operation),
		zap.Error(err))
	return domain.OperationFailed(operation+" failed", err)
}

func (uc *UseCase) record(operation string, err error) {
	if err == nil {
		metrics.RecordAuth(operation, metrics.ResultOK)
		return
	}
	metrics.RecordAuth(operation, string(domain.CodeOf(err)))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
