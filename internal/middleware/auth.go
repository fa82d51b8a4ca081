package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/api/transport"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/pkg/httpcontext"
	appLogger "github.com/fastygo/blog/pkg/logger"
)

const identityKey = "auth.identity"

// Identifier resolves a bearer token into the identity embedded at login.
type Identifier interface {
	Identify(ctx context.Context, bearer string) (domain.Identity, error)
}

// Authenticate rejects requests without a valid session token before next runs and attaches
// the resolved identity otherwise.
func Authenticate(identifier Identifier, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = httpcontext.NewAdapter(context.Background(), 0)
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			bearer := extractToken(ctx)
			if bearer == "" {
				reject(ctx, http.StatusUnauthorized, domain.ErrUnauthenticated)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			identity, err := identifier.Identify(stdCtx, bearer)
			cancel()
			if err != nil {
				appLogger.WithRequestID(stdCtx, logger).Debug("rejected bearer token",
					zap.String("path", string(ctx.Path())),
					zap.Error(err))
				reject(ctx, http.StatusUnauthorized, domain.ErrUnauthenticated)
				return
			}

			SetIdentity(ctx, identity)
			next(ctx)
		}
	}
}

// RequireRole lets the request through only when the attached identity has role.
// It must run after Authenticate.
func RequireRole(role domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			identity, ok := IdentityFrom(ctx)
			if !ok {
				reject(ctx, http.StatusUnauthorized, domain.ErrUnauthenticated)
				return
			}
			if identity.Role != role {
				reject(ctx, http.StatusForbidden, domain.ErrForbidden)
				return
			}
			next(ctx)
		}
	}
}

func SetIdentity(ctx *fasthttp.RequestCtx, identity domain.Identity) {
	ctx.SetUserValue(identityKey, identity)
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	identity, ok := ctx.UserValue(identityKey).(domain.Identity)
	return identity, ok
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func reject(ctx *fasthttp.RequestCtx, status int, err *domain.Error) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(transport.FromDomain(err).Bytes())
}
