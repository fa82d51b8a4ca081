package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/blog/api/transport"
	"github.com/fastygo/blog/domain"
	"github.com/fastygo/blog/internal/middleware"
	"github.com/fastygo/blog/pkg/httpcontext"
	appLogger "github.com/fastygo/blog/pkg/logger"
)

const genericFailure = "internal server error"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(payload.Bytes())
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondSuccess(ctx, status, map[string]string{"message": message})
}

// respondError maps err onto a status code. Failures that are not domain errors are logged
// and reported with a generic message so internal detail never reaches the client.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	status, code := mapError(err)

	message := genericFailure
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		message = dErr.Message
	}
	if status == http.StatusInternalServerError {
		appLogger.WithRequestID(stdCtx, h.logger).Error("request failed",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, message, nil))
}

// identity returns the caller attached by the auth middleware, answering 401 when absent.
func (h baseHandler) identity(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.FromDomain(domain.ErrUnauthenticated))
	}
	return identity, ok
}

func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := transport.Decode(ctx.PostBody(), dst); err != nil {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		h.respondError(ctx, stdCtx, err)
		return false
	}
	return true
}

func mapError(err error) (int, string) {
	code := domain.CodeOf(err)
	switch code {
	case domain.ErrCodeDuplicateIdentity, domain.ErrCodeInvalid, domain.ErrCodeInvalidToken:
		return http.StatusBadRequest, string(code)
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, string(code)
	case domain.ErrCodeInvalidCredentials, domain.ErrCodeUnauthenticated:
		return http.StatusUnauthorized, string(code)
	case domain.ErrCodeEmailUnconfirmed, domain.ErrCodeForbidden:
		return http.StatusForbidden, string(code)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeOperationFailed)
	}
}

func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

func parseInt(value []byte, fallback int) int {
	if v, err := strconv.Atoi(string(value)); err == nil {
		return v
	}
	return fallback
}
