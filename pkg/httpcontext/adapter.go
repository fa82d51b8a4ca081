package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/blog/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyRoute      Key = "route"
)

// Adapter turns a fasthttp request into a stdlib context bounded by the request timeout.
// Contexts derive from the adapter's base so that cancelling it aborts in-flight work.
type Adapter struct {
	base    context.Context
	timeout time.Duration
}

func NewAdapter(base context.Context, timeout time.Duration) *Adapter {
	if base == nil {
		base = context.Background()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{base: base, timeout: timeout}
}

// Attach derives the request context, echoes the request ID and records caller metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(a.base, a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	// later Attach calls for the same request reuse the ID
	ctx.Request.Header.Set(requestIDHeader, reqID)
	ctx.Response.Header.Set(requestIDHeader, reqID)

	stdCtx = context.WithValue(stdCtx, KeyRoute, string(ctx.Method())+" "+string(ctx.Path()))
	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}

	return stdCtx, cancel
}

// Value returns a string stored by Attach, or "".
func Value(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// requestID reuses a client supplied ID when it is printable and reasonably short.
func requestID(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader)))
	if header == "" || len(header) > maxRequestIDLen || strings.ContainsAny(header, "\r\n\t ") {
		return uuid.NewString()
	}
	return header
}
