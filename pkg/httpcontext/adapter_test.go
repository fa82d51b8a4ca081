package httpcontext

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/blog/pkg/logger"
)

func TestAdapter_AttachRequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantEcho bool
	}{
		{name: "client id reused", header: "req-42", wantEcho: true},
		{name: "missing id generated"},
		{name: "oversized id replaced", header: strings.Repeat("x", 200)},
		{name: "id with spaces replaced", header: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &fasthttp.RequestCtx{}
			ctx.Request.Header.SetMethod("GET")
			ctx.Request.SetRequestURI("/api/posts")
			if tt.header != "" {
				ctx.Request.Header.Set("X-Request-ID", tt.header)
			}

			stdCtx, cancel := NewAdapter(context.Background(), time.Second).Attach(ctx)
			defer cancel()

			got := appLogger.RequestID(stdCtx)
			require.NotEmpty(t, got)
			assert.Equal(t, got, string(ctx.Response.Header.Peek("X-Request-ID")))
			if tt.wantEcho {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
			assert.Equal(t, "GET /api/posts", Value(stdCtx, KeyRoute))
		})
	}
}

func TestAdapter_DeadlineAndBase(t *testing.T) {
	base, stop := context.WithCancel(context.Background())
	adapter := NewAdapter(base, time.Minute)

	stdCtx, cancel := adapter.Attach(&fasthttp.RequestCtx{})
	defer cancel()

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	stop()
	assert.ErrorIs(t, stdCtx.Err(), context.Canceled)
}

func TestNewAdapter_Defaults(t *testing.T) {
	adapter := NewAdapter(nil, 0)
	assert.Equal(t, 5*time.Second, adapter.timeout)
	assert.NotNil(t, adapter.base)
}

func TestAdapter_RequestIDStableAcrossAttach(t *testing.T) {
	adapter := NewAdapter(context.Background(), time.Second)
	ctx := &fasthttp.RequestCtx{}

	first, cancel := adapter.Attach(ctx)
	cancel()
	second, cancel := adapter.Attach(ctx)
	cancel()

	assert.NotEmpty(t, appLogger.RequestID(first))
	assert.Equal(t, appLogger.RequestID(first), appLogger.RequestID(second))
}
