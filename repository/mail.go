package repository

import (
	"context"
	"time"

	"github.com/fastygo/blog/internal/mail"
)

// MailQueue is the shared outbox that mail workers consume.
type MailQueue interface {
	Push(ctx context.Context, msg mail.Message) error
	// Pop blocks up to timeout and returns nil when nothing arrived.
	Pop(ctx context.Context, timeout time.Duration) (*mail.Message, error)
	// Bury moves a message that exhausted its retries to the dead-letter list.
	Bury(ctx context.Context, msg mail.Message) error
	Len(ctx context.Context) (int64, error)
}
