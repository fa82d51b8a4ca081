package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/infrastructure/buffer"
	"github.com/fastygo/blog/internal/mail"
	"github.com/fastygo/blog/internal/metrics"
	"github.com/fastygo/blog/repository"
)

// MailDispatcher hands auth emails to the delivery pipeline. Messages go to the Redis queue and
// fall back to the local buffer when the queue cannot be reached.
type MailDispatcher struct {
	queue  repository.MailQueue
	store  *buffer.Store
	logger *zap.Logger
}

func NewMailDispatcher(queue repository.MailQueue, store *buffer.Store, logger *zap.Logger) *MailDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailDispatcher{
		queue:  queue,
		store:  store,
		logger: logger,
	}
}

func (d *MailDispatcher) SendConfirmation(ctx context.Context, to, link string) error {
	return d.dispatch(ctx, mail.KindConfirmation, to, link)
}

func (d *MailDispatcher) SendReset(ctx context.Context, to, link string) error {
	return d.dispatch(ctx, mail.KindPasswordReset, to, link)
}

func (d *MailDispatcher) dispatch(ctx context.Context, kind mail.Kind, to, link string) error {
	msg, err := mail.NewMessage(kind, to, link)
	if err != nil {
		return err
	}

	var pushErr error
	if d.queue != nil {
		if pushErr = d.queue.Push(ctx, msg); pushErr == nil {
			metrics.RecordMail("queued", metrics.ResultOK)
			return nil
		}
		metrics.RecordMail("queued", metrics.ResultError)
		d.logger.Warn("mail queue unavailable, buffering message",
			zap.String("message_id", msg.ID),
			zap.String("kind", string(kind)),
			zap.Error(pushErr))
	} else {
		pushErr = errors.New("mail queue not configured")
	}

	if d.store == nil {
		return pushErr
	}
	if err := d.store.Put(msg, pushErr.Error()); err != nil {
		metrics.RecordMail("buffered", metrics.ResultError)
		return errors.Join(pushErr, err)
	}
	metrics.RecordMail("buffered", metrics.ResultOK)
	return nil
}
