package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/mail"
	"github.com/fastygo/blog/internal/metrics"
	"github.com/fastygo/blog/repository"
)

// WorkerConfig sizes the delivery pool.
type WorkerConfig struct {
	Workers     int
	MaxRetry    int
	PollTimeout time.Duration
	Backoff     time.Duration
}

// MailWorker consumes the mail queue and delivers messages through a Sender.
type MailWorker struct {
	queue  repository.MailQueue
	sender mail.Sender
	logger *zap.Logger
	cfg    WorkerConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMailWorker(queue repository.MailQueue, sender mail.Sender, logger *zap.Logger, cfg WorkerConfig) *MailWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxRetry <= 0 {
		cfg.MaxRetry = 3
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailWorker{
		queue:  queue,
		sender: sender,
		logger: logger,
		cfg:    cfg,
	}
}

// Start launches the worker goroutines. They run until Stop is called or ctx is done.
func (w *MailWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	w.logger.Info("mail workers started", zap.Int("workers", w.cfg.Workers))
}

// Stop cancels the workers and waits for in-flight deliveries.
func (w *MailWorker) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *MailWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()
	logger := w.logger.With(zap.Int("worker", id))

	for {
		if ctx.Err() != nil {
			return
		}

		msg, err := w.queue.Pop(ctx, w.cfg.PollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			logger.Warn("mail queue pop failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.Backoff):
			}
			continue
		}
		if msg == nil {
			continue
		}

		w.deliver(ctx, *msg)
	}
}

// deliver sends one message. Failures are pushed back for another attempt until MaxRetry,
// after which the message is moved to the dead-letter list.
func (w *MailWorker) deliver(ctx context.Context, msg mail.Message) {
	err := w.sender.Send(ctx, msg)
	if err == nil {
		metrics.RecordMail("sent", metrics.ResultOK)
		w.logger.Debug("mail delivered", zap.String("message_id", msg.ID), zap.String("kind", string(msg.Kind)))
		return
	}

	msg.Attempts++
	metrics.RecordMail("sent", metrics.ResultError)

	if msg.Attempts >= w.cfg.MaxRetry {
		w.logger.Error("dropping mail (max retries reached)",
			zap.String("message_id", msg.ID),
			zap.String("to", msg.To),
			zap.Int("attempts", msg.Attempts),
			zap.Error(err))
		metrics.RecordMail("dropped", metrics.ResultOK)
		if buryErr := w.queue.Bury(ctx, msg); buryErr != nil {
			w.logger.Warn("failed to move mail to dead-letter list", zap.Error(buryErr))
		}
		return
	}

	delay := w.retryDelay(msg.Attempts)
	w.logger.Warn("mail delivery failed, retrying",
		zap.String("message_id", msg.ID),
		zap.Int("attempts", msg.Attempts),
		zap.Duration("delay", delay),
		zap.Error(err))

	// on shutdown the wait is cut short but the message still goes back on the queue
	timer := time.NewTimer(delay)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
	}
	if pushErr := w.queue.Push(context.WithoutCancel(ctx), msg); pushErr != nil {
		w.logger.Error("failed to re-queue mail", zap.String("message_id", msg.ID), zap.Error(pushErr))
	}
}

// retryDelay grows linearly with the number of failed attempts.
func (w *MailWorker) retryDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return w.cfg.Backoff * time.Duration(attempts)
}
