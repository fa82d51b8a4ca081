package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/infrastructure/buffer"
	"github.com/fastygo/blog/internal/metrics"
	"github.com/fastygo/blog/repository"
)

// QueueHealth reports whether the mail queue backend is reachable.
type QueueHealth interface {
	RedisOnline() bool
}

// ProcessorConfig controls how often the buffer is drained and how long entries are kept.
type ProcessorConfig struct {
	Interval  time.Duration
	BatchSize int
	MaxAge    time.Duration
}

// BufferProcessor moves parked messages back onto the mail queue once Redis is reachable again.
type BufferProcessor struct {
	store   *buffer.Store
	queue   repository.MailQueue
	monitor QueueHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	queue repository.MailQueue,
	monitor QueueHealth,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAge <= 0 {
		// links inside older messages have expired anyway
		cfg.MaxAge = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:   store,
		queue:   queue,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := bp.Drain(ctx); err != nil {
			bp.logger.Error("mail buffer drain failed", zap.Error(err))
		}
	})
	_, _ = bp.cron.AddFunc("@hourly", func() {
		if removed, err := bp.store.Purge(time.Now().Add(-bp.cfg.MaxAge)); err != nil {
			bp.logger.Error("mail buffer purge failed", zap.Error(err))
		} else if removed > 0 {
			bp.logger.Warn("purged expired buffered mail", zap.Int("count", removed))
		}
	})

	return bp
}

func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("mail buffer processor started", zap.Duration("interval", bp.cfg.Interval))
}

func (bp *BufferProcessor) Stop(ctx context.Context) error {
	if bp == nil || bp.cron == nil {
		return nil
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Drain re-queues up to one batch of buffered messages and returns how many were moved.
// It stops at the first push failure so ordering is kept.
func (bp *BufferProcessor) Drain(ctx context.Context) (int, error) {
	if bp == nil || bp.store == nil || bp.queue == nil {
		return 0, nil
	}
	if bp.monitor != nil && !bp.monitor.RedisOnline() {
		bp.logger.Debug("skipping mail buffer drain (redis offline)")
		return 0, nil
	}

	entries, err := bp.store.Pending(bp.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, entry := range entries {
		if err := bp.queue.Push(ctx, entry.Message); err != nil {
			bp.logger.Warn("re-queue of buffered mail failed",
				zap.String("message_id", entry.Message.ID),
				zap.Error(err))
			break
		}
		if err := bp.store.Remove(entry); err != nil {
			bp.logger.Warn("failed to remove re-queued mail from buffer",
				zap.String("message_id", entry.Message.ID),
				zap.Error(err))
		}
		metrics.RecordMail("requeued", metrics.ResultOK)
		moved++
	}

	metrics.SetBufferSize(bp.Size())
	if moved > 0 {
		bp.logger.Info("buffered mail re-queued", zap.Int("count", moved))
	}
	return moved, nil
}

// Size returns the number of buffered messages.
func (bp *BufferProcessor) Size() int {
	if bp == nil || bp.store == nil {
		return 0
	}
	size, err := bp.store.Size()
	if err != nil {
		return 0
	}
	return size
}
