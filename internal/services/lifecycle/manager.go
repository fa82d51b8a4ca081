package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

type StopFunc func(ctx context.Context) error

type component struct {
	name string
	stop StopFunc
}

// Manager runs long-lived components and stops them in reverse start order.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
	failures   chan error
	stopOnce   sync.Once
	stopErr    error
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout:  timeout,
		logger:   logger,
		failures: make(chan error, 1),
	}
}

// OnStop registers a stop hook for name.
func (m *Manager) OnStop(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component{name: name, stop: stop})
}

// Go runs fn in the background. A non-nil return ends Wait and triggers shutdown.
func (m *Manager) Go(name string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			select {
			case m.failures <- fmt.Errorf("%s: %w", name, err):
			default:
			}
		}
	}()
}

// Wait blocks until ctx ends, SIGINT or SIGTERM arrives, or a component started with Go
// fails, then stops every registered component.
func (m *Manager) Wait(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cause error
	select {
	case <-sigCtx.Done():
		m.logger.Info("shutdown requested")
	case cause = <-m.failures:
		m.logger.Error("component failed, shutting down", zap.Error(cause))
	}

	return errors.Join(cause, m.Stop(context.Background()))
}

// Stop runs the hooks once, newest first, within the shutdown timeout. Later calls return the
// first result.
func (m *Manager) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		m.mu.Lock()
		components := append([]component(nil), m.components...)
		m.mu.Unlock()

		for i := len(components) - 1; i >= 0; i-- {
			c := components[i]
			started := time.Now()
			if err := c.stop(ctx); err != nil {
				m.logger.Error("component stop failed", zap.String("component", c.name), zap.Error(err))
				m.stopErr = errors.Join(m.stopErr, fmt.Errorf("%s: %w", c.name, err))
				continue
			}
			m.logger.Info("component stopped",
				zap.String("component", c.name),
				zap.Duration("took", time.Since(started)))
		}
	})
	return m.stopErr
}
