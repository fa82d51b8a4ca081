package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks one dependency and returns nil when it is reachable.
type Probe func(ctx context.Context) error

// Probes lists the dependencies watched by the monitor. Nil probes report offline.
type Probes struct {
	Postgres   Probe
	Redis      Probe
	BufferSize func() (int, error)
	QueueSize  func(ctx context.Context) (int64, error)
}

// Monitor periodically probes postgres, redis and the mail buffer and caches the result.
type Monitor struct {
	probes Probes

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(probes Probes, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		probes:   probes,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start runs an initial check synchronously and keeps refreshing in the background.
func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL && m.status.Redis
}

func (m *Monitor) RedisOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh probes every dependency once and logs transitions.
func (m *Monitor) Refresh() {
	bufferOK, bufferSize := m.checkBuffer()
	status := Status{
		PostgreSQL: m.check("postgres", m.probes.Postgres, 3*time.Second),
		Redis:      m.check("redis", m.probes.Redis, 2*time.Second),
		Buffer:     bufferOK,
		BufferSize: bufferSize,
		LastCheck:  time.Now(),
	}
	if status.Redis {
		status.MailQueue = m.queueSize()
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if !previous.LastCheck.IsZero() {
		if previous.Redis != status.Redis {
			m.logger.Info("redis connectivity changed", zap.Bool("online", status.Redis))
		}
		if previous.PostgreSQL != status.PostgreSQL {
			m.logger.Info("postgres connectivity changed", zap.Bool("online", status.PostgreSQL))
		}
	}
}

func (m *Monitor) check(name string, probe Probe, timeout time.Duration) bool {
	if probe == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := probe(ctx); err != nil {
		m.logger.Debug("dependency check failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkBuffer() (bool, int) {
	if m.probes.BufferSize == nil {
		return false, 0
	}
	size, err := m.probes.BufferSize()
	if err != nil {
		m.logger.Warn("buffer size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}

func (m *Monitor) queueSize() int64 {
	if m.probes.QueueSize == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	size, err := m.probes.QueueSize(ctx)
	if err != nil {
		return 0
	}
	return size
}
