package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"accountsapi/internal/core/port"
)

var ErrManagerClosed = errors.New("connection pool manager is closed")

// Driver describes how to create, check and dispose a pool of type P.
type Driver[P any] struct {
	Name    string
	Open    func(ctx context.Context) (P, error)
	Close   func(pool P) error
	Ping    func(ctx context.Context, pool P) error
	IsFatal func(err error) bool
}

type settings struct {
	logger   *zap.Logger
	observer port.PoolObserver
}

type Option func(*settings)

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithObserver(observer port.PoolObserver) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// Manager owns the process-wide pool. The pool is opened on first use and
// shared by every caller until a fatal error discards it; the next caller
// then opens a fresh one.
type Manager[P any] struct {
	driver   Driver[P]
	logger   *zap.Logger
	observer port.PoolObserver

	mu         sync.Mutex
	pool       P
	ready      bool
	closed     bool
	generation uint64
}

func NewManager[P any](driver Driver[P], opts ...Option) *Manager[P] {
	s := settings{logger: zap.NewNop()}

	for _, opt := range opts {
		opt(&s)
	}

	if driver.IsFatal == nil {
		driver.IsFatal = IsFatal
	}

	return &Manager[P]{
		driver:   driver,
		logger:   s.logger.With(zap.String("driver", driver.Name)),
		observer: s.observer,
	}
}

func (m *Manager[P]) Driver() string {
	return m.driver.Name
}

// Get returns the shared pool, opening it if needed. A failed open is not
// remembered, so the following call tries again.
func (m *Manager[P]) Get(ctx context.Context) (P, error) {
	pool, _, err := m.acquire(ctx)
	return pool, err
}

// Do runs fn against the shared pool. When fn fails with an error the driver
// considers fatal, the pool that produced it is closed and forgotten.
func (m *Manager[P]) Do(ctx context.Context, fn func(ctx context.Context, pool P) error) error {
	pool, generation, err := m.acquire(ctx)

	if err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}

	if err := fn(ctx, pool); err != nil {
		if m.driver.IsFatal(err) {
			m.discard(generation, err)
		}

		return fmt.Errorf("database query failed: %w", err)
	}

	return nil
}

func (m *Manager[P]) Ping(ctx context.Context) error {
	return m.Do(ctx, func(ctx context.Context, pool P) error {
		if m.driver.Ping == nil {
			return nil
		}

		return m.driver.Ping(ctx, pool)
	})
}

// Invalidate drops the current pool, if any.
func (m *Manager[P]) Invalidate(reason error) {
	m.mu.Lock()
	generation := m.generation
	m.mu.Unlock()

	m.discard(generation, reason)
}

func (m *Manager[P]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	if !m.ready {
		return nil
	}

	pool := m.pool
	m.reset()

	m.logger.Info("Connection pool closed")

	return m.closePool(pool)
}

func (m *Manager[P]) acquire(ctx context.Context) (P, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero P

	if m.closed {
		return zero, 0, ErrManagerClosed
	}

	if m.ready {
		return m.pool, m.generation, nil
	}

	pool, err := m.driver.Open(ctx)

	if err != nil {
		m.logger.Error("Failed to create connection pool", zap.Error(err))
		return zero, 0, fmt.Errorf("open %s pool: %w", m.driver.Name, err)
	}

	m.pool = pool
	m.ready = true
	m.generation++

	m.logger.Info("Connection pool created", zap.Uint64("generation", m.generation))

	if m.observer != nil {
		m.observer.PoolCreated(m.driver.Name)
	}

	return pool, m.generation, nil
}

// discard forgets the pool of the given generation. A failure reported by an
// older pool never touches the one that replaced it.
func (m *Manager[P]) discard(generation uint64, reason error) {
	m.mu.Lock()

	if !m.ready || m.generation != generation {
		m.mu.Unlock()
		return
	}

	pool := m.pool
	m.reset()
	m.mu.Unlock()

	m.logger.Error("Connection pool discarded",
		zap.Uint64("generation", generation),
		zap.Error(reason))

	if m.observer != nil {
		m.observer.PoolDiscarded(m.driver.Name, reason)
	}

	if err := m.closePool(pool); err != nil {
		m.logger.Warn("Failed to close discarded pool", zap.Error(err))
	}
}

func (m *Manager[P]) reset() {
	var zero P

	m.pool = zero
	m.ready = false
}

func (m *Manager[P]) closePool(pool P) error {
	if m.driver.Close == nil {
		return nil
	}

	return m.driver.Close(pool)
}
