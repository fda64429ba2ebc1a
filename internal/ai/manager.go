package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is one simulation tick (20 ticks per second).
const DefaultTickInterval = 50 * time.Millisecond

// TickManager ticks every registered controller on a fixed interval.
// All ticks run on the Start goroutine, which makes it the single writer of
// mob state.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller — objectID → controller
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	controllerCount atomic.Int32
	ticks           atomic.Uint64
}

// NewTickManager creates a tick manager. A non-positive interval means DefaultTickInterval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register registers a controller and starts it.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if _, loaded := m.controllers.LoadOrStore(objectID, controller); loaded {
		slog.Warn("AI controller already registered", "objectID", objectID)
		return
	}
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered", "objectID", objectID)
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	value.(Controller).Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// Start runs the tick loop (blocks until context is canceled or Stop is called).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case <-ticker.C:
			m.TickAll()
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// TickAll ticks every registered controller once.
func (m *TickManager) TickAll() {
	count := 0

	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick()
		count++
		return true
	})
	tick := m.ticks.Add(1)

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "tick", tick, "controllers", count)
	}
}

// Ticks returns the number of completed ticks.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller registered for objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}
