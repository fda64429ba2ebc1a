package spawn

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RespawnTask is a scheduled respawn of a point.
type RespawnTask struct {
	Point       Point
	RespawnTime time.Time
}

// RespawnTaskManager removes dead mobs and respawns their points after a delay.
type RespawnTaskManager struct {
	factory  *Factory
	delay    time.Duration
	interval time.Duration

	mu    sync.RWMutex
	tasks map[int64]*RespawnTask // pointID → task
}

// NewRespawnTaskManager creates a manager that respawns after delay.
func NewRespawnTaskManager(factory *Factory, delay time.Duration) *RespawnTaskManager {
	return &RespawnTaskManager{
		factory:  factory,
		delay:    delay,
		interval: time.Second,
		tasks:    make(map[int64]*RespawnTask),
	}
}

// Start runs the manager until ctx is canceled.
func (m *RespawnTaskManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("respawn task manager started", "interval", m.interval, "delay", m.delay)

	for {
		select {
		case <-ctx.Done():
			slog.Info("respawn task manager stopping")
			return nil
		case now := <-ticker.C:
			m.Process(now)
		}
	}
}

// Process despawns dead mobs, scheduling their points, then respawns due points.
func (m *RespawnTaskManager) Process(now time.Time) {
	for _, id := range m.factory.DeadMobs() {
		if pt, ok := m.factory.Despawn(id); ok {
			m.Schedule(pt, now.Add(m.delay))
		}
	}

	for _, task := range m.takeDue(now) {
		if _, err := m.factory.Spawn(task.Point); err != nil {
			slog.Error("respawn failed",
				"pointID", task.Point.ID,
				"templateID", task.Point.TemplateID,
				"error", err)
		}
	}
}

// Schedule respawns pt at the given time.
func (m *RespawnTaskManager) Schedule(pt Point, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[pt.ID] = &RespawnTask{Point: pt, RespawnTime: at}

	slog.Debug("respawn scheduled",
		"pointID", pt.ID,
		"templateID", pt.TemplateID,
		"respawnTime", at.Format(time.RFC3339))
}

// Cancel drops a scheduled respawn.
func (m *RespawnTaskManager) Cancel(pointID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, pointID)
}

func (m *RespawnTaskManager) takeDue(now time.Time) []*RespawnTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	var due []*RespawnTask
	for id, task := range m.tasks {
		if !now.Before(task.RespawnTime) {
			due = append(due, task)
			delete(m.tasks, id)
		}
	}
	return due
}

// TaskCount returns number of scheduled respawns.
func (m *RespawnTaskManager) TaskCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// Task returns the scheduled respawn of a point.
func (m *RespawnTaskManager) Task(pointID int64) (*RespawnTask, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[pointID]
	return task, ok
}
