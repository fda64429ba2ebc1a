package model

import (
	"slices"
	"sync"
)

// GoalKind is the behavioral category of an AI goal.
// Goal replacement matches on kind, never on goal names.
type GoalKind int8

const (
	GoalOther GoalKind = iota
	GoalMeleeAttack
	GoalAnimatedAttack
	GoalRangedAttack
	GoalTargetChasing
	GoalTargetSelection
	GoalWander
	GoalLookAround
)

// String returns human-readable goal kind name
func (k GoalKind) String() string {
	switch k {
	case GoalOther:
		return "OTHER"
	case GoalMeleeAttack:
		return "MELEE_ATTACK"
	case GoalAnimatedAttack:
		return "ANIMATED_ATTACK"
	case GoalRangedAttack:
		return "RANGED_ATTACK"
	case GoalTargetChasing:
		return "TARGET_CHASING"
	case GoalTargetSelection:
		return "TARGET_SELECTION"
	case GoalWander:
		return "WANDER"
	case GoalLookAround:
		return "LOOK_AROUND"
	default:
		return "UNKNOWN"
	}
}

// Goal is a unit of mob behavior executed by a GoalSelector.
type Goal interface {
	Kind() GoalKind
	CanUse() bool
	CanContinueToUse() bool
	Start()
	Stop()
	Tick()
}

// WrappedGoal is an installed goal with its priority (lower runs first).
type WrappedGoal struct {
	Priority int
	Goal     Goal
	running  bool
}

// IsRunning reports whether the goal is active.
func (w *WrappedGoal) IsRunning() bool {
	return w.running
}

// GoalSelector runs installed goals in priority order.
type GoalSelector struct {
	mu    sync.Mutex
	goals []*WrappedGoal
}

// NewGoalSelector creates an empty selector.
func NewGoalSelector() *GoalSelector {
	return &GoalSelector{}
}

// AddGoal installs goal with priority.
func (s *GoalSelector) AddGoal(priority int, goal Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = append(s.goals, &WrappedGoal{Priority: priority, Goal: goal})
	slices.SortStableFunc(s.goals, func(a, b *WrappedGoal) int {
		return a.Priority - b.Priority
	})
}

// RemoveGoal stops (if running) and uninstalls every wrapper of goal.
func (s *GoalSelector) RemoveGoal(goal Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = slices.DeleteFunc(s.goals, func(w *WrappedGoal) bool {
		if w.Goal != goal {
			return false
		}
		if w.running {
			w.Goal.Stop()
			w.running = false
		}
		return true
	})
}

// AvailableGoals returns a snapshot of installed goals.
func (s *GoalSelector) AvailableGoals() []WrappedGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WrappedGoal, 0, len(s.goals))
	for _, w := range s.goals {
		out = append(out, *w)
	}
	return out
}

// Count returns the number of installed goals.
func (s *GoalSelector) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.goals)
}

// Tick stops goals that can no longer continue, starts usable ones, and ticks the running set.
func (s *GoalSelector) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.goals {
		if w.running && !w.Goal.CanContinueToUse() {
			w.Goal.Stop()
			w.running = false
		}
	}

	for _, w := range s.goals {
		if !w.running && w.Goal.CanUse() {
			w.Goal.Start()
			w.running = true
		}
	}

	for _, w := range s.goals {
		if w.running {
			w.Goal.Tick()
		}
	}
}
