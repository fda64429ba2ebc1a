package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGoal struct {
	kind      GoalKind
	usable    bool
	started   int
	stopped   int
	ticks     int
	keepGoing bool
}

func (g *stubGoal) Kind() GoalKind         { return g.kind }
func (g *stubGoal) CanUse() bool           { return g.usable }
func (g *stubGoal) CanContinueToUse() bool { return g.keepGoing }
func (g *stubGoal) Start()                 { g.started++ }
func (g *stubGoal) Stop()                  { g.stopped++ }
func (g *stubGoal) Tick()                  { g.ticks++ }

func TestGoalSelector_AddGoal_SortsByPriority(t *testing.T) {
	s := NewGoalSelector()
	low := &stubGoal{kind: GoalWander}
	high := &stubGoal{kind: GoalMeleeAttack}

	s.AddGoal(5, low)
	s.AddGoal(1, high)

	goals := s.AvailableGoals()
	require.Len(t, goals, 2)
	assert.Equal(t, 1, goals[0].Priority)
	assert.Equal(t, GoalMeleeAttack, goals[0].Goal.Kind())
	assert.Equal(t, 5, goals[1].Priority)
}

func TestGoalSelector_Tick_Lifecycle(t *testing.T) {
	s := NewGoalSelector()
	g := &stubGoal{usable: true, keepGoing: true}
	s.AddGoal(0, g)

	s.Tick()
	assert.Equal(t, 1, g.started)
	assert.Equal(t, 1, g.ticks)

	s.Tick()
	assert.Equal(t, 1, g.started, "running goal is not restarted")
	assert.Equal(t, 2, g.ticks)

	g.keepGoing = false
	g.usable = false
	s.Tick()
	assert.Equal(t, 1, g.stopped)
	assert.Equal(t, 2, g.ticks)
}

func TestGoalSelector_RemoveGoal_StopsRunning(t *testing.T) {
	s := NewGoalSelector()
	g := &stubGoal{usable: true, keepGoing: true}
	other := &stubGoal{kind: GoalLookAround}
	s.AddGoal(0, g)
	s.AddGoal(1, other)
	s.Tick()

	s.RemoveGoal(g)

	assert.Equal(t, 1, g.stopped)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, GoalLookAround, s.AvailableGoals()[0].Goal.Kind())
}

func TestGoalSelector_RemoveGoal_Unknown(t *testing.T) {
	s := NewGoalSelector()
	s.AddGoal(0, &stubGoal{})

	s.RemoveGoal(&stubGoal{})
	assert.Equal(t, 1, s.Count())
}

func TestGoalKind_String(t *testing.T) {
	assert.Equal(t, "MELEE_ATTACK", GoalMeleeAttack.String())
	assert.Equal(t, "TARGET_CHASING", GoalTargetChasing.String())
	assert.Equal(t, "UNKNOWN", GoalKind(99).String())
}
