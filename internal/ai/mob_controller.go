package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/patch"
)

// MobController runs one mob per tick: physics, goals, stale target
// cleanup, motion resolution and the status broadcast.
type MobController struct {
	p      *patch.MobPatch
	sender patch.TrackerSender

	isRunning atomic.Bool
	tickCount atomic.Int64
}

// NewMobController creates a controller. sender may be nil (no observers).
func NewMobController(p *patch.MobPatch, sender patch.TrackerSender) *MobController {
	return &MobController{p: p, sender: sender}
}

// Patch returns the controlled overlay.
func (c *MobController) Patch() *patch.MobPatch {
	return c.p
}

// Start implements Controller.
func (c *MobController) Start() {
	c.isRunning.Store(true)

	if IsDebugEnabled() {
		slog.Debug("mob controller started",
			"npc", c.p.Mob().Name(),
			"objectID", c.p.Mob().ObjectID(),
			"faction", c.p.Faction())
	}
}

// Stop implements Controller.
func (c *MobController) Stop() {
	c.isRunning.Store(false)

	if IsDebugEnabled() {
		slog.Debug("mob controller stopped", "objectID", c.p.Mob().ObjectID())
	}
}

// Tick implements Controller.
func (c *MobController) Tick() {
	if !c.isRunning.Load() {
		return
	}
	if level := c.p.Level(); level != nil && level.IsPaused() {
		return
	}
	c.tickCount.Add(1)

	mob := c.p.Mob()
	mob.BeginTick()
	applyGravity(mob.LivingEntity)

	if !mob.IsDead() {
		mob.GoalSelector().Tick()
		c.dropStaleTarget()
	}

	c.p.UpdateMotion(true)
	c.broadcastStatus()
}

// TickCount returns the number of ticks processed.
func (c *MobController) TickCount() int64 {
	return c.tickCount.Load()
}

// dropStaleTarget clears a target that died or left the world so observers
// see the -1 sentinel.
func (c *MobController) dropStaleTarget() {
	mob := c.p.Mob()
	if mob.Target() == 0 {
		return
	}
	if t := c.p.AttackTarget(); t != nil && !t.IsDead() {
		return
	}
	c.p.SetAttackTargetSync(nil)
	mob.SetAggressive(false)

	if IsDebugEnabled() {
		slog.Debug("stale attack target dropped", "objectID", mob.ObjectID())
	}
}

func (c *MobController) broadcastStatus() {
	if c.sender == nil {
		return
	}
	inaction := c.p.BehaviorState().Inaction()
	data, err := serverpackets.NewMobStatus(c.p.Mob(), inaction).Write()
	if err != nil {
		slog.Error("serializing MobStatus", "objectID", c.p.Mob().ObjectID(), "error", err)
		return
	}
	c.sender.SendToTrackers(c.p.Mob().ObjectID(), data)
}
