// Package patch implements per-entity behavior overlays: motion intent
// resolution, faction/teammate checks, the replicated attack target and the
// aim pitch derived from it.
package patch

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/motion"
)

// EntityPatch is the overlay attached to a simulated entity.
// The variant set is closed: *MobPatch and *PlayerPatch.
type EntityPatch interface {
	// Entity returns the patched entity.
	Entity() *model.LivingEntity
	// OnJoinWorld is called once the entity is added to a level.
	OnJoinWorld(level Level)
	// IsTeammate reports whether other is friendly to this entity.
	IsTeammate(other *model.LivingEntity) bool
	// AttackTarget returns the current target, nil if none or unresolvable.
	AttackTarget() *model.LivingEntity
	// AttackDirectionPitch returns the aim pitch in degrees, within [-30, 30].
	AttackDirectionPitch(pc PresentationContext) float32
	// Motion returns the motion state published by the last tick.
	Motion() motion.State

	sealed()
}

// AsMob narrows p to a mob overlay.
func AsMob(p EntityPatch) (*MobPatch, bool) {
	mp, ok := p.(*MobPatch)
	return mp, ok
}

// AsPlayer narrows p to a player overlay.
func AsPlayer(p EntityPatch) (*PlayerPatch, bool) {
	pp, ok := p.(*PlayerPatch)
	return pp, ok
}

// Level is the simulation an overlay lives in.
type Level interface {
	// IsClientSide reports whether this is an observer (non-authoritative) level.
	IsClientSide() bool
	// IsPaused reports whether the simulation is paused.
	IsPaused() bool
	// Entity resolves a living entity by objectID.
	Entity(objectID uint32) (*model.LivingEntity, bool)
	// Patch resolves the overlay of an entity by objectID.
	Patch(objectID uint32) (EntityPatch, bool)
}

// TrackerSender delivers a serialized packet to every observer tracking an entity.
type TrackerSender interface {
	SendToTrackers(entityID uint32, data []byte) int
}

// PresentationContext supplies the interpolation fraction of the current frame.
type PresentationContext interface {
	PartialTick() float32
}

// FixedFrame is a PresentationContext with a constant fraction.
type FixedFrame float32

// PartialTick implements PresentationContext.
func (f FixedFrame) PartialTick() float32 {
	return float32(f)
}

// partialTick returns the fraction of pc; authoritative callers pass nil and get 1.
func partialTick(pc PresentationContext) float32 {
	if pc == nil {
		return 1
	}
	return pc.PartialTick()
}

// BehaviorState exposes combat-reaction state consulted each tick.
type BehaviorState interface {
	Inaction() bool
}

// EntityState is the default BehaviorState.
type EntityState struct {
	inaction atomic.Bool
}

// Inaction implements BehaviorState.
func (s *EntityState) Inaction() bool {
	return s.inaction.Load()
}

// SetInaction marks the entity as momentarily disabled (stun, knockdown).
func (s *EntityState) SetInaction(v bool) {
	s.inaction.Store(v)
}

// livingPatch holds state shared by every overlay variant.
type livingPatch struct {
	entity *model.LivingEntity
	state  BehaviorState
	policy FactionPolicy

	levelMu sync.RWMutex
	level   Level

	// motion is replaced as a whole at the end of each tick.
	motion atomic.Pointer[motion.State]
}

func newLivingPatch(entity *model.LivingEntity) *livingPatch {
	lp := &livingPatch{
		entity: entity,
		state:  &EntityState{},
		policy: BasePolicy{},
	}
	initial := motion.IdleState
	lp.motion.Store(&initial)
	return lp
}

func (lp *livingPatch) sealed() {}

// Entity returns the patched entity.
func (lp *livingPatch) Entity() *model.LivingEntity {
	return lp.entity
}

// Level returns the level the entity joined (nil before OnJoinWorld).
func (lp *livingPatch) Level() Level {
	lp.levelMu.RLock()
	defer lp.levelMu.RUnlock()
	return lp.level
}

func (lp *livingPatch) setLevel(level Level) {
	lp.levelMu.Lock()
	defer lp.levelMu.Unlock()
	lp.level = level
}

// Motion returns the last published motion state.
func (lp *livingPatch) Motion() motion.State {
	return *lp.motion.Load()
}

func (lp *livingPatch) publish(s motion.State) {
	lp.motion.Store(&s)
}

// BehaviorState returns the combat-reaction state.
func (lp *livingPatch) BehaviorState() BehaviorState {
	return lp.state
}
