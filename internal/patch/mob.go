package patch

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/mobpatch/internal/attribute"
	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/motion"
)

// GoalInstaller adds replacement goals after the host's combat goals were removed.
type GoalInstaller func(p *MobPatch)

// substitutedKinds are removed from the host goal selector on AI initialization.
var substitutedKinds = map[model.GoalKind]struct{}{
	model.GoalMeleeAttack:    {},
	model.GoalAnimatedAttack: {},
	model.GoalRangedAttack:   {},
	model.GoalTargetChasing:  {},
}

// MobPatch is the overlay of a simulated mob.
type MobPatch struct {
	*livingPatch

	mob      *model.Mob
	faction  Faction
	resolver motion.Resolver

	animator  motion.Animator
	sender    TrackerSender
	installer GoalInstaller

	aiInitialized atomic.Bool

	// targetMu orders target writes with their replication and with
	// SyncTarget replies.
	targetMu sync.Mutex
}

// MobOption configures a MobPatch.
type MobOption func(*MobPatch)

// WithAnimator sets the animator consulted by the ranged composite override.
func WithAnimator(a motion.Animator) MobOption {
	return func(p *MobPatch) { p.animator = a }
}

// WithTrackerSender sets where target changes are replicated.
func WithTrackerSender(s TrackerSender) MobOption {
	return func(p *MobPatch) { p.sender = s }
}

// WithGoalInstaller sets the hook called after goal substitution.
func WithGoalInstaller(fn GoalInstaller) MobOption {
	return func(p *MobPatch) { p.installer = fn }
}

// WithFactionPolicy replaces the fallback faction policy.
func WithFactionPolicy(policy FactionPolicy) MobOption {
	return func(p *MobPatch) { p.policy = policy }
}

// WithBehaviorState replaces the combat-reaction state.
func WithBehaviorState(s BehaviorState) MobOption {
	return func(p *MobPatch) { p.state = s }
}

// NewMobPatch creates an overlay for mob. A nil resolver picks one from the
// template's combat style.
func NewMobPatch(mob *model.Mob, faction Faction, resolver motion.Resolver, opts ...MobOption) *MobPatch {
	if resolver == nil {
		resolver = motion.ForStyle(mob.Template().Style())
	}
	p := &MobPatch{
		livingPatch: newLivingPatch(mob.LivingEntity),
		mob:         mob,
		faction:     faction,
		resolver:    resolver,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewNeutralMobPatch creates an overlay with FactionNeutral.
func NewNeutralMobPatch(mob *model.Mob, resolver motion.Resolver, opts ...MobOption) *MobPatch {
	return NewMobPatch(mob, FactionNeutral, resolver, opts...)
}

// Mob returns the patched mob.
func (p *MobPatch) Mob() *model.Mob {
	return p.mob
}

// Faction returns the faction fixed at construction.
func (p *MobPatch) Faction() Faction {
	return p.faction
}

// Animator returns the animator (nil on the authoritative side).
func (p *MobPatch) Animator() motion.Animator {
	return p.animator
}

// OnJoinWorld binds the overlay to level and, on an active authoritative
// level, initializes AI once.
func (p *MobPatch) OnJoinWorld(level Level) {
	p.setLevel(level)

	if level.IsClientSide() || level.IsPaused() || p.mob.IsNoAI() {
		return
	}
	if !p.aiInitialized.CompareAndSwap(false, true) {
		return
	}
	p.initAI()
}

// initAI removes the host's combat goals and lets the installer add replacements.
func (p *MobPatch) initAI() {
	selector := p.mob.GoalSelector()

	var toRemove []model.Goal
	for _, wg := range selector.AvailableGoals() {
		if _, ok := substitutedKinds[wg.Goal.Kind()]; ok {
			toRemove = append(toRemove, wg.Goal)
		}
	}
	for _, g := range toRemove {
		selector.RemoveGoal(g)
	}

	slog.Debug("mob goals substituted",
		"objectID", p.mob.ObjectID(),
		"removed", len(toRemove),
		"remaining", selector.Count())

	if p.installer != nil {
		p.installer(p)
	}
}

// AIInitialized reports whether goal substitution has run.
func (p *MobPatch) AIInitialized() bool {
	return p.aiInitialized.Load()
}

// UpdateMotion resolves the motion pair from the current entity state and
// publishes it as the new snapshot.
func (p *MobPatch) UpdateMotion(considerInaction bool) motion.State {
	in := motion.InputFrom(p.entity, p.state.Inaction(), p.mob.IsAggressive())
	s := p.resolver.Resolve(in, considerInaction, p.animator)
	p.publish(s)
	return s
}

// IsTeammate reports whether other is friendly. Same-faction mobs are
// teammates unless other is this mob's current target.
func (p *MobPatch) IsTeammate(other *model.LivingEntity) bool {
	if other == nil {
		return false
	}
	if level := p.Level(); level != nil {
		if otherPatch, ok := level.Patch(other.ObjectID()); ok {
			if otherMob, ok := AsMob(otherPatch); ok && otherMob.faction == p.faction {
				target := p.AttackTarget()
				if target == nil {
					return true
				}
				return target.ObjectID() != other.ObjectID()
			}
		}
	}
	return p.policy.IsTeammate(p.entity, other)
}

// AttackTarget resolves the native target field through the level.
func (p *MobPatch) AttackTarget() *model.LivingEntity {
	id := p.mob.Target()
	if id == 0 {
		return nil
	}
	level := p.Level()
	if level == nil {
		return nil
	}
	target, ok := level.Entity(id)
	if !ok {
		return nil
	}
	return target
}

// SetAttackTargetSync sets the target and replicates it to every tracker.
// Ignored when the overlay is not on an authoritative level.
func (p *MobPatch) SetAttackTargetSync(target *model.LivingEntity) {
	level := p.Level()
	if level == nil || level.IsClientSide() {
		slog.Debug("attack target change ignored on observer side", "objectID", p.mob.ObjectID())
		return
	}

	p.targetMu.Lock()
	defer p.targetMu.Unlock()

	targetID := serverpackets.NoTarget
	if target != nil {
		p.mob.SetTarget(target.ObjectID())
		targetID = int32(target.ObjectID())
	} else {
		p.mob.ClearTarget()
	}

	if p.sender == nil {
		return
	}
	data, err := p.targetPacket(targetID)
	if err != nil {
		slog.Error("serializing SetAttackTarget", "objectID", p.mob.ObjectID(), "error", err)
		return
	}
	p.sender.SendToTrackers(p.mob.ObjectID(), data)
}

// SyncTarget runs attach (tracker registration) and sends the current target
// through send, with no target change in between. A tracker attached this way
// receives the current target before any later change.
// send must not block.
func (p *MobPatch) SyncTarget(attach func(), send func(data []byte) error) error {
	p.targetMu.Lock()
	defer p.targetMu.Unlock()

	attach()

	targetID := serverpackets.NoTarget
	if t := p.AttackTarget(); t != nil {
		targetID = int32(t.ObjectID())
	}
	data, err := p.targetPacket(targetID)
	if err != nil {
		return fmt.Errorf("serializing SetAttackTarget: %w", err)
	}
	return send(data)
}

func (p *MobPatch) targetPacket(targetID int32) ([]byte, error) {
	return serverpackets.NewSetAttackTarget(p.mob.ObjectID(), targetID).Write()
}

// ApplyAttackTarget applies a replicated target on an observer level.
// targetID < 0 clears the target.
func (p *MobPatch) ApplyAttackTarget(targetID int32) {
	if targetID < 0 {
		p.mob.ClearTarget()
		return
	}
	p.mob.SetTarget(uint32(targetID))
}

// AttackDirectionPitch returns the pitch toward the current target, or the
// fallback policy pitch when there is none.
func (p *MobPatch) AttackDirectionPitch(pc PresentationContext) float32 {
	pt := partialTick(pc)
	target := p.AttackTarget()
	if target == nil {
		return p.policy.AttackDirectionPitch(p.entity, pt)
	}
	return PitchToward(p.entity.EyePosition(float64(pt)), target.EyePosition(float64(pt)))
}

// UpdateArmor swaps the stun armor modifiers when equipment in slot changes.
// Entities without the stun armor attribute are left untouched.
func (p *MobPatch) UpdateArmor(from, to ItemCapability, slot model.EquipmentSlot) {
	attrs := p.entity.Attributes()
	if !attrs.Has(attribute.StunArmor) {
		return
	}
	if from != nil {
		attrs.RemoveModifiers(from.AttributeModifiers(slot))
	}
	if to != nil {
		attrs.AddTransientModifiers(to.AttributeModifiers(slot))
	}
}
