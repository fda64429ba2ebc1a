package ai

import (
	"log/slog"

	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
)

// Replacement goal priorities: attack is tried before chase.
const (
	priorityAnimatedAttack = 2
	priorityTargetChasing  = 3
)

// reachFor returns the distance at which a mob of style stops chasing.
func reachFor(style model.CombatStyle) float64 {
	if style == model.StyleRanged {
		return rangedReach
	}
	return attackReach
}

// CombatGoalInstaller returns the hook that adds animation-aware goals after
// the host combat goals were removed.
func CombatGoalInstaller() patch.GoalInstaller {
	return func(p *patch.MobPatch) {
		selector := p.Mob().GoalSelector()
		selector.AddGoal(priorityAnimatedAttack, NewAnimatedAttackGoal(p))
		selector.AddGoal(priorityTargetChasing, NewTargetChasingGoal(p))

		if IsDebugEnabled() {
			slog.Debug("combat goals installed",
				"objectID", p.Mob().ObjectID(),
				"style", p.Mob().Template().Style())
		}
	}
}

// attackPhase is the weapon cycle of AnimatedAttackGoal.
type attackPhase int8

const (
	phaseReady attackPhase = iota
	phaseDrawing
	phaseLoading
	phaseAiming
	phaseCooldown
)

// AnimatedAttackGoal attacks a target in reach, driving the item-use state
// the motion resolver turns into AIM/RELOAD composites.
type AnimatedAttackGoal struct {
	p     *patch.MobPatch
	reach float64

	phase attackPhase
	timer int
}

// NewAnimatedAttackGoal creates the replacement attack goal.
func NewAnimatedAttackGoal(p *patch.MobPatch) *AnimatedAttackGoal {
	return &AnimatedAttackGoal{p: p, reach: reachFor(p.Mob().Template().Style())}
}

func (g *AnimatedAttackGoal) Kind() model.GoalKind { return model.GoalAnimatedAttack }

func (g *AnimatedAttackGoal) CanUse() bool {
	t := liveTarget(g.p)
	return t != nil && horizontalDistance(g.p.Entity(), t) <= g.reach
}

func (g *AnimatedAttackGoal) CanContinueToUse() bool {
	return g.CanUse()
}

func (g *AnimatedAttackGoal) Start() {
	stand(g.p.Entity())
	g.phase = phaseReady
	g.timer = 0
}

func (g *AnimatedAttackGoal) Stop() {
	self := g.p.Entity()
	self.StopUsingItem()
	g.phase = phaseReady
}

func (g *AnimatedAttackGoal) Tick() {
	target := liveTarget(g.p)
	if target == nil {
		return
	}
	self := g.p.Entity()
	lookAt(self, target)
	if g.timer > 0 {
		g.timer--
	}

	switch self.MainHandItem().Kind {
	case model.ItemBow:
		g.tickBow(self, target)
	case model.ItemCrossbow:
		g.tickCrossbow(self, target)
	default:
		g.tickMelee(self, target)
	}
}

func (g *AnimatedAttackGoal) tickMelee(self, target *model.LivingEntity) {
	if g.timer > 0 {
		return
	}
	hurt(self, target)
	g.timer = meleeCooldown
}

func (g *AnimatedAttackGoal) tickBow(self, target *model.LivingEntity) {
	switch g.phase {
	case phaseReady:
		self.StartUsingItem(model.MainHand)
		g.phase, g.timer = phaseDrawing, bowDrawTicks
	case phaseDrawing:
		if g.timer == 0 {
			self.StopUsingItem()
			hurt(self, target)
			g.phase, g.timer = phaseCooldown, meleeCooldown
		}
	case phaseCooldown:
		if g.timer == 0 {
			g.phase = phaseReady
		}
	}
}

func (g *AnimatedAttackGoal) tickCrossbow(self, target *model.LivingEntity) {
	weapon := self.MainHandItem()
	switch g.phase {
	case phaseReady:
		if weapon.Charged {
			g.phase, g.timer = phaseAiming, crossbowAim
			return
		}
		self.StartUsingItem(model.MainHand)
		g.phase, g.timer = phaseLoading, crossbowLoad
	case phaseLoading:
		if g.timer == 0 {
			self.StopUsingItem()
			weapon.Charged = true
			self.SetItemInHand(model.MainHand, weapon)
			g.phase, g.timer = phaseAiming, crossbowAim
		}
	case phaseAiming:
		if g.timer == 0 {
			weapon.Charged = false
			self.SetItemInHand(model.MainHand, weapon)
			hurt(self, target)
			g.phase, g.timer = phaseCooldown, meleeCooldown
		}
	case phaseCooldown:
		if g.timer == 0 {
			g.phase = phaseReady
		}
	}
}

// TargetChasingGoal runs toward a target that is out of reach.
type TargetChasingGoal struct {
	p     *patch.MobPatch
	speed float64
	reach float64
}

// NewTargetChasingGoal creates the replacement chase goal.
func NewTargetChasingGoal(p *patch.MobPatch) *TargetChasingGoal {
	t := p.Mob().Template()
	return &TargetChasingGoal{p: p, speed: t.MoveSpeed(), reach: reachFor(t.Style())}
}

func (g *TargetChasingGoal) Kind() model.GoalKind { return model.GoalTargetChasing }

func (g *TargetChasingGoal) CanUse() bool {
	t := liveTarget(g.p)
	return t != nil && g.speed > 0 && horizontalDistance(g.p.Entity(), t) > g.reach
}

func (g *TargetChasingGoal) CanContinueToUse() bool {
	return g.CanUse()
}

func (g *TargetChasingGoal) Start() {}

func (g *TargetChasingGoal) Stop() {
	stand(g.p.Entity())
}

func (g *TargetChasingGoal) Tick() {
	target := liveTarget(g.p)
	if target == nil {
		return
	}
	self := g.p.Entity()
	lookAt(self, target)
	stepToward(self, target.Position(), g.speed)
}
