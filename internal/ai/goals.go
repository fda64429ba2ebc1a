package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/mobpatch/internal/attribute"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
)

// Goal timing, in ticks.
const (
	meleeCooldown   = 20
	bowDrawTicks    = 20
	crossbowLoad    = 25
	crossbowAim     = 10
	targetScanEvery = 10
	wanderChance    = 120 // 1/120 per tick
	wanderRadius    = 6.0
)

// hurt applies the attacker's attack damage to target.
func hurt(attacker, target *model.LivingEntity) {
	dmg := attacker.Attributes().Value(attribute.AttackDamage)
	if dmg <= 0 {
		dmg = 1
	}
	target.SetHealth(target.Health() - float32(dmg))

	if IsDebugEnabled() {
		slog.Debug("attack landed",
			"objectID", attacker.ObjectID(),
			"targetID", target.ObjectID(),
			"damage", dmg,
			"targetHealth", target.Health())
	}
}

// liveTarget returns the resolved target if it is alive.
func liveTarget(p *patch.MobPatch) *model.LivingEntity {
	t := p.AttackTarget()
	if t == nil || t.IsDead() {
		return nil
	}
	return t
}

// Host goals below are installed at spawn and replaced by OnJoinWorld.

// MeleeAttackGoal walks to the target and hits it on a fixed cooldown.
type MeleeAttackGoal struct {
	p        *patch.MobPatch
	speed    float64
	cooldown int
}

// NewMeleeAttackGoal creates the host melee goal.
func NewMeleeAttackGoal(p *patch.MobPatch) *MeleeAttackGoal {
	return &MeleeAttackGoal{p: p, speed: p.Mob().Template().MoveSpeed()}
}

func (g *MeleeAttackGoal) Kind() model.GoalKind   { return model.GoalMeleeAttack }
func (g *MeleeAttackGoal) CanUse() bool           { return liveTarget(g.p) != nil }
func (g *MeleeAttackGoal) CanContinueToUse() bool { return g.CanUse() }
func (g *MeleeAttackGoal) Start()                 { g.cooldown = 0 }
func (g *MeleeAttackGoal) Stop()                  { stand(g.p.Entity()) }

func (g *MeleeAttackGoal) Tick() {
	target := liveTarget(g.p)
	if target == nil {
		return
	}
	self := g.p.Entity()
	lookAt(self, target)
	if g.cooldown > 0 {
		g.cooldown--
	}
	if stepToward(self, target.Position(), g.speed) > attackReach {
		return
	}
	if g.cooldown == 0 {
		hurt(self, target)
		g.cooldown = meleeCooldown
	}
}

// RangedAttackGoal keeps distance and shoots with a bow.
type RangedAttackGoal struct {
	p     *patch.MobPatch
	speed float64
	drawn int
}

// NewRangedAttackGoal creates the host ranged goal.
func NewRangedAttackGoal(p *patch.MobPatch) *RangedAttackGoal {
	return &RangedAttackGoal{p: p, speed: p.Mob().Template().MoveSpeed()}
}

func (g *RangedAttackGoal) Kind() model.GoalKind   { return model.GoalRangedAttack }
func (g *RangedAttackGoal) CanUse() bool           { return liveTarget(g.p) != nil }
func (g *RangedAttackGoal) CanContinueToUse() bool { return g.CanUse() }
func (g *RangedAttackGoal) Start()                 { g.drawn = 0 }

func (g *RangedAttackGoal) Stop() {
	self := g.p.Entity()
	self.StopUsingItem()
	stand(self)
}

func (g *RangedAttackGoal) Tick() {
	target := liveTarget(g.p)
	if target == nil {
		return
	}
	self := g.p.Entity()
	lookAt(self, target)
	if horizontalDistance(self, target) > rangedReach {
		stepToward(self, target.Position(), g.speed)
		return
	}
	stand(self)
	if !self.IsUsingItem() {
		self.StartUsingItem(model.MainHand)
		g.drawn = 0
		return
	}
	g.drawn++
	if g.drawn >= bowDrawTicks {
		self.StopUsingItem()
		hurt(self, target)
	}
}

// NearestAttackableTargetGoal picks the closest non-teammate in aggro range
// and replicates the choice through SetAttackTargetSync.
type NearestAttackableTargetGoal struct {
	p      *patch.MobPatch
	scan   ScanFunc
	radius float64

	candidate *model.LivingEntity
	sinceScan int
}

// NewNearestAttackableTargetGoal creates the target selection goal.
func NewNearestAttackableTargetGoal(p *patch.MobPatch, scan ScanFunc) *NearestAttackableTargetGoal {
	return &NearestAttackableTargetGoal{
		p:         p,
		scan:      scan,
		radius:    p.Mob().Template().AggroRange(),
		sinceScan: targetScanEvery,
	}
}

func (g *NearestAttackableTargetGoal) Kind() model.GoalKind { return model.GoalTargetSelection }

func (g *NearestAttackableTargetGoal) CanUse() bool {
	if g.p.AttackTarget() != nil || g.radius <= 0 {
		return false
	}
	g.sinceScan++
	if g.sinceScan < targetScanEvery {
		return false
	}
	g.sinceScan = 0
	g.candidate = g.nearest()
	return g.candidate != nil
}

func (g *NearestAttackableTargetGoal) nearest() *model.LivingEntity {
	self := g.p.Entity()
	center := self.Position()

	var best *model.LivingEntity
	bestDist := math.Inf(1)
	for _, e := range g.scan(center, g.radius, self.ObjectID()) {
		if g.p.IsTeammate(e) {
			continue
		}
		if d := e.Position().DistanceSquared(center); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (g *NearestAttackableTargetGoal) CanContinueToUse() bool {
	t := liveTarget(g.p)
	if t == nil {
		return false
	}
	forget := g.radius * forgetRangeFactor
	return t.Position().DistanceSquared(g.p.Entity().Position()) <= forget*forget
}

func (g *NearestAttackableTargetGoal) Start() {
	g.p.SetAttackTargetSync(g.candidate)
	g.p.Mob().SetAggressive(true)
	g.candidate = nil
}

func (g *NearestAttackableTargetGoal) Stop() {
	g.p.SetAttackTargetSync(nil)
	g.p.Mob().SetAggressive(false)
}

func (g *NearestAttackableTargetGoal) Tick() {}

// RandomStrollGoal wanders near the current position when idle.
type RandomStrollGoal struct {
	p     *patch.MobPatch
	speed float64
	dest  model.Vec3
}

// NewRandomStrollGoal creates the wander goal.
func NewRandomStrollGoal(p *patch.MobPatch) *RandomStrollGoal {
	return &RandomStrollGoal{p: p, speed: p.Mob().Template().MoveSpeed() * 0.5}
}

func (g *RandomStrollGoal) Kind() model.GoalKind { return model.GoalWander }

func (g *RandomStrollGoal) CanUse() bool {
	if g.p.Mob().Target() != 0 || g.speed <= 0 || rand.IntN(wanderChance) != 0 {
		return false
	}
	pos := g.p.Entity().Position()
	g.dest = model.NewVec3(
		pos.X+(rand.Float64()*2-1)*wanderRadius,
		pos.Y,
		pos.Z+(rand.Float64()*2-1)*wanderRadius,
	)
	return true
}

func (g *RandomStrollGoal) CanContinueToUse() bool {
	if g.p.Mob().Target() != 0 {
		return false
	}
	return g.dest.Sub(g.p.Entity().Position()).HorizontalLength() > 0.1
}

func (g *RandomStrollGoal) Start() {}
func (g *RandomStrollGoal) Stop()  { stand(g.p.Entity()) }
func (g *RandomStrollGoal) Tick()  { stepToward(g.p.Entity(), g.dest, g.speed) }
