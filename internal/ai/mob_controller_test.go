package ai

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/motion"
	"github.com/udisondev/mobpatch/internal/patch"
	"github.com/udisondev/mobpatch/internal/world"
)

type recordingSender struct {
	mu      sync.Mutex
	packets [][]byte
}

func (s *recordingSender) SendToTrackers(_ uint32, data []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packets = append(s.packets, append([]byte(nil), data...))
	return 1
}

// targets returns TargetIDs of every SetAttackTarget sent so far.
func (s *recordingSender) targets() []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int32
	for _, p := range s.packets {
		if p[0] == serverpackets.OpcodeSetAttackTarget {
			out = append(out, int32(binary.LittleEndian.Uint32(p[5:9])))
		}
	}
	return out
}

type testRig struct {
	w      *world.World
	sender *recordingSender
}

func newRig() *testRig {
	return &testRig{w: world.New(world.SideServer), sender: &recordingSender{}}
}

// spawn builds a mob with host goals and adds it to the world, the way the
// spawn factory does.
func (r *testRig) spawn(t *testing.T, style model.CombatStyle, weapon model.ItemKind, pos model.Vec3, faction patch.Faction) (*patch.MobPatch, *MobController) {
	t.Helper()
	tmpl := model.NewMobTemplate(1000, "Mob", style, 20, 1.74, 16, 0.3, weapon)
	mob := model.NewMob(r.w.IDs().NextMobID(), tmpl, pos)
	mob.SetItemInHand(model.MainHand, model.ItemStack{Kind: weapon})

	p := patch.NewMobPatch(mob, faction, nil,
		patch.WithTrackerSender(r.sender),
		patch.WithGoalInstaller(CombatGoalInstaller()))

	sel := mob.GoalSelector()
	switch style {
	case model.StyleMelee:
		sel.AddGoal(2, NewMeleeAttackGoal(p))
	case model.StyleRanged:
		sel.AddGoal(2, NewRangedAttackGoal(p))
	}
	sel.AddGoal(1, NewNearestAttackableTargetGoal(p, r.w.Nearby))
	sel.AddGoal(5, NewRandomStrollGoal(p))

	require.NoError(t, r.w.Add(p))
	c := NewMobController(p, r.sender)
	c.Start()
	return p, c
}

func (r *testRig) player(t *testing.T, pos model.Vec3) *patch.PlayerPatch {
	t.Helper()
	pp := patch.NewPlayerPatch(model.NewPlayer(r.w.IDs().NextPlayerID(), "acc", "Steve", pos))
	require.NoError(t, r.w.Add(pp))
	return pp
}

func kinds(sel *model.GoalSelector) []model.GoalKind {
	var out []model.GoalKind
	for _, g := range sel.AvailableGoals() {
		out = append(out, g.Goal.Kind())
	}
	return out
}

func TestSpawn_SubstitutesHostGoals(t *testing.T) {
	r := newRig()
	melee, _ := r.spawn(t, model.StyleMelee, model.ItemSword, model.Vec3{}, patch.FactionUndead)
	ranged, _ := r.spawn(t, model.StyleRanged, model.ItemBow, model.Vec3{}, patch.FactionUndead)

	want := []model.GoalKind{
		model.GoalTargetSelection,
		model.GoalAnimatedAttack,
		model.GoalTargetChasing,
		model.GoalWander,
	}
	assert.Equal(t, want, kinds(melee.Mob().GoalSelector()))
	assert.Equal(t, want, kinds(ranged.Mob().GoalSelector()))
}

func TestSpawn_PausedWorldKeepsHostGoals(t *testing.T) {
	r := newRig()
	r.w.SetPaused(true)
	p, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.Vec3{}, patch.FactionUndead)

	assert.Contains(t, kinds(p.Mob().GoalSelector()), model.GoalMeleeAttack)

	c.Tick()
	assert.Zero(t, c.TickCount())
}

func TestMobController_ChaseAndAttack(t *testing.T) {
	r := newRig()
	zombie, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(0, 0, 0), patch.FactionUndead)
	steve := r.player(t, model.NewVec3(10, 0, 0))

	c.Tick()
	require.Same(t, steve.Entity(), zombie.AttackTarget())
	assert.Equal(t, []int32{int32(steve.Entity().ObjectID())}, r.sender.targets())

	for range 4 {
		c.Tick()
	}
	assert.Equal(t, motion.Chase, zombie.Motion().Primary)
	assert.Greater(t, zombie.Entity().Position().X, 0.0)

	for range 40 {
		c.Tick()
	}
	assert.Less(t, steve.Entity().Health(), steve.Entity().MaxHealth())
	assert.LessOrEqual(t, horizontalDistance(zombie.Entity(), steve.Entity()), attackReach)
}

func TestMobController_SameFactionIgnored(t *testing.T) {
	r := newRig()
	a, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(0, 0, 0), patch.FactionUndead)
	r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(3, 0, 0), patch.FactionUndead)

	for range 20 {
		c.Tick()
	}
	assert.Nil(t, a.AttackTarget())
	assert.Empty(t, r.sender.targets())
}

func TestMobController_OtherFactionAttacked(t *testing.T) {
	r := newRig()
	a, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(0, 0, 0), patch.FactionUndead)
	b, _ := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(3, 0, 0), patch.FactionVillager)

	c.Tick()
	assert.Same(t, b.Entity(), a.AttackTarget())
}

func TestMobController_DeadTargetCleared(t *testing.T) {
	r := newRig()
	zombie, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(0, 0, 0), patch.FactionUndead)
	steve := r.player(t, model.NewVec3(5, 0, 0))

	c.Tick()
	require.NotNil(t, zombie.AttackTarget())

	steve.Entity().SetHealth(0)
	c.Tick()

	assert.Nil(t, zombie.AttackTarget())
	assert.Zero(t, zombie.Mob().Target())
	assert.False(t, zombie.Mob().IsAggressive())
	targets := r.sender.targets()
	require.NotEmpty(t, targets)
	assert.Equal(t, serverpackets.NoTarget, targets[len(targets)-1])
}

func TestMobController_RemovedTargetCleared(t *testing.T) {
	r := newRig()
	zombie, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.NewVec3(0, 0, 0), patch.FactionUndead)
	steve := r.player(t, model.NewVec3(5, 0, 0))

	c.Tick()
	r.w.Remove(steve.Entity().ObjectID())
	c.Tick()

	assert.Zero(t, zombie.Mob().Target())
	targets := r.sender.targets()
	assert.Equal(t, serverpackets.NoTarget, targets[len(targets)-1])
}

func TestMobController_CrossbowCycle(t *testing.T) {
	r := newRig()
	pillager, c := r.spawn(t, model.StyleRanged, model.ItemCrossbow, model.NewVec3(0, 0, 0), patch.FactionIllager)
	steve := r.player(t, model.NewVec3(5, 0, 0))

	c.Tick()
	assert.Equal(t, motion.Reload, pillager.Motion().Composite)

	for range 29 {
		c.Tick()
	}
	assert.True(t, pillager.Entity().MainHandItem().Charged)
	assert.Equal(t, motion.Aim, pillager.Motion().Composite)

	for range 10 {
		c.Tick()
	}
	assert.Less(t, steve.Entity().Health(), steve.Entity().MaxHealth())
	assert.False(t, pillager.Entity().MainHandItem().Charged)
}

func TestMobController_BowDraw(t *testing.T) {
	r := newRig()
	skeleton, c := r.spawn(t, model.StyleRanged, model.ItemBow, model.NewVec3(0, 0, 0), patch.FactionUndead)
	r.player(t, model.NewVec3(6, 0, 0))

	c.Tick()
	assert.True(t, skeleton.Entity().IsUsingItem())
	assert.Equal(t, motion.Aim, skeleton.Motion().Composite)
}

func TestMobController_BroadcastsStatus(t *testing.T) {
	r := newRig()
	_, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.Vec3{}, patch.FactionUndead)

	c.Tick()

	r.sender.mu.Lock()
	defer r.sender.mu.Unlock()
	require.NotEmpty(t, r.sender.packets)
	assert.Equal(t, byte(serverpackets.OpcodeMobStatus), r.sender.packets[len(r.sender.packets)-1][0])
}

func TestMobController_DeadMobResolvesDeath(t *testing.T) {
	r := newRig()
	p, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.Vec3{}, patch.FactionUndead)
	p.Entity().SetHealth(0)

	c.Tick()

	assert.Equal(t, motion.Death, p.Motion().Primary)
}

func TestMobController_StoppedDoesNotTick(t *testing.T) {
	r := newRig()
	_, c := r.spawn(t, model.StyleMelee, model.ItemSword, model.Vec3{}, patch.FactionUndead)
	c.Stop()

	c.Tick()

	assert.Zero(t, c.TickCount())
}
