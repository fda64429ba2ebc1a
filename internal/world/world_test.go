package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
)

func newMobPatch(w *World, pos model.Vec3, faction patch.Faction) *patch.MobPatch {
	tmpl := model.NewMobTemplate(1000, "Zombie", model.StyleMelee, 20, 1.74, 16, 0.23, model.ItemEmpty)
	return patch.NewMobPatch(model.NewMob(w.IDs().NextMobID(), tmpl, pos), faction, nil)
}

func TestWorld_AddAndResolve(t *testing.T) {
	w := New(SideServer)
	mp := newMobPatch(w, model.Vec3{}, patch.FactionUndead)

	require.NoError(t, w.Add(mp))

	got, ok := w.Patch(mp.Entity().ObjectID())
	require.True(t, ok)
	assert.Same(t, mp, got)

	e, ok := w.Entity(mp.Entity().ObjectID())
	require.True(t, ok)
	assert.Same(t, mp.Entity(), e)

	m, ok := w.Mob(mp.Entity().ObjectID())
	require.True(t, ok)
	assert.Same(t, mp, m)

	assert.Same(t, w, mp.Level())
	assert.Equal(t, 1, w.Len())
}

func TestWorld_AddDuplicate(t *testing.T) {
	w := New(SideServer)
	mp := newMobPatch(w, model.Vec3{}, patch.FactionUndead)

	require.NoError(t, w.Add(mp))
	assert.Error(t, w.Add(mp))
	assert.Equal(t, 1, w.Len())
}

func TestWorld_AddZeroID(t *testing.T) {
	w := New(SideServer)
	tmpl := model.NewMobTemplate(1000, "Zombie", model.StyleMelee, 20, 1.74, 16, 0.23, model.ItemEmpty)
	mp := patch.NewMobPatch(model.NewMob(0, tmpl, model.Vec3{}), patch.FactionUndead, nil)

	assert.Error(t, w.Add(mp))
}

func TestWorld_RemoveMakesTargetUnresolvable(t *testing.T) {
	w := New(SideServer)
	hunter := newMobPatch(w, model.Vec3{}, patch.FactionUndead)
	prey := patch.NewPlayerPatch(model.NewPlayer(w.IDs().NextPlayerID(), "acc", "Steve", model.Vec3{}))
	require.NoError(t, w.Add(hunter))
	require.NoError(t, w.Add(prey))

	hunter.SetAttackTargetSync(prey.Entity())
	require.NotNil(t, hunter.AttackTarget())

	_, ok := w.Remove(prey.Entity().ObjectID())
	require.True(t, ok)

	assert.Nil(t, hunter.AttackTarget())
	_, ok = w.Remove(prey.Entity().ObjectID())
	assert.False(t, ok)
}

func TestWorld_Side(t *testing.T) {
	assert.False(t, New(SideServer).IsClientSide())
	assert.True(t, New(SideClient).IsClientSide())
	assert.Equal(t, "client", SideClient.String())
}

func TestWorld_PausedSkipsAIInit(t *testing.T) {
	w := New(SideServer)
	w.SetPaused(true)
	mp := newMobPatch(w, model.Vec3{}, patch.FactionUndead)

	require.NoError(t, w.Add(mp))
	assert.False(t, mp.AIInitialized())

	w.SetPaused(false)
	assert.False(t, w.IsPaused())
}

func TestWorld_Nearby(t *testing.T) {
	w := New(SideServer)
	center := newMobPatch(w, model.NewVec3(0, 0, 0), patch.FactionUndead)
	near := newMobPatch(w, model.NewVec3(3, 0, 4), patch.FactionUndead)
	far := newMobPatch(w, model.NewVec3(30, 0, 0), patch.FactionUndead)
	dead := newMobPatch(w, model.NewVec3(1, 0, 0), patch.FactionUndead)
	dead.Entity().SetHealth(0)
	for _, p := range []*patch.MobPatch{center, near, far, dead} {
		require.NoError(t, w.Add(p))
	}

	got := w.Nearby(center.Entity().Position(), 5, center.Entity().ObjectID())

	require.Len(t, got, 1)
	assert.Same(t, near.Entity(), got[0])
}

func TestWorld_ForEachMob(t *testing.T) {
	w := New(SideServer)
	require.NoError(t, w.Add(newMobPatch(w, model.Vec3{}, patch.FactionUndead)))
	require.NoError(t, w.Add(newMobPatch(w, model.Vec3{}, patch.FactionIllager)))
	require.NoError(t, w.Add(patch.NewPlayerPatch(model.NewPlayer(w.IDs().NextPlayerID(), "acc", "Steve", model.Vec3{}))))

	mobs := 0
	w.ForEachMob(func(*patch.MobPatch) bool {
		mobs++
		return true
	})
	assert.Equal(t, 2, mobs)
}

func TestObjectIDGenerator_Ranges(t *testing.T) {
	g := NewObjectIDGenerator()

	p := g.NextPlayerID()
	m := g.NextMobID()

	assert.True(t, IsPlayerID(p))
	assert.False(t, IsMobID(p))
	assert.True(t, IsMobID(m))
	assert.NotEqual(t, m, g.NextMobID())
}
