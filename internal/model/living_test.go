package model

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEntity(t *testing.T) *LivingEntity {
	t.Helper()
	return NewLivingEntity(1, "Zombie", NewVec3(0, 64, 0), 20, 1.74)
}

func TestLivingEntity_SetHealth_Clamp(t *testing.T) {
	tests := []struct {
		name string
		set  float32
		want float32
	}{
		{"normal", 12, 12},
		{"negative clamps to zero", -5, 0},
		{"above max clamps to max", 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEntity(t)
			e.SetHealth(tt.set)
			if got := e.Health(); got != tt.want {
				t.Errorf("Health() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLivingEntity_IsDead(t *testing.T) {
	e := newTestEntity(t)
	assert.False(t, e.IsDead())

	e.SetHealth(0)
	assert.True(t, e.IsDead())
}

func TestLivingEntity_Riding(t *testing.T) {
	e := newTestEntity(t)
	assert.False(t, e.IsPassenger())

	e.StartRiding(42)
	assert.True(t, e.IsPassenger())
	assert.Equal(t, uint32(42), e.Vehicle())

	e.StopRiding()
	assert.False(t, e.IsPassenger())
}

func TestLivingEntity_EyePosition_Interpolates(t *testing.T) {
	e := newTestEntity(t)
	e.MoveTo(NewVec3(2, 64, 4))

	start := e.EyePosition(0)
	assert.InDelta(t, 0.0, start.X, 1e-9)
	assert.InDelta(t, 64+1.74, start.Y, 1e-9)

	mid := e.EyePosition(0.5)
	assert.InDelta(t, 1.0, mid.X, 1e-9)
	assert.InDelta(t, 2.0, mid.Z, 1e-9)

	end := e.EyePosition(1)
	assert.InDelta(t, 2.0, end.X, 1e-9)
	assert.InDelta(t, 4.0, end.Z, 1e-9)
}

func TestLivingEntity_Teleport_NoInterpolation(t *testing.T) {
	e := newTestEntity(t)
	e.Teleport(NewVec3(100, 70, 100))

	assert.Equal(t, e.EyePosition(0), e.EyePosition(1))
}

func TestLivingEntity_ViewXRot(t *testing.T) {
	e := newTestEntity(t)
	e.SetXRot(40)

	assert.InDelta(t, 20.0, float64(e.ViewXRot(0.5)), 1e-6)
	assert.InDelta(t, 40.0, float64(e.ViewXRot(1)), 1e-6)
}

func TestLivingEntity_UseItem(t *testing.T) {
	e := newTestEntity(t)
	e.SetItemInHand(OffHand, ItemStack{Kind: ItemCrossbow})

	e.StartUsingItem(OffHand)
	assert.True(t, e.IsUsingItem())
	assert.Equal(t, OffHand, e.UsedHand())
	assert.Equal(t, UseAnimCrossbow, e.ItemInHand(e.UsedHand()).UseAnimation())

	e.StopUsingItem()
	assert.False(t, e.IsUsingItem())
}

func TestLivingEntity_IsAlliedTo(t *testing.T) {
	a := newTestEntity(t)
	b := NewLivingEntity(2, "Skeleton", NewVec3(0, 0, 0), 20, 1.74)

	assert.False(t, a.IsAlliedTo(b), "empty teams are never allied")
	assert.False(t, a.IsAlliedTo(nil))

	a.SetTeam("red")
	b.SetTeam("red")
	assert.True(t, a.IsAlliedTo(b))

	b.SetTeam("blue")
	assert.False(t, a.IsAlliedTo(b))
}

func TestLivingEntity_ConcurrentAccess(t *testing.T) {
	e := newTestEntity(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.SetDeltaMovement(NewVec3(0, float64(-i), 0))
			e.MoveTo(NewVec3(float64(i), 64, 0))
		}()
		go func() {
			defer wg.Done()
			_ = e.DeltaMovement()
			_ = e.EyePosition(0.5)
		}()
	}
	wg.Wait()
}

func TestVec3_HorizontalLength(t *testing.T) {
	v := NewVec3(3, 100, 4)
	assert.InDelta(t, 5.0, v.HorizontalLength(), 1e-9)
	assert.InDelta(t, math.Sqrt(9+16+10000), math.Sqrt(v.DistanceSquared(Vec3{})), 1e-9)
}
