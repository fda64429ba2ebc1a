package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/mobpatch/internal/model"
)

type fakeAnimator struct {
	rebound  bool
	aiming   bool
	rebounds int
}

func (f *fakeAnimator) MiddleLayerRebound() bool { return f.rebound }
func (f *fakeAnimator) IsAiming() bool           { return f.aiming }
func (f *fakeAnimator) PlayRebound()             { f.rebounds++ }

func alive() Input {
	return Input{Health: 20}
}

func TestPrimary_Priority(t *testing.T) {
	tests := []struct {
		name             string
		in               Input
		considerInaction bool
		chase            bool
		want             LivingMotion
	}{
		{
			name: "idle",
			in:   alive(),
			want: Idle,
		},
		{
			name:             "inaction short-circuits death",
			in:               Input{Inaction: true, Health: 0, Mounted: true},
			considerInaction: true,
			want:             Inaction,
		},
		{
			name: "inaction ignored when not considered",
			in:   Input{Inaction: true, Health: 20},
			want: Idle,
		},
		{
			name: "death beats everything else",
			in:   Input{Health: 0, Mounted: true, VelocityY: -3, AnimationSpeed: 5, Aggressive: true},
			want: Death,
		},
		{
			name: "negative health is death",
			in:   Input{Health: -1},
			want: Death,
		},
		{
			name: "mount beats fall and walk",
			in:   Input{Health: 20, Mounted: true, VelocityY: -3, AnimationSpeed: 5},
			want: Mount,
		},
		{
			name: "fall beats walk",
			in:   Input{Health: 20, VelocityY: -0.6, AnimationSpeed: 5},
			want: Fall,
		},
		{
			name: "fall threshold is exclusive",
			in:   Input{Health: 20, VelocityY: -0.55},
			want: Idle,
		},
		{
			name: "walk above speed epsilon",
			in:   Input{Health: 20, AnimationSpeed: 0.02},
			want: Walk,
		},
		{
			name: "speed epsilon is exclusive",
			in:   Input{Health: 20, AnimationSpeed: 0.01},
			want: Idle,
		},
		{
			name:  "chase when aggressive",
			in:    Input{Health: 20, AnimationSpeed: 0.5, Aggressive: true},
			chase: true,
			want:  Chase,
		},
		{
			name:  "walk when not aggressive",
			in:    Input{Health: 20, AnimationSpeed: 0.5},
			chase: true,
			want:  Walk,
		},
		{
			name: "non-aggressive variant walks even if flagged",
			in:   Input{Health: 20, AnimationSpeed: 0.5, Aggressive: true},
			want: Walk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Primary(tt.in, tt.considerInaction, tt.chase)
			if got != tt.want {
				t.Errorf("Primary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvers_DeathIsTerminal(t *testing.T) {
	resolvers := []Resolver{Common{}, Aggressive{}, AggressiveRanged{}}
	inputs := []Input{
		{Health: 0},
		{Health: 0, AnimationSpeed: 5},
		{Health: 0, Mounted: true},
		{Health: 0, VelocityY: -10, Aggressive: true},
	}

	for _, r := range resolvers {
		for _, in := range inputs {
			got := r.Resolve(in, true, nil)
			assert.Equal(t, Death, got.Primary, "%T %+v", r, in)
		}
	}
}

func TestResolvers_Scenario(t *testing.T) {
	assert.Equal(t, Idle, Common{}.Resolve(Input{Health: 20}, true, nil).Primary)
	assert.Equal(t, Death, Common{}.Resolve(Input{Health: 0, AnimationSpeed: 5}, true, nil).Primary)

	chasing := Input{Health: 20, AnimationSpeed: 0.5, Aggressive: true}
	assert.Equal(t, Chase, Aggressive{}.Resolve(chasing, true, nil).Primary)

	chasing.Aggressive = false
	assert.Equal(t, Walk, Aggressive{}.Resolve(chasing, true, nil).Primary)
}

func TestResolvers_CompositeDefaultsToPrimary(t *testing.T) {
	for _, r := range []Resolver{Common{}, Aggressive{}} {
		got := r.Resolve(Input{Health: 20, VelocityY: -1}, false, nil)
		assert.Equal(t, got.Primary, got.Composite)
		assert.Equal(t, Fall, got.Composite)
	}
}

func TestResolvers_Idempotent(t *testing.T) {
	in := Input{Health: 7, AnimationSpeed: 0.3, Aggressive: true}
	for _, r := range []Resolver{Common{}, Aggressive{}, AggressiveRanged{}} {
		first := r.Resolve(in, true, nil)
		second := r.Resolve(in, true, nil)
		assert.Equal(t, first, second, "%T", r)
	}
}

func TestCompositeOverride(t *testing.T) {
	walking := State{Primary: Walk, Composite: Walk}

	tests := []struct {
		name         string
		in           Input
		anim         fakeAnimator
		want         LivingMotion
		wantRebounds int
	}{
		{
			name: "no override",
			in:   alive(),
			want: Walk,
		},
		{
			name: "drawing a bow aims",
			in:   Input{Health: 20, UsingItem: true, UseAnim: model.UseAnimBow},
			want: Aim,
		},
		{
			name: "loading a crossbow reloads",
			in:   Input{Health: 20, UsingItem: true, UseAnim: model.UseAnimCrossbow},
			want: Reload,
		},
		{
			name: "rebound suppresses locomotion replay",
			in:   alive(),
			anim: fakeAnimator{rebound: true},
			want: None,
		},
		{
			name: "using item wins over rebound",
			in:   Input{Health: 20, UsingItem: true, UseAnim: model.UseAnimBow},
			anim: fakeAnimator{rebound: true},
			want: Aim,
		},
		{
			name: "charged weapon forces aim",
			in:   Input{Health: 20, WeaponCharged: true},
			anim: fakeAnimator{rebound: true, aiming: true},
			want: Aim,
		},
		{
			name: "charged weapon forces aim over reload",
			in:   Input{Health: 20, UsingItem: true, UseAnim: model.UseAnimCrossbow, WeaponCharged: true},
			want: Aim,
		},
		{
			name:         "aiming pose without aim intent rebounds",
			in:           alive(),
			anim:         fakeAnimator{aiming: true},
			want:         Walk,
			wantRebounds: 1,
		},
		{
			name: "aiming pose with aim intent keeps aiming",
			in:   Input{Health: 20, UsingItem: true, UseAnim: model.UseAnimBow},
			anim: fakeAnimator{aiming: true},
			want: Aim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim := tt.anim
			got := CompositeOverride(walking, tt.in, &anim)

			assert.Equal(t, Walk, got.Primary, "primary is never overridden")
			assert.Equal(t, tt.want, got.Composite)
			assert.Equal(t, tt.wantRebounds, anim.rebounds)
		})
	}
}

func TestCompositeOverride_NilAnimator(t *testing.T) {
	got := CompositeOverride(State{Primary: Idle, Composite: Idle}, alive(), nil)
	assert.Equal(t, Idle, got.Composite)
}

func TestAggressiveRanged_Resolve(t *testing.T) {
	anim := &fakeAnimator{}
	in := Input{Health: 20, AnimationSpeed: 0.4, Aggressive: true, UsingItem: true, UseAnim: model.UseAnimBow}

	got := AggressiveRanged{}.Resolve(in, true, anim)
	assert.Equal(t, State{Primary: Chase, Composite: Aim}, got)
}

func TestAggressiveRanged_DeadEntityStillAims(t *testing.T) {
	in := Input{Health: 0, WeaponCharged: true}

	got := AggressiveRanged{}.Resolve(in, true, nil)
	assert.Equal(t, Death, got.Primary)
	assert.Equal(t, Aim, got.Composite)
}

func TestInputFrom(t *testing.T) {
	e := model.NewLivingEntity(1, "Pillager", model.NewVec3(0, 0, 0), 24, 1.6)
	e.SetDeltaMovement(model.NewVec3(0, -0.8, 0))
	e.SetAnimationSpeed(0.3)
	e.StartRiding(9)
	e.SetItemInHand(model.MainHand, model.ItemStack{Kind: model.ItemCrossbow, Charged: true})
	e.StartUsingItem(model.MainHand)

	in := InputFrom(e, true, true)
	assert.True(t, in.Inaction)
	assert.True(t, in.Aggressive)
	assert.True(t, in.Mounted)
	assert.InDelta(t, -0.8, in.VelocityY, 1e-9)
	assert.InDelta(t, 0.3, float64(in.AnimationSpeed), 1e-6)
	assert.True(t, in.UsingItem)
	assert.Equal(t, model.UseAnimCrossbow, in.UseAnim)
	assert.True(t, in.WeaponCharged)
}

func TestForStyle(t *testing.T) {
	assert.IsType(t, Common{}, ForStyle(model.StylePassive))
	assert.IsType(t, Aggressive{}, ForStyle(model.StyleMelee))
	assert.IsType(t, AggressiveRanged{}, ForStyle(model.StyleRanged))
}
