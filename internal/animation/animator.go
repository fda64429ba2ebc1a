// Package animation is a minimal layered animator used by observers to play
// the motion intents resolved for each entity.
package animation

import (
	"sync"

	"github.com/udisondev/mobpatch/internal/motion"
)

// Priority of a composite layer.
type Priority int8

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityMiddle
	PriorityHigh
	PriorityHighest
)

// Animation is a playable clip description.
type Animation struct {
	Name string
	// Ticks is the clip length; 0 loops forever.
	Ticks int
	// Rebound marks recovery clips played when leaving an aiming pose.
	Rebound bool
	// Aiming marks clips that hold an aiming pose.
	Aiming bool
}

// Empty is the clip of an idle layer.
var Empty = Animation{Name: "empty"}

type layer struct {
	playing Animation
	elapsed int
}

func (l *layer) play(a Animation) {
	l.playing = a
	l.elapsed = 0
}

func (l *layer) tick() {
	if l.playing.Ticks == 0 {
		return
	}
	l.elapsed++
	if l.elapsed >= l.playing.Ticks {
		l.play(Empty)
	}
}

// ClientAnimator plays a base layer driven by the primary motion and
// composite layers driven by the composite motion.
// Implements motion.Animator.
type ClientAnimator struct {
	mu sync.Mutex

	base       layer
	composites map[Priority]*layer

	living    map[motion.LivingMotion]Animation
	composite map[motion.LivingMotion]Animation
	rebound   Animation

	rebounds int
}

// NewClientAnimator creates an animator with empty layers.
func NewClientAnimator(rebound Animation) *ClientAnimator {
	rebound.Rebound = true
	a := &ClientAnimator{
		composites: make(map[Priority]*layer, int(PriorityHighest)+1),
		living:     make(map[motion.LivingMotion]Animation),
		composite:  make(map[motion.LivingMotion]Animation),
		rebound:    rebound,
	}
	for p := PriorityLowest; p <= PriorityHighest; p++ {
		a.composites[p] = &layer{playing: Empty}
	}
	a.base.playing = Empty
	return a
}

// AddLivingAnimation binds a base-layer clip to a primary motion.
func (a *ClientAnimator) AddLivingAnimation(m motion.LivingMotion, anim Animation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.living[m] = anim
}

// AddCompositeAnimation binds a middle-layer clip to a composite motion.
func (a *ClientAnimator) AddCompositeAnimation(m motion.LivingMotion, anim Animation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composite[m] = anim
}

// Apply switches clips to match a resolved state. Unbound motions leave the layer alone.
func (a *ClientAnimator) Apply(state motion.State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if anim, ok := a.living[state.Primary]; ok && a.base.playing.Name != anim.Name {
		a.base.play(anim)
	}

	middle := a.composites[PriorityMiddle]
	if middle.playing.Rebound {
		return
	}
	if anim, ok := a.composite[state.Composite]; ok {
		if middle.playing.Name != anim.Name {
			middle.play(anim)
		}
		return
	}
	if middle.playing.Aiming {
		// aiming clip is left for the rebound check of the next resolution
		return
	}
	middle.play(Empty)
}

// Tick advances every layer.
func (a *ClientAnimator) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.base.tick()
	for _, l := range a.composites {
		l.tick()
	}
}

// Playing returns the clip of a composite layer.
func (a *ClientAnimator) Playing(p Priority) Animation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.composites[p].playing
}

// BasePlaying returns the base layer clip.
func (a *ClientAnimator) BasePlaying() Animation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.base.playing
}

// MiddleLayerRebound implements motion.Animator.
func (a *ClientAnimator) MiddleLayerRebound() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.composites[PriorityMiddle].playing.Rebound
}

// IsAiming implements motion.Animator.
func (a *ClientAnimator) IsAiming() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, l := range a.composites {
		if l.playing.Aiming {
			return true
		}
	}
	return false
}

// PlayRebound implements motion.Animator.
func (a *ClientAnimator) PlayRebound() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.composites[PriorityMiddle].play(a.rebound)
	a.rebounds++
}

// Rebounds returns how many rebound clips were started.
func (a *ClientAnimator) Rebounds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rebounds
}
