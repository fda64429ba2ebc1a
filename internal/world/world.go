// Package world is the level overlays live in: side, pause state and the
// registry of entities with their overlays.
package world

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
)

// Side tells whether a world is authoritative or an observer mirror.
type Side int8

const (
	SideServer Side = iota
	SideClient
)

// String returns the side name.
func (s Side) String() string {
	if s == SideClient {
		return "client"
	}
	return "server"
}

// World implements patch.Level.
type World struct {
	side   Side
	paused atomic.Bool

	patches sync.Map // map[uint32]patch.EntityPatch — objectID → overlay
	count   atomic.Int32

	ids *ObjectIDGenerator
}

// New creates an empty world.
func New(side Side) *World {
	return &World{
		side: side,
		ids:  NewObjectIDGenerator(),
	}
}

// Side returns the world side.
func (w *World) Side() Side {
	return w.side
}

// IDs returns the object ID generator of this world.
func (w *World) IDs() *ObjectIDGenerator {
	return w.ids
}

// IsClientSide implements patch.Level.
func (w *World) IsClientSide() bool {
	return w.side == SideClient
}

// IsPaused implements patch.Level.
func (w *World) IsPaused() bool {
	return w.paused.Load()
}

// SetPaused pauses or resumes the simulation.
func (w *World) SetPaused(paused bool) {
	w.paused.Store(paused)
}

// Add registers an overlay and notifies it that its entity joined.
// Returns error if the objectID is already taken.
func (w *World) Add(p patch.EntityPatch) error {
	id := p.Entity().ObjectID()
	if id == 0 {
		return fmt.Errorf("adding entity %q: zero objectID", p.Entity().Name())
	}
	if _, loaded := w.patches.LoadOrStore(id, p); loaded {
		return fmt.Errorf("adding entity %d: objectID already registered", id)
	}
	w.count.Add(1)

	p.OnJoinWorld(w)

	slog.Debug("entity joined world", "objectID", id, "side", w.side)
	return nil
}

// Remove unregisters an entity. Targets pointing at it stop resolving.
func (w *World) Remove(objectID uint32) (patch.EntityPatch, bool) {
	v, ok := w.patches.LoadAndDelete(objectID)
	if !ok {
		return nil, false
	}
	w.count.Add(-1)
	return v.(patch.EntityPatch), true
}

// Entity implements patch.Level.
func (w *World) Entity(objectID uint32) (*model.LivingEntity, bool) {
	p, ok := w.Patch(objectID)
	if !ok {
		return nil, false
	}
	return p.Entity(), true
}

// Patch implements patch.Level.
func (w *World) Patch(objectID uint32) (patch.EntityPatch, bool) {
	v, ok := w.patches.Load(objectID)
	if !ok {
		return nil, false
	}
	return v.(patch.EntityPatch), true
}

// Mob returns the mob overlay registered under objectID.
func (w *World) Mob(objectID uint32) (*patch.MobPatch, bool) {
	p, ok := w.Patch(objectID)
	if !ok {
		return nil, false
	}
	return patch.AsMob(p)
}

// ForEach calls fn for every overlay until fn returns false.
func (w *World) ForEach(fn func(patch.EntityPatch) bool) {
	w.patches.Range(func(_, v any) bool {
		return fn(v.(patch.EntityPatch))
	})
}

// ForEachMob calls fn for every mob overlay until fn returns false.
func (w *World) ForEachMob(fn func(*patch.MobPatch) bool) {
	w.ForEach(func(p patch.EntityPatch) bool {
		if mp, ok := patch.AsMob(p); ok {
			return fn(mp)
		}
		return true
	})
}

// Nearby returns living entities within radius of center, excluding exclude.
// Dead entities are skipped.
func (w *World) Nearby(center model.Vec3, radius float64, exclude uint32) []*model.LivingEntity {
	r2 := radius * radius
	var out []*model.LivingEntity
	w.ForEach(func(p patch.EntityPatch) bool {
		e := p.Entity()
		if e.ObjectID() == exclude || e.IsDead() {
			return true
		}
		if e.Position().DistanceSquared(center) <= r2 {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Len returns the number of registered entities.
func (w *World) Len() int {
	return int(w.count.Load())
}
