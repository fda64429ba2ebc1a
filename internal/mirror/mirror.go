// Package mirror is the observer side: it rebuilds tracked mobs on a
// client-side world from sync packets and resolves their motion locally.
package mirror

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/mobpatch/internal/animation"
	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/motion"
	"github.com/udisondev/mobpatch/internal/patch"
	"github.com/udisondev/mobpatch/internal/world"
)

// Frame is what a presentation layer needs to draw one mirrored mob.
type Frame struct {
	Motion   motion.State
	Pitch    float32
	TargetID uint32
	Base     animation.Animation
	Middle   animation.Animation
}

type mirrored struct {
	p     *patch.MobPatch
	state *patch.EntityState
	anim  *animation.ClientAnimator
}

// Mirror holds the observer's copy of tracked mobs.
type Mirror struct {
	world *world.World

	mu   sync.RWMutex
	mobs map[uint32]*mirrored

	// OnSpawn is called for every newly mirrored mob (used to auto-track).
	OnSpawn func(objectID uint32)
}

// New creates a mirror over a fresh client-side world.
func New() *Mirror {
	return &Mirror{
		world: world.New(world.SideClient),
		mobs:  make(map[uint32]*mirrored),
	}
}

// World returns the client-side world.
func (m *Mirror) World() *world.World {
	return m.world
}

// Len returns the number of mirrored mobs.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.mobs)
}

// Handle dispatches one decrypted server payload.
func (m *Mirror) Handle(payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("empty payload")
	}
	opcode, body := payload[0], payload[1:]

	switch opcode {
	case serverpackets.OpcodeMobInfo:
		pkt, err := serverpackets.ParseMobInfo(body)
		if err != nil {
			return fmt.Errorf("parsing MobInfo: %w", err)
		}
		_, err = m.ApplyMobInfo(pkt)
		return err

	case serverpackets.OpcodeMobStatus:
		pkt, err := serverpackets.ParseMobStatus(body)
		if err != nil {
			return fmt.Errorf("parsing MobStatus: %w", err)
		}
		m.ApplyMobStatus(pkt)
		return nil

	case serverpackets.OpcodeSetAttackTarget:
		pkt, err := serverpackets.ParseSetAttackTarget(body)
		if err != nil {
			return fmt.Errorf("parsing SetAttackTarget: %w", err)
		}
		m.ApplyAttackTarget(pkt)
		return nil

	case serverpackets.OpcodeDeleteObject:
		pkt, err := serverpackets.ParseDeleteObject(body)
		if err != nil {
			return fmt.Errorf("parsing DeleteObject: %w", err)
		}
		m.Remove(uint32(pkt.ObjectID))
		return nil

	default:
		return fmt.Errorf("unknown opcode 0x%02X", opcode)
	}
}

// ApplyMobInfo mirrors a mob announced by the server.
// A repeated announcement of a known mob returns the existing overlay.
func (m *Mirror) ApplyMobInfo(info *serverpackets.MobInfo) (*patch.MobPatch, error) {
	objectID := uint32(info.ObjectID)

	m.mu.Lock()
	if mm, ok := m.mobs[objectID]; ok {
		m.mu.Unlock()
		return mm.p, nil
	}

	mob := model.NewMob(objectID, info.Template(), info.Position)
	mob.SetItemInHand(model.MainHand, model.ItemStack{Kind: info.Weapon})

	state := &patch.EntityState{}
	anim := animation.NewBipedAnimator()
	p := patch.NewMobPatch(mob, patch.Faction(info.Faction), nil,
		patch.WithAnimator(anim),
		patch.WithBehaviorState(state))

	if err := m.world.Add(p); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("mirroring mob %d: %w", objectID, err)
	}
	m.mobs[objectID] = &mirrored{p: p, state: state, anim: anim}
	m.mu.Unlock()

	slog.Debug("mob mirrored", "objectID", objectID, "name", info.Name, "faction", p.Faction())

	if m.OnSpawn != nil {
		m.OnSpawn(objectID)
	}
	return p, nil
}

func (m *Mirror) lookup(objectID uint32) (*mirrored, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mm, ok := m.mobs[objectID]
	return mm, ok
}

// ApplyMobStatus copies the status onto the mirrored mob, resolves its
// motion and advances the animator by one tick.
func (m *Mirror) ApplyMobStatus(st *serverpackets.MobStatus) {
	mm, ok := m.lookup(uint32(st.ObjectID))
	if !ok {
		slog.Debug("status for unknown mob", "objectID", st.ObjectID)
		return
	}

	st.Apply(mm.p.Mob())
	mm.state.SetInaction(st.Inaction)

	s := mm.p.UpdateMotion(true)
	mm.anim.Apply(s)
	mm.anim.Tick()
}

// ApplyAttackTarget applies a replicated target change.
func (m *Mirror) ApplyAttackTarget(pkt *serverpackets.SetAttackTarget) {
	mm, ok := m.lookup(uint32(pkt.EntityID))
	if !ok {
		slog.Debug("attack target for unknown mob", "objectID", pkt.EntityID)
		return
	}
	mm.p.ApplyAttackTarget(pkt.TargetID)
}

// Remove drops a mirrored mob.
func (m *Mirror) Remove(objectID uint32) {
	m.mu.Lock()
	delete(m.mobs, objectID)
	m.mu.Unlock()
	m.world.Remove(objectID)
}

// Frame returns the presentation state of a mirrored mob.
func (m *Mirror) Frame(objectID uint32, pc patch.PresentationContext) (Frame, bool) {
	mm, ok := m.lookup(objectID)
	if !ok {
		return Frame{}, false
	}
	return Frame{
		Motion:   mm.p.Motion(),
		Pitch:    mm.p.AttackDirectionPitch(pc),
		TargetID: mm.p.Mob().Target(),
		Base:     mm.anim.BasePlaying(),
		Middle:   mm.anim.Playing(animation.PriorityMiddle),
	}, true
}

// Patch returns the overlay of a mirrored mob.
func (m *Mirror) Patch(objectID uint32) (*patch.MobPatch, bool) {
	mm, ok := m.lookup(objectID)
	if !ok {
		return nil, false
	}
	return mm.p, true
}
