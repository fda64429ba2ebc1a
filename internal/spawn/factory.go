// Package spawn builds mobs with their overlays and keeps spawn points populated.
package spawn

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/mobpatch/internal/ai"
	"github.com/udisondev/mobpatch/internal/attribute"
	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/patch"
	"github.com/udisondev/mobpatch/internal/world"
)

// spacing between mobs of one spawn entry, in blocks.
const spreadStep = 2.0

// Announcer tells observers about spawns and removals.
type Announcer interface {
	AnnounceSpawn(p *patch.MobPatch) int
	AnnounceRemoval(objectID uint32) int
}

// Template is a mob template with its base attributes.
type Template struct {
	*model.MobTemplate
	AttackDamage float64
	StunArmor    float64
}

// BuildTemplates converts config templates.
func BuildTemplates(cfgs []config.MobTemplate) (map[int32]*Template, error) {
	out := make(map[int32]*Template, len(cfgs))
	for _, c := range cfgs {
		style, err := model.ParseCombatStyle(c.Style)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", c.ID, err)
		}
		weapon, err := model.ParseItemKind(c.Weapon)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", c.ID, err)
		}
		out[c.ID] = &Template{
			MobTemplate:  model.NewMobTemplate(c.ID, c.Name, style, c.MaxHealth, c.EyeHeight, c.AggroRange, c.MoveSpeed, weapon),
			AttackDamage: c.AttackDamage,
			StunArmor:    c.StunArmor,
		}
	}
	return out, nil
}

// Point is a spawn location of one mob.
type Point struct {
	ID         int64
	TemplateID int32
	Position   model.Vec3
}

// Factory creates mobs, wires their overlays and controllers, and
// registers them in the world.
type Factory struct {
	world     *world.World
	ticks     *ai.TickManager
	templates map[int32]*Template
	factions  *config.FactionTable
	sender    patch.TrackerSender
	announcer Announcer

	points    sync.Map // objectID → Point
	nextPoint atomic.Int64
}

// NewFactory creates a factory. sender and announcer may be nil.
func NewFactory(
	w *world.World,
	ticks *ai.TickManager,
	templates map[int32]*Template,
	factions *config.FactionTable,
	sender patch.TrackerSender,
	announcer Announcer,
) *Factory {
	return &Factory{
		world:     w,
		ticks:     ticks,
		templates: templates,
		factions:  factions,
		sender:    sender,
		announcer: announcer,
	}
}

// FactionOf returns the faction of a template from the current table.
// Unknown templates and bad names are NEUTRAL.
func (f *Factory) FactionOf(templateID int32) patch.Faction {
	if f.factions == nil {
		return patch.FactionNeutral
	}
	name, ok := f.factions.Lookup(templateID)
	if !ok {
		return patch.FactionNeutral
	}
	faction, err := patch.ParseFaction(name)
	if err != nil {
		slog.Warn("bad faction in table, using neutral", "templateID", templateID, "error", err)
		return patch.FactionNeutral
	}
	return faction
}

// NewPoint allocates a spawn point id.
func (f *Factory) NewPoint(templateID int32, pos model.Vec3) Point {
	return Point{ID: f.nextPoint.Add(1), TemplateID: templateID, Position: pos}
}

// Spawn creates a mob at pt and puts it into the world.
func (f *Factory) Spawn(pt Point) (*patch.MobPatch, error) {
	tmpl, ok := f.templates[pt.TemplateID]
	if !ok {
		return nil, fmt.Errorf("unknown mob template %d", pt.TemplateID)
	}

	objectID := f.world.IDs().NextMobID()
	mob := model.NewMob(objectID, tmpl.MobTemplate, pt.Position)
	mob.SetItemInHand(model.MainHand, model.ItemStack{Kind: tmpl.Weapon()})

	attrs := mob.Attributes()
	attrs.Register(attribute.MovementSpeed, tmpl.MoveSpeed())
	attrs.Register(attribute.StunArmor, tmpl.StunArmor)
	if tmpl.AttackDamage > 0 {
		attrs.Register(attribute.AttackDamage, tmpl.AttackDamage)
	}

	faction := f.FactionOf(pt.TemplateID)
	opts := []patch.MobOption{patch.WithGoalInstaller(ai.CombatGoalInstaller())}
	if f.sender != nil {
		opts = append(opts, patch.WithTrackerSender(f.sender))
	}
	p := patch.NewMobPatch(mob, faction, nil, opts...)
	addHostGoals(p, f.world.Nearby)

	if err := f.world.Add(p); err != nil {
		return nil, fmt.Errorf("adding mob to world: %w", err)
	}
	f.points.Store(objectID, pt)
	f.ticks.Register(objectID, ai.NewMobController(p, f.sender))

	if f.announcer != nil {
		f.announcer.AnnounceSpawn(p)
	}

	slog.Info("mob spawned",
		"objectID", objectID,
		"name", mob.Name(),
		"templateID", pt.TemplateID,
		"faction", faction,
		"position", pt.Position)

	return p, nil
}

// addHostGoals gives a mob the goal set a host entity would have before
// the overlay substitutes its combat goals.
func addHostGoals(p *patch.MobPatch, scan ai.ScanFunc) {
	sel := p.Mob().GoalSelector()
	switch p.Mob().Template().Style() {
	case model.StyleMelee:
		sel.AddGoal(1, ai.NewNearestAttackableTargetGoal(p, scan))
		sel.AddGoal(2, ai.NewMeleeAttackGoal(p))
	case model.StyleRanged:
		sel.AddGoal(1, ai.NewNearestAttackableTargetGoal(p, scan))
		sel.AddGoal(2, ai.NewRangedAttackGoal(p))
	}
	sel.AddGoal(5, ai.NewRandomStrollGoal(p))
}

// Despawn removes a mob and returns the point it came from.
func (f *Factory) Despawn(objectID uint32) (Point, bool) {
	value, ok := f.points.LoadAndDelete(objectID)
	if !ok {
		return Point{}, false
	}
	pt := value.(Point)

	f.ticks.Unregister(objectID)
	f.world.Remove(objectID)
	if f.announcer != nil {
		f.announcer.AnnounceRemoval(objectID)
	}

	slog.Info("mob despawned", "objectID", objectID, "templateID", pt.TemplateID, "pointID", pt.ID)
	return pt, true
}

// SpawnAll spawns every entry, spreading Count mobs along X.
func (f *Factory) SpawnAll(entries []config.SpawnEntry) error {
	count := 0
	var firstErr error

	for _, e := range entries {
		n := max(e.Count, 1)
		for i := range n {
			pos := model.NewVec3(e.X+float64(i)*spreadStep, e.Y, e.Z)
			if _, err := f.Spawn(f.NewPoint(e.TemplateID, pos)); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				slog.Error("failed to spawn mob", "templateID", e.TemplateID, "error", err)
				break
			}
			count++
		}
	}

	if firstErr != nil {
		slog.Warn("SpawnAll completed with errors", "spawned", count, "error", firstErr)
		return fmt.Errorf("spawning all mobs: %w", firstErr)
	}

	slog.Info("all mobs spawned", "count", count)
	return nil
}

// DeadMobs returns ids of spawned mobs that are dead.
func (f *Factory) DeadMobs() []uint32 {
	var dead []uint32
	f.points.Range(func(key, _ any) bool {
		id := key.(uint32)
		if e, ok := f.world.Entity(id); ok && e.IsDead() {
			dead = append(dead, id)
		}
		return true
	})
	return dead
}

// Count returns the number of live spawned mobs.
func (f *Factory) Count() int {
	n := 0
	f.points.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
