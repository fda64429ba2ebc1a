package model

import "sync/atomic"

// Mob represents a simulated non-player entity with AI goals.
type Mob struct {
	*LivingEntity // embedding LivingEntity

	template *MobTemplate
	noAI     bool

	aggressive atomic.Bool
	target     atomic.Uint32 // native target field: objectID (0 = none)

	goals *GoalSelector
}

// NewMob creates a new Mob instance from template.
func NewMob(objectID uint32, template *MobTemplate, pos Vec3) *Mob {
	return &Mob{
		LivingEntity: NewLivingEntity(objectID, template.Name(), pos, template.MaxHealth(), template.EyeHeight()),
		template:     template,
		goals:        NewGoalSelector(),
	}
}

// Template returns the mob template.
func (m *Mob) Template() *MobTemplate {
	return m.template
}

// TemplateID returns the template ID.
func (m *Mob) TemplateID() int32 {
	return m.template.TemplateID()
}

// IsNoAI reports whether AI is disabled for this mob.
func (m *Mob) IsNoAI() bool {
	return m.noAI
}

// SetNoAI disables or enables AI. Must be set before the mob joins a level.
func (m *Mob) SetNoAI(noAI bool) {
	m.noAI = noAI
}

// IsAggressive returns whether mob is aggressive (atomic read)
func (m *Mob) IsAggressive() bool {
	return m.aggressive.Load()
}

// SetAggressive sets aggressive flag (atomic write)
func (m *Mob) SetAggressive(aggressive bool) {
	m.aggressive.Store(aggressive)
}

// Target returns current target objectID (0 if no target).
func (m *Mob) Target() uint32 {
	return m.target.Load()
}

// SetTarget sets current target objectID.
func (m *Mob) SetTarget(objectID uint32) {
	m.target.Store(objectID)
}

// ClearTarget clears current target.
func (m *Mob) ClearTarget() {
	m.target.Store(0)
}

// GoalSelector returns the installed AI goals.
func (m *Mob) GoalSelector() *GoalSelector {
	return m.goals
}
