// Package attribute holds per-entity attribute instances and their modifiers.
package attribute

import (
	"fmt"
	"sync"
)

// Attribute identifies an entity attribute.
type Attribute string

const (
	MaxHealth      Attribute = "max_health"
	MovementSpeed  Attribute = "movement_speed"
	AttackDamage   Attribute = "attack_damage"
	Armor          Attribute = "armor"
	StunArmor      Attribute = "stun_armor"
	ArmorNegation  Attribute = "armor_negation"
	Impact         Attribute = "impact"
	MaxStrikes     Attribute = "max_strikes"
	OffhandDamage  Attribute = "offhand_attack_damage"
	OffhandSpeed   Attribute = "offhand_attack_speed"
	WeightModifier Attribute = "weight"
)

// Operation defines how a modifier is folded into the attribute value.
type Operation int8

const (
	// OpAddition adds Amount to the base value.
	OpAddition Operation = iota
	// OpMultiplyBase adds base*Amount after additions.
	OpMultiplyBase
	// OpMultiplyTotal multiplies the running total by (1+Amount).
	OpMultiplyTotal
)

// Modifier is a single attribute modifier. ID is unique per attribute.
type Modifier struct {
	ID        string
	Name      string
	Amount    float64
	Operation Operation
}

// Modifiers groups modifiers by attribute (one item can touch several attributes).
type Modifiers map[Attribute][]Modifier

type instance struct {
	base      float64
	modifiers map[string]Modifier
	transient map[string]struct{}
}

// Map stores attribute instances of one entity.
type Map struct {
	mu        sync.RWMutex
	instances map[Attribute]*instance
}

// NewMap creates an empty attribute map.
func NewMap() *Map {
	return &Map{instances: make(map[Attribute]*instance)}
}

// Register adds an attribute with the given base value.
// Registering an existing attribute only updates its base value.
func (m *Map) Register(attr Attribute, base float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inst, ok := m.instances[attr]; ok {
		inst.base = base
		return
	}
	m.instances[attr] = &instance{
		base:      base,
		modifiers: make(map[string]Modifier),
		transient: make(map[string]struct{}),
	}
}

// Has reports whether attr is registered.
func (m *Map) Has(attr Attribute) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.instances[attr]
	return ok
}

// AddTransientModifiers adds modifiers that are never persisted.
// Modifiers for unregistered attributes are ignored; a modifier with an
// existing ID replaces the old one.
func (m *Map) AddTransientModifiers(mods Modifiers) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attr, list := range mods {
		inst, ok := m.instances[attr]
		if !ok {
			continue
		}
		for _, mod := range list {
			inst.modifiers[mod.ID] = mod
			inst.transient[mod.ID] = struct{}{}
		}
	}
}

// AddPermanentModifier adds a modifier that survives transient cleanup.
func (m *Map) AddPermanentModifier(attr Attribute, mod Modifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[attr]
	if !ok {
		return fmt.Errorf("attribute %q not registered", attr)
	}
	if _, exists := inst.modifiers[mod.ID]; exists {
		return fmt.Errorf("modifier %q already applied to %q", mod.ID, attr)
	}
	inst.modifiers[mod.ID] = mod
	return nil
}

// RemoveModifiers removes modifiers by ID. Unknown IDs are ignored.
func (m *Map) RemoveModifiers(mods Modifiers) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attr, list := range mods {
		inst, ok := m.instances[attr]
		if !ok {
			continue
		}
		for _, mod := range list {
			delete(inst.modifiers, mod.ID)
			delete(inst.transient, mod.ID)
		}
	}
}

// ModifierCount returns the number of modifiers applied to attr.
func (m *Map) ModifierCount(attr Attribute) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inst, ok := m.instances[attr]
	if !ok {
		return 0
	}
	return len(inst.modifiers)
}

// Value returns the computed attribute value (0 when not registered).
//
// Formula: (base + Σadd) * (1 + Σmul_base) * Π(1 + mul_total)
func (m *Map) Value(attr Attribute) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inst, ok := m.instances[attr]
	if !ok {
		return 0
	}

	value := inst.base
	for _, mod := range inst.modifiers {
		if mod.Operation == OpAddition {
			value += mod.Amount
		}
	}

	total := value
	for _, mod := range inst.modifiers {
		if mod.Operation == OpMultiplyBase {
			total += value * mod.Amount
		}
	}
	for _, mod := range inst.modifiers {
		if mod.Operation == OpMultiplyTotal {
			total *= 1 + mod.Amount
		}
	}
	return total
}
