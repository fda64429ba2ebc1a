package patch

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/attribute"
	"github.com/udisondev/mobpatch/internal/model"
)

// ItemCapability describes the combat attributes an item grants in a slot.
type ItemCapability interface {
	AttributeModifiers(slot model.EquipmentSlot) attribute.Modifiers
}

// ArmorCapability grants stun armor and weight when worn in an armor slot.
type ArmorCapability struct {
	Name      string
	StunArmor float64
	Weight    float64
}

// AttributeModifiers implements ItemCapability.
// Hands grant nothing; modifier IDs are keyed by slot so the same piece can
// be removed later from the slot it was worn in.
func (c ArmorCapability) AttributeModifiers(slot model.EquipmentSlot) attribute.Modifiers {
	if slot == model.SlotMainHand || slot == model.SlotOffHand {
		return nil
	}
	mods := attribute.Modifiers{}
	if c.StunArmor != 0 {
		mods[attribute.StunArmor] = []attribute.Modifier{{
			ID:        fmt.Sprintf("armor.%s.stun", slot),
			Name:      c.Name,
			Amount:    c.StunArmor,
			Operation: attribute.OpAddition,
		}}
	}
	if c.Weight != 0 {
		mods[attribute.WeightModifier] = []attribute.Modifier{{
			ID:        fmt.Sprintf("armor.%s.weight", slot),
			Name:      c.Name,
			Amount:    c.Weight,
			Operation: attribute.OpAddition,
		}}
	}
	return mods
}
