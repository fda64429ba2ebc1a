package model

// ItemKind is a coarse item classification used by motion and attribute code.
type ItemKind int8

const (
	ItemEmpty ItemKind = iota
	ItemSword
	ItemAxe
	ItemBow
	ItemCrossbow
	ItemShield
	ItemArmor
	ItemFood
)

// String returns human-readable item kind name
func (k ItemKind) String() string {
	switch k {
	case ItemEmpty:
		return "EMPTY"
	case ItemSword:
		return "SWORD"
	case ItemAxe:
		return "AXE"
	case ItemBow:
		return "BOW"
	case ItemCrossbow:
		return "CROSSBOW"
	case ItemShield:
		return "SHIELD"
	case ItemArmor:
		return "ARMOR"
	case ItemFood:
		return "FOOD"
	default:
		return "UNKNOWN"
	}
}

// UseAnim describes the animation an item plays while it is being used.
type UseAnim int8

const (
	UseAnimNone UseAnim = iota
	UseAnimEat
	UseAnimDrink
	UseAnimBlock
	UseAnimBow
	UseAnimSpear
	UseAnimCrossbow
)

// String returns human-readable use animation name
func (u UseAnim) String() string {
	switch u {
	case UseAnimNone:
		return "NONE"
	case UseAnimEat:
		return "EAT"
	case UseAnimDrink:
		return "DRINK"
	case UseAnimBlock:
		return "BLOCK"
	case UseAnimBow:
		return "BOW"
	case UseAnimSpear:
		return "SPEAR"
	case UseAnimCrossbow:
		return "CROSSBOW"
	default:
		return "UNKNOWN"
	}
}

// Hand identifies which hand holds or uses an item.
type Hand int8

const (
	MainHand Hand = iota
	OffHand
)

// EquipmentSlot identifies an equipment slot.
type EquipmentSlot int8

const (
	SlotMainHand EquipmentSlot = iota
	SlotOffHand
	SlotFeet
	SlotLegs
	SlotChest
	SlotHead
)

// String returns human-readable slot name
func (s EquipmentSlot) String() string {
	switch s {
	case SlotMainHand:
		return "MAINHAND"
	case SlotOffHand:
		return "OFFHAND"
	case SlotFeet:
		return "FEET"
	case SlotLegs:
		return "LEGS"
	case SlotChest:
		return "CHEST"
	case SlotHead:
		return "HEAD"
	default:
		return "UNKNOWN"
	}
}

// ItemStack is a held or equipped item. Value type.
type ItemStack struct {
	Kind ItemKind
	// Charged is set on crossbows that hold a loaded projectile.
	Charged bool
}

// EmptyStack is the zero item.
var EmptyStack = ItemStack{}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Kind == ItemEmpty
}

// UseAnimation returns the animation played while this item is used.
func (s ItemStack) UseAnimation() UseAnim {
	switch s.Kind {
	case ItemBow:
		return UseAnimBow
	case ItemCrossbow:
		return UseAnimCrossbow
	case ItemShield:
		return UseAnimBlock
	case ItemFood:
		return UseAnimEat
	default:
		return UseAnimNone
	}
}

// IsChargedCrossbow reports whether the stack is a crossbow with a loaded projectile.
func (s ItemStack) IsChargedCrossbow() bool {
	return s.Kind == ItemCrossbow && s.Charged
}
