package model

// CombatStyle determines which motion variant and goals a mob gets.
type CombatStyle int8

const (
	// StylePassive mobs never attack.
	StylePassive CombatStyle = iota
	// StyleMelee mobs chase and hit.
	StyleMelee
	// StyleRanged mobs aim and shoot.
	StyleRanged
)

// String returns human-readable combat style name
func (s CombatStyle) String() string {
	switch s {
	case StylePassive:
		return "passive"
	case StyleMelee:
		return "melee"
	case StyleRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// MobTemplate — immutable шаблон моба.
type MobTemplate struct {
	templateID int32
	name       string
	style      CombatStyle
	maxHealth  float32
	eyeHeight  float64
	aggroRange float64
	moveSpeed  float64
	weapon     ItemKind
}

// NewMobTemplate creates a new mob template.
func NewMobTemplate(
	templateID int32,
	name string,
	style CombatStyle,
	maxHealth float32,
	eyeHeight, aggroRange, moveSpeed float64,
	weapon ItemKind,
) *MobTemplate {
	return &MobTemplate{
		templateID: templateID,
		name:       name,
		style:      style,
		maxHealth:  maxHealth,
		eyeHeight:  eyeHeight,
		aggroRange: aggroRange,
		moveSpeed:  moveSpeed,
		weapon:     weapon,
	}
}

// TemplateID returns template ID
func (t *MobTemplate) TemplateID() int32 { return t.templateID }

// Name returns mob name
func (t *MobTemplate) Name() string { return t.name }

// Style returns combat style
func (t *MobTemplate) Style() CombatStyle { return t.style }

// MaxHealth returns max health
func (t *MobTemplate) MaxHealth() float32 { return t.maxHealth }

// EyeHeight returns eye offset above feet
func (t *MobTemplate) EyeHeight() float64 { return t.eyeHeight }

// AggroRange returns target acquisition range (0 = never acquires targets)
func (t *MobTemplate) AggroRange() float64 { return t.aggroRange }

// MoveSpeed returns blocks per tick while chasing
func (t *MobTemplate) MoveSpeed() float64 { return t.moveSpeed }

// Weapon returns the item kind put in the main hand on spawn
func (t *MobTemplate) Weapon() ItemKind { return t.weapon }
