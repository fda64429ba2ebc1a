package model

import (
	"github.com/udisondev/mobpatch/internal/attribute"
)

// LivingEntity — базовый класс для живых существ (Player, Mob).
// Добавляет к WorldObject физическое состояние, которое читает резолвер движения:
// health, delta movement, animation speed, vehicle, held items.
type LivingEntity struct {
	*WorldObject // embedded

	health    float32
	maxHealth float32

	deltaMovement  Vec3
	animationSpeed float32

	// vehicleID is the objectID of the entity this one rides (0 = not mounted).
	vehicleID uint32

	eyeHeight float64
	xRot      float32 // view pitch in degrees, positive looks down
	prevXRot  float32

	mainHand  ItemStack
	offHand   ItemStack
	usedHand  Hand
	usingItem bool

	// team is a scoreboard-style allegiance read by the fallback faction policy.
	team string

	attributes *attribute.Map
}

// NewLivingEntity создаёт живое существо с полным здоровьем.
func NewLivingEntity(objectID uint32, name string, pos Vec3, maxHealth float32, eyeHeight float64) *LivingEntity {
	attrs := attribute.NewMap()
	attrs.Register(attribute.MaxHealth, float64(maxHealth))

	return &LivingEntity{
		WorldObject: NewWorldObject(objectID, name, pos),
		health:      maxHealth,
		maxHealth:   maxHealth,
		eyeHeight:   eyeHeight,
		attributes:  attrs,
	}
}

// Health возвращает текущее здоровье.
func (e *LivingEntity) Health() float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.health
}

// MaxHealth возвращает максимальное здоровье.
func (e *LivingEntity) MaxHealth() float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maxHealth
}

// SetHealth устанавливает здоровье с валидацией (clamp 0..maxHealth).
func (e *LivingEntity) SetHealth(hp float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if hp < 0 {
		hp = 0
	}
	if hp > e.maxHealth {
		hp = e.maxHealth
	}
	e.health = hp
}

// IsDead проверяет мёртв ли персонаж (health <= 0).
func (e *LivingEntity) IsDead() bool {
	return e.Health() <= 0
}

// DeltaMovement returns the velocity applied this tick.
func (e *LivingEntity) DeltaMovement() Vec3 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deltaMovement
}

// SetDeltaMovement sets the velocity applied this tick.
func (e *LivingEntity) SetDeltaMovement(v Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deltaMovement = v
}

// AnimationSpeed returns the horizontal limb-swing speed metric.
func (e *LivingEntity) AnimationSpeed() float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.animationSpeed
}

// SetAnimationSpeed sets the limb-swing speed metric.
func (e *LivingEntity) SetAnimationSpeed(speed float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.animationSpeed = speed
}

// Vehicle returns objectID of the ridden entity (0 if not mounted).
func (e *LivingEntity) Vehicle() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vehicleID
}

// IsPassenger reports whether the entity rides another one.
func (e *LivingEntity) IsPassenger() bool {
	return e.Vehicle() != 0
}

// StartRiding mounts the entity on vehicleID.
func (e *LivingEntity) StartRiding(vehicleID uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vehicleID = vehicleID
}

// StopRiding dismounts the entity.
func (e *LivingEntity) StopRiding() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vehicleID = 0
}

// EyeHeight returns eye offset above the feet position.
func (e *LivingEntity) EyeHeight() float64 {
	return e.eyeHeight
}

// EyePosition returns the eye position interpolated between the previous and
// the current tick.
func (e *LivingEntity) EyePosition(partialTick float64) Vec3 {
	pos := e.InterpolatedPosition(partialTick)
	pos.Y += e.eyeHeight
	return pos
}

// SetXRot sets the view pitch and keeps the old one for interpolation.
func (e *LivingEntity) SetXRot(deg float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prevXRot = e.xRot
	e.xRot = deg
}

// ViewXRot returns the interpolated view pitch.
func (e *LivingEntity) ViewXRot(partialTick float32) float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.prevXRot + (e.xRot-e.prevXRot)*partialTick
}

// ItemInHand returns the stack held in hand.
func (e *LivingEntity) ItemInHand(hand Hand) ItemStack {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if hand == OffHand {
		return e.offHand
	}
	return e.mainHand
}

// MainHandItem returns the main hand stack.
func (e *LivingEntity) MainHandItem() ItemStack {
	return e.ItemInHand(MainHand)
}

// SetItemInHand replaces the stack held in hand.
func (e *LivingEntity) SetItemInHand(hand Hand, stack ItemStack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if hand == OffHand {
		e.offHand = stack
		return
	}
	e.mainHand = stack
}

// StartUsingItem marks the item in hand as being used (drawing a bow, loading a crossbow...).
func (e *LivingEntity) StartUsingItem(hand Hand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.usedHand = hand
	e.usingItem = true
}

// StopUsingItem clears the use state.
func (e *LivingEntity) StopUsingItem() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.usingItem = false
}

// IsUsingItem reports whether an item is currently being used.
func (e *LivingEntity) IsUsingItem() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.usingItem
}

// UsedHand returns the hand of the last used item.
func (e *LivingEntity) UsedHand() Hand {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.usedHand
}

// Team returns the allegiance label (empty = none).
func (e *LivingEntity) Team() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.team
}

// SetTeam sets the allegiance label.
func (e *LivingEntity) SetTeam(team string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.team = team
}

// IsAlliedTo reports whether both entities share a non-empty team.
func (e *LivingEntity) IsAlliedTo(other *LivingEntity) bool {
	if other == nil {
		return false
	}
	team := e.Team()
	return team != "" && team == other.Team()
}

// Attributes returns the attribute map (never nil).
func (e *LivingEntity) Attributes() *attribute.Map {
	return e.attributes
}
