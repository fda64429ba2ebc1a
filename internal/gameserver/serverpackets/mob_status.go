package serverpackets

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/gameserver/packet"
	"github.com/udisondev/mobpatch/internal/model"
)

// OpcodeMobStatus is the server packet opcode for MobStatus.
const OpcodeMobStatus = 0x0E

// MobStatus carries the per-tick physical and combat state an observer needs
// to resolve motion locally.
//
// Packet structure:
//   - ObjectID (int32)
//   - Position (3 × double: X, Y, Z)
//   - XRot (float): view pitch
//   - Health (float)
//   - VelocityY (double)
//   - AnimationSpeed (float)
//   - VehicleID (int32): 0 when not mounted
//   - Aggressive (byte)
//   - Inaction (byte)
//   - UsingItem (byte)
//   - UsedHand (byte)
//   - MainHand kind (byte), charged (byte)
//   - OffHand kind (byte)
type MobStatus struct {
	ObjectID       int32
	Position       model.Vec3
	XRot           float32
	Health         float32
	VelocityY      float64
	AnimationSpeed float32
	VehicleID      int32
	Aggressive     bool
	Inaction       bool
	UsingItem      bool
	UsedHand       model.Hand
	MainHand       model.ItemStack
	OffHand        model.ItemStack
}

// NewMobStatus samples mob state. inaction comes from the behavior state.
func NewMobStatus(mob *model.Mob, inaction bool) *MobStatus {
	return &MobStatus{
		ObjectID:       int32(mob.ObjectID()),
		Position:       mob.Position(),
		XRot:           mob.ViewXRot(1),
		Health:         mob.Health(),
		VelocityY:      mob.DeltaMovement().Y,
		AnimationSpeed: mob.AnimationSpeed(),
		VehicleID:      int32(mob.Vehicle()),
		Aggressive:     mob.IsAggressive(),
		Inaction:       inaction,
		UsingItem:      mob.IsUsingItem(),
		UsedHand:       mob.UsedHand(),
		MainHand:       mob.ItemInHand(model.MainHand),
		OffHand:        mob.ItemInHand(model.OffHand),
	}
}

// Write serializes the packet (opcode included).
func (p *MobStatus) Write() ([]byte, error) {
	w := packet.NewWriter(64)

	w.WriteByte(OpcodeMobStatus)
	w.WriteInt(p.ObjectID)
	w.WriteVec3(p.Position)
	w.WriteFloat(p.XRot)
	w.WriteFloat(p.Health)
	w.WriteDouble(p.VelocityY)
	w.WriteFloat(p.AnimationSpeed)
	w.WriteInt(p.VehicleID)
	w.WriteBool(p.Aggressive)
	w.WriteBool(p.Inaction)
	w.WriteBool(p.UsingItem)
	w.WriteByte(byte(p.UsedHand))
	w.WriteByte(byte(p.MainHand.Kind))
	w.WriteBool(p.MainHand.Charged)
	w.WriteByte(byte(p.OffHand.Kind))

	return w.Bytes(), nil
}

// ParseMobStatus parses the packet body (opcode already consumed).
func ParseMobStatus(data []byte) (*MobStatus, error) {
	r := packet.NewReader(data)
	p := &MobStatus{}
	var err error

	if p.ObjectID, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading ObjectID: %w", err)
	}
	if p.Position, err = r.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading Position: %w", err)
	}
	if p.XRot, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading XRot: %w", err)
	}
	if p.Health, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading Health: %w", err)
	}
	if p.VelocityY, err = r.ReadDouble(); err != nil {
		return nil, fmt.Errorf("reading VelocityY: %w", err)
	}
	if p.AnimationSpeed, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading AnimationSpeed: %w", err)
	}
	if p.VehicleID, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading VehicleID: %w", err)
	}
	if p.Aggressive, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading Aggressive: %w", err)
	}
	if p.Inaction, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading Inaction: %w", err)
	}
	if p.UsingItem, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading UsingItem: %w", err)
	}
	hand, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading UsedHand: %w", err)
	}
	p.UsedHand = model.Hand(hand)
	mainKind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading MainHand: %w", err)
	}
	p.MainHand.Kind = model.ItemKind(mainKind)
	if p.MainHand.Charged, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading MainHand charged: %w", err)
	}
	offKind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading OffHand: %w", err)
	}
	p.OffHand.Kind = model.ItemKind(offKind)

	return p, nil
}

// Apply copies the status onto a mirrored mob.
func (p *MobStatus) Apply(mob *model.Mob) {
	mob.MoveTo(p.Position)
	mob.SetXRot(p.XRot)
	mob.SetHealth(p.Health)
	d := mob.DeltaMovement()
	d.Y = p.VelocityY
	mob.SetDeltaMovement(d)
	mob.SetAnimationSpeed(p.AnimationSpeed)
	if p.VehicleID != 0 {
		mob.StartRiding(uint32(p.VehicleID))
	} else {
		mob.StopRiding()
	}
	mob.SetAggressive(p.Aggressive)
	mob.SetItemInHand(model.MainHand, p.MainHand)
	mob.SetItemInHand(model.OffHand, p.OffHand)
	if p.UsingItem {
		mob.StartUsingItem(p.UsedHand)
	} else {
		mob.StopUsingItem()
	}
}
