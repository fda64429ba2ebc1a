package serverpackets

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/gameserver/packet"
	"github.com/udisondev/mobpatch/internal/model"
)

// OpcodeMobInfo is the server packet opcode for MobInfo.
const OpcodeMobInfo = 0x16

// MobInfo announces a mob to an observer with its static description.
// Sent on connect for every known mob and when a mob spawns.
//
// Packet structure:
//   - ObjectID (int32)
//   - TemplateID (int32)
//   - Name (string)
//   - Style (byte): model.CombatStyle
//   - Faction (byte)
//   - Weapon (byte): model.ItemKind of the template weapon
//   - Position (3 × double: X, Y, Z)
//   - EyeHeight (double)
//   - MaxHealth (float)
type MobInfo struct {
	ObjectID   int32
	TemplateID int32
	Name       string
	Style      model.CombatStyle
	Faction    int8
	Weapon     model.ItemKind
	Position   model.Vec3
	EyeHeight  float64
	MaxHealth  float32
}

// NewMobInfo describes mob with its faction ordinal.
func NewMobInfo(mob *model.Mob, faction int8) *MobInfo {
	t := mob.Template()
	return &MobInfo{
		ObjectID:   int32(mob.ObjectID()),
		TemplateID: t.TemplateID(),
		Name:       mob.Name(),
		Style:      t.Style(),
		Faction:    faction,
		Weapon:     t.Weapon(),
		Position:   mob.Position(),
		EyeHeight:  mob.EyeHeight(),
		MaxHealth:  mob.MaxHealth(),
	}
}

// Template rebuilds a template from the announced fields.
func (p *MobInfo) Template() *model.MobTemplate {
	return model.NewMobTemplate(p.TemplateID, p.Name, p.Style, p.MaxHealth, p.EyeHeight, 0, 0, p.Weapon)
}

// Write serializes the packet (opcode included).
func (p *MobInfo) Write() ([]byte, error) {
	w := packet.NewWriter(64 + len(p.Name)*2)

	w.WriteByte(OpcodeMobInfo)
	w.WriteInt(p.ObjectID)
	w.WriteInt(p.TemplateID)
	w.WriteString(p.Name)
	w.WriteByte(byte(p.Style))
	w.WriteByte(byte(p.Faction))
	w.WriteByte(byte(p.Weapon))
	w.WriteVec3(p.Position)
	w.WriteDouble(p.EyeHeight)
	w.WriteFloat(p.MaxHealth)

	return w.Bytes(), nil
}

// ParseMobInfo parses the packet body (opcode already consumed).
func ParseMobInfo(data []byte) (*MobInfo, error) {
	r := packet.NewReader(data)
	p := &MobInfo{}
	var err error

	if p.ObjectID, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading ObjectID: %w", err)
	}
	if p.TemplateID, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading TemplateID: %w", err)
	}
	if p.Name, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading Name: %w", err)
	}
	style, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading Style: %w", err)
	}
	p.Style = model.CombatStyle(style)
	faction, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading Faction: %w", err)
	}
	p.Faction = int8(faction)
	weapon, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading Weapon: %w", err)
	}
	p.Weapon = model.ItemKind(weapon)
	if p.Position, err = r.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading Position: %w", err)
	}
	if p.EyeHeight, err = r.ReadDouble(); err != nil {
		return nil, fmt.Errorf("reading EyeHeight: %w", err)
	}
	if p.MaxHealth, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading MaxHealth: %w", err)
	}

	return p, nil
}
