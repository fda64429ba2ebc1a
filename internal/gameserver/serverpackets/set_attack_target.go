// Package serverpackets holds packets sent from the authoritative simulation
// to tracking observers.
package serverpackets

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/gameserver/packet"
)

// OpcodeSetAttackTarget is the server packet opcode for SetAttackTarget.
const OpcodeSetAttackTarget = 0x4F

// NoTarget is the TargetID value meaning "target cleared".
const NoTarget int32 = -1

// SetAttackTarget replicates a mob's attack target to observers.
//
// Packet structure:
//   - EntityID (int32): mob object ID
//   - TargetID (int32): target object ID, -1 when cleared
type SetAttackTarget struct {
	EntityID int32
	TargetID int32
}

// NewSetAttackTarget creates a SetAttackTarget packet. Pass NoTarget to clear.
func NewSetAttackTarget(entityID uint32, targetID int32) *SetAttackTarget {
	return &SetAttackTarget{
		EntityID: int32(entityID),
		TargetID: targetID,
	}
}

// Write serializes the packet (opcode included).
func (p *SetAttackTarget) Write() ([]byte, error) {
	w := packet.NewWriter(9)

	w.WriteByte(OpcodeSetAttackTarget)
	w.WriteInt(p.EntityID)
	w.WriteInt(p.TargetID)

	return w.Bytes(), nil
}

// ParseSetAttackTarget parses the packet body (opcode already consumed).
func ParseSetAttackTarget(data []byte) (*SetAttackTarget, error) {
	r := packet.NewReader(data)

	entityID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading EntityID: %w", err)
	}
	targetID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading TargetID: %w", err)
	}

	return &SetAttackTarget{EntityID: entityID, TargetID: targetID}, nil
}
