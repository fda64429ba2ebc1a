package serverpackets

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/gameserver/packet"
)

// OpcodeDeleteObject is the server packet opcode for DeleteObject.
const OpcodeDeleteObject = 0x12

// DeleteObject tells an observer an entity left the world.
type DeleteObject struct {
	ObjectID int32
}

// NewDeleteObject creates a DeleteObject packet.
func NewDeleteObject(objectID uint32) *DeleteObject {
	return &DeleteObject{ObjectID: int32(objectID)}
}

// Write serializes the packet (opcode included).
func (p *DeleteObject) Write() ([]byte, error) {
	w := packet.NewWriter(5)

	w.WriteByte(OpcodeDeleteObject)
	w.WriteInt(p.ObjectID)

	return w.Bytes(), nil
}

// ParseDeleteObject parses the packet body (opcode already consumed).
func ParseDeleteObject(data []byte) (*DeleteObject, error) {
	r := packet.NewReader(data)
	objectID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading ObjectID: %w", err)
	}
	return &DeleteObject{ObjectID: objectID}, nil
}
