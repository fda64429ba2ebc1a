// Package clientpackets holds packets sent by observers to the simulation.
package clientpackets

import (
	"fmt"

	"github.com/udisondev/mobpatch/internal/gameserver/packet"
)

// Client packet opcodes.
const (
	OpcodeRequestTrack   = 0x01
	OpcodeRequestUntrack = 0x02
)

// RequestTrack asks the server to start sending state of an entity.
//
// Packet structure:
//   - ObjectID (int32)
type RequestTrack struct {
	ObjectID int32
}

// ParseRequestTrack parses the packet body (opcode already consumed).
func ParseRequestTrack(data []byte) (*RequestTrack, error) {
	r := packet.NewReader(data)
	objectID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading ObjectID: %w", err)
	}
	return &RequestTrack{ObjectID: objectID}, nil
}

// Write serializes the packet (opcode included).
func (p *RequestTrack) Write() ([]byte, error) {
	w := packet.NewWriter(5)
	w.WriteByte(OpcodeRequestTrack)
	w.WriteInt(p.ObjectID)
	return w.Bytes(), nil
}

// RequestUntrack asks the server to stop sending state of an entity.
type RequestUntrack struct {
	ObjectID int32
}

// ParseRequestUntrack parses the packet body (opcode already consumed).
func ParseRequestUntrack(data []byte) (*RequestUntrack, error) {
	r := packet.NewReader(data)
	objectID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading ObjectID: %w", err)
	}
	return &RequestUntrack{ObjectID: objectID}, nil
}

// Write serializes the packet (opcode included).
func (p *RequestUntrack) Write() ([]byte, error) {
	w := packet.NewWriter(5)
	w.WriteByte(OpcodeRequestUntrack)
	w.WriteInt(p.ObjectID)
	return w.Bytes(), nil
}
