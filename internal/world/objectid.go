package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for world entities.
//
// ID ranges:
//
//	0x00000000: invalid (native "no target")
//	0x10000000 - 0x1FFFFFFF: players
//	0x20000000 - 0x2FFFFFFF: mobs
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextMobID    atomic.Uint32
}

// Range starts.
const (
	PlayerIDStart uint32 = 0x10000000
	MobIDStart    uint32 = 0x20000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(PlayerIDStart)
	gen.nextMobID.Store(MobIDStart)
	return gen
}

// NextPlayerID generates next unique player object ID.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextMobID generates next unique mob object ID.
func (g *ObjectIDGenerator) NextMobID() uint32 {
	return g.nextMobID.Add(1)
}

// IsPlayerID reports whether id is in the player range.
func IsPlayerID(id uint32) bool {
	return id > PlayerIDStart && id < MobIDStart
}

// IsMobID reports whether id is in the mob range.
func IsMobID(id uint32) bool {
	return id > MobIDStart && id < 0x30000000
}
