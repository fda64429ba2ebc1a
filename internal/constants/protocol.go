// Package constants holds tracker protocol limits shared by server and observer.
package constants

import "time"

// Framing
const (
	// PacketHeaderSize is the packet length header size (2 bytes, little-endian uint16).
	// The length includes the header itself.
	PacketHeaderSize = 2

	// PacketBufferPadding is the extra buffer space for checksum and cipher padding.
	PacketBufferPadding = 16

	// MaxPacketSize is the largest payload accepted from the wire.
	MaxPacketSize = 8 * 1024

	// ReadBufferSize is the per-connection read buffer.
	ReadBufferSize = MaxPacketSize + PacketBufferPadding
)

// Session defaults
const (
	// DefaultSendQueueSize is the per-observer outgoing packet queue length.
	DefaultSendQueueSize = 256

	// DefaultWriteTimeout bounds a single socket write.
	DefaultWriteTimeout = 5 * time.Second
)
