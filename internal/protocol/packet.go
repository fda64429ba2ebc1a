// Package protocol frames tracker packets: a 2-byte little-endian length
// header (counting itself) followed by the sealed payload.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/udisondev/mobpatch/internal/constants"
	"github.com/udisondev/mobpatch/internal/crypto"
)

// ErrPacketTooLarge is returned for payloads over constants.MaxPacketSize.
var ErrPacketTooLarge = errors.New("packet too large")

// Frame seals payload and returns the complete wire frame.
func Frame(enc *crypto.SessionCipher, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, errors.New("frame: empty payload")
	}
	if len(payload) > constants.MaxPacketSize {
		return nil, fmt.Errorf("frame: payload %d bytes: %w", len(payload), ErrPacketTooLarge)
	}

	frame := make([]byte, constants.PacketHeaderSize+crypto.SealedSize(len(payload)))
	n, err := enc.SealInto(frame[constants.PacketHeaderSize:], payload)
	if err != nil {
		return nil, err
	}
	binary.LittleEndian.PutUint16(frame, uint16(constants.PacketHeaderSize+n))
	return frame, nil
}

// Send frames payload and writes it to w in one call.
func Send(w io.Writer, enc *crypto.SessionCipher, payload []byte) error {
	frame, err := Frame(enc, payload)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	return nil
}

// ReadPacket reads one frame from r into buf and opens it.
// The returned payload aliases buf and keeps its trailing padding.
func ReadPacket(r io.Reader, enc *crypto.SessionCipher, buf []byte) ([]byte, error) {
	size, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if size > len(buf) {
		return nil, fmt.Errorf("packet payload %d exceeds buffer size %d", size, len(buf))
	}

	payload := buf[:size]
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading packet payload: %w", err)
	}
	if err := enc.Open(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// readHeader returns the sealed payload size announced by the next frame.
func readHeader(r io.Reader) (int, error) {
	var header [constants.PacketHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, fmt.Errorf("reading packet header: %w", err)
	}
	total := int(binary.LittleEndian.Uint16(header[:]))
	switch {
	case total < constants.PacketHeaderSize:
		return 0, fmt.Errorf("invalid packet length: %d", total)
	case total == constants.PacketHeaderSize:
		return 0, errors.New("empty packet")
	}
	return total - constants.PacketHeaderSize, nil
}
