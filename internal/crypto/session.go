package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// SessionKeySize is the length of the tracker session key in bytes.
const SessionKeySize = 16

// ErrChecksum is returned by Open when a packet fails verification,
// usually because the peers use different keys.
var ErrChecksum = errors.New("packet checksum mismatch")

// SessionCipher seals tracker packets in both directions with one shared key.
// Sealed layout: payload, zero padding, 4-byte checksum; padded to 8 and
// Blowfish encrypted.
type SessionCipher struct {
	ecb *ecb
}

// NewSessionCipher creates a session cipher for key.
func NewSessionCipher(key []byte) (*SessionCipher, error) {
	if len(key) != SessionKeySize {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", SessionKeySize, len(key))
	}
	e, err := newECB(key)
	if err != nil {
		return nil, fmt.Errorf("creating session cipher: %w", err)
	}
	return &SessionCipher{ecb: e}, nil
}

// ParseSessionKey decodes a hex-encoded session key.
func ParseSessionKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decoding session key: %w", err)
	}
	if len(key) != SessionKeySize {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", SessionKeySize, len(key))
	}
	return key, nil
}

// SealedSize returns the wire size of a sealed payload of n bytes.
func SealedSize(n int) int {
	n += 4
	if r := n % blockSize; r != 0 {
		n += blockSize - r
	}
	return n
}

// SealInto seals payload into dst and returns the sealed length.
// dst must hold SealedSize(len(payload)) bytes; payload is left untouched.
func (s *SessionCipher) SealInto(dst, payload []byte) (int, error) {
	n := SealedSize(len(payload))
	if len(dst) < n {
		return 0, fmt.Errorf("seal: buffer too small (need %d, have %d)", n, len(dst))
	}
	block := dst[:n]
	copy(block, payload)
	clear(block[len(payload):])
	putChecksum(block)
	if err := s.ecb.encrypt(block); err != nil {
		return 0, fmt.Errorf("sealing packet: %w", err)
	}
	return n, nil
}

// Open decrypts a sealed block in-place and verifies its checksum.
// The payload is at the start of block, followed by padding.
func (s *SessionCipher) Open(block []byte) error {
	if err := s.ecb.decrypt(block); err != nil {
		return fmt.Errorf("opening packet: %w", err)
	}
	if !checksumOK(block) {
		return ErrChecksum
	}
	return nil
}
