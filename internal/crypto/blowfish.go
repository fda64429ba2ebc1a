// Package crypto implements the tracker session cipher: Blowfish ECB over a
// payload sealed with a 32-bit XOR checksum.
package crypto

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

const blockSize = blowfish.BlockSize

// ecb runs Blowfish block by block over a whole buffer.
type ecb struct {
	cipher *blowfish.Cipher
}

func newECB(key []byte) (*ecb, error) {
	c, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating blowfish cipher: %w", err)
	}
	return &ecb{cipher: c}, nil
}

func (e *ecb) encrypt(data []byte) error {
	if len(data)%blockSize != 0 {
		return fmt.Errorf("blowfish encrypt: size %d is not a multiple of %d", len(data), blockSize)
	}
	for b := data; len(b) > 0; b = b[blockSize:] {
		e.cipher.Encrypt(b[:blockSize], b[:blockSize])
	}
	return nil
}

func (e *ecb) decrypt(data []byte) error {
	if len(data)%blockSize != 0 {
		return fmt.Errorf("blowfish decrypt: size %d is not a multiple of %d", len(data), blockSize)
	}
	for b := data; len(b) > 0; b = b[blockSize:] {
		e.cipher.Decrypt(b[:blockSize], b[:blockSize])
	}
	return nil
}

// xorWords folds data into one word. len(data) must be a multiple of 4.
func xorWords(data []byte) uint32 {
	var sum uint32
	for ; len(data) >= 4; data = data[4:] {
		sum ^= binary.LittleEndian.Uint32(data)
	}
	return sum
}

// putChecksum stores the XOR of all preceding words into the last word of block.
func putChecksum(block []byte) {
	tail := len(block) - 4
	binary.LittleEndian.PutUint32(block[tail:], xorWords(block[:tail]))
}

// checksumOK reports whether all words of block XOR to zero.
func checksumOK(block []byte) bool {
	if len(block) <= 4 || len(block)%4 != 0 {
		return false
	}
	return xorWords(block) == 0
}
