package packet

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/udisondev/mobpatch/internal/model"
)

// Reader consumes little-endian values from a payload.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// take returns the next n bytes or an error naming op.
func (r *Reader) take(n int, op string) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%s: not enough data (pos=%d, len=%d)", op, r.pos, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.take(1, "ReadByte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads a one-byte boolean; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1, "ReadBool")
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadInt reads an int32.
func (r *Reader) ReadInt() (int32, error) {
	b, err := r.take(4, "ReadInt")
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadFloat reads a float32.
func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.take(4, "ReadFloat")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadDouble reads a float64.
func (r *Reader) ReadDouble() (float64, error) {
	b, err := r.take(8, "ReadDouble")
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadVec3 reads X, Y, Z doubles.
func (r *Reader) ReadVec3() (model.Vec3, error) {
	b, err := r.take(24, "ReadVec3")
	if err != nil {
		return model.Vec3{}, err
	}
	return model.Vec3{
		X: math.Float64frombits(binary.LittleEndian.Uint64(b)),
		Y: math.Float64frombits(binary.LittleEndian.Uint64(b[8:])),
		Z: math.Float64frombits(binary.LittleEndian.Uint64(b[16:])),
	}, nil
}

// ReadString reads a UTF-16LE null-terminated string.
func (r *Reader) ReadString() (string, error) {
	var units []uint16
	for {
		b, err := r.take(2, "ReadString")
		if err != nil {
			return "", fmt.Errorf("unterminated string: %w", err)
		}
		u := binary.LittleEndian.Uint16(b)
		if u == 0 {
			return string(utf16.Decode(units)), nil
		}
		units = append(units, u)
	}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}
