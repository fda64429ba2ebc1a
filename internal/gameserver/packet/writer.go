// Package packet provides the little-endian codec of the tracker protocol.
package packet

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/udisondev/mobpatch/internal/model"
)

// Writer appends little-endian values to a growing payload.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// WriteByte appends a single byte. It never fails; the error satisfies io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteBool appends a boolean as one byte (0 or 1).
func (w *Writer) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.buf = append(w.buf, b)
}

// WriteInt appends an int32.
func (w *Writer) WriteInt(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

// WriteFloat appends a float32 (IEEE 754).
func (w *Writer) WriteFloat(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// WriteDouble appends a float64 (IEEE 754).
func (w *Writer) WriteDouble(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteVec3 appends X, Y, Z as doubles.
func (w *Writer) WriteVec3(v model.Vec3) {
	w.WriteDouble(v.X)
	w.WriteDouble(v.Y)
	w.WriteDouble(v.Z)
}

// WriteString appends s as UTF-16LE with a null terminator.
func (w *Writer) WriteString(s string) {
	for _, u := range utf16.Encode([]rune(s)) {
		w.buf = binary.LittleEndian.AppendUint16(w.buf, u)
	}
	w.buf = append(w.buf, 0, 0)
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the payload length so far.
func (w *Writer) Len() int {
	return len(w.buf)
}
