// Package savestate implements the ordered primitive buffer that games append
// their local state to. Values are read back in exactly the order written.
package savestate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is returned when a read runs past the end of the data.
var ErrShortBuffer = errors.New("savestate: short buffer")

// Writer accumulates values in little-endian order.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// WriteInt appends v as a signed 32-bit integer.
func (w *Writer) WriteInt(v int) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(int32(v)))
}

// WriteInt64 appends v as a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// WriteFloat appends v as an IEEE 754 double so restored positions are exact.
func (w *Writer) WriteFloat(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteBool appends v as a single byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
		return
	}
	w.buf = append(w.buf, 0)
}

// WriteBytes appends a length-prefixed byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteInt(len(b))
	w.buf = append(w.buf, b...)
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// Bytes returns the encoded data.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of encoded bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reader decodes values written by Writer.
// The first failure is sticky: later reads return zero values and Err reports it.
type Reader struct {
	data []byte
	off  int
	err  error
}

// NewReader wraps data for reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, r.off, len(r.data)-r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// ReadInt reads a value written by WriteInt.
func (r *Reader) ReadInt() int {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int(int32(binary.LittleEndian.Uint32(b)))
}

// ReadInt64 reads a value written by WriteInt64.
func (r *Reader) ReadInt64() int64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}

// ReadFloat reads a value written by WriteFloat.
func (r *Reader) ReadFloat() float64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// ReadBool reads a value written by WriteBool.
func (r *Reader) ReadBool() bool {
	b := r.take(1)
	if b == nil {
		return false
	}
	return b[0] != 0
}

// ReadBytes reads a value written by WriteBytes. The result is a copy.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadInt()
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadString reads a value written by WriteString.
func (r *Reader) ReadString() string {
	return string(r.ReadBytes())
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Err returns the first read error, if any.
func (r *Reader) Err() error {
	return r.err
}
