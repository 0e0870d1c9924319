package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/d21d3q/godivecomputer/internal/status"
)

// Layout describes a dive log made of a fixed-size header followed by a
// repeating fixed-stride sample region.
type Layout struct {
	HeaderSize int
	Stride     int
}

// Frame is a borrowed view over a raw dive buffer split according to a
// Layout. It never copies the underlying bytes.
type Frame struct {
	Raw     []byte
	Header  []byte
	Samples []byte
	stride  int
}

// Parse splits raw into header and sample region. A buffer shorter than the
// header fails with status.ErrIO.
func (l Layout) Parse(raw []byte) (Frame, error) {
	if len(raw) < l.HeaderSize {
		return Frame{}, fmt.Errorf("dive too short: %d bytes, header needs %d: %w", len(raw), l.HeaderSize, status.ErrIO)
	}
	return Frame{
		Raw:     raw,
		Header:  raw[:l.HeaderSize],
		Samples: raw[l.HeaderSize:],
		stride:  l.Stride,
	}, nil
}

// Count returns the number of whole sample records. Trailing bytes that do
// not fill a stride are ignored.
func (f Frame) Count() int {
	if f.stride <= 0 {
		return 0
	}
	return len(f.Samples) / f.stride
}

// Sample returns the i-th sample record.
func (f Frame) Sample(i int) []byte {
	start := i * f.stride
	return f.Samples[start : start+f.stride]
}

// Trailing returns the number of ignored bytes after the last whole sample.
func (f Frame) Trailing() int {
	if f.stride <= 0 {
		return len(f.Samples)
	}
	return len(f.Samples) % f.stride
}

// U16 reads a little-endian 16-bit value at offset in b.
func U16(b []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(b[offset : offset+2])
}
