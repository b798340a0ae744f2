package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Packet provides bounds-checked positional access to a payload buffer.
// All multi-byte fields are unsigned big-endian.
//
// Accessors never read or write outside the buffer. An out-of-range access
// yields the zero value and latches a *PacketError retrievable via Err;
// callers that have already validated the payload length can read a series
// of fields and check Err once.
type Packet struct {
	data []byte
	err  error
}

// NewPacket wraps an existing buffer without copying it.
func NewPacket(data []byte) *Packet {
	return &Packet{data: data}
}

// NewPacketOfSize allocates a zero-filled buffer for building a request.
func NewPacketOfSize(size int) *Packet {
	return &Packet{data: make([]byte, size)}
}

// Len returns the buffer length in bytes.
func (p *Packet) Len() int {
	return len(p.data)
}

// Bytes returns the underlying buffer.
func (p *Packet) Bytes() []byte {
	return p.data
}

// Err returns the first out-of-bounds access error, if any.
func (p *Packet) Err() error {
	return p.err
}

func (p *Packet) check(offset, width int) bool {
	if offset < 0 || offset+width > len(p.data) {
		if p.err == nil {
			p.err = &PacketError{Offset: offset, Width: width, Length: len(p.data)}
		}
		return false
	}
	return true
}

// OneByteValue returns the unsigned byte at offset.
func (p *Packet) OneByteValue(offset int) int {
	if !p.check(offset, 1) {
		return 0
	}
	return int(p.data[offset])
}

// TwoByteValue returns the unsigned big-endian 16-bit field at offset.
func (p *Packet) TwoByteValue(offset int) int {
	if !p.check(offset, 2) {
		return 0
	}
	return int(binary.BigEndian.Uint16(p.data[offset:]))
}

// FourByteValue returns the unsigned big-endian 32-bit field at offset.
func (p *Packet) FourByteValue(offset int) int {
	if !p.check(offset, 4) {
		return 0
	}
	return int(binary.BigEndian.Uint32(p.data[offset:]))
}

// SetOneByteValue writes the low byte of value at offset.
func (p *Packet) SetOneByteValue(offset, value int) {
	if p.check(offset, 1) {
		p.data[offset] = byte(value)
	}
}

// SetTwoByteValue writes the low 16 bits of value big-endian at offset.
func (p *Packet) SetTwoByteValue(offset, value int) {
	if p.check(offset, 2) {
		binary.BigEndian.PutUint16(p.data[offset:], uint16(value))
	}
}

// SetFourByteValue writes the low 32 bits of value big-endian at offset.
func (p *Packet) SetFourByteValue(offset, value int) {
	if p.check(offset, 4) {
		binary.BigEndian.PutUint32(p.data[offset:], uint32(value))
	}
}

// String reads up to maxLen bytes starting at offset and returns the text
// up to the first NUL byte.
func (p *Packet) String(offset, maxLen int) string {
	if !p.check(offset, maxLen) {
		return ""
	}
	field := p.data[offset : offset+maxLen]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// IPAddressString renders the four bytes at offset as a dotted quad.
func (p *Packet) IPAddressString(offset int) string {
	if !p.check(offset, 4) {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.%d",
		p.data[offset], p.data[offset+1], p.data[offset+2], p.data[offset+3])
}

// Hex returns the buffer as space-separated hex bytes for diagnostics.
func (p *Packet) Hex() string {
	var sb strings.Builder
	for i, b := range p.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
