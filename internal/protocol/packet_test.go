package protocol

import (
	"errors"
	"testing"
)

func TestPacketGetters(t *testing.T) {
	p := NewPacket([]byte{0x12, 0x34, 0x56, 0x78, 0x9A})

	if got := p.OneByteValue(0); got != 0x12 {
		t.Errorf("OneByteValue(0) = 0x%02X, want 0x12", got)
	}
	if got := p.TwoByteValue(1); got != 0x3456 {
		t.Errorf("TwoByteValue(1) = 0x%04X, want 0x3456", got)
	}
	if got := p.FourByteValue(1); got != 0x3456789A {
		t.Errorf("FourByteValue(1) = 0x%08X, want 0x3456789A", got)
	}
	if err := p.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestPacketSetters(t *testing.T) {
	p := NewPacketOfSize(6)
	p.SetTwoByteValue(0, 0xFFFE)
	p.SetOneByteValue(2, 8)
	p.SetOneByteValue(3, 5)
	p.SetOneByteValue(4, 0x101) // truncates to low byte
	p.SetOneByteValue(5, 0)

	want := []byte{0xFF, 0xFE, 0x08, 0x05, 0x01, 0x00}
	for i, b := range want {
		if p.Bytes()[i] != b {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, p.Bytes()[i], b)
		}
	}
	if err := p.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestPacketOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		access func(p *Packet)
	}{
		{name: "one byte past end", access: func(p *Packet) { p.OneByteValue(4) }},
		{name: "two bytes straddling end", access: func(p *Packet) { p.TwoByteValue(3) }},
		{name: "four bytes past end", access: func(p *Packet) { p.FourByteValue(1) }},
		{name: "negative offset", access: func(p *Packet) { p.OneByteValue(-1) }},
		{name: "set past end", access: func(p *Packet) { p.SetTwoByteValue(3, 1) }},
		{name: "string past end", access: func(p *Packet) { p.String(2, 3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacket([]byte{0x01, 0x02, 0x03, 0x04})
			tt.access(p)
			var pe *PacketError
			if !errors.As(p.Err(), &pe) {
				t.Errorf("Err() = %v, want *PacketError", p.Err())
			}
		})
	}
}

func TestPacketString(t *testing.T) {
	buf := make([]byte, 64)
	copy(buf, "Living room blinds")
	p := NewPacket(buf)

	if got := p.String(0, 64); got != "Living room blinds" {
		t.Errorf("String() = %q, want %q", got, "Living room blinds")
	}

	// No NUL terminator: the full width is returned.
	full := NewPacket([]byte{'a', 'b', 'c'})
	if got := full.String(0, 3); got != "abc" {
		t.Errorf("String() without NUL = %q, want %q", got, "abc")
	}
}

func TestPacketIPAddressString(t *testing.T) {
	p := NewPacket([]byte{192, 168, 45, 23, 255, 255, 255, 0})
	if got := p.IPAddressString(0); got != "192.168.45.23" {
		t.Errorf("IPAddressString(0) = %q, want %q", got, "192.168.45.23")
	}
	if got := p.IPAddressString(4); got != "255.255.255.0" {
		t.Errorf("IPAddressString(4) = %q, want %q", got, "255.255.255.0")
	}
}
