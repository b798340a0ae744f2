package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeFrame(t *testing.T) {
	// GW_GET_STATE_REQ (0x000C) with no data:
	// protocol id, length 3, command, checksum over preceding bytes.
	got := EncodeFrame(0x000C, nil)
	want := []byte{0x00, 0x03, 0x00, 0x0C, 0x00 ^ 0x03 ^ 0x00 ^ 0x0C}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeFrame() = % 02X, want % 02X", got, want)
	}
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		command int16
		data    []byte
	}{
		{name: "no data", command: 0x0008, data: nil},
		{name: "status byte", command: 0x3001, data: []byte{0x00}},
		{name: "session payload", command: 0x0304, data: []byte{0x12, 0x34}},
		{name: "long payload", command: 0x040E, data: bytes.Repeat([]byte{0xAB}, 132)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, data, err := DecodeFrame(EncodeFrame(tt.command, tt.data))
			if err != nil {
				t.Fatalf("DecodeFrame() error: %v", err)
			}
			if cmd != tt.command {
				t.Errorf("command = 0x%04X, want 0x%04X", cmd, tt.command)
			}
			if len(tt.data) == 0 && len(data) == 0 {
				return
			}
			if !bytes.Equal(data, tt.data) {
				t.Errorf("data = % 02X, want % 02X", data, tt.data)
			}
		})
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	valid := EncodeFrame(0x0413, []byte{0x00, 0x12, 0x34})

	corruptChecksum := append([]byte(nil), valid...)
	corruptChecksum[len(corruptChecksum)-1] ^= 0xFF

	badLength := append([]byte(nil), valid...)
	badLength[1]++

	badProtocolID := append([]byte(nil), valid...)
	badProtocolID[0] = 0x01

	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "too short", frame: []byte{0x00, 0x03, 0x00}},
		{name: "corrupted checksum", frame: corruptChecksum},
		{name: "length mismatch", frame: badLength},
		{name: "wrong protocol id", frame: badProtocolID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, data, err := DecodeFrame(tt.frame)
			if err == nil {
				t.Fatal("DecodeFrame() succeeded, want framing error")
			}
			if data != nil {
				t.Errorf("data = % 02X, want nil on decode failure", data)
			}
			var fe *FramingError
			if !errors.As(err, &fe) {
				t.Errorf("error type = %T, want *FramingError", err)
			}
		})
	}
}
