package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestSlipEncode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{
			name: "plain payload",
			data: []byte{0x00, 0x03, 0x00, 0x08, 0x0B},
			want: []byte{0xC0, 0x00, 0x03, 0x00, 0x08, 0x0B, 0xC0},
		},
		{
			name: "escapes END byte",
			data: []byte{0x01, 0xC0, 0x02},
			want: []byte{0xC0, 0x01, 0xDB, 0xDC, 0x02, 0xC0},
		},
		{
			name: "escapes ESC byte",
			data: []byte{0x01, 0xDB, 0x02},
			want: []byte{0xC0, 0x01, 0xDB, 0xDD, 0x02, 0xC0},
		},
		{
			name: "empty payload",
			data: nil,
			want: []byte{0xC0, 0xC0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlipEncode(tt.data)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("SlipEncode() = % 02X, want % 02X", got, tt.want)
			}
		})
	}
}

func TestSlipDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "too short", frame: []byte{0xC0, 0xC0}},
		{name: "missing leading delimiter", frame: []byte{0x01, 0x02, 0xC0}},
		{name: "missing trailing delimiter", frame: []byte{0xC0, 0x01, 0x02}},
		{name: "bare END inside frame", frame: []byte{0xC0, 0x01, 0xC0, 0x02, 0xC0}},
		{name: "truncated escape", frame: []byte{0xC0, 0x01, 0xDB, 0xC0}},
		{name: "invalid escape code", frame: []byte{0xC0, 0xDB, 0x42, 0xC0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SlipDecode(tt.frame)
			if err == nil {
				t.Fatal("SlipDecode() succeeded, want framing error")
			}
			var fe *FramingError
			if !errors.As(err, &fe) {
				t.Errorf("error type = %T, want *FramingError", err)
			}
		})
	}
}

func TestSlipRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{0x00},
		{0x00, 0x03, 0x30, 0x00, 0x33},
		{0xC0, 0xDB, 0xDC, 0xDD, 0xC0, 0xC0},
		bytes.Repeat([]byte{0xC0}, 64),
	}

	for _, payload := range payloads {
		got, err := SlipDecode(SlipEncode(payload))
		if err != nil {
			t.Fatalf("SlipDecode(SlipEncode(% 02X)) error: %v", payload, err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("round trip = % 02X, want % 02X", got, payload)
		}
	}
}
