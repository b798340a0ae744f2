package commands

import (
	"bytes"
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
)

func TestLoginRequestLayout(t *testing.T) {
	tests := []struct {
		name     string
		password string
		verify   func(t *testing.T, data []byte)
	}{
		{
			name:     "short password is null padded",
			password: "secret",
			verify: func(t *testing.T, data []byte) {
				if len(data) != 32 {
					t.Fatalf("len = %d, want 32", len(data))
				}
				if !bytes.Equal(data[:6], []byte("secret")) {
					t.Errorf("data[:6] = %q, want %q", data[:6], "secret")
				}
				for i := 6; i < 32; i++ {
					if data[i] != 0 {
						t.Errorf("data[%d] = %#x, want 0", i, data[i])
					}
				}
			},
		},
		{
			name:     "long password is truncated",
			password: string(bytes.Repeat([]byte{'x'}, 40)),
			verify: func(t *testing.T, data []byte) {
				if len(data) != 32 {
					t.Fatalf("len = %d, want 32", len(data))
				}
				if !bytes.Equal(data, bytes.Repeat([]byte{'x'}, 32)) {
					t.Error("truncated password should fill the whole slot")
				}
			},
		},
		{
			name:     "empty password is all zeros",
			password: "",
			verify: func(t *testing.T, data []byte) {
				if !bytes.Equal(data, make([]byte, 32)) {
					t.Error("empty password should produce a zero-filled slot")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := NewLogin(tt.password)
			if got := login.RequestCommand(); got != klfapi.GWPasswordEnterREQ {
				t.Errorf("RequestCommand() = %v, want GW_PASSWORD_ENTER_REQ", got)
			}
			tt.verify(t, login.RequestData())
		})
	}
}

func TestLoginConfirmation(t *testing.T) {
	tests := []struct {
		name           string
		data           []byte
		wantAccepted   bool
		wantFinished   bool
		wantSuccessful bool
	}{
		{"status 0 succeeds", []byte{0}, true, true, true},
		{"status 1 fails", []byte{1}, true, true, false},
		{"unknown status fails", []byte{7}, true, true, false},
		{"wrong length fails", []byte{0, 0}, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := NewLogin("velux123")
			login.RequestCommand()
			login.RequestData()

			accepted := login.ConsumeResponse(klfapi.GWPasswordEnterCFM, tt.data)
			if accepted != tt.wantAccepted {
				t.Errorf("accepted = %v, want %v", accepted, tt.wantAccepted)
			}
			if login.IsFinished() != tt.wantFinished {
				t.Errorf("IsFinished() = %v, want %v", login.IsFinished(), tt.wantFinished)
			}
			if login.IsSuccessful() != tt.wantSuccessful {
				t.Errorf("IsSuccessful() = %v, want %v", login.IsSuccessful(), tt.wantSuccessful)
			}
		})
	}
}

func TestLoginRejectsForeignCommands(t *testing.T) {
	login := NewLogin("velux123")
	login.RequestCommand()

	if login.ConsumeResponse(klfapi.GWGetStateCFM, []byte{0, 0, 0, 0, 0, 0}) {
		t.Error("a foreign confirmation must be rejected")
	}
	if login.IsFinished() {
		t.Error("a rejected frame must not finish the transaction")
	}
}
