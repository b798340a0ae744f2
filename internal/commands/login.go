package commands

import (
	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

const passwordLength = 32

// Login authenticates the session with the gateway password. It must
// be the first transaction on a fresh connection; the gateway rejects
// everything else until it succeeds.
type Login struct {
	result
	state    State
	table    StateTable
	password string
}

// NewLogin returns a Login for the given password. Passwords longer
// than 32 bytes are truncated, the gateway does not accept more.
func NewLogin(password string) *Login {
	return &Login{
		password: password,
		state:    StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWPasswordEnterCFM),
		},
	}
}

func (t *Login) Name() string {
	return "Login"
}

func (t *Login) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWPasswordEnterREQ
}

// RequestData returns the password null-padded to its fixed 32-byte
// slot.
func (t *Login) RequestData() []byte {
	p := protocol.NewPacketOfSize(passwordLength)
	for i, b := range []byte(t.password) {
		if i >= passwordLength {
			break
		}
		p.SetOneByteValue(i, int(b))
	}
	return p.Bytes()
}

func (t *Login) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWPasswordEnterCFM:
		if !hasLength(t.Name(), cmd, data, 1) {
			t.finishFailed()
			break
		}
		switch status := protocol.NewPacket(data).OneByteValue(0); status {
		case 0:
			t.finishOK()
		case 1:
			logging.Warn("gateway rejected the password")
			t.finishFailed()
		default:
			logging.Warn("unknown login confirmation status")
			t.finishFailed()
		}
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	logging.LogTransaction(t.Name(), t.finished, t.successful)
	return true
}
