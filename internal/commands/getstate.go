package commands

import (
	"fmt"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

// GatewayState decodes the first byte of the state confirmation.
type GatewayState int

const (
	GatewayStateTest           GatewayState = 0
	GatewayStateEmpty          GatewayState = 1
	GatewayStateConfigured     GatewayState = 2
	GatewayStateBeaconUnconfig GatewayState = 3
	GatewayStateBeaconConfig   GatewayState = 4
)

func (s GatewayState) String() string {
	switch s {
	case GatewayStateTest:
		return "test mode"
	case GatewayStateEmpty:
		return "gateway mode, no actuator nodes"
	case GatewayStateConfigured:
		return "gateway mode, with actuator nodes"
	case GatewayStateBeaconUnconfig:
		return "beacon mode, not configured"
	case GatewayStateBeaconConfig:
		return "beacon mode, configured"
	default:
		return fmt.Sprintf("unknown state %d", int(s))
	}
}

// GatewaySubState decodes the second byte of the state confirmation.
type GatewaySubState int

func (s GatewaySubState) String() string {
	switch s {
	case 0x00:
		return "idle"
	case 0x01:
		return "performing task in configuration service handler"
	case 0x02:
		return "performing scene configuration"
	case 0x03:
		return "performing information service configuration"
	case 0x04:
		return "performing contact input configuration"
	case 0x80:
		return "running command handler"
	case 0x81:
		return "running activate group handler"
	case 0x82:
		return "running activate scene handler"
	default:
		return fmt.Sprintf("unknown substate 0x%02X", int(s))
	}
}

// GetState queries the gateway's operating state.
type GetState struct {
	result
	state State
	table StateTable

	gatewayState GatewayState
	subState     GatewaySubState
	stateData    int
}

func NewGetState() *GetState {
	return &GetState{
		state: StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWGetStateCFM),
		},
	}
}

func (t *GetState) Name() string {
	return "GetState"
}

func (t *GetState) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWGetStateREQ
}

func (t *GetState) RequestData() []byte {
	return nil
}

func (t *GetState) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWGetStateCFM:
		if !hasLength(t.Name(), cmd, data, 6) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		t.gatewayState = GatewayState(p.OneByteValue(0))
		t.subState = GatewaySubState(p.OneByteValue(1))
		t.stateData = p.FourByteValue(2)
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}

// State returns the decoded gateway state after a successful run.
func (t *GetState) State() GatewayState {
	return t.gatewayState
}

// SubState returns the decoded gateway sub-state after a successful
// run.
func (t *GetState) SubState() GatewaySubState {
	return t.subState
}

// StateData returns the raw 4-byte state data word.
func (t *GetState) StateData() int {
	return t.stateData
}
