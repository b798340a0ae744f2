package commands

import (
	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

// LANConfig is the gateway's decoded network setup.
type LANConfig struct {
	IPAddress      string
	SubnetMask     string
	DefaultGateway string
	DHCP           bool
}

// GetLANConfig queries the gateway's network setup.
type GetLANConfig struct {
	result
	state State
	table StateTable

	config LANConfig
}

func NewGetLANConfig() *GetLANConfig {
	return &GetLANConfig{
		state: StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWGetNetworkSetupCFM),
		},
	}
}

func (t *GetLANConfig) Name() string {
	return "GetLANConfig"
}

func (t *GetLANConfig) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWGetNetworkSetupREQ
}

func (t *GetLANConfig) RequestData() []byte {
	return nil
}

func (t *GetLANConfig) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWGetNetworkSetupCFM:
		if !hasLength(t.Name(), cmd, data, 13) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		t.config = LANConfig{
			IPAddress:      p.IPAddressString(0),
			SubnetMask:     p.IPAddressString(4),
			DefaultGateway: p.IPAddressString(8),
			DHCP:           p.OneByteValue(12) != 0,
		}
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}

// Config returns the decoded network setup after a successful run.
func (t *GetLANConfig) Config() LANConfig {
	return t.config
}
