package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

// SetNodeVelocity changes the stored velocity of one actuator node.
type SetNodeVelocity struct {
	result
	state State
	table StateTable

	nodeID   int
	velocity Velocity
}

func NewSetNodeVelocity(nodeID int, velocity Velocity) *SetNodeVelocity {
	return &SetNodeVelocity{
		nodeID:   nodeID,
		velocity: velocity,
		state:    StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWSetNodeVelocityCFM),
		},
	}
}

func (t *SetNodeVelocity) Name() string {
	return "SetNodeVelocity"
}

func (t *SetNodeVelocity) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWSetNodeVelocityREQ
}

func (t *SetNodeVelocity) RequestData() []byte {
	p := protocol.NewPacketOfSize(2)
	p.SetOneByteValue(0, t.nodeID)
	p.SetOneByteValue(1, int(t.velocity))
	return p.Bytes()
}

func (t *SetNodeVelocity) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWSetNodeVelocityCFM:
		if !hasLength(t.Name(), cmd, data, 3) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		switch status := p.OneByteValue(0); status {
		case 1:
			t.finishOK()
		case 0:
			logging.Warn("velocity change rejected", zap.Int("node", t.nodeID))
			t.finishFailed()
		default:
			logging.Warn("velocity confirmation with reserved status",
				zap.Int("status", status))
			t.finishFailed()
		}
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}
