package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

const winkSeconds = 10

// RunProductIdentification makes one actuator node wink so it can be
// identified physically. The handshake ends at the confirmation; the
// wink itself runs on the gateway.
type RunProductIdentification struct {
	result
	state State
	table StateTable
	sess  sessionID

	nodeID int
}

func NewRunProductIdentification(nodeID int) *RunProductIdentification {
	return &RunProductIdentification{
		nodeID: nodeID,
		sess:   newSessionID(),
		state:  StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWWinkSendCFM),
		},
	}
}

func (t *RunProductIdentification) Name() string {
	return "RunProductIdentification"
}

func (t *RunProductIdentification) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWWinkSendREQ
}

func (t *RunProductIdentification) RequestData() []byte {
	p := protocol.NewPacketOfSize(27)
	p.SetTwoByteValue(0, t.sess.next())
	p.SetOneByteValue(2, originatorSAAC)
	p.SetOneByteValue(3, priorityComfortLevel2)
	p.SetOneByteValue(4, 1) // wink on
	p.SetOneByteValue(5, winkSeconds)
	p.SetOneByteValue(6, 1) // one node in the index array
	p.SetOneByteValue(7, t.nodeID)
	return p.Bytes()
}

func (t *RunProductIdentification) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWWinkSendCFM:
		if !hasLength(t.Name(), cmd, data, 3) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		switch status := p.OneByteValue(2); status {
		case 1:
			t.finishOK()
		case 0:
			logging.Warn("wink rejected by gateway", zap.Int("node", t.nodeID))
			t.finishFailed()
		default:
			logging.Warn("unknown wink confirmation status", zap.Int("status", status))
			t.finishFailed()
		}
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	logging.LogTransaction(t.Name(), t.finished, t.successful)
	return true
}
