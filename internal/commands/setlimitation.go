package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

// limitValueIgnore leaves one end of the limitation range untouched.
const limitValueIgnore = 0xD400

const (
	limitTimeUnlimited = 253
	limitTimeClearAll  = 255
)

// SetLimitation restricts the travel range of one actuator node. The
// handshake is confirmation, a limitation-status notification, a
// run-status notification, then session-finished.
type SetLimitation struct {
	result
	state State
	table StateTable
	sess  sessionID

	nodeID    int
	minimum   int
	maximum   int
	limitTime int
}

func newSetLimitation(nodeID, minimum, maximum, limitTime int) *SetLimitation {
	return &SetLimitation{
		nodeID:    nodeID,
		minimum:   minimum,
		maximum:   maximum,
		limitTime: limitTime,
		sess:      newSessionID(),
		state:     StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWSetLimitationCFM),
			StateWaitNotify:  expects(klfapi.GWLimitationStatusNTF),
			StateWaitNotify2: expects(klfapi.GWCommandRunStatusNTF),
			StateWaitFinish:  expects(klfapi.GWSessionFinishedNTF),
		},
	}
}

// NewSetLimitationMinimum restricts how far the node may open.
func NewSetLimitationMinimum(nodeID, minimum int) *SetLimitation {
	return newSetLimitation(nodeID, minimum, limitValueIgnore, limitTimeUnlimited)
}

// NewSetLimitationMaximum restricts how far the node may close.
func NewSetLimitationMaximum(nodeID, maximum int) *SetLimitation {
	return newSetLimitation(nodeID, limitValueIgnore, maximum, limitTimeUnlimited)
}

// NewResetLimitation clears all limitations on the node.
func NewResetLimitation(nodeID int) *SetLimitation {
	return newSetLimitation(nodeID, limitValueIgnore, limitValueIgnore, limitTimeClearAll)
}

func (t *SetLimitation) Name() string {
	return "SetLimitation"
}

func (t *SetLimitation) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWSetLimitationREQ
}

func (t *SetLimitation) RequestData() []byte {
	p := protocol.NewPacketOfSize(31)
	p.SetTwoByteValue(0, t.sess.next())
	p.SetOneByteValue(2, originatorSAAC)
	p.SetOneByteValue(3, priorityComfortLevel2)
	p.SetOneByteValue(4, 1) // one node in the index array
	p.SetOneByteValue(5, t.nodeID)
	p.SetOneByteValue(25, 0) // main parameter
	p.SetTwoByteValue(26, t.minimum)
	p.SetTwoByteValue(28, t.maximum)
	p.SetOneByteValue(30, t.limitTime)
	return p.Bytes()
}

func (t *SetLimitation) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	p := protocol.NewPacket(data)
	switch cmd {
	case klfapi.GWSetLimitationCFM:
		if !hasLength(t.Name(), cmd, data, 3) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		switch status := p.OneByteValue(2); status {
		case 1:
			t.state = StateWaitNotify
		case 0:
			logging.Warn("limitation rejected by gateway",
				zap.Int("node", t.nodeID))
			t.finishFailed()
		default:
			logging.Warn("unknown limitation confirmation status",
				zap.Int("status", status))
			t.finishFailed()
		}
	case klfapi.GWLimitationStatusNTF:
		if !hasLength(t.Name(), cmd, data, 10) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		if node := p.OneByteValue(2); node != t.nodeID {
			logging.Warn("limitation status for wrong node",
				zap.Int("want", t.nodeID),
				zap.Int("got", node),
			)
			t.finishFailed()
			break
		}
		logging.Debug("limitation status",
			zap.Int("node", t.nodeID),
			zap.Int("minimum", p.TwoByteValue(4)),
			zap.Int("maximum", p.TwoByteValue(6)),
		)
		t.state = StateWaitNotify2
	case klfapi.GWCommandRunStatusNTF:
		if !hasLength(t.Name(), cmd, data, 13) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		switch runStatus := p.OneByteValue(7); runStatus {
		case 0:
			t.state = StateWaitFinish
		case 1:
			logging.Warn("limitation execution failed",
				zap.Int("node", t.nodeID),
				zap.Int("status_reply", p.OneByteValue(8)),
			)
			t.finishFailed()
		case 2:
			// Execution still active, another run status follows.
			logging.Debug("limitation execution active", zap.Int("node", t.nodeID))
		default:
			logging.Warn("unknown limitation run status", zap.Int("run_status", runStatus))
			t.finishFailed()
		}
	case klfapi.GWSessionFinishedNTF:
		if !hasLength(t.Name(), cmd, data, 2) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	logging.LogTransaction(t.Name(), t.finished, t.successful)
	return true
}
