package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

// Velocity selects how fast actuators execute a command.
type Velocity int

const (
	VelocityDefault Velocity = 0
	VelocitySilent  Velocity = 1
	VelocityFast    Velocity = 2
	VelocityIgnore  Velocity = 255
)

// RunScene activates one of the scenes stored on the gateway. The
// handshake is confirmation, a stream of progress notifications, then a
// session-finished notification.
type RunScene struct {
	result
	state State
	table StateTable
	sess  sessionID

	sceneID  int
	velocity Velocity
}

// NewRunScene returns a RunScene for the given stored scene.
func NewRunScene(sceneID int, velocity Velocity) *RunScene {
	return &RunScene{
		sceneID:  sceneID,
		velocity: velocity,
		sess:     newSessionID(),
		state:    StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWActivateSceneCFM),
			StateWaitNotify: expects(
				klfapi.GWCommandRunStatusNTF,
				klfapi.GWCommandRemainingTimeNTF,
				klfapi.GWSessionFinishedNTF,
			),
		},
	}
}

func (t *RunScene) Name() string {
	return "RunScene"
}

func (t *RunScene) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWActivateSceneREQ
}

func (t *RunScene) RequestData() []byte {
	p := protocol.NewPacketOfSize(6)
	p.SetTwoByteValue(0, t.sess.next())
	p.SetOneByteValue(2, originatorSAAC)
	p.SetOneByteValue(3, priorityComfortLevel2)
	p.SetOneByteValue(4, t.sceneID)
	p.SetOneByteValue(5, int(t.velocity))
	return p.Bytes()
}

func (t *RunScene) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	p := protocol.NewPacket(data)
	switch cmd {
	case klfapi.GWActivateSceneCFM:
		if !hasLength(t.Name(), cmd, data, 3) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(1)) {
			t.finishFailed()
			break
		}
		switch status := p.OneByteValue(0); status {
		case 0:
			t.state = StateWaitNotify
		case 1:
			logging.Warn("scene activation rejected, invalid parameter",
				zap.Int("scene", t.sceneID))
			t.finishFailed()
		case 2:
			logging.Warn("scene activation rejected by gateway",
				zap.Int("scene", t.sceneID))
			t.finishFailed()
		default:
			logging.Warn("unknown scene activation status",
				zap.Int("status", status))
			t.finishFailed()
		}
	case klfapi.GWCommandRunStatusNTF:
		if !hasLength(t.Name(), cmd, data, 13) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		logging.Debug("scene run status",
			zap.Int("node", p.OneByteValue(3)),
			zap.Int("parameter_value", p.TwoByteValue(5)),
			zap.Int("run_status", p.OneByteValue(7)),
			zap.Int("status_reply", p.OneByteValue(8)),
		)
	case klfapi.GWCommandRemainingTimeNTF:
		if !hasLength(t.Name(), cmd, data, 6) {
			t.finishFailed()
			break
		}
		if !t.sess.matches(t.Name(), p.TwoByteValue(0)) {
			t.finishFailed()
			break
		}
		logging.Debug("scene remaining time",
			zap.Int("node", p.OneByteValue(2)),
			zap.Int("seconds", p.TwoByteValue(4)),
		)
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
