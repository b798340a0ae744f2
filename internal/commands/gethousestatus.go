package commands

import (
	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

// NodeState is one decoded node position notification as broadcast by
// the house status monitor.
type NodeState struct {
	NodeID          int
	State           int
	CurrentPosition int
	TargetPosition  int
	FP1             int
	FP2             int
	FP3             int
	FP4             int
	RemainingTime   int
	Timestamp       int
}

// GetHouseStatus waits for one unsolicited node position notification.
// It sends nothing; the gateway pushes these on its own once the house
// status monitor is enabled.
type GetHouseStatus struct {
	result
	state State
	table StateTable

	node NodeState
}

func NewGetHouseStatus() *GetHouseStatus {
	return &GetHouseStatus{
		state: StateIdle,
		table: StateTable{
			StateIdle:       expects(),
			StateWaitNotify: expects(klfapi.GWNodeStatePositionChangedNTF),
		},
	}
}

func (t *GetHouseStatus) Name() string {
	return "GetHouseStatus"
}

func (t *GetHouseStatus) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitNotify
	return klfapi.CmdReceiveOnly
}

func (t *GetHouseStatus) RequestData() []byte {
	return nil
}

func (t *GetHouseStatus) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWNodeStatePositionChangedNTF:
		if !hasLength(t.Name(), cmd, data, 20) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		t.node = NodeState{
			NodeID:          p.OneByteValue(0),
			State:           p.OneByteValue(1),
			CurrentPosition: p.TwoByteValue(2),
			TargetPosition:  p.TwoByteValue(4),
			FP1:             p.TwoByteValue(6),
			FP2:             p.TwoByteValue(8),
			FP3:             p.TwoByteValue(10),
			FP4:             p.TwoByteValue(12),
			RemainingTime:   p.TwoByteValue(14),
			Timestamp:       p.FourByteValue(16),
		}
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}

// Node returns the decoded notification after a successful run.
func (t *GetHouseStatus) Node() NodeState {
	return t.node
}
