package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
)

// State is one step of a transaction handshake.
type State int

const (
	StateIdle State = iota
	StateWaitConfirm
	StateWaitNotify
	StateWaitNotify2
	StateWaitFinish
)

var stateNames = map[State]string{
	StateIdle:        "IDLE",
	StateWaitConfirm: "WAIT_CONFIRM",
	StateWaitNotify:  "WAIT_NOTIFY",
	StateWaitNotify2: "WAIT_NOTIFY2",
	StateWaitFinish:  "WAIT_FINISH",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "INVALID"
}

type commandSet map[klfapi.Command]struct{}

// StateTable names the command codes acceptable in each handshake
// state. States absent from the table accept nothing.
type StateTable map[State]commandSet

func expects(cmds ...klfapi.Command) commandSet {
	set := make(commandSet, len(cmds))
	for _, c := range cmds {
		set[c] = struct{}{}
	}
	return set
}

// isExpectedAnswer reports whether cmd is acceptable in the current
// state. It fails closed: a state missing from the table rejects every
// command and is logged as a defect rather than a network fault.
func isExpectedAnswer(name string, table StateTable, current State, cmd klfapi.Command) bool {
	set, ok := table[current]
	if !ok {
		logging.Error("handshake state missing from state table",
			zap.String("transaction", name),
			zap.Stringer("state", current),
			zap.Stringer("command", cmd),
		)
		return false
	}
	if _, ok := set[cmd]; !ok {
		logging.Debug("response not acceptable in current state",
			zap.String("transaction", name),
			zap.Stringer("state", current),
			zap.Stringer("command", cmd),
		)
		return false
	}
	return true
}
