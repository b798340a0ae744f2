package commands

import (
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
)

func TestIsExpectedAnswer(t *testing.T) {
	table := StateTable{
		StateIdle:        expects(),
		StateWaitConfirm: expects(klfapi.GWPasswordEnterCFM),
		StateWaitNotify:  expects(klfapi.GWCommandRunStatusNTF, klfapi.GWSessionFinishedNTF),
	}

	tests := []struct {
		name  string
		state State
		cmd   klfapi.Command
		want  bool
	}{
		{"registered command accepted", StateWaitConfirm, klfapi.GWPasswordEnterCFM, true},
		{"second registered command accepted", StateWaitNotify, klfapi.GWSessionFinishedNTF, true},
		{"unregistered command rejected", StateWaitConfirm, klfapi.GWGetStateCFM, false},
		{"idle accepts nothing", StateIdle, klfapi.GWPasswordEnterCFM, false},
		{"unregistered state fails closed", StateWaitFinish, klfapi.GWSessionFinishedNTF, false},
		{"pseudo command rejected", StateWaitConfirm, klfapi.CmdUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isExpectedAnswer("test", table, tt.state, tt.cmd); got != tt.want {
				t.Errorf("isExpectedAnswer(%v, %v) = %v, want %v", tt.state, tt.cmd, got, tt.want)
			}
		})
	}
}

func TestStateStrings(t *testing.T) {
	if got := StateWaitConfirm.String(); got != "WAIT_CONFIRM" {
		t.Errorf("StateWaitConfirm.String() = %q", got)
	}
	if got := State(99).String(); got != "INVALID" {
		t.Errorf("State(99).String() = %q", got)
	}
}
