package commands

import (
	"github.com/muurk/klf200/internal/klfapi"
)

// SetHouseStatusMonitor switches the gateway's spontaneous node state
// broadcasting on or off.
type SetHouseStatusMonitor struct {
	result
	state State
	table StateTable

	enable bool
}

func NewSetHouseStatusMonitor(enable bool) *SetHouseStatusMonitor {
	cfm := klfapi.GWHouseStatusMonitorEnableCFM
	if !enable {
		cfm = klfapi.GWHouseStatusMonitorDisableCFM
	}
	return &SetHouseStatusMonitor{
		enable: enable,
		state:  StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(cfm),
		},
	}
}

func (t *SetHouseStatusMonitor) Name() string {
	if t.enable {
		return "SetHouseStatusMonitor(enable)"
	}
	return "SetHouseStatusMonitor(disable)"
}

// RequestCommand picks the enable or disable request depending on the
// transaction's parameter.
func (t *SetHouseStatusMonitor) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	if t.enable {
		return klfapi.GWHouseStatusMonitorEnableREQ
	}
	return klfapi.GWHouseStatusMonitorDisableREQ
}

func (t *SetHouseStatusMonitor) RequestData() []byte {
	return nil
}

func (t *SetHouseStatusMonitor) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWHouseStatusMonitorEnableCFM, klfapi.GWHouseStatusMonitorDisableCFM:
		if !hasLength(t.Name(), cmd, data, 0) {
			t.finishFailed()
			break
		}
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}
