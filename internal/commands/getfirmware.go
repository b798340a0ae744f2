package commands

import (
	"fmt"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

// GetFirmware queries the gateway's software and hardware versions.
type GetFirmware struct {
	result
	state State
	table StateTable

	software     [6]int
	hardware     int
	productGroup int
	productType  int
}

func NewGetFirmware() *GetFirmware {
	return &GetFirmware{
		state: StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWGetVersionCFM),
		},
	}
}

func (t *GetFirmware) Name() string {
	return "GetFirmware"
}

func (t *GetFirmware) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	return klfapi.GWGetVersionREQ
}

func (t *GetFirmware) RequestData() []byte {
	return nil
}

func (t *GetFirmware) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWGetVersionCFM:
		if !hasLength(t.Name(), cmd, data, 9) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		for i := range t.software {
			t.software[i] = p.OneByteValue(i)
		}
		t.hardware = p.OneByteValue(6)
		t.productGroup = p.OneByteValue(7)
		t.productType = p.OneByteValue(8)
		t.finishOK()
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	return true
}

// Firmware returns the software version in its dotted six-part form,
// the way the gateway's own UI shows it.
func (t *GetFirmware) Firmware() string {
	s := t.software
	return fmt.Sprintf("%d.%d.%d.%d.%d.%d", s[0], s[1], s[2], s[3], s[4], s[5])
}

// HardwareVersion returns the hardware revision byte.
func (t *GetFirmware) HardwareVersion() int {
	return t.hardware
}

// ProductGroup returns the product group byte, 14 for remote control.
func (t *GetFirmware) ProductGroup() int {
	return t.productGroup
}

// ProductType returns the product type byte, 3 for the KLF200.
func (t *GetFirmware) ProductType() int {
	return t.productType
}
