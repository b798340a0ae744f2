package commands

import (
	"github.com/muurk/klf200/internal/klfapi"
)

// Shutdown closes the connection to the gateway. It carries the
// shutdown pseudo-command, nothing reaches the wire and no response is
// expected.
type Shutdown struct {
	result
}

func NewShutdown() *Shutdown {
	return &Shutdown{}
}

func (t *Shutdown) Name() string {
	return "Shutdown"
}

func (t *Shutdown) RequestCommand() klfapi.Command {
	t.finishOK()
	return klfapi.CmdShutdown
}

func (t *Shutdown) RequestData() []byte {
	return nil
}

func (t *Shutdown) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	return false
}
