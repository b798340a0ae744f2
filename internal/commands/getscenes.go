package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

const sceneEntrySize = 65 // 1 byte id, 64 byte name
const sceneNameLength = 64

// Scene is one scene stored on the gateway.
type Scene struct {
	ID   int
	Name string
}

// GetScenes retrieves the scene list. The confirmation declares the
// total count, then notification batches deliver (id, name) entries
// until the remaining count reaches zero.
type GetScenes struct {
	result
	state State
	table StateTable

	total  int
	scenes []Scene
}

func NewGetScenes() *GetScenes {
	return &GetScenes{
		state: StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWGetSceneListCFM),
			StateWaitNotify:  expects(klfapi.GWGetSceneListNTF),
		},
	}
}

func (t *GetScenes) Name() string {
	return "GetScenes"
}

func (t *GetScenes) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	t.total = 0
	t.scenes = nil
	return klfapi.GWGetSceneListREQ
}

func (t *GetScenes) RequestData() []byte {
	return nil
}

func (t *GetScenes) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWGetSceneListCFM:
		if !hasLength(t.Name(), cmd, data, 1) {
			t.finishFailed()
			break
		}
		t.total = protocol.NewPacket(data).OneByteValue(0)
		if t.total == 0 {
			t.finishOK()
			break
		}
		t.state = StateWaitNotify
	case klfapi.GWGetSceneListNTF:
		if len(data) < 1 {
			logging.Warn("empty scene list notification")
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		count := p.OneByteValue(0)
		if !hasLength(t.Name(), cmd, data, 2+sceneEntrySize*count) {
			t.finishFailed()
			break
		}
		for i := 0; i < count; i++ {
			if len(t.scenes) >= t.total {
				logging.Warn("discarding scene entry beyond declared total",
					zap.Int("total", t.total))
				continue
			}
			offset := 1 + i*sceneEntrySize
			t.scenes = append(t.scenes, Scene{
				ID:   p.OneByteValue(offset),
				Name: p.String(offset+1, sceneNameLength),
			})
		}
		remaining := p.OneByteValue(1 + sceneEntrySize*count)
		if remaining == 0 || len(t.scenes) >= t.total {
			t.finishOK()
		}
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	logging.LogTransaction(t.Name(), t.finished, t.successful)
	return true
}

// Scenes returns the decoded scene list after a successful run.
func (t *GetScenes) Scenes() []Scene {
	return t.scenes
}
