package commands

import (
	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

// Discovery status codes reported by the gateway.
const (
	discoverStatusOK        = 0
	discoverStatusNotReady  = 5
	discoverStatusOKPartial = 6
	discoverStatusBusy      = 7
)

const nodeBitmapSize = 26

// RunProductDiscovery asks the gateway to scan for new actuator nodes.
// The confirmation is empty; the closing notification carries bitmaps
// of affected node indices and a status code.
type RunProductDiscovery struct {
	result
	state State
	table StateTable

	nodeType   int
	addedNodes []int
}

// NewRunProductDiscovery returns a discovery for the given node type,
// 0 scans for every type.
func NewRunProductDiscovery(nodeType int) *RunProductDiscovery {
	return &RunProductDiscovery{
		nodeType: nodeType,
		state:    StateIdle,
		table: StateTable{
			StateIdle:        expects(),
			StateWaitConfirm: expects(klfapi.GWCSDiscoverNodesCFM),
			StateWaitNotify:  expects(klfapi.GWCSDiscoverNodesNTF),
		},
	}
}

func (t *RunProductDiscovery) Name() string {
	return "RunProductDiscovery"
}

func (t *RunProductDiscovery) RequestCommand() klfapi.Command {
	t.reset()
	t.state = StateWaitConfirm
	t.addedNodes = nil
	return klfapi.GWCSDiscoverNodesREQ
}

func (t *RunProductDiscovery) RequestData() []byte {
	p := protocol.NewPacketOfSize(1)
	p.SetOneByteValue(0, t.nodeType)
	return p.Bytes()
}

func (t *RunProductDiscovery) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	if !isExpectedAnswer(t.Name(), t.table, t.state, cmd) {
		return false
	}
	switch cmd {
	case klfapi.GWCSDiscoverNodesCFM:
		if !hasLength(t.Name(), cmd, data, 0) {
			t.finishFailed()
			break
		}
		t.state = StateWaitNotify
	case klfapi.GWCSDiscoverNodesNTF:
		// 5 node bitmaps of 26 bytes each, then the status byte.
		if !hasLength(t.Name(), cmd, data, 5*nodeBitmapSize+1) {
			t.finishFailed()
			break
		}
		p := protocol.NewPacket(data)
		t.addedNodes = decodeNodeBitmap(data[0:nodeBitmapSize])
		switch status := p.OneByteValue(5 * nodeBitmapSize); status {
		case discoverStatusOK, discoverStatusOKPartial:
			if status == discoverStatusOKPartial {
				logging.Warn("discovery finished with some nodes unreachable")
			}
			t.finishOK()
		case discoverStatusNotReady:
			logging.Warn("discovery failed, configuration service not ready")
			t.finishFailed()
		case discoverStatusBusy:
			logging.Warn("discovery failed, configuration service busy")
			t.finishFailed()
		default:
			logging.Warn("unknown discovery status", zap.Int("status", status))
			t.finishFailed()
		}
	default:
		logUnhandled(t.Name(), cmd)
		t.finishFailed()
	}
	logging.LogTransaction(t.Name(), t.finished, t.successful)
	return true
}

// AddedNodes returns the node ids newly discovered by a successful run.
func (t *RunProductDiscovery) AddedNodes() []int {
	return t.addedNodes
}

// decodeNodeBitmap expands a node index bitmap into the node ids whose
// bits are set. Bit n of byte m stands for node 8*m+n.
func decodeNodeBitmap(bitmap []byte) []int {
	var nodes []int
	for i, b := range bitmap {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) != 0 {
				nodes = append(nodes, 8*i+bit)
			}
		}
	}
	return nodes
}
