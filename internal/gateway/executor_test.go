package gateway

import (
	"bytes"
	"context"
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

// stubTx finishes as soon as it sees finishOn and rejects everything
// else.
type stubTx struct {
	cmd      klfapi.Command
	data     []byte
	finishOn klfapi.Command
	succeed  bool

	finished bool
	offered  []klfapi.Command
}

func (s *stubTx) Name() string { return "stubTx" }

func (s *stubTx) RequestCommand() klfapi.Command {
	s.finished = false
	return s.cmd
}
func (s *stubTx) RequestData() []byte { return s.data }
func (s *stubTx) ConsumeResponse(cmd klfapi.Command, data []byte) bool {
	s.offered = append(s.offered, cmd)
	if cmd == s.finishOn {
		s.finished = true
		return true
	}
	return false
}
func (s *stubTx) IsFinished() bool   { return s.finished }
func (s *stubTx) IsSuccessful() bool { return s.finished && s.succeed }

func wireFrame(cmd klfapi.Command, data []byte) []byte {
	return protocol.SlipEncode(protocol.EncodeFrame(int16(cmd), data))
}

func TestExecutorRunSimpleHandshake(t *testing.T) {
	ft := &fakeTransport{script: []any{
		wireFrame(klfapi.GWGetStateCFM, []byte{0x01, 0x02, 0, 0, 0, 0}),
	}}
	exec := NewExecutor(NewConnection(testConfig(), ft))
	tx := &stubTx{cmd: klfapi.GWGetStateREQ, finishOn: klfapi.GWGetStateCFM, succeed: true}

	ok, err := exec.Run(context.Background(), tx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok {
		t.Error("transaction should be successful")
	}
	want := wireFrame(klfapi.GWGetStateREQ, nil)
	if len(ft.sent) != 1 || !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent %x, want %x", ft.sent, want)
	}
	if got := exec.Connection().Queue().Len(); got != 0 {
		t.Errorf("consumed frame must not stay parked, Len() = %d", got)
	}
}

func TestExecutorParksRejectedFrames(t *testing.T) {
	unrelated := wireFrame(klfapi.GWNodeStatePositionChangedNTF, make([]byte, 20))
	ft := &fakeTransport{script: []any{
		unrelated,
		wireFrame(klfapi.GWGetStateCFM, []byte{0x01, 0x02, 0, 0, 0, 0}),
	}}
	exec := NewExecutor(NewConnection(testConfig(), ft))
	tx := &stubTx{cmd: klfapi.GWGetStateREQ, finishOn: klfapi.GWGetStateCFM, succeed: true}

	ok, err := exec.Run(context.Background(), tx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok {
		t.Error("transaction should be successful")
	}
	if got := exec.Connection().Queue().Len(); got != 1 {
		t.Fatalf("rejected frame should be parked, Len() = %d", got)
	}
	// The parked frame is still deliverable to another consumer.
	frame, okPeek := exec.Connection().Queue().PeekUnconsumed(NextConsumerID())
	if !okPeek || !bytes.Equal(frame, unrelated) {
		t.Errorf("parked frame = %x, want %x", frame, unrelated)
	}
}

func TestExecutorServesParkedFrameFirst(t *testing.T) {
	ft := &fakeTransport{script: []any{
		wireFrame(klfapi.GWGetStateCFM, []byte{0x01, 0x02, 0, 0, 0, 0}),
	}}
	exec := NewExecutor(NewConnection(testConfig(), ft))

	// A receive-only transaction picks up a previously parked frame
	// without reading the wire.
	parked := wireFrame(klfapi.GWNodeStatePositionChangedNTF, make([]byte, 20))
	exec.Connection().Queue().Enqueue(parked)
	tx := &stubTx{cmd: klfapi.CmdReceiveOnly, finishOn: klfapi.GWNodeStatePositionChangedNTF, succeed: true}

	ok, err := exec.Run(context.Background(), tx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok {
		t.Error("transaction should be successful")
	}
	if len(ft.sent) != 0 {
		t.Error("receive-only transaction must not send anything")
	}
	if got := exec.Connection().Queue().Len(); got != 0 {
		t.Errorf("consumed parked frame should be removed, Len() = %d", got)
	}
}

func TestExecutorDiscardsMalformedFrames(t *testing.T) {
	ft := &fakeTransport{script: []any{
		[]byte{0x01, 0x02}, // not a SLIP frame
		wireFrame(klfapi.GWGetStateCFM, []byte{0x01, 0x02, 0, 0, 0, 0}),
	}}
	exec := NewExecutor(NewConnection(testConfig(), ft))
	tx := &stubTx{cmd: klfapi.GWGetStateREQ, finishOn: klfapi.GWGetStateCFM, succeed: true}

	ok, err := exec.Run(context.Background(), tx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok {
		t.Error("transaction should ride out a malformed frame")
	}
	if got := exec.Connection().Queue().Len(); got != 0 {
		t.Errorf("malformed frame must not be parked, Len() = %d", got)
	}
}

func TestExecutorShutdown(t *testing.T) {
	ft := &fakeTransport{connected: true}
	exec := NewExecutor(NewConnection(testConfig(), ft))
	tx := &stubTx{cmd: klfapi.CmdShutdown}

	ok, err := exec.Run(context.Background(), tx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok {
		t.Error("shutdown should report success")
	}
	if ft.IsReady() {
		t.Error("shutdown should close the transport")
	}
}
