package commands

import (
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

func TestSessionIDWrapsBelowAllOnes(t *testing.T) {
	s := sessionID{value: 0xFFFE}
	if got := s.next(); got != 0x0000 {
		t.Errorf("first next() = %#04x, want 0x0000", got)
	}
	if got := s.next(); got != 0x0001 {
		t.Errorf("second next() = %#04x, want 0x0001", got)
	}
}

func TestSessionIDEmbeddedInConsecutiveRequests(t *testing.T) {
	tx := NewRunScene(1, VelocityDefault)
	tx.sess.value = 0xFFFE

	tx.RequestCommand()
	first := protocol.NewPacket(tx.RequestData()).TwoByteValue(0)
	tx.RequestCommand()
	second := protocol.NewPacket(tx.RequestData()).TwoByteValue(0)

	if first != 0x0000 || second != 0x0001 {
		t.Errorf("embedded ids = %#04x, %#04x, want 0x0000, 0x0001", first, second)
	}
}

func TestSessionIDSeedsDiffer(t *testing.T) {
	// Distinct instances should not all start from the same counter.
	// Five identical draws from the seed space are as good as
	// impossible.
	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		s := newSessionID()
		seen[s.current()] = true
	}
	if len(seen) == 1 {
		t.Error("every instance seeded identically")
	}
}

func TestResultFlags(t *testing.T) {
	var r result
	if r.IsFinished() || r.IsSuccessful() {
		t.Error("zero value should be unfinished and unsuccessful")
	}
	r.finishOK()
	if !r.IsFinished() || !r.IsSuccessful() {
		t.Error("finishOK should set both flags")
	}
	r.reset()
	if r.IsFinished() || r.IsSuccessful() {
		t.Error("reset should clear both flags")
	}
	r.finishFailed()
	if !r.IsFinished() || r.IsSuccessful() {
		t.Error("finishFailed should finish without success")
	}
}

func TestRequestCommandResetsTerminalState(t *testing.T) {
	tx := NewLogin("velux123")
	tx.RequestCommand()
	tx.ConsumeResponse(klfapi.GWPasswordEnterCFM, []byte{0})
	if !tx.IsFinished() {
		t.Fatal("setup: transaction should be finished")
	}

	tx.RequestCommand()
	if tx.IsFinished() || tx.IsSuccessful() {
		t.Error("building a new request must clear the previous outcome")
	}
}
