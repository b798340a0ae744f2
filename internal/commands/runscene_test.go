package commands

import (
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

func sessionBytes(session int, rest ...byte) []byte {
	p := protocol.NewPacketOfSize(2 + len(rest))
	p.SetTwoByteValue(0, session)
	copy(p.Bytes()[2:], rest)
	return p.Bytes()
}

func TestRunSceneHappyPath(t *testing.T) {
	tx := NewRunScene(5, VelocitySilent)
	tx.RequestCommand()

	request := protocol.NewPacket(tx.RequestData())
	if request.Len() != 6 {
		t.Fatalf("request length = %d, want 6", request.Len())
	}
	session := request.TwoByteValue(0)
	if got := request.OneByteValue(4); got != 5 {
		t.Errorf("scene id = %d, want 5", got)
	}
	if got := request.OneByteValue(5); got != int(VelocitySilent) {
		t.Errorf("velocity = %d, want %d", got, VelocitySilent)
	}

	// CFM: status 0, matching session.
	cfm := protocol.NewPacketOfSize(3)
	cfm.SetOneByteValue(0, 0)
	cfm.SetTwoByteValue(1, session)
	if !tx.ConsumeResponse(klfapi.GWActivateSceneCFM, cfm.Bytes()) {
		t.Fatal("matching confirmation must be accepted")
	}
	if tx.IsFinished() {
		t.Fatal("confirmation alone must not finish the handshake")
	}

	// Progress notifications are accepted and do not finish.
	runStatus := protocol.NewPacketOfSize(13)
	runStatus.SetTwoByteValue(0, session)
	if !tx.ConsumeResponse(klfapi.GWCommandRunStatusNTF, runStatus.Bytes()) {
		t.Fatal("run status notification must be accepted")
	}
	remaining := protocol.NewPacketOfSize(6)
	remaining.SetTwoByteValue(0, session)
	if !tx.ConsumeResponse(klfapi.GWCommandRemainingTimeNTF, remaining.Bytes()) {
		t.Fatal("remaining time notification must be accepted")
	}
	if tx.IsFinished() {
		t.Fatal("progress notifications must not finish the handshake")
	}

	if !tx.ConsumeResponse(klfapi.GWSessionFinishedNTF, sessionBytes(session)) {
		t.Fatal("session finished notification must be accepted")
	}
	if !tx.IsFinished() || !tx.IsSuccessful() {
		t.Errorf("finished = %v, successful = %v, want both true",
			tx.IsFinished(), tx.IsSuccessful())
	}
}

func TestRunSceneSessionMismatch(t *testing.T) {
	tx := NewRunScene(5, VelocityDefault)
	tx.RequestCommand()
	session := protocol.NewPacket(tx.RequestData()).TwoByteValue(0)

	cfm := protocol.NewPacketOfSize(3)
	cfm.SetOneByteValue(0, 0)
	cfm.SetTwoByteValue(1, session+1)
	if !tx.ConsumeResponse(klfapi.GWActivateSceneCFM, cfm.Bytes()) {
		t.Fatal("a mismatched session still addresses this transaction's state")
	}
	if !tx.IsFinished() || tx.IsSuccessful() {
		t.Errorf("finished = %v, successful = %v, want finished and unsuccessful",
			tx.IsFinished(), tx.IsSuccessful())
	}
}

func TestRunSceneConfirmationStatuses(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		wantFinished   bool
		wantSuccessful bool
	}{
		{"accepted continues", 0, false, false},
		{"invalid parameter fails", 1, true, false},
		{"rejected fails", 2, true, false},
		{"unknown status fails", 9, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewRunScene(1, VelocityDefault)
			tx.RequestCommand()
			session := protocol.NewPacket(tx.RequestData()).TwoByteValue(0)

			cfm := protocol.NewPacketOfSize(3)
			cfm.SetOneByteValue(0, tt.status)
			cfm.SetTwoByteValue(1, session)
			tx.ConsumeResponse(klfapi.GWActivateSceneCFM, cfm.Bytes())
			if tx.IsFinished() != tt.wantFinished {
				t.Errorf("IsFinished() = %v, want %v", tx.IsFinished(), tt.wantFinished)
			}
			if tx.IsSuccessful() != tt.wantSuccessful {
				t.Errorf("IsSuccessful() = %v, want %v", tx.IsSuccessful(), tt.wantSuccessful)
			}
		})
	}
}

func TestRunSceneRejectsNotifyBeforeConfirm(t *testing.T) {
	tx := NewRunScene(1, VelocityDefault)
	tx.RequestCommand()
	session := protocol.NewPacket(tx.RequestData()).TwoByteValue(0)

	if tx.ConsumeResponse(klfapi.GWSessionFinishedNTF, sessionBytes(session)) {
		t.Error("session finished before the confirmation must be rejected")
	}
	if tx.IsFinished() {
		t.Error("a rejected frame must not finish the transaction")
	}
}
