package commands

import (
	"testing"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/protocol"
)

func sceneListNTF(remaining int, scenes ...Scene) []byte {
	p := protocol.NewPacketOfSize(2 + sceneEntrySize*len(scenes))
	p.SetOneByteValue(0, len(scenes))
	for i, s := range scenes {
		offset := 1 + i*sceneEntrySize
		p.SetOneByteValue(offset, s.ID)
		copy(p.Bytes()[offset+1:offset+1+sceneNameLength], s.Name)
	}
	p.SetOneByteValue(1+sceneEntrySize*len(scenes), remaining)
	return p.Bytes()
}

func TestGetScenesTwoSceneBatch(t *testing.T) {
	tx := NewGetScenes()
	tx.RequestCommand()

	if !tx.ConsumeResponse(klfapi.GWGetSceneListCFM, []byte{2}) {
		t.Fatal("confirmation must be accepted")
	}
	if tx.IsFinished() {
		t.Fatal("a non-zero total must keep the handshake open")
	}

	ntf := sceneListNTF(0,
		Scene{ID: 3, Name: "open all"},
		Scene{ID: 7, Name: "close all"},
	)
	if !tx.ConsumeResponse(klfapi.GWGetSceneListNTF, ntf) {
		t.Fatal("scene batch must be accepted")
	}
	if !tx.IsFinished() || !tx.IsSuccessful() {
		t.Fatalf("finished = %v, successful = %v, want both true",
			tx.IsFinished(), tx.IsSuccessful())
	}

	scenes := tx.Scenes()
	if len(scenes) != 2 {
		t.Fatalf("len(Scenes()) = %d, want 2", len(scenes))
	}
	if scenes[0] != (Scene{ID: 3, Name: "open all"}) {
		t.Errorf("scenes[0] = %+v", scenes[0])
	}
	if scenes[1] != (Scene{ID: 7, Name: "close all"}) {
		t.Errorf("scenes[1] = %+v", scenes[1])
	}
}

func TestGetScenesDiscardsEntriesBeyondTotal(t *testing.T) {
	tx := NewGetScenes()
	tx.RequestCommand()
	tx.ConsumeResponse(klfapi.GWGetSceneListCFM, []byte{2})

	ntf := sceneListNTF(0,
		Scene{ID: 1, Name: "one"},
		Scene{ID: 2, Name: "two"},
		Scene{ID: 3, Name: "three"},
	)
	if !tx.ConsumeResponse(klfapi.GWGetSceneListNTF, ntf) {
		t.Fatal("scene batch must be accepted")
	}
	if got := len(tx.Scenes()); got != 2 {
		t.Errorf("len(Scenes()) = %d, want 2, extra entries discarded", got)
	}
	if !tx.IsSuccessful() {
		t.Error("an overlong batch still completes the handshake")
	}
}

func TestGetScenesEmptyList(t *testing.T) {
	tx := NewGetScenes()
	tx.RequestCommand()

	if !tx.ConsumeResponse(klfapi.GWGetSceneListCFM, []byte{0}) {
		t.Fatal("confirmation must be accepted")
	}
	if !tx.IsFinished() || !tx.IsSuccessful() {
		t.Error("a zero total should finish successfully right away")
	}
	if len(tx.Scenes()) != 0 {
		t.Error("no scenes expected")
	}
}

func TestGetScenesMultipleBatches(t *testing.T) {
	tx := NewGetScenes()
	tx.RequestCommand()
	tx.ConsumeResponse(klfapi.GWGetSceneListCFM, []byte{2})

	if !tx.ConsumeResponse(klfapi.GWGetSceneListNTF, sceneListNTF(1, Scene{ID: 1, Name: "one"})) {
		t.Fatal("first batch must be accepted")
	}
	if tx.IsFinished() {
		t.Fatal("a non-zero remaining count must keep the handshake open")
	}
	if !tx.ConsumeResponse(klfapi.GWGetSceneListNTF, sceneListNTF(0, Scene{ID: 2, Name: "two"})) {
		t.Fatal("second batch must be accepted")
	}
	if !tx.IsSuccessful() || len(tx.Scenes()) != 2 {
		t.Errorf("successful = %v, scenes = %d, want true and 2",
			tx.IsSuccessful(), len(tx.Scenes()))
	}
}

func TestGetScenesLengthMismatch(t *testing.T) {
	tx := NewGetScenes()
	tx.RequestCommand()
	tx.ConsumeResponse(klfapi.GWGetSceneListCFM, []byte{1})

	// Declares one entry but carries no entry bytes.
	if !tx.ConsumeResponse(klfapi.GWGetSceneListNTF, []byte{1, 0}) {
		t.Fatal("malformed batch still addresses this transaction")
	}
	if !tx.IsFinished() || tx.IsSuccessful() {
		t.Error("a malformed batch must finish the transaction unsuccessfully")
	}
}
