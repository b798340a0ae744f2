package monitor

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/klf200/internal/commands"
)

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("SubscriberCount() = %d, want %d", hub.SubscriberCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dialHub(t, server)
	defer conn.Close()
	waitForSubscribers(t, hub, 1)

	sent := EventFromNodeState(commands.NodeState{
		NodeID:          4,
		State:           5,
		CurrentPosition: 0xC400,
		TargetPosition:  0,
		RemainingTime:   42,
	})
	hub.Broadcast(sent)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var got NodeEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.NodeID != 4 || got.State != 5 {
		t.Errorf("node id/state = %d/%d", got.NodeID, got.State)
	}
	if got.CurrentPosition != 0xC400 {
		t.Errorf("current position = %#x", got.CurrentPosition)
	}
	if got.RemainingTime != 42 {
		t.Errorf("remaining time = %d", got.RemainingTime)
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	server := httptest.NewServer(hub)
	defer server.Close()

	first := dialHub(t, server)
	defer first.Close()
	second := dialHub(t, server)
	defer second.Close()
	waitForSubscribers(t, hub, 2)

	hub.Broadcast(NodeEvent{NodeID: 1})

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Errorf("subscriber did not receive the event: %v", err)
		}
	}
}

func TestHubRemovesDisconnectedSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dialHub(t, server)
	waitForSubscribers(t, hub, 1)

	conn.Close()
	waitForSubscribers(t, hub, 0)
}

func TestHubCloseRejectsNewSubscribers(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	hub.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		// The upgrade may still succeed before the hub drops the
		// connection; reads must fail promptly either way.
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, rerr := conn.ReadMessage(); rerr == nil {
			t.Error("subscription to a closed hub should not deliver messages")
		}
		conn.Close()
	}
	if hub.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", hub.SubscriberCount())
	}
}
