package monitor

import (
	"time"

	"github.com/muurk/klf200/internal/commands"
)

// NodeEvent is one node position update as published to subscribers.
type NodeEvent struct {
	NodeID          int       `json:"node_id"`
	State           int       `json:"state"`
	CurrentPosition int       `json:"current_position"`
	TargetPosition  int       `json:"target_position"`
	RemainingTime   int       `json:"remaining_time_s"`
	ReceivedAt      time.Time `json:"received_at"`
}

// EventFromNodeState converts a decoded gateway notification into a
// publishable event.
func EventFromNodeState(node commands.NodeState) NodeEvent {
	return NodeEvent{
		NodeID:          node.NodeID,
		State:           node.State,
		CurrentPosition: node.CurrentPosition,
		TargetPosition:  node.TargetPosition,
		RemainingTime:   node.RemainingTime,
		ReceivedAt:      time.Now(),
	}
}
