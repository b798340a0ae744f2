// Package monitor republishes gateway house status events to WebSocket
// subscribers.
//
// The gateway can only serve a couple of TLS sessions at once, so
// instead of every interested client talking to the gateway directly,
// one process watches the house status stream and fans the decoded node
// events out as JSON over WebSocket.
package monitor
