package websocket

import "encoding/json"

const (
	actionNextMove = "move:next"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Board  string `json:"board,omitempty"`
	Player string `json:"player,omitempty"`
	Error  string `json:"error,omitempty"`
}
