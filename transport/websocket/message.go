package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameHint  = "game:hint"
	actionGameLeave = "game:leave"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - shared by requests and replies. Requests identify the player by Player.ID.
type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Mark   string         `json:"mark,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
	Hint   *int           `json:"hint,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (that *Payload) playerID() string {
	if that.Player == nil {
		return ""
	}

	return that.Player.ID
}
