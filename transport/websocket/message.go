package websocket

import (
	"encoding/json"

	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/usecase"
)

const (
	ActionNew   = "session:new"
	ActionGet   = "session:get"
	ActionMove  = "session:move"
	ActionAI    = "session:ai"
	ActionUndo  = "session:undo"
	ActionRedo  = "session:redo"
	ActionReset = "session:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID      string            `json:"session_id,omitempty"`
	Variant        entity.Variant    `json:"variant,omitempty"`
	Difficulty     entity.Difficulty `json:"difficulty,omitempty"`
	StartingPlayer string            `json:"starting_player,omitempty"`
	Strategy       string            `json:"strategy,omitempty"`
	Row            int               `json:"row"`
	Col            int               `json:"col"`
}

type ResponsePayload struct {
	Session *game.View          `json:"session,omitempty"`
	Result  *usecase.MoveResult `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func reply(action string, payload ResponsePayload) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errorReply(action, "failed to encode response")
	}

	return Message{Action: action, Payload: raw}
}

func errorReply(action, reason string) Message {
	raw, _ := json.Marshal(ResponsePayload{Error: reason})
	return Message{Action: action, Payload: raw}
}
