package websocket

import (
	"encoding/json"
	"errors"

	"github.com/playrelay/chessroom/game/board"
)

// Inbound event type tags. Every client-to-server frame is a JSON object
// tagged by its "type" field.
const (
	EventJoinGame    = "join_game"
	EventChessMove   = "chess_move"
	EventSpectate    = "spectate"
	EventChatMessage = "chat_message"
)

var (
	// ErrMalformedFrame rejects frames that are not JSON, carry no type
	// tag, or whose payload does not match the tagged shape.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnknownEventType rejects well-formed frames with an unrecognized
	// type tag.
	ErrUnknownEventType = errors.New("unknown event type")
)

// JoinGameEvent asks for a seat in a room, creating the room on first join.
type JoinGameEvent struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

// ChessMoveEvent proposes a move in the sender's room.
type ChessMoveEvent struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Piece string `json:"piece"`
}

// SpectateEvent attaches the sender to an existing room as a watcher.
type SpectateEvent struct {
	GameID string `json:"gameId"`
}

// ChatEvent relays a chat line to the sender's room.
type ChatEvent struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// DecodeEvent decodes one inbound frame into its typed event. The frame is
// parsed exactly once: the type tag picks the payload shape, and anything
// that fails to fit is rejected here, before any handler runs. Move events
// additionally require both squares to name real board coordinates.
func DecodeEvent(data []byte) (any, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrMalformedFrame
	}

	switch probe.Type {
	case EventJoinGame:
		var ev JoinGameEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, ErrMalformedFrame
		}
		return ev, nil

	case EventChessMove:
		var ev ChessMoveEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, ErrMalformedFrame
		}
		if !board.ValidSquare(ev.From) || !board.ValidSquare(ev.To) {
			return nil, ErrMalformedFrame
		}
		return ev, nil

	case EventSpectate:
		var ev SpectateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, ErrMalformedFrame
		}
		return ev, nil

	case EventChatMessage:
		var ev ChatEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, ErrMalformedFrame
		}
		return ev, nil

	case "":
		return nil, ErrMalformedFrame

	default:
		return nil, ErrUnknownEventType
	}
}
