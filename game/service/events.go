package service

import (
	"fmt"

	"github.com/playrelay/chessroom/game/board"
	"github.com/playrelay/chessroom/game/room"
)

// Outbound event type tags. Every server-to-client frame is a flat JSON
// object carrying one of these in its "type" field.
const (
	EventConnected          = "connected"
	EventPlayerJoined       = "player_joined"
	EventGameStart          = "game_start"
	EventMoveMade           = "move_made"
	EventSpectateStarted    = "spectate_started"
	EventPlayerDisconnected = "player_disconnected"
	EventChatMessage        = "chat_message"
	EventError              = "error"
)

// ConnectedEvent greets a connection right after the upgrade.
type ConnectedEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewConnectedEvent returns the greeting sent once per connection.
func NewConnectedEvent() ConnectedEvent {
	return ConnectedEvent{Type: EventConnected, Message: "Connected to chess server"}
}

// PlayerJoinedEvent announces a newly seated player to the whole room,
// carrying the full board so late joiners need no extra sync step.
type PlayerJoinedEvent struct {
	Type        string      `json:"type"`
	Player      room.Player `json:"player"`
	GameState   board.Board `json:"gameState"`
	CurrentTurn room.Color  `json:"currentTurn"`
}

// NewPlayerJoinedEvent builds the join announcement.
func NewPlayerJoinedEvent(p room.Player, b board.Board, turn room.Color) PlayerJoinedEvent {
	return PlayerJoinedEvent{Type: EventPlayerJoined, Player: p, GameState: b, CurrentTurn: turn}
}

// GameStartEvent announces that the second seat was filled.
type GameStartEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewGameStartEvent builds the start announcement from the seated players.
func NewGameStartEvent(players []room.Player) GameStartEvent {
	msg := "Both players connected. White moves first."
	if len(players) == room.MaxPlayers {
		msg = fmt.Sprintf("%s (%s) vs %s (%s). White moves first.",
			players[0].Name, players[0].Color, players[1].Name, players[1].Color)
	}
	return GameStartEvent{Type: EventGameStart, Message: msg}
}

// MoveMadeEvent relays an accepted move with the board after it.
type MoveMadeEvent struct {
	Type        string      `json:"type"`
	Move        room.Move   `json:"move"`
	GameState   board.Board `json:"gameState"`
	CurrentTurn room.Color  `json:"currentTurn"`
}

// NewMoveMadeEvent builds the move announcement.
func NewMoveMadeEvent(m room.Move, b board.Board, turn room.Color) MoveMadeEvent {
	return MoveMadeEvent{Type: EventMoveMade, Move: m, GameState: b, CurrentTurn: turn}
}

// SpectateStartedEvent catches a new spectator up: current board, whose
// turn it is, and the whole move log so far.
type SpectateStartedEvent struct {
	Type        string      `json:"type"`
	GameState   board.Board `json:"gameState"`
	CurrentTurn room.Color  `json:"currentTurn"`
	Moves       []room.Move `json:"moves"`
}

// NewSpectateStartedEvent builds the spectator catch-up reply.
func NewSpectateStartedEvent(b board.Board, turn room.Color, moves []room.Move) SpectateStartedEvent {
	if moves == nil {
		moves = []room.Move{}
	}
	return SpectateStartedEvent{Type: EventSpectateStarted, GameState: b, CurrentTurn: turn, Moves: moves}
}

// PlayerDisconnectedEvent tells the remaining audience that a seat emptied.
type PlayerDisconnectedEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewPlayerDisconnectedEvent builds the departure announcement.
func NewPlayerDisconnectedEvent(p room.Player) PlayerDisconnectedEvent {
	return PlayerDisconnectedEvent{
		Type:    EventPlayerDisconnected,
		Message: fmt.Sprintf("%s (%s) disconnected", p.Name, p.Color),
	}
}

// ChatMessageEvent relays a chat line to the room.
type ChatMessageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// NewChatMessageEvent builds the chat relay frame.
func NewChatMessageEvent(message, sender string) ChatMessageEvent {
	return ChatMessageEvent{Type: EventChatMessage, Message: message, Sender: sender}
}

// ErrorEvent answers a rejected request on the connection that sent it.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// NewErrorEvent wraps a rejection reason for the wire.
func NewErrorEvent(reason string) ErrorEvent {
	return ErrorEvent{Type: EventError, Error: reason}
}
