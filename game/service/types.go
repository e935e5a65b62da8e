package service

import (
	"time"

	"github.com/playrelay/chessroom/game/board"
	"github.com/playrelay/chessroom/game/room"
)

// RoomInfo is the listing view of a room.
type RoomInfo struct {
	ID             string        `json:"id"`
	Status         room.Status   `json:"status"`
	Players        []room.Player `json:"players"`
	SpectatorCount int           `json:"spectator_count"`
	MoveCount      int           `json:"move_count"`
	CreatedAt      time.Time     `json:"created_at"`
	LastActive     time.Time     `json:"last_active"`
}

// RoomState is the full inspection view of a room. Board is a snapshot,
// safe to hold after the call returns.
type RoomState struct {
	RoomInfo
	Board       board.Board `json:"board"`
	CurrentTurn room.Color  `json:"current_turn"`
}

// Stats summarizes the relay process.
type Stats struct {
	Rooms       int       `json:"rooms"`
	Connections int       `json:"connections"`
	Memberships int       `json:"memberships"`
	StartedAt   time.Time `json:"started_at"`
	Uptime      string    `json:"uptime"`
}
