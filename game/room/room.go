package room

import (
	"errors"
	"time"

	"github.com/playrelay/chessroom/game/board"
)

// Color identifies which side a seated player controls.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Role distinguishes seated players from spectators.
type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)

// Status describes whether a room is still waiting for its second player.
type Status string

const (
	StatusWaiting Status = "waiting_for_players"
	StatusActive  Status = "active"
)

// MaxPlayers is the number of seats in a room.
const MaxPlayers = 2

var (
	// ErrRoomFull is returned when a join finds both seats taken.
	ErrRoomFull = errors.New("room is full")

	// ErrNotYourTurn is returned when a seated player moves out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNotAPlayer is returned when a move comes from a connection that
	// holds no seat in the room.
	ErrNotAPlayer = errors.New("not a player in this room")
)

// Move is one relayed move, recorded in the order it was accepted.
type Move struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Piece  string `json:"piece"`
	Player string `json:"player"`
}

// Player is a seated participant: the connection holding the seat, the
// display name it joined with, and the color assigned at join time.
type Player struct {
	ConnID string `json:"-"`
	Name   string `json:"name"`
	Color  Color  `json:"color"`
}

// Room holds the full state of one game: the board, whose turn it is, the
// seated players in join order, the spectator set, and the move log.
//
// Room is not safe for concurrent use; callers serialize access (the relay
// service holds one lock across every transition and its fan-out).
type Room struct {
	ID         string
	CreatedAt  time.Time
	LastActive time.Time

	board      board.Board
	turn       Color
	players    []Player
	spectators map[string]bool
	moves      []Move
	validator  Validator
}

// New creates a room with the standard starting board, white to move, and
// the given move validator. A nil validator means every move is allowed.
func New(id string, v Validator) *Room {
	if v == nil {
		v = AllowAllValidator{}
	}
	now := time.Now()
	return &Room{
		ID:         id,
		CreatedAt:  now,
		LastActive: now,
		board:      board.New(),
		turn:       White,
		spectators: make(map[string]bool),
		validator:  v,
	}
}

// Touch records activity, deferring eviction.
func (r *Room) Touch() {
	r.LastActive = time.Now()
}

// Status reports whether both seats are taken.
func (r *Room) Status() Status {
	if len(r.players) < MaxPlayers {
		return StatusWaiting
	}
	return StatusActive
}

// Join seats a player. The first seat taken in the room's lifetime gets
// white; any join that finds a seat already taken gets black, even when the
// occupied seat is itself black. Colors are never reassigned. The second
// return value reports whether this join filled the room.
func (r *Room) Join(connID, name string) (Player, bool, error) {
	if len(r.players) >= MaxPlayers {
		return Player{}, false, ErrRoomFull
	}

	color := White
	if len(r.players) > 0 {
		color = Black
	}

	p := Player{ConnID: connID, Name: name, Color: color}
	r.players = append(r.players, p)
	r.Touch()
	return p, len(r.players) == MaxPlayers, nil
}

// ApplyMove relays a move from the given connection. The mover must hold a
// seat and it must be their color's turn; beyond that the configured
// validator decides, and the default validator allows everything. An
// accepted move relocates whatever occupies from onto to (overwriting any
// occupant), appends to the move log, and flips the turn.
func (r *Room) ApplyMove(connID, from, to, piece string) (Move, error) {
	p, ok := r.PlayerByConn(connID)
	if !ok {
		return Move{}, ErrNotAPlayer
	}
	if p.Color != r.turn {
		return Move{}, ErrNotYourTurn
	}

	m := Move{From: from, To: to, Piece: piece, Player: p.Name}
	if err := r.validator.Validate(r.board, m, p.Color); err != nil {
		return Move{}, err
	}

	r.board.Relocate(from, to)
	r.moves = append(r.moves, m)
	r.turn = r.turn.Opponent()
	r.Touch()
	return m, nil
}

// AddSpectator registers a watching connection. Spectators receive every
// broadcast but never hold a seat.
func (r *Room) AddSpectator(connID string) {
	r.spectators[connID] = true
	r.Touch()
}

// RemovePlayer vacates the seat held by connID, if any. The color is not
// freed for reassignment (Join assigns by seat count, never by vacancy).
func (r *Room) RemovePlayer(connID string) (Player, bool) {
	for i, p := range r.players {
		if p.ConnID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			r.Touch()
			return p, true
		}
	}
	return Player{}, false
}

// RemoveSpectator drops a watching connection.
func (r *Room) RemoveSpectator(connID string) bool {
	if !r.spectators[connID] {
		return false
	}
	delete(r.spectators, connID)
	r.Touch()
	return true
}

// PlayerByConn looks up the seat held by a connection.
func (r *Room) PlayerByConn(connID string) (Player, bool) {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return Player{}, false
}

// Board returns the live board. Callers that hand it across a serialization
// boundary clone it first.
func (r *Room) Board() board.Board {
	return r.board
}

// Turn returns the color expected to move next.
func (r *Room) Turn() Color {
	return r.turn
}

// Players returns a copy of the seated players in join order.
func (r *Room) Players() []Player {
	return append([]Player(nil), r.players...)
}

// Moves returns a copy of the move log in acceptance order.
func (r *Room) Moves() []Move {
	return append([]Move(nil), r.moves...)
}

// MemberIDs returns the connection ids of everyone in the room, players
// first, then spectators. This is the broadcast audience.
func (r *Room) MemberIDs() []string {
	ids := make([]string, 0, len(r.players)+len(r.spectators))
	for _, p := range r.players {
		ids = append(ids, p.ConnID)
	}
	for id := range r.spectators {
		ids = append(ids, id)
	}
	return ids
}

// SpectatorCount returns how many connections are watching.
func (r *Room) SpectatorCount() int {
	return len(r.spectators)
}
