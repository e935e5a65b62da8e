package service

import (
	"errors"
	"time"

	"github.com/playrelay/chessroom/game/room"
)

var (
	// ErrNoMembership marks operations from connections that belong to no
	// room. These are dropped without a reply on the wire.
	ErrNoMembership = errors.New("connection has no room membership")
)

// AnonymousSender is the chat sender used when the client omits one.
const AnonymousSender = "Anonymous"

// Conn is the relay's view of one client connection. Send must not block:
// it reports false when the payload could not be queued (connection closed
// or too slow).
type Conn interface {
	ID() string
	Send(payload []byte) bool
	IsOpen() bool
}

// ConnDirectory resolves connection ids to live connections. The websocket
// hub implements it.
type ConnDirectory interface {
	Resolve(connID string) (Conn, bool)
	Count() int
}

// RelayService applies client events to rooms and fans the resulting events
// out to room audiences. All mutating handlers are serialized; broadcasts
// run inside the same critical section, so per-room delivery order equals
// mutation order.
//
// Handlers return the rejection that occurred, if any, for logging and
// metrics at the transport. Whether a rejection is answered on the wire is
// the service's own business: full rooms, unknown rooms and out-of-turn
// moves get an error event, membershipless traffic is dropped silently.
type RelayService interface {
	// HandleJoin seats a player in the room, creating it on first join.
	HandleJoin(connID, roomID, playerName string) error

	// HandleMove relays a move from a seated player.
	HandleMove(connID, from, to, piece string) error

	// HandleSpectate attaches a watcher to an existing room.
	HandleSpectate(connID, roomID string) error

	// HandleChat relays a chat line to the sender's room.
	HandleChat(connID, message, sender string) error

	// HandleDisconnect reaps a connection's membership. It runs once per
	// connection teardown regardless of cause.
	HandleDisconnect(connID string)

	// EvictIdleRooms archives and removes rooms that are idle and empty.
	EvictIdleRooms(maxAge time.Duration) int

	// Rooms lists every room the registry holds, ordered by id.
	Rooms() []RoomInfo

	// RoomState describes one room, including a board snapshot.
	RoomState(roomID string) (RoomState, error)

	// MoveLog returns a room's moves in acceptance order.
	MoveLog(roomID string) ([]room.Move, error)

	// Stats summarizes the process for health and inspection surfaces.
	Stats() Stats
}
