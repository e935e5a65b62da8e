// Package room implements the state machine for one game room.
//
// A room seats up to two players, carries any number of spectators, and owns
// the board, the turn indicator, and the ordered move log. Rooms move between
// two states: waiting_for_players (fewer than two seats taken) and active
// (both seats taken). There is no terminal state; a room exists until the
// registry evicts it.
//
// Core Types:
//
// Room applies the transitions (Join, ApplyMove, AddSpectator,
// RemovePlayer, RemoveSpectator) and answers the queries the relay service
// needs (Players, Moves, MemberIDs, Turn, Board, Status). Move, Player,
// Color, Role and Status are the shared vocabulary types. Validator is the
// seam for move legality; AllowAllValidator is the default.
//
// Seat colors are assigned by join order: the first seat taken is white,
// every later seat black. Colors are never reassigned, even after a
// disconnect vacates one, so a room that lost its white player seats the
// next joiner as a second black.
//
// Concurrency:
//
// Room has no internal locking. The relay service serializes every
// transition and runs its broadcast fan-out under the same lock, which is
// what keeps per-room event order equal to mutation order.
package room
