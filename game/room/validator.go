package room

import "github.com/playrelay/chessroom/game/board"

// Validator approves or rejects a proposed move after the seat and turn
// checks have passed but before the board changes. Implementations see the
// board as it stands, the move as the client phrased it, and the mover's
// color. A non-nil error rejects the move and is relayed verbatim to the
// mover; the room stays untouched.
type Validator interface {
	Validate(b board.Board, m Move, mover Color) error
}

// AllowAllValidator accepts every move. It is the default: the relay records
// and forwards moves without judging chess legality, which is left to the
// clients (or to a stricter Validator wired in at construction).
type AllowAllValidator struct{}

// Validate always returns nil.
func (AllowAllValidator) Validate(board.Board, Move, Color) error {
	return nil
}
