package room

import (
	"errors"
	"testing"

	"github.com/playrelay/chessroom/game/board"
)

func TestJoinAssignsColorsInOrder(t *testing.T) {
	r := New("room-1", nil)

	alice, started, err := r.Join("conn-a", "Alice")
	if err != nil {
		t.Fatalf("First join failed: %v", err)
	}
	if alice.Color != White {
		t.Errorf("Expected first player to be white, got %s", alice.Color)
	}
	if started {
		t.Error("Expected room not to start after one join")
	}
	if r.Status() != StatusWaiting {
		t.Errorf("Expected status %s, got %s", StatusWaiting, r.Status())
	}

	bob, started, err := r.Join("conn-b", "Bob")
	if err != nil {
		t.Fatalf("Second join failed: %v", err)
	}
	if bob.Color != Black {
		t.Errorf("Expected second player to be black, got %s", bob.Color)
	}
	if !started {
		t.Error("Expected room to start after the second join")
	}
	if r.Status() != StatusActive {
		t.Errorf("Expected status %s, got %s", StatusActive, r.Status())
	}
}

func TestJoinThirdPlayerRejected(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	_, _, err := r.Join("conn-c", "Carol")
	if !errors.Is(err, ErrRoomFull) {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}
	if len(r.Players()) != 2 {
		t.Errorf("Expected 2 seated players, got %d", len(r.Players()))
	}
}

func TestVacatedColorNotReassigned(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	removed, ok := r.RemovePlayer("conn-a")
	if !ok {
		t.Fatal("Expected white player to be removed")
	}
	if removed.Color != White {
		t.Errorf("Expected removed player to be white, got %s", removed.Color)
	}

	carol, started, err := r.Join("conn-c", "Carol")
	if err != nil {
		t.Fatalf("Join after vacancy failed: %v", err)
	}
	if carol.Color != Black {
		t.Errorf("Expected later joiner to get black, not the vacated white, got %s", carol.Color)
	}
	if !started {
		t.Error("Expected the refilled second seat to report a start")
	}
}

func TestEmptiedRoomSeatsNextJoinerWhite(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")
	r.RemovePlayer("conn-a")
	r.RemovePlayer("conn-b")

	dave, _, err := r.Join("conn-d", "Dave")
	if err != nil {
		t.Fatalf("Join into emptied room failed: %v", err)
	}
	if dave.Color != White {
		t.Errorf("Expected first seat of emptied room to be white, got %s", dave.Color)
	}
}

func TestApplyMoveRelocatesAndFlipsTurn(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	if r.Turn() != White {
		t.Fatalf("Expected white to move first, got %s", r.Turn())
	}

	m, err := r.ApplyMove("conn-a", "e2", "e4", board.WhitePawn)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if m.Player != "Alice" {
		t.Errorf("Expected move recorded for Alice, got %s", m.Player)
	}
	if r.Board()["e2"] != "" {
		t.Errorf("Expected e2 vacated, got %q", r.Board()["e2"])
	}
	if r.Board()["e4"] != board.WhitePawn {
		t.Errorf("Expected pawn on e4, got %q", r.Board()["e4"])
	}
	if r.Turn() != Black {
		t.Errorf("Expected turn to flip to black, got %s", r.Turn())
	}

	moves := r.Moves()
	if len(moves) != 1 {
		t.Fatalf("Expected 1 logged move, got %d", len(moves))
	}
	if moves[0].From != "e2" || moves[0].To != "e4" {
		t.Errorf("Expected logged move e2-e4, got %s-%s", moves[0].From, moves[0].To)
	}
}

func TestApplyMoveOverwritesDestination(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	// No legality: the white queen may jump straight onto the black queen.
	_, err := r.ApplyMove("conn-a", "d1", "d8", board.WhiteQueen)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if r.Board()["d8"] != board.WhiteQueen {
		t.Errorf("Expected d8 occupant overwritten with %q, got %q", board.WhiteQueen, r.Board()["d8"])
	}
}

func TestApplyMoveOutOfTurn(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	_, err := r.ApplyMove("conn-b", "e7", "e5", board.BlackPawn)
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("Expected ErrNotYourTurn, got %v", err)
	}

	if r.Board()["e7"] != board.BlackPawn {
		t.Errorf("Expected board unchanged after rejected move, e7 holds %q", r.Board()["e7"])
	}
	if len(r.Moves()) != 0 {
		t.Errorf("Expected empty move log after rejected move, got %d entries", len(r.Moves()))
	}
	if r.Turn() != White {
		t.Errorf("Expected turn unchanged, got %s", r.Turn())
	}
}

func TestApplyMoveAlternatesTurns(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	sequence := []struct {
		connID string
		from   string
		to     string
	}{
		{"conn-a", "e2", "e4"},
		{"conn-b", "e7", "e5"},
		{"conn-a", "g1", "f3"},
		{"conn-b", "b8", "c6"},
	}

	for i, step := range sequence {
		if _, err := r.ApplyMove(step.connID, step.from, step.to, ""); err != nil {
			t.Fatalf("Move %d (%s-%s) failed: %v", i, step.from, step.to, err)
		}
	}

	if len(r.Moves()) != 4 {
		t.Errorf("Expected 4 logged moves, got %d", len(r.Moves()))
	}
	if r.Turn() != White {
		t.Errorf("Expected white to move after four plies, got %s", r.Turn())
	}
}

func TestApplyMoveFromNonPlayer(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.AddSpectator("conn-s")

	tests := []struct {
		name   string
		connID string
	}{
		{"spectator", "conn-s"},
		{"stranger", "conn-x"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := r.ApplyMove(test.connID, "e2", "e4", "")
			if !errors.Is(err, ErrNotAPlayer) {
				t.Errorf("Expected ErrNotAPlayer, got %v", err)
			}
		})
	}
}

type rejectingValidator struct {
	reason error
}

func (v rejectingValidator) Validate(board.Board, Move, Color) error {
	return v.reason
}

func TestValidatorRejectionLeavesRoomUntouched(t *testing.T) {
	reason := errors.New("pawns only move forward")
	r := New("room-1", rejectingValidator{reason: reason})
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")

	_, err := r.ApplyMove("conn-a", "e2", "e4", board.WhitePawn)
	if !errors.Is(err, reason) {
		t.Fatalf("Expected validator error, got %v", err)
	}
	if r.Board()["e2"] != board.WhitePawn {
		t.Errorf("Expected board unchanged, e2 holds %q", r.Board()["e2"])
	}
	if r.Turn() != White {
		t.Errorf("Expected turn unchanged, got %s", r.Turn())
	}
	if len(r.Moves()) != 0 {
		t.Errorf("Expected empty move log, got %d entries", len(r.Moves()))
	}
}

func TestSpectators(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.AddSpectator("conn-s1")
	r.AddSpectator("conn-s2")

	if r.SpectatorCount() != 2 {
		t.Errorf("Expected 2 spectators, got %d", r.SpectatorCount())
	}

	members := r.MemberIDs()
	if len(members) != 3 {
		t.Errorf("Expected 3 member connections, got %d", len(members))
	}

	if !r.RemoveSpectator("conn-s1") {
		t.Error("Expected spectator removal to succeed")
	}
	if r.RemoveSpectator("conn-s1") {
		t.Error("Expected second removal of the same spectator to report false")
	}
	if r.SpectatorCount() != 1 {
		t.Errorf("Expected 1 spectator after removal, got %d", r.SpectatorCount())
	}
}

func TestRemovePlayerUnknownConn(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")

	if _, ok := r.RemovePlayer("conn-x"); ok {
		t.Error("Expected removal of unknown connection to report false")
	}
	if len(r.Players()) != 1 {
		t.Errorf("Expected seat count unchanged, got %d", len(r.Players()))
	}
}

func TestMovesReturnsCopy(t *testing.T) {
	r := New("room-1", nil)
	r.Join("conn-a", "Alice")
	r.Join("conn-b", "Bob")
	r.ApplyMove("conn-a", "e2", "e4", "")

	moves := r.Moves()
	moves[0].From = "z9"

	if r.Moves()[0].From != "e2" {
		t.Errorf("Expected internal log unaffected by caller mutation, got %s", r.Moves()[0].From)
	}
}

func TestOpponent(t *testing.T) {
	if White.Opponent() != Black {
		t.Errorf("Expected white's opponent to be black, got %s", White.Opponent())
	}
	if Black.Opponent() != White {
		t.Errorf("Expected black's opponent to be white, got %s", Black.Opponent())
	}
}
