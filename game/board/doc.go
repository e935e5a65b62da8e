// Package board models the chess board as relayed between clients.
//
// The board is a flat mapping from square coordinate ("a1".."h8") to the
// piece symbol occupying that square, with vacant squares holding the empty
// string. All 64 entries are always present so serialized snapshots are
// complete without any client-side reconstruction.
//
// Core Types:
//
// Board is the map type itself plus the operations rooms need: New for the
// standard starting position, Relocate for the unconditional move primitive,
// Clone for snapshots handed across API boundaries, and Render for
// human-readable diagrams.
//
// Usage:
//
//	b := board.New()
//	if board.ValidSquare(from) && board.ValidSquare(to) {
//		b.Relocate(from, to)
//	}
//
// The package applies no chess rules: Relocate moves whatever sits on the
// source square and overwrites the destination. Turn order and membership
// checks live with the room, rule legality with whatever validator the room
// is configured with.
package board
