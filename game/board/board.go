package board

// Piece symbols placed on the board. Vacant squares hold the empty string.
const (
	WhiteKing   = "♔"
	WhiteQueen  = "♕"
	WhiteRook   = "♖"
	WhiteBishop = "♗"
	WhiteKnight = "♘"
	WhitePawn   = "♙"

	BlackKing   = "♚"
	BlackQueen  = "♛"
	BlackRook   = "♜"
	BlackBishop = "♝"
	BlackKnight = "♞"
	BlackPawn   = "♟"
)

const (
	files = "abcdefgh"
	ranks = "12345678"

	// SquareCount is the number of entries every board carries.
	SquareCount = 64
)

// Board maps each of the 64 square coordinates ("a1".."h8") to the piece
// symbol occupying it. Every key is always present; vacant squares map to "".
type Board map[string]string

// New returns a board in the standard starting position: white pieces on
// ranks 1-2, black pieces on ranks 7-8, everything else vacant.
func New() Board {
	b := make(Board, SquareCount)
	for _, sq := range Squares() {
		b[sq] = ""
	}

	backRank := []string{"R", "N", "B", "Q", "K", "B", "N", "R"}
	white := map[string]string{
		"R": WhiteRook, "N": WhiteKnight, "B": WhiteBishop,
		"Q": WhiteQueen, "K": WhiteKing,
	}
	black := map[string]string{
		"R": BlackRook, "N": BlackKnight, "B": BlackBishop,
		"Q": BlackQueen, "K": BlackKing,
	}

	for i := 0; i < 8; i++ {
		file := string(files[i])
		b[file+"1"] = white[backRank[i]]
		b[file+"2"] = WhitePawn
		b[file+"7"] = BlackPawn
		b[file+"8"] = black[backRank[i]]
	}

	return b
}

// Squares returns all 64 square coordinates in rank-major order
// ("a1", "b1", ... "h8").
func Squares() []string {
	squares := make([]string, 0, SquareCount)
	for _, r := range ranks {
		for _, f := range files {
			squares = append(squares, string(f)+string(r))
		}
	}
	return squares
}

// ValidSquare reports whether s names one of the 64 board squares.
func ValidSquare(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// Relocate moves whatever occupies from onto to, vacating from. Any piece
// already on to is overwritten. No legality checks are applied; callers are
// expected to have validated square shape.
func (b Board) Relocate(from, to string) {
	b[to] = b[from]
	b[from] = ""
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	c := make(Board, SquareCount)
	for sq, piece := range b {
		c[sq] = piece
	}
	return c
}

// Render draws the board as a fixed-width text diagram, rank 8 at the top,
// using "." for vacant squares. Intended for logs and inspection tools.
func (b Board) Render() string {
	out := make([]byte, 0, 256)
	for ri := len(ranks) - 1; ri >= 0; ri-- {
		out = append(out, ranks[ri], ' ')
		for fi := 0; fi < len(files); fi++ {
			sq := string(files[fi]) + string(ranks[ri])
			piece := b[sq]
			if piece == "" {
				piece = "."
			}
			out = append(out, ' ')
			out = append(out, piece...)
		}
		out = append(out, '\n')
	}
	out = append(out, ' ', ' ')
	for fi := 0; fi < len(files); fi++ {
		out = append(out, ' ', files[fi])
	}
	out = append(out, '\n')
	return string(out)
}
