// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents a chess piece type.
type Piece int

const (
	NoPiece Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceFromLetter converts a piece letter of either case to a piece type.
// Unknown letters yield NoPiece.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPiece
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	ColBase  = 'a'
	RankBase = '1'

	// Starting rows of the pawns, in board rows (row 0 is Black's back rank).
	WhitePawnRow = 6
	BlackPawnRow = 1
)

// ForwardOffset returns the row delta of a forward step for the colour:
// -1 for White (towards row 0), +1 for Black.
func ForwardOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row a pawn of the given colour starts on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return WhitePawnRow
	}
	return BlackPawnRow
}
