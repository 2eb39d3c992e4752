package chess

import (
	"fmt"
	"strings"
)

// Square is a (row, column) board coordinate. Row 0 is Black's back rank
// and row 7 is White's; column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid returns true if the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square dr rows and dc columns away. The result may be
// off the board; check Valid before indexing with it.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// String returns the square name, e.g. "e2" for (6, 4).
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{byte(ColBase + s.Col), byte(RankBase + BoardSize - 1 - s.Row)})
}

// ParseSquare converts a square name such as "e2" to a Square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return Square{}, false
	}
	file := strings.ToLower(name)[0]
	rank := name[1]
	if file < ColBase || file >= ColBase+BoardSize || rank < RankBase || rank >= RankBase+BoardSize {
		return Square{}, false
	}
	return Square{Row: BoardSize - 1 - int(rank-RankBase), Col: int(file - ColBase)}, true
}

// Cell is the content of one board square. The zero value is an empty
// square; an occupied square carries both the piece type and its colour.
type Cell struct {
	Piece  Piece
	Colour Colour
}

// MakeCell creates a cell occupied by a piece of the given colour.
// NoPiece yields the empty cell.
func MakeCell(colour Colour, piece Piece) Cell {
	if piece == NoPiece {
		return Cell{}
	}
	return Cell{Piece: piece, Colour: colour}
}

// W creates a white piece.
func W(piece Piece) Cell {
	return MakeCell(White, piece)
}

// B creates a black piece.
func B(piece Piece) Cell {
	return MakeCell(Black, piece)
}

// IsEmpty returns true if no piece occupies the cell.
func (c Cell) IsEmpty() bool {
	return c.Piece == NoPiece
}

// Is returns true if the cell holds a piece of the given colour.
func (c Cell) Is(colour Colour) bool {
	return c.Piece != NoPiece && c.Colour == colour
}

// Letter returns the FEN letter for the cell: uppercase for White,
// lowercase for Black, '.' when empty.
func (c Cell) Letter() byte {
	if c.IsEmpty() {
		return '.'
	}
	letter := c.Piece.Letter()
	if c.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a readable form such as "White Knight" or "Empty".
func (c Cell) String() string {
	if c.IsEmpty() {
		return "Empty"
	}
	return c.Colour.String() + " " + c.Piece.String()
}

// Board is an 8x8 grid of cells, indexed [row][col]. It is a value type:
// assigning a Board copies every square, which is what move simulation
// relies on.
type Board [BoardSize][BoardSize]Cell

// backRank is the piece order on both back ranks, a-file first.
var backRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialBoard returns the standard starting position.
func InitialBoard() Board {
	var b Board
	for col := 0; col < BoardSize; col++ {
		b[0][col] = B(backRank[col])
		b[BlackPawnRow][col] = B(Pawn)
		b[WhitePawnRow][col] = W(Pawn)
		b[BoardSize-1][col] = W(backRank[col])
	}
	return b
}

// Get returns the cell at the given square, or the empty cell if the
// square is off the board.
func (b *Board) Get(sq Square) Cell {
	if !sq.Valid() {
		return Cell{}
	}
	return b[sq.Row][sq.Col]
}

// Set places a cell at the given square. Off-board squares are ignored.
func (b *Board) Set(sq Square, cell Cell) {
	if sq.Valid() {
		b[sq.Row][sq.Col] = cell
	}
}

// Each calls fn for every occupied square in row-major order.
func (b *Board) Each(fn func(sq Square, cell Cell)) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if cell := b[row][col]; !cell.IsEmpty() {
				fn(Square{Row: row, Col: col}, cell)
			}
		}
	}
}

// Count returns the number of pieces of the given colour and type.
func (b *Board) Count(colour Colour, piece Piece) int {
	n := 0
	want := MakeCell(colour, piece)
	b.Each(func(_ Square, cell Cell) {
		if cell == want {
			n++
		}
	})
	return n
}

// String renders the board as eight lines of FEN letters, row 0 first.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(b[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
