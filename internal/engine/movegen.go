package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Direction tables as (row, col) deltas.
var (
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightJumps  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// Generate returns the pseudo-legal destination squares of a piece of the
// given type and colour standing on from. It does not consider whether the
// move would leave the mover's own king in check. The board is not modified.
func Generate(piece chess.Piece, colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	switch piece {
	case chess.Pawn:
		return PawnMoves(colour, from, board)
	case chess.Rook:
		return RookMoves(colour, from, board)
	case chess.Knight:
		return KnightMoves(colour, from, board)
	case chess.Bishop:
		return BishopMoves(colour, from, board)
	case chess.Queen:
		return QueenMoves(colour, from, board)
	case chess.King:
		return KingMoves(colour, from, board)
	}
	return nil
}

// PawnMoves returns the pseudo-legal pawn destinations: one step forward
// onto an empty square, two from the start row when both squares are
// empty, and forward-diagonal captures of opposing pieces.
func PawnMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	var moves []chess.Square
	dir := chess.ForwardOffset(colour)

	// A pawn on the far rank stays put; there is no promotion.
	one := from.Offset(dir, 0)
	if !one.Valid() {
		return nil
	}

	if board.Get(one).IsEmpty() {
		moves = append(moves, one)
		if from.Row == chess.PawnStartRow(colour) {
			two := from.Offset(2*dir, 0)
			if board.Get(two).IsEmpty() {
				moves = append(moves, two)
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		target := from.Offset(dir, dc)
		if !target.Valid() {
			continue
		}
		if board.Get(target).Is(colour.Opposite()) {
			moves = append(moves, target)
		}
	}
	return moves
}

// RookMoves returns the pseudo-legal rook destinations along ranks and files.
func RookMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	return slide(colour, from, board, straightDirs)
}

// BishopMoves returns the pseudo-legal bishop destinations along diagonals.
func BishopMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	return slide(colour, from, board, diagonalDirs)
}

// QueenMoves returns the union of the rook and bishop moves from the square.
func QueenMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	return append(RookMoves(colour, from, board), BishopMoves(colour, from, board)...)
}

// KnightMoves returns the pseudo-legal knight destinations.
func KnightMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	return step(colour, from, board, knightJumps)
}

// KingMoves returns the pseudo-legal king destinations. No castling.
func KingMoves(colour chess.Colour, from chess.Square, board *chess.Board) []chess.Square {
	return step(colour, from, board, kingSteps)
}

// slide walks outward along each direction until it leaves the board or
// meets a piece. An opposing piece is included as a capture; an own piece
// is not.
func slide(colour chess.Colour, from chess.Square, board *chess.Board, dirs [][2]int) []chess.Square {
	var moves []chess.Square
	for _, dir := range dirs {
		to := from.Offset(dir[0], dir[1])
		for to.Valid() {
			target := board.Get(to)
			if !target.IsEmpty() {
				if target.Colour != colour {
					moves = append(moves, to)
				}
				break // Blocked
			}
			moves = append(moves, to)
			to = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// step tries each fixed offset once; the target must be on the board and
// not hold an own piece.
func step(colour chess.Colour, from chess.Square, board *chess.Board, offsets [][2]int) []chess.Square {
	var moves []chess.Square
	for _, offset := range offsets {
		to := from.Offset(offset[0], offset[1])
		if !to.Valid() {
			continue
		}
		if target := board.Get(to); target.IsEmpty() || target.Colour != colour {
			moves = append(moves, to)
		}
	}
	return moves
}
