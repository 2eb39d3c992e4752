package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ApplyMove returns a copy of board with the piece on from relocated to to.
// The destination is overwritten and the source cleared. Legality is not
// checked here; callers take to from LegalMoves.
func ApplyMove(board chess.Board, from, to chess.Square) (chess.Board, error) {
	if !from.Valid() {
		return board, &errors.MoveError{Err: errors.ErrOutOfBounds, From: from.String(), To: to.String()}
	}
	if !to.Valid() {
		return board, &errors.MoveError{Err: errors.ErrOutOfBounds, From: from.String(), To: to.String()}
	}
	if board.Get(from).IsEmpty() {
		return board, &errors.MoveError{Err: errors.ErrEmptySquare, From: from.String(), To: to.String()}
	}
	relocate(&board, from, to)
	return board, nil
}

// relocate moves the piece on from to to. Both squares must be on the board.
func relocate(board *chess.Board, from, to chess.Square) {
	board[to.Row][to.Col] = board[from.Row][from.Col]
	board[from.Row][from.Col] = chess.Cell{}
}
