package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// LegalMoves returns the legal destinations of the piece on from: its
// pseudo-legal moves minus those that leave its own king in check. Each
// candidate is tried on a copy of the board, so the board is not modified.
func LegalMoves(board *chess.Board, from chess.Square) ([]chess.Square, error) {
	if !from.Valid() {
		return nil, &errors.MoveError{Err: errors.ErrOutOfBounds, From: from.String()}
	}
	piece := board.Get(from)
	if piece.IsEmpty() {
		return nil, &errors.MoveError{Err: errors.ErrEmptySquare, From: from.String()}
	}
	return legalMoves(board, from, piece), nil
}

// legalMoves filters the pseudo-legal moves of an occupied square.
func legalMoves(board *chess.Board, from chess.Square, piece chess.Cell) []chess.Square {
	var legal []chess.Square
	for _, to := range Generate(piece.Piece, piece.Colour, from, board) {
		if tryMove(board, from, to, piece.Colour) {
			legal = append(legal, to)
		}
	}
	return legal
}

// tryMove makes a move on a copied board and checks if it leaves the king in check.
func tryMove(board *chess.Board, from, to chess.Square, colour chess.Colour) bool {
	testBoard := *board
	relocate(&testBoard, from, to)
	return !IsInCheck(&testBoard, colour)
}

// HasLegalMove returns true if the given colour has at least one legal move.
func HasLegalMove(board *chess.Board, colour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board[row][col]
			if !piece.Is(colour) {
				continue
			}
			if hasLegalMovesForPiece(board, chess.Sq(row, col), piece) {
				return true
			}
		}
	}
	return false
}

// hasLegalMovesForPiece stops at the first candidate that survives the
// king-safety probe.
func hasLegalMovesForPiece(board *chess.Board, from chess.Square, piece chess.Cell) bool {
	for _, to := range Generate(piece.Piece, piece.Colour, from, board) {
		if tryMove(board, from, to, piece.Colour) {
			return true
		}
	}
	return false
}

// AllLegalMoves returns every legal move of the given colour, sources in
// row-major order and destinations in generator order.
func AllLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	board.Each(func(from chess.Square, piece chess.Cell) {
		if piece.Colour != colour {
			return
		}
		for _, to := range legalMoves(board, from, piece) {
			moves = append(moves, chess.Move{From: from, To: to})
		}
	})
	return moves
}
