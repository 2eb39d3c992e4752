package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked by any
// opposing piece. A board without that king is never in check.
//
// Attacks are found with the pseudo-legal generators only; this file must
// not call LegalMoves, which itself calls IsInCheck.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := FindKing(board, colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// FindKing finds the king of the given colour on the board.
func FindKing(board *chess.Board, colour chess.Colour) (chess.Square, bool) {
	king := chess.MakeCell(colour, chess.King)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if board[row][col] == king {
				return chess.Sq(row, col), true
			}
		}
	}
	return chess.Square{}, false
}

// IsSquareAttacked returns true if any piece of colour byColour has the
// square among its pseudo-legal destinations. For a square holding a piece
// of the other colour, such as a king, that is exactly an attack; for an
// empty square pawn pushes count and pawn diagonals do not.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			attacker := board[row][col]
			if !attacker.Is(byColour) {
				continue
			}
			for _, to := range Generate(attacker.Piece, byColour, chess.Sq(row, col), board) {
				if to == sq {
					return true
				}
			}
		}
	}
	return false
}
