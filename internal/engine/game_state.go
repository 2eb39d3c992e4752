package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// StatusKind classifies a position for the side to move.
type StatusKind int

const (
	InProgress StatusKind = iota
	Check
	Checkmate
	Stalemate
)

// String returns the lower-case name of the status kind.
func (k StatusKind) String() string {
	switch k {
	case InProgress:
		return "in_progress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "unknown"
}

// ParseStatusKind is the inverse of StatusKind.String.
func ParseStatusKind(s string) (StatusKind, bool) {
	for k := InProgress; k <= Stalemate; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return InProgress, false
}

// GameStatus is the derived state of a position. For Check, Colour is the
// side in check; for Checkmate it is the winner; otherwise it is unused.
type GameStatus struct {
	Kind   StatusKind
	Colour chess.Colour
}

// IsTerminal returns true for checkmate and stalemate.
func (s GameStatus) IsTerminal() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate
}

// String returns a short human-readable description.
func (s GameStatus) String() string {
	switch s.Kind {
	case Check:
		return fmt.Sprintf("%v in check", s.Colour)
	case Checkmate:
		return fmt.Sprintf("checkmate, %v wins", s.Colour)
	case Stalemate:
		return "stalemate"
	}
	return "in progress"
}

// Evaluate classifies the position for the side to move.
func Evaluate(board *chess.Board, toMove chess.Colour) GameStatus {
	inCheck := IsInCheck(board, toMove)
	if !HasLegalMove(board, toMove) {
		if inCheck {
			return GameStatus{Kind: Checkmate, Colour: toMove.Opposite()}
		}
		return GameStatus{Kind: Stalemate}
	}
	if inCheck {
		return GameStatus{Kind: Check, Colour: toMove}
	}
	return GameStatus{Kind: InProgress}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board, toMove chess.Colour) bool {
	return IsInCheck(board, toMove) && !HasLegalMove(board, toMove)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board, toMove chess.Colour) bool {
	return !IsInCheck(board, toMove) && !HasLegalMove(board, toMove)
}
