package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is used to cross-check move generation against known totals.
func Perft(board *chess.Board, toMove chess.Colour, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := AllLegalMoves(board, toMove)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := *board
		relocate(&child, m.From, m.To)
		nodes += Perft(&child, toMove.Opposite(), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal move, keyed by the
// move's coordinate string.
func Divide(board *chess.Board, toMove chess.Colour, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range AllLegalMoves(board, toMove) {
		child := *board
		relocate(&child, m.From, m.To)
		result[m.String()] = Perft(&child, toMove.Opposite(), depth-1)
	}
	return result
}
