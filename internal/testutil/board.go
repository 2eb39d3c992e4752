package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// MustSquare parses a square name such as "e4", calling t.Fatal on failure.
func MustSquare(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("invalid square name %q", name)
	}
	return sq
}

// Squares parses a list of square names.
func Squares(t *testing.T, names ...string) []chess.Square {
	t.Helper()
	squares := make([]chess.Square, 0, len(names))
	for _, name := range names {
		squares = append(squares, MustSquare(t, name))
	}
	return squares
}

// Place builds an otherwise empty board holding the given pieces, keyed by
// square name.
func Place(t *testing.T, pieces map[string]chess.Cell) chess.Board {
	t.Helper()
	var b chess.Board
	for name, cell := range pieces {
		b.Set(MustSquare(t, name), cell)
	}
	return b
}
