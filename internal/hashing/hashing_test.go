package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

func mustBoard(t *testing.T, fen string) (chess.Board, chess.Colour) {
	t.Helper()
	board, toMove, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return board, toMove
}

func TestZobristHashConsistency(t *testing.T) {
	board1 := chess.InitialBoard()
	board2, toMove := mustBoard(t, engine.InitialFEN)

	if ZobristHash(&board1, chess.White) != ZobristHash(&board2, toMove) {
		t.Error("identical positions produced different hashes")
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	initial := chess.InitialBoard()
	moved, err := engine.ApplyMove(initial, chess.Sq(6, 4), chess.Sq(4, 4))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		board  chess.Board
		toMove chess.Colour
	}{
		{"black to move", initial, chess.Black},
		{"pawn moved", moved, chess.White},
		{"empty board", chess.Board{}, chess.White},
	}

	base := ZobristHash(&initial, chess.White)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ZobristHash(&tt.board, tt.toMove) == base {
				t.Error("different position produced the initial position's hash")
			}
		})
	}
}

// TestZobristHashTransposition verifies move order does not matter
func TestZobristHashTransposition(t *testing.T) {
	a, _ := mustBoard(t, engine.InitialFEN)
	b := a
	var err error
	for _, m := range []string{"g1f3", "b1c3"} {
		mv, _ := chess.ParseMove(m)
		if a, err = engine.ApplyMove(a, mv.From, mv.To); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range []string{"b1c3", "g1f3"} {
		mv, _ := chess.ParseMove(m)
		if b, err = engine.ApplyMove(b, mv.From, mv.To); err != nil {
			t.Fatal(err)
		}
	}

	if ZobristHash(&a, chess.White) != ZobristHash(&b, chess.White) {
		t.Error("transposed positions produced different hashes")
	}
}

func TestDuplicateDetector(t *testing.T) {
	detector := NewDuplicateDetector()
	board := chess.InitialBoard()

	if _, dup := detector.CheckAndAdd("first", &board, chess.White); dup {
		t.Error("first position was marked as duplicate")
	}
	if _, dup := detector.CheckAndAdd("other side", &board, chess.Black); dup {
		t.Error("same placement with the other side to move was marked as duplicate")
	}

	first, dup := detector.CheckAndAdd("second", &board, chess.White)
	if !dup || first != "first" {
		t.Errorf("CheckAndAdd = (%q, %v), want (first, true)", first, dup)
	}

	if got := detector.DuplicateCount(); got != 1 {
		t.Errorf("DuplicateCount() = %d, want 1", got)
	}
}

func BenchmarkZobristHash(b *testing.B) {
	board := chess.InitialBoard()
	for i := 0; i < b.N; i++ {
		ZobristHash(&board, chess.White)
	}
}
