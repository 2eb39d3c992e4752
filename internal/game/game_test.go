package game

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestNew(t *testing.T) {
	g := New()

	testutil.AssertEqual(t, g.Board, chess.InitialBoard())
	testutil.AssertEqual(t, g.SideToMove, chess.White)
	testutil.AssertEqual(t, g.LastStatus, engine.GameStatus{Kind: engine.InProgress})
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	testutil.AssertFalse(t, g.IsOver(), "new game is over")
}

func TestFromFEN(t *testing.T) {
	g, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.SideToMove, chess.Black)
	testutil.AssertEqual(t, g.LastStatus, engine.GameStatus{Kind: engine.Stalemate})
	testutil.AssertTrue(t, g.IsOver(), "stalemate position is over")

	_, err = FromFEN("not a fen")
	if !errors.Is(err, chesserrors.ErrInvalidFEN) {
		t.Errorf("FromFEN(invalid) error = %v, want ErrInvalidFEN", err)
	}
}

func TestSelect(t *testing.T) {
	g := New()

	got, err := g.Select(testutil.MustSquare(t, "g1"))
	testutil.AssertNoError(t, err)
	testutil.AssertSameSquares(t, got, testutil.Squares(t, "f3", "h3"))

	tests := []struct {
		name    string
		square  chess.Square
		wantErr error
	}{
		{"opponent piece", testutil.MustSquare(t, "e7"), chesserrors.ErrWrongSide},
		{"empty square", testutil.MustSquare(t, "e4"), chesserrors.ErrEmptySquare},
		{"off board", chess.Sq(9, 9), chesserrors.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Select(tt.square)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Select(%v) error = %v, want %v", tt.square, err, tt.wantErr)
			}
		})
	}
}

func TestPlay(t *testing.T) {
	g := New()

	next, err := g.Play(testutil.MustSquare(t, "e2"), testutil.MustSquare(t, "e4"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, next.SideToMove, chess.Black)
	testutil.AssertEqual(t, next.Ply(), 1)
	testutil.AssertEqual(t, next.History(), []string{"e2e4"})
	testutil.AssertEqual(t, next.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1")

	// The original state is untouched.
	testutil.AssertEqual(t, g.Board, chess.InitialBoard())
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertEqual(t, g.SideToMove, chess.White)
}

func TestPlay_Errors(t *testing.T) {
	g := New()

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"illegal destination", "e2", "e5", chesserrors.ErrIllegalMove},
		{"own piece on target", "a1", "a2", chesserrors.ErrIllegalMove},
		{"moving the opponent", "e7", "e5", chesserrors.ErrWrongSide},
		{"empty source", "e4", "e5", chesserrors.ErrEmptySquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Play(testutil.MustSquare(t, tt.from), testutil.MustSquare(t, tt.to))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Play(%s, %s) error = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			var moveErr *chesserrors.MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("Play() error %T is not a *MoveError", err)
			}
			testutil.AssertEqual(t, moveErr.Ply, 1)
			testutil.AssertEqual(t, moveErr.From, tt.from)
			testutil.AssertEqual(t, got.Board, g.Board, "board after failed move")
		})
	}
}

func TestPlayMoves_FoolsMate(t *testing.T) {
	g, err := New().PlayMoves("f2f3 e7e5 g2g4 d8h4")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, g.LastStatus, engine.GameStatus{Kind: engine.Checkmate, Colour: chess.Black})
	testutil.AssertTrue(t, g.IsOver(), "game over after mate")
	testutil.AssertEqual(t, g.Ply(), 4)

	_, err = g.Play(testutil.MustSquare(t, "e1"), testutil.MustSquare(t, "f2"))
	if !errors.Is(err, chesserrors.ErrGameOver) {
		t.Errorf("Play() after mate error = %v, want ErrGameOver", err)
	}
	_, err = g.Select(testutil.MustSquare(t, "e1"))
	if !errors.Is(err, chesserrors.ErrGameOver) {
		t.Errorf("Select() after mate error = %v, want ErrGameOver", err)
	}
}

func TestPlayMoves_StopsAtFirstError(t *testing.T) {
	g, err := New().PlayMoves("e2e4 e7e5 e4e5 d7d5")
	if !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Fatalf("PlayMoves() error = %v, want ErrIllegalMove", err)
	}
	testutil.AssertEqual(t, g.History(), []string{"e2e4", "e7e5"})

	var moveErr *chesserrors.MoveError
	if errors.As(err, &moveErr) {
		testutil.AssertEqual(t, moveErr.Ply, 3)
	}

	_, err = New().PlayMoves("e2e4 zz99")
	if !errors.Is(err, chesserrors.ErrInvalidSquare) {
		t.Errorf("PlayMoves(bad text) error = %v, want ErrInvalidSquare", err)
	}
}

func TestPlay_CheckStatus(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	testutil.AssertNoError(t, err)

	next, err := g.Play(testutil.MustSquare(t, "a1"), testutil.MustSquare(t, "a8"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, next.LastStatus, engine.GameStatus{Kind: engine.Check, Colour: chess.Black})
	testutil.AssertFalse(t, next.IsOver(), "king can escape")
}

func TestPlay_HistoryNotShared(t *testing.T) {
	base, err := New().PlayMoves("e2e4 e7e5")
	testutil.AssertNoError(t, err)

	a, err := base.Play(testutil.MustSquare(t, "g1"), testutil.MustSquare(t, "f3"))
	testutil.AssertNoError(t, err)
	b, err := base.Play(testutil.MustSquare(t, "b1"), testutil.MustSquare(t, "c3"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, a.History(), []string{"e2e4", "e7e5", "g1f3"})
	testutil.AssertEqual(t, b.History(), []string{"e2e4", "e7e5", "b1c3"})
	testutil.AssertEqual(t, base.History(), []string{"e2e4", "e7e5"})
}

func TestRestore(t *testing.T) {
	played, err := New().PlayMoves("d2d4 d7d5 c1f4")
	testutil.AssertNoError(t, err)

	restored, err := Restore(played.FEN(), played.History())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, restored, played)

	_, err = Restore(engine.InitialFEN, []string{"e2e4", "nonsense"})
	var moveErr *chesserrors.MoveError
	if !errors.As(err, &moveErr) || moveErr.Ply != 2 {
		t.Errorf("Restore(bad history) error = %v, want MoveError at ply 2", err)
	}
}
