package testutil

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// These tests verify the assertion helpers work correctly.
// Since we can't mock *testing.T, we test success cases directly
// and test the formatMessage helper which is internally testable.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, chess.InitialBoard(), chess.InitialBoard())
}

func TestAssertEqual_WithMessage(t *testing.T) {
	AssertEqual(t, "hello", "hello", "custom message")
	AssertEqual(t, 42, 42, "value should be %d", 42)
}

func TestAssertSameSquares_Success(t *testing.T) {
	AssertSameSquares(t, Squares(t, "a1", "h8", "e4"), Squares(t, "e4", "a1", "h8"))
	AssertSameSquares(t, nil, []chess.Square{})
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")
}

func TestAssertError_Success(t *testing.T) {
	AssertError(t, errors.New("test error"))
	AssertError(t, errors.New("test"), "expected error from %s", "operation")
}

func TestAssertTrue_Success(t *testing.T) {
	AssertTrue(t, true)
	AssertTrue(t, len("hello") == 5)
}

func TestAssertFalse_Success(t *testing.T) {
	AssertFalse(t, false)
	AssertFalse(t, len("hello") == 0)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"empty args", []interface{}{}, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format int", []interface{}{"value: %d", 42}, "value: 42"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
		{"non-string format", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestMustSquare(t *testing.T) {
	tests := []struct {
		name string
		want chess.Square
	}{
		{"a8", chess.Sq(0, 0)},
		{"h1", chess.Sq(7, 7)},
		{"e4", chess.Sq(4, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			AssertEqual(t, MustSquare(t, tt.name), tt.want)
		})
	}
}

func TestPlace(t *testing.T) {
	board := Place(t, map[string]chess.Cell{
		"e1": chess.W(chess.King),
		"e8": chess.B(chess.King),
	})

	AssertEqual(t, board.Get(MustSquare(t, "e1")), chess.W(chess.King))
	AssertEqual(t, board.Get(MustSquare(t, "e8")), chess.B(chess.King))
	AssertEqual(t, board.Count(chess.White, chess.King), 1)
	AssertEqual(t, board.Count(chess.Black, chess.King), 1)
}
