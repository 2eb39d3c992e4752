package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1"

func reportFromFEN(t *testing.T, name, fen string) *PositionReport {
	t.Helper()
	board, toMove, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return NewPositionReport(name, board, toMove)
}

func TestNewPositionReport(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		wantStatus string
		wantWinner string
		wantCheck  bool
		wantCount  int
	}{
		{"initial", engine.InitialFEN, "in_progress", "", false, 20},
		{"fools mate", foolsMateFEN, "checkmate", "black", true, 0},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "stalemate", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reportFromFEN(t, tt.name, tt.fen)
			testutil.AssertEqual(t, r.Status, tt.wantStatus)
			testutil.AssertEqual(t, r.Winner, tt.wantWinner)
			testutil.AssertEqual(t, r.InCheck, tt.wantCheck)
			testutil.AssertEqual(t, r.LegalMoveCount, tt.wantCount)
			testutil.AssertEqual(t, len(r.LegalMoves), tt.wantCount)
			testutil.AssertEqual(t, r.FEN, tt.fen)
		})
	}
}

func TestPositionReport_AddTargets(t *testing.T) {
	r := NewPositionReport("", chess.InitialBoard(), chess.White)

	if err := r.AddTargets(testutil.MustSquare(t, "e2")); err != nil {
		t.Fatalf("AddTargets(e2) error = %v", err)
	}
	testutil.AssertEqual(t, r.Square, "e2")
	got := slices.Clone(r.Targets)
	slices.Sort(got)
	if diff := cmp.Diff([]string{"e3", "e4"}, got); diff != "" {
		t.Errorf("Targets mismatch (-want +got):\n%s", diff)
	}

	err := r.AddTargets(testutil.MustSquare(t, "e4"))
	if !errors.Is(err, chesserrors.ErrEmptySquare) {
		t.Errorf("AddTargets(e4) error = %v, want ErrEmptySquare", err)
	}
}

func TestPositionReport_AddPerft(t *testing.T) {
	r := NewPositionReport("", chess.InitialBoard(), chess.White)

	r.AddPerft(2, false)
	testutil.AssertEqual(t, r.Perft.Nodes, uint64(400))
	testutil.AssertEqual(t, len(r.Perft.Divide), 0)

	r.AddPerft(2, true)
	testutil.AssertEqual(t, r.Perft.Nodes, uint64(400))
	testutil.AssertEqual(t, len(r.Perft.Divide), 20)
	testutil.AssertEqual(t, r.Perft.Divide["g1f3"], uint64(20))

	r.AddPerft(0, true)
	testutil.AssertEqual(t, r.Perft.Nodes, uint64(1))
}

func TestPositionReport_SetResult(t *testing.T) {
	r := NewPositionReport("", chess.InitialBoard(), chess.White)

	r.SetResult(nil)
	testutil.AssertTrue(t, r.Passed != nil && *r.Passed, "empty failures should pass")

	r.SetResult([]string{"status: got in_progress, want check"})
	testutil.AssertTrue(t, r.Passed != nil && !*r.Passed, "failures should fail")
	testutil.AssertEqual(t, len(r.Failures), 1)
}

// TestTextWriter_WriteReport verifies the text layout
func TestTextWriter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfig()

	w := NewTextWriter(&buf, cfg)
	r := NewPositionReport("start", chess.InitialBoard(), chess.White)
	if err := w.WriteReport(r); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"[start]\n",
		"8  r n b q k b n r\n",
		"1  R N B Q K B N R\n",
		"   a b c d e f g h\n",
		"FEN: " + engine.InitialFEN + "\n",
		"Status: white to move\n",
		"Legal moves (20):",
		"g1f3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextWriter_Checkmate(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().ShowBoard(false).Build()

	w := NewTextWriter(&buf, cfg)
	if err := w.WriteReport(reportFromFEN(t, "", foolsMateFEN)); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Status: checkmate, black wins") {
		t.Errorf("missing checkmate status:\n%s", out)
	}
	if strings.Contains(out, "8  ") {
		t.Errorf("board diagram printed with ShowBoard off:\n%s", out)
	}
}

// TestTextWriter_LineLength verifies move lists wrap at the line limit
func TestTextWriter_LineLength(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().ShowBoard(false).WithMaxLineLength(30).Build()

	w := NewTextWriter(&buf, cfg)
	if err := w.WriteReport(NewPositionReport("", chess.InitialBoard(), chess.White)); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 5 {
		t.Fatalf("expected the move list to wrap, got %d lines:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "FEN:") {
			continue
		}
		if len(line) > 30 {
			t.Errorf("line %q is %d characters, want at most 30", line, len(line))
		}
	}
}

func TestTextWriter_TargetsPerftAndResult(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().ShowBoard(false).Build()

	r := NewPositionReport("opening", chess.InitialBoard(), chess.White)
	if err := r.AddTargets(testutil.MustSquare(t, "b1")); err != nil {
		t.Fatal(err)
	}
	r.AddPerft(1, true)
	r.SetResult([]string{"legal_moves: got 20, want 21"})

	w := NewTextWriter(&buf, cfg)
	if err := w.WriteReport(r); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteReport(r); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Targets from b1 (2):",
		"Perft(1): 20\n",
		"  a2a3: 1\n",
		"Result: FAIL\n",
		"  - legal_moves: got 20, want 21\n",
		"\n\n[opening]\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Legal moves") {
		t.Error("targets should replace the full move list")
	}
}

// TestJSONWriter_Batch verifies reports are written as one document on Close
func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithJSONOutput(true).Build()

	w := NewWriter(&buf, cfg)
	if _, ok := w.(*JSONWriter); !ok {
		t.Fatalf("NewWriter returned %T, want *JSONWriter", w)
	}
	if err := w.WriteReport(NewPositionReport("start", chess.InitialBoard(), chess.White)); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteReport(reportFromFEN(t, "mate", foolsMateFEN)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatal("batch writer wrote before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var got struct {
		Positions []struct {
			Name           string   `json:"name"`
			Status         string   `json:"status"`
			Winner         string   `json:"winner"`
			LegalMoveCount int      `json:"legal_move_count"`
			LegalMoves     []string `json:"legal_moves"`
		} `json:"positions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got.Positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(got.Positions))
	}
	testutil.AssertEqual(t, got.Positions[0].Name, "start")
	testutil.AssertEqual(t, got.Positions[0].LegalMoveCount, 20)
	testutil.AssertEqual(t, len(got.Positions[0].LegalMoves), 20)
	testutil.AssertEqual(t, got.Positions[1].Status, "checkmate")
	testutil.AssertEqual(t, got.Positions[1].Winner, "black")

	// A second Close has nothing left to write.
	buf.Reset()
	if err := w.Close(); err != nil || buf.Len() != 0 {
		t.Errorf("second Close wrote %q, err %v", buf.String(), err)
	}
}

func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithJSONOutput(true).ListMoves(false).Build()

	w := NewJSONWriterSingle(&buf, cfg)
	r := NewPositionReport("start", chess.InitialBoard(), chess.White)
	for i := 0; i < 2; i++ {
		if err := w.WriteReport(r); err != nil {
			t.Fatal(err)
		}
	}

	dec := json.NewDecoder(&buf)
	for i := 0; i < 2; i++ {
		var got map[string]interface{}
		if err := dec.Decode(&got); err != nil {
			t.Fatalf("decode report %d: %v", i, err)
		}
		if _, ok := got["legal_moves"]; ok {
			t.Error("legal_moves present with ListMoves off")
		}
		testutil.AssertEqual(t, got["legal_move_count"], float64(20))
	}
	testutil.AssertEqual(t, len(r.LegalMoves), 20, "report itself must not be trimmed")
}

func TestNewWriter_Text(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, config.NewConfig())
	if _, ok := w.(*TextWriter); !ok {
		t.Errorf("NewWriter returned %T, want *TextWriter", w)
	}
	testutil.AssertNoError(t, w.Flush())
	testutil.AssertNoError(t, w.Close())
}
