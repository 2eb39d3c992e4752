package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputReport writes a report in text form.
func OutputReport(r *PositionReport, cfg *config.OutputConfig, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.MaxLineLength))

	if r.Name != "" {
		ow.WriteNoSpace(fmt.Sprintf("[%s]", r.Name))
		ow.NewLine()
	}
	if cfg.ShowBoard {
		board := r.Board()
		writeDiagram(w, &board)
	}

	ow.WriteNoSpace("FEN: " + r.FEN)
	ow.NewLine()
	ow.WriteNoSpace(statusLine(r))
	ow.NewLine()

	if len(r.History) > 0 {
		ow.WriteNoSpace("History:")
		for _, m := range r.History {
			ow.Write(m)
		}
		ow.NewLine()
	}

	if r.Square != "" {
		ow.WriteNoSpace(fmt.Sprintf("Targets from %s (%d):", r.Square, len(r.Targets)))
		for _, sq := range r.Targets {
			ow.Write(sq)
		}
		ow.NewLine()
	} else if cfg.ListMoves {
		ow.WriteNoSpace(fmt.Sprintf("Legal moves (%d):", r.LegalMoveCount))
		for _, m := range r.LegalMoves {
			ow.Write(m)
		}
		ow.NewLine()
	}

	if r.Perft != nil {
		writePerft(ow, r.Perft)
	}

	if r.Passed != nil {
		if *r.Passed {
			ow.WriteNoSpace("Result: PASS")
			ow.NewLine()
		} else {
			ow.WriteNoSpace("Result: FAIL")
			ow.NewLine()
			for _, failure := range r.Failures {
				ow.WriteNoSpace("  - " + failure)
				ow.NewLine()
			}
		}
	}
}

// statusLine summarises the status in one sentence.
func statusLine(r *PositionReport) string {
	switch r.Status {
	case "checkmate":
		return fmt.Sprintf("Status: checkmate, %s wins", r.Winner)
	case "stalemate":
		return "Status: stalemate"
	case "check":
		return fmt.Sprintf("Status: %s to move, in check", r.SideToMove)
	}
	return fmt.Sprintf("Status: %s to move", r.SideToMove)
}

func writePerft(ow *OutputWriter, p *PerftReport) {
	ow.WriteNoSpace(fmt.Sprintf("Perft(%d): %d", p.Depth, p.Nodes))
	ow.NewLine()
	if len(p.Divide) == 0 {
		return
	}
	moves := make([]string, 0, len(p.Divide))
	for m := range p.Divide {
		moves = append(moves, m)
	}
	slices.Sort(moves)
	for _, m := range moves {
		ow.WriteNoSpace(fmt.Sprintf("  %s: %d", m, p.Divide[m]))
		ow.NewLine()
	}
}

// writeDiagram draws the board with rank 8 at the top.
func writeDiagram(w io.Writer, board *chess.Board) {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte(chess.RankBase + chess.BoardSize - 1 - row))
		sb.WriteByte(' ')
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(board[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < chess.BoardSize; col++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte(chess.ColBase + col))
	}
	sb.WriteByte('\n')
	fmt.Fprint(w, sb.String())
}
