// Package output formats position reports as text or JSON.
package output

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// PositionReport describes a position: its status for the side to move
// and the legal moves available.
type PositionReport struct {
	Name           string       `json:"name,omitempty"`
	FEN            string       `json:"fen"`
	SideToMove     string       `json:"side_to_move"`
	Status         string       `json:"status"`
	Winner         string       `json:"winner,omitempty"`
	InCheck        bool         `json:"in_check"`
	LegalMoveCount int          `json:"legal_move_count"`
	LegalMoves     []string     `json:"legal_moves,omitempty"`
	Square         string       `json:"square,omitempty"`
	Targets        []string     `json:"targets,omitempty"`
	History        []string     `json:"history,omitempty"`
	Perft          *PerftReport `json:"perft,omitempty"`
	Passed         *bool        `json:"passed,omitempty"`
	Failures       []string     `json:"failures,omitempty"`

	board  chess.Board
	toMove chess.Colour
}

// PerftReport holds a perft node count and, optionally, its per-move split.
type PerftReport struct {
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide,omitempty"`
}

// NewPositionReport evaluates board for the side to move.
func NewPositionReport(name string, board chess.Board, toMove chess.Colour) *PositionReport {
	status := engine.Evaluate(&board, toMove)
	moves := engine.AllLegalMoves(&board, toMove)

	r := &PositionReport{
		Name:           name,
		FEN:            engine.BoardToFEN(&board, toMove),
		SideToMove:     colourName(toMove),
		Status:         status.Kind.String(),
		InCheck:        engine.IsInCheck(&board, toMove),
		LegalMoveCount: len(moves),
		board:          board,
		toMove:         toMove,
	}
	if status.Kind == engine.Checkmate {
		r.Winner = colourName(status.Colour)
	}
	for _, m := range moves {
		r.LegalMoves = append(r.LegalMoves, m.String())
	}
	return r
}

// AddTargets records the legal destinations of the piece on sq.
func (r *PositionReport) AddTargets(sq chess.Square) error {
	targets, err := engine.LegalMoves(&r.board, sq)
	if err != nil {
		return err
	}
	r.Square = sq.String()
	r.Targets = make([]string, 0, len(targets))
	for _, to := range targets {
		r.Targets = append(r.Targets, to.String())
	}
	return nil
}

// AddPerft counts leaf nodes to depth. With divide set the count below
// each legal move is kept too.
func (r *PositionReport) AddPerft(depth int, divide bool) {
	p := &PerftReport{Depth: depth}
	if divide && depth > 0 {
		p.Divide = engine.Divide(&r.board, r.toMove, depth)
		for _, n := range p.Divide {
			p.Nodes += n
		}
	} else {
		p.Nodes = engine.Perft(&r.board, r.toMove, depth)
	}
	r.Perft = p
}

// SetResult marks the report as passed or failed with the given reasons.
func (r *PositionReport) SetResult(failures []string) {
	passed := len(failures) == 0
	r.Passed = &passed
	r.Failures = failures
}

// Board returns the evaluated position.
func (r *PositionReport) Board() chess.Board {
	return r.board
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
