// Package game tracks a single game of chess: the current position, the
// side to move, the moves played so far and the status after the last move.
// Every transition returns a new GameState and leaves the receiver untouched.
package game

import (
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// GameState is the state of a game between moves.
type GameState struct {
	Board      chess.Board
	SideToMove chess.Colour
	LastStatus engine.GameStatus
	Moves      []chess.Move
}

// New returns a game at the standard starting position with White to move.
func New() GameState {
	return newState(chess.InitialBoard(), chess.White)
}

// FromFEN returns a game starting from the position described by fen.
// The status is evaluated immediately, so a FEN describing a finished
// position yields a finished game.
func FromFEN(fen string) (GameState, error) {
	board, toMove, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return GameState{}, err
	}
	return newState(board, toMove), nil
}

// Restore rebuilds a saved game from its current position and the
// coordinate strings of the moves that led to it. The moves are recorded as
// history only; they are not replayed.
func Restore(fen string, history []string) (GameState, error) {
	g, err := FromFEN(fen)
	if err != nil {
		return GameState{}, err
	}
	for i, text := range history {
		m, ok := chess.ParseMove(text)
		if !ok {
			return GameState{}, &errors.MoveError{
				Err: errors.Wrapf(errors.ErrInvalidSquare, "cannot parse %q", text),
				Ply: i + 1,
			}
		}
		g.Moves = append(g.Moves, m)
	}
	return g, nil
}

// History returns the moves played as coordinate strings.
func (g GameState) History() []string {
	history := make([]string, len(g.Moves))
	for i, m := range g.Moves {
		history[i] = m.String()
	}
	return history
}

func newState(board chess.Board, toMove chess.Colour) GameState {
	return GameState{
		Board:      board,
		SideToMove: toMove,
		LastStatus: engine.Evaluate(&board, toMove),
	}
}

// Ply returns the number of half-moves played.
func (g GameState) Ply() int {
	return len(g.Moves)
}

// IsOver returns true once the game has reached checkmate or stalemate.
func (g GameState) IsOver() bool {
	return g.LastStatus.IsTerminal()
}

// FEN returns the current position as a FEN string.
func (g GameState) FEN() string {
	return engine.BoardToFEN(&g.Board, g.SideToMove)
}

// Select returns the legal destinations of the piece on sq. The piece must
// belong to the side to move.
func (g GameState) Select(sq chess.Square) ([]chess.Square, error) {
	if err := g.checkSource(sq); err != nil {
		return nil, err
	}
	return engine.LegalMoves(&g.Board, sq)
}

// Play moves the piece on from to to and returns the resulting state.
// The move must be legal for the side to move.
func (g GameState) Play(from, to chess.Square) (GameState, error) {
	if err := g.checkSource(from); err != nil {
		return g, err
	}

	legal, err := engine.LegalMoves(&g.Board, from)
	if err != nil {
		return g, err
	}
	if !slices.Contains(legal, to) {
		return g, &errors.MoveError{Err: errors.ErrIllegalMove, Ply: g.Ply() + 1, From: from.String(), To: to.String()}
	}

	board, err := engine.ApplyMove(g.Board, from, to)
	if err != nil {
		return g, err
	}

	moves := make([]chess.Move, len(g.Moves), len(g.Moves)+1)
	copy(moves, g.Moves)
	moves = append(moves, chess.Move{From: from, To: to})

	next := newState(board, g.SideToMove.Opposite())
	next.Moves = moves
	return next, nil
}

// PlayMoves plays a whitespace-separated list of coordinate moves such as
// "e2e4 e7e5". It stops at the first failing move and returns the state
// reached before it together with the error.
func (g GameState) PlayMoves(text string) (GameState, error) {
	for _, field := range strings.Fields(text) {
		m, ok := chess.ParseMove(field)
		if !ok {
			return g, &errors.MoveError{
				Err: errors.Wrapf(errors.ErrInvalidSquare, "cannot parse %q", field),
				Ply: g.Ply() + 1,
			}
		}
		next, err := g.Play(m.From, m.To)
		if err != nil {
			return g, err
		}
		g = next
	}
	return g, nil
}

// checkSource validates that sq can be moved from in the current state.
func (g GameState) checkSource(sq chess.Square) error {
	if g.IsOver() {
		return g.sourceError(errors.ErrGameOver, sq)
	}
	if !sq.Valid() {
		return g.sourceError(errors.ErrOutOfBounds, sq)
	}
	cell := g.Board.Get(sq)
	if cell.IsEmpty() {
		return g.sourceError(errors.ErrEmptySquare, sq)
	}
	if !cell.Is(g.SideToMove) {
		return g.sourceError(errors.ErrWrongSide, sq)
	}
	return nil
}

// sourceError attaches the next ply and the source square to err.
func (g GameState) sourceError(err error, sq chess.Square) error {
	return &errors.MoveError{Err: err, Ply: g.Ply() + 1, From: sq.String()}
}
