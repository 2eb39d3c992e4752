// Package engine provides chess move generation, legality checking and
// game-end detection over a chess.Board.
package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
// Castling rights are not tracked, so the field is always "-".
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// NewBoardFromFEN creates a board and side to move from a FEN string.
// Only the piece placement and side-to-move fields are used; castling,
// en passant and clock fields are accepted and ignored. A missing
// side-to-move field means White.
func NewBoardFromFEN(fen string) (chess.Board, chess.Colour, error) {
	var board chess.Board

	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return board, chess.White, &errors.ParseError{Err: errors.ErrInvalidFEN, Expected: "piece placement", Got: "empty string"}
	}

	if err := parsePiecePositions(&board, parts[0]); err != nil {
		return chess.Board{}, chess.White, err
	}

	toMove, err := parseSideToMove(parts)
	if err != nil {
		return chess.Board{}, chess.White, err
	}

	return board, toMove, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Expected: fmt.Sprintf("%d ranks", chess.BoardSize),
			Got:      fmt.Sprintf("%d", len(ranks)),
		}
	}

	// FEN lists rank 8 first, which is row 0.
	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case c > unicode.MaxASCII:
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Got: fmt.Sprintf("piece character %q", c)}
			default:
				piece := chess.PieceFromLetter(byte(c))
				if piece == chess.NoPiece {
					return &errors.ParseError{Err: errors.ErrInvalidFEN, Got: fmt.Sprintf("piece character %q", c)}
				}
				if col >= chess.BoardSize {
					return &errors.ParseError{Err: errors.ErrInvalidFEN, Got: fmt.Sprintf("rank %q too long", rank)}
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				board[row][col] = chess.MakeCell(colour, piece)
				col++
			}
		}
		if col != chess.BoardSize {
			return &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				Expected: fmt.Sprintf("%d files", chess.BoardSize),
				Got:      fmt.Sprintf("%d in rank %q", col, rank),
			}
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, &errors.ParseError{Err: errors.ErrInvalidFEN, Expected: "w or b", Got: parts[1]}
	}
}

// BoardToFEN converts a board and side to move to a FEN string.
func BoardToFEN(board *chess.Board, toMove chess.Colour) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			cell := board[row][col]
			if cell.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(cell.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}
