// Package hashing provides Zobrist hashing and repeated-position detection.
package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

const numSquares = chess.BoardSize * chess.BoardSize

var (
	// pieceKeys is indexed [colour][piece][row*8+col].
	pieceKeys      [2][chess.NumPieceValues][numSquares]uint64
	blackToMoveKey uint64
)

func init() {
	// splitmix64 from a fixed seed, so hashes are stable between runs.
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for colour := range pieceKeys {
		for piece := range pieceKeys[colour] {
			for sq := range pieceKeys[colour][piece] {
				pieceKeys[colour][piece][sq] = next()
			}
		}
	}
	blackToMoveKey = next()
}

// ZobristHash returns the Zobrist hash of a position. Only piece placement
// and the side to move contribute.
func ZobristHash(board *chess.Board, toMove chess.Colour) uint64 {
	var hash uint64
	board.Each(func(sq chess.Square, cell chess.Cell) {
		if !cell.IsEmpty() {
			hash ^= pieceKeys[cell.Colour][cell.Piece][sq.Row*chess.BoardSize+sq.Col]
		}
	})
	if toMove == chess.Black {
		hash ^= blackToMoveKey
	}
	return hash
}

// PositionSignature identifies a position seen by a DuplicateDetector.
type PositionSignature struct {
	// Name is the label the position was first added under
	Name   string
	Board  chess.Board
	ToMove chess.Colour
}

// DuplicateDetector tracks seen positions.
type DuplicateDetector struct {
	// hashTable maps Zobrist hashes to the positions that produced them
	hashTable      map[uint64][]PositionSignature
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[uint64][]PositionSignature),
	}
}

// CheckAndAdd records a position under name. If the same position was
// added before, it returns the earlier name and true and records nothing.
func (d *DuplicateDetector) CheckAndAdd(name string, board *chess.Board, toMove chess.Colour) (string, bool) {
	hash := ZobristHash(board, toMove)

	// Boards are compared too, so hash collisions never count.
	for _, sig := range d.hashTable[hash] {
		if sig.ToMove == toMove && sig.Board == *board {
			d.duplicateCount++
			return sig.Name, true
		}
	}

	d.hashTable[hash] = append(d.hashTable[hash], PositionSignature{
		Name:   name,
		Board:  *board,
		ToMove: toMove,
	})
	return "", false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}
