// Package storage persists game sessions so that a game can be resumed
// across runs of the command-line tool. Two drivers are available: an
// embedded BadgerDB key-value store and an SQLite database.
package storage

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Driver names accepted by Open.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Snapshot is the stored form of a game.
type Snapshot struct {
	ID         string    `json:"id"`
	FEN        string    `json:"fen"`
	SideToMove string    `json:"side_to_move"`
	Moves      []string  `json:"moves"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store saves and loads game snapshots by id.
type Store interface {
	// Save inserts or replaces the snapshot stored under s.ID.
	Save(s Snapshot) error
	// Load returns the snapshot stored under id, or an error wrapping
	// errors.ErrGameNotFound.
	Load(id string) (Snapshot, error)
	// Delete removes the snapshot stored under id.
	Delete(id string) error
	// List returns the ids of all stored games in ascending order.
	List() ([]string, error)
	Close() error
}

// NewSnapshot captures the state of g under the given id.
func NewSnapshot(id string, g game.GameState) Snapshot {
	return Snapshot{
		ID:         id,
		FEN:        g.FEN(),
		SideToMove: colourName(g.SideToMove),
		Moves:      g.History(),
		Status:     g.LastStatus.Kind.String(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// Game rebuilds the game state held by the snapshot.
func (s Snapshot) Game() (game.GameState, error) {
	g, err := game.Restore(s.FEN, s.Moves)
	if err != nil {
		return game.GameState{}, errors.Wrapf(err, "game %q", s.ID)
	}
	if s.SideToMove != "" && s.SideToMove != colourName(g.SideToMove) {
		return game.GameState{}, &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Expected: fmt.Sprintf("side to move %s", colourName(g.SideToMove)),
			Got:      s.SideToMove,
		}
	}
	return g, nil
}

// Open opens a store with the named driver. For the badger and sqlite
// drivers path is a directory and a file respectively; the memory driver
// ignores it. A nil logger discards log output.
func Open(driver, path string, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var (
		store Store
		err   error
	)
	switch driver {
	case DriverBadger:
		store, err = OpenBadger(path)
	case DriverMemory:
		store, err = OpenMemory()
	case DriverSQLite:
		store, err = OpenSQLite(path)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown storage driver %q", driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", driver)
	}

	logger.Printf("opened %s store %s", driver, path)
	return store, nil
}

// validateID rejects ids that cannot be stored.
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "\x00\n") {
		return errors.Wrapf(errors.ErrInvalidGameID, "%q", id)
	}
	return nil
}

// colourName is the lower-case colour name used in snapshots.
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}
