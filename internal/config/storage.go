package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StorageConfig selects where game sessions are kept.
type StorageConfig struct {
	// Driver is "badger", "sqlite" or "memory"
	Driver string `yaml:"driver"`

	// Path is the badger directory or sqlite file; empty disables storage
	Path string `yaml:"path"`

	// GameID names the session to load and save
	GameID string `yaml:"game"`
}

// NewStorageConfig creates a StorageConfig with default values.
// Storage is off until a path is set.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Driver: "badger",
		GameID: "default",
	}
}

// Enabled returns true when a session store should be opened.
func (s *StorageConfig) Enabled() bool {
	return s.Path != "" || s.Driver == "memory"
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case "badger", "sqlite", "memory":
	default:
		return fmt.Errorf("storage driver %q: %w", s.Driver, errors.ErrInvalidConfig)
	}
	if s.Enabled() && s.GameID == "" {
		return fmt.Errorf("storage enabled without a game id: %w", errors.ErrInvalidConfig)
	}
	return nil
}
