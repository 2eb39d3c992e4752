package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// SuiteConfig holds settings for running position suites.
type SuiteConfig struct {
	// Workers is the number of positions evaluated in parallel
	Workers int `yaml:"workers"`

	// BufferSize is the work queue length
	BufferSize int `yaml:"buffer_size"`

	// FailFast stops the run after the first failing case
	FailFast bool `yaml:"fail_fast"`
}

// NewSuiteConfig creates a SuiteConfig with one worker per CPU.
func NewSuiteConfig() *SuiteConfig {
	return &SuiteConfig{
		Workers:    runtime.NumCPU(),
		BufferSize: 64,
	}
}

// Validate checks that the suite configuration is valid.
func (s *SuiteConfig) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("suite workers (%d) < 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.BufferSize < 1 {
		return fmt.Errorf("suite buffer size (%d) < 1: %w", s.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
