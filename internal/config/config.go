// Package config provides configuration for the chess-rules command.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int `yaml:"verbosity"` // 0=nothing, 1=summary, 2=running commentary

	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Suite   SuiteConfig   `yaml:"suite"`

	// Output streams
	OutputFile io.Writer `yaml:"-"`
	LogFile    io.Writer `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     *NewOutputConfig(),
		Storage:    *NewStorageConfig(),
		Suite:      *NewSuiteConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer reports are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer log output goes to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Suite.Validate()
}
