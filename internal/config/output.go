package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// OutputFormat selects how position reports are written.
type OutputFormat int

const (
	Text OutputFormat = iota // Human-readable text
	JSON                     // One JSON document
)

// String returns the name used for the format in configuration files.
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat converts a format name to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return Text, fmt.Errorf("output format %q: %w", name, errors.ErrInvalidConfig)
}

// UnmarshalYAML decodes a format name.
func (f *OutputFormat) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	format, err := ParseOutputFormat(name)
	if err != nil {
		return &errors.ParseError{Err: errors.ErrInvalidConfig, Line: value.Line, Expected: "text or json", Got: name}
	}
	*f = format
	return nil
}

// MarshalYAML encodes the format by name.
func (f OutputFormat) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format selects text or JSON reports
	Format OutputFormat `yaml:"format"`

	// MaxLineLength is the maximum line length for move lists in text output
	MaxLineLength uint `yaml:"max_line_length"`

	// ShowBoard includes a board diagram in text output
	ShowBoard bool `yaml:"show_board"`

	// ListMoves includes every legal move in the report
	ListMoves bool `yaml:"list_moves"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        Text,
		MaxLineLength: 80,
		ShowBoard:     true,
		ListMoves:     true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.Format != Text && o.Format != JSON {
		return fmt.Errorf("output format %d: %w", int(o.Format), errors.ErrInvalidConfig)
	}
	if o.MaxLineLength != 0 && o.MaxLineLength < 20 {
		return fmt.Errorf("max line length %d is below 20: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
