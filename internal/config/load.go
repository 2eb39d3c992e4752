package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Load reads a YAML configuration file over the defaults and validates the
// result. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data, path)
}

// Parse decodes YAML configuration data over the defaults. name is used in
// error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := NewConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = name
			return nil, parseErr
		}
		return nil, &errors.ParseError{Err: errors.ErrInvalidConfig, File: name, Got: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return cfg, nil
}
