package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// NewConfigBuilderFrom starts from an existing configuration, such as one
// returned by Load. The builder modifies cfg in place.
func NewConfigBuilderFrom(cfg *Config) *ConfigBuilder {
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithJSONOutput switches between JSON and text output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Output.Format = JSON
	} else {
		b.cfg.Output.Format = Text
	}
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// ShowBoard controls whether text reports include a board diagram.
func (b *ConfigBuilder) ShowBoard(show bool) *ConfigBuilder {
	b.cfg.Output.ShowBoard = show
	return b
}

// ListMoves controls whether reports include every legal move.
func (b *ConfigBuilder) ListMoves(list bool) *ConfigBuilder {
	b.cfg.Output.ListMoves = list
	return b
}

// WithStorage sets the session store driver and location.
func (b *ConfigBuilder) WithStorage(driver, path string) *ConfigBuilder {
	b.cfg.Storage.Driver = driver
	b.cfg.Storage.Path = path
	return b
}

// WithGameID sets the stored session to use.
func (b *ConfigBuilder) WithGameID(id string) *ConfigBuilder {
	b.cfg.Storage.GameID = id
	return b
}

// WithWorkers sets the number of suite workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Suite.Workers = n
	return b
}

// WithFailFast stops suite runs at the first failure.
func (b *ConfigBuilder) WithFailFast(enabled bool) *ConfigBuilder {
	b.cfg.Suite.FailFast = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
