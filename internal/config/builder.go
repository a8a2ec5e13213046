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

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithLogFile sets the log output writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithOutputFile sets the output writer.
func (b *ConfigBuilder) WithOutputFile(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithOutputFormat sets the CLI output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithMaxLineLength sets the maximum PGN line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithMovesPerLine sets how many full moves share a line of move text.
func (b *ConfigBuilder) WithMovesPerLine(n int) *ConfigBuilder {
	b.cfg.Output.MovesPerLine = n
	return b
}

// WithEnPassantSuffix enables or disables the " e.p." annotation.
func (b *ConfigBuilder) WithEnPassantSuffix(enabled bool) *ConfigBuilder {
	b.cfg.Output.EnPassantSuffix = enabled
	return b
}

// WithEvaluation enables or disables evaluation scores in snapshots.
func (b *ConfigBuilder) WithEvaluation(enabled bool) *ConfigBuilder {
	b.cfg.Evaluate = enabled
	return b
}

// WithWorkers sets the number of batch workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithPlayers sets the default White and Black tag values.
func (b *ConfigBuilder) WithPlayers(white, black string) *ConfigBuilder {
	b.cfg.Tags.White = white
	b.cfg.Tags.Black = black
	return b
}

// WithEvent sets the default Event and Site tag values.
func (b *ConfigBuilder) WithEvent(event, site string) *ConfigBuilder {
	b.cfg.Tags.Event = event
	b.cfg.Tags.Site = site
	return b
}
