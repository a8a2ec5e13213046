package config

import "strings"

// OutputFormat selects what the CLI prints for each processed game.
type OutputFormat int

const (
	FEN  OutputFormat = iota // Final position
	PGN                      // Full game with tags
	JSON                     // State snapshot
)

// ParseOutputFormat converts a format name such as "pgn" to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	switch strings.ToLower(name) {
	case "fen":
		return FEN, true
	case "pgn":
		return PGN, true
	case "json":
		return JSON, true
	}
	return FEN, false
}

// String returns the format name.
func (f OutputFormat) String() string {
	switch f {
	case PGN:
		return "pgn"
	case JSON:
		return "json"
	}
	return "fen"
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format is the CLI output format
	Format OutputFormat

	// MaxLineLength is the maximum line length for exported PGN movetext
	MaxLineLength uint

	// MovesPerLine is the number of full moves per line of the running
	// move text (0 keeps everything on one line)
	MovesPerLine int

	// EnPassantSuffix appends " e.p." to en-passant captures
	EnPassantSuffix bool

	// IndentJSON pretty-prints JSON snapshots
	IndentJSON bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          FEN,
		MaxLineLength:   80,
		MovesPerLine:    6,
		EnPassantSuffix: true,
		IndentJSON:      true,
	}
}
