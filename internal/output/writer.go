package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/checkmate-go/internal/config"
)

// Source is a game that can be written out.
type Source interface {
	FEN() string
	Record() *Record
	Snapshot() *Snapshot
}

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (FEN, PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game Source) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for the configured output format.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	switch cfg.Output.Format {
	case config.PGN:
		return NewPGNWriter(w, cfg)
	case config.JSON:
		return NewJSONWriter(w, cfg)
	}
	return NewFENWriter(w)
}

// FENWriter writes the final position of each game as one FEN line.
type FENWriter struct {
	w io.Writer
}

// NewFENWriter creates a new FEN writer.
func NewFENWriter(w io.Writer) *FENWriter {
	return &FENWriter{w: w}
}

// WriteGame writes the game's current FEN.
func (fw *FENWriter) WriteGame(game Source) error {
	_, err := fmt.Fprintln(fw.w, game.FEN())
	return err
}

// Flush is a no-op; FEN lines are written immediately.
func (fw *FENWriter) Flush() error { return nil }

// Close is a no-op.
func (fw *FENWriter) Close() error { return nil }

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game in PGN format, separated from the previous one by
// a blank line.
func (pw *PGNWriter) WriteGame(game Source) error {
	if pw.written > 0 {
		if _, err := io.WriteString(pw.w, "\n"); err != nil {
			return err
		}
	}
	pw.written++
	return WritePGN(pw.w, game.Record(), int(pw.cfg.Output.MaxLineLength))
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes game snapshots in JSON format.
// It buffers snapshots and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w         io.Writer
	cfg       *config.Config
	snapshots []*Snapshot
	single    bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteGame buffers a snapshot for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(game Source) error {
	snap := game.Snapshot()
	if jw.single {
		return WriteJSON(jw.w, snap, jw.cfg.Output.IndentJSON)
	}
	jw.snapshots = append(jw.snapshots, snap)
	return nil
}

// Flush writes all buffered snapshots as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.snapshots) == 0 {
		return nil
	}

	err := WriteJSON(jw.w, &JSONOutput{Games: jw.snapshots}, jw.cfg.Output.IndentJSON)
	jw.snapshots = jw.snapshots[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
