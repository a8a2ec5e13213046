// Package output provides game output formatting in various notations.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
)

// Record is a game ready for PGN export.
type Record struct {
	Tags       chess.Tags
	Moves      []string // SAN of each half-move in order
	FirstMove  int      // Full-move number of the first half-move
	BlackFirst bool     // The first half-move was Black's
	Result     string
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator or a line break as needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first error returned by the underlying writer.
func (o *OutputWriter) Err() error {
	return o.err
}

// WritePGN writes rec as a PGN game: the seven tag roster (with "?" for
// missing values), any other tags, a blank line and the wrapped movetext
// ending in the result.
func WritePGN(w io.Writer, rec *Record, maxLineLength int) error {
	result := rec.Result
	if result == "" {
		result = "*"
	}

	tags := chess.Tags{}
	for name, value := range rec.Tags {
		tags.Set(name, value)
	}
	for _, name := range chess.SevenTagRoster {
		if tags.Get(name) == "" {
			tags.Set(name, "?")
		}
	}
	tags.Set("Result", result)

	var sb strings.Builder
	for _, name := range tags.Ordered() {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", name, escapeTagValue(tags.Get(name)))
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	ow := NewOutputWriter(w, maxLineLength)
	forEachNumberedMove(rec, func(number string, san string) {
		if number != "" {
			ow.Write(number)
		}
		ow.Write(san)
	})
	ow.Write(result)
	ow.NewLine()
	return ow.Err()
}

// FormatMoveText renders the running move text of rec, breaking the line
// after every movesPerLine full moves (0 keeps a single line).
func FormatMoveText(rec *Record, movesPerLine int) string {
	var sb strings.Builder
	numbers := 0
	forEachNumberedMove(rec, func(number string, san string) {
		if number != "" {
			if numbers > 0 {
				if movesPerLine > 0 && numbers%movesPerLine == 0 {
					sb.WriteString("\n")
				} else {
					sb.WriteString(" ")
				}
			}
			numbers++
			sb.WriteString(number)
		}
		sb.WriteString(" ")
		sb.WriteString(san)
	})
	return sb.String()
}

// forEachNumberedMove calls fn for each half-move with the move number that
// precedes it ("12." for White, "12..." for a leading Black move, "" otherwise).
func forEachNumberedMove(rec *Record, fn func(number, san string)) {
	moveNum := rec.FirstMove
	if moveNum < 1 {
		moveNum = 1
	}
	isWhite := !rec.BlackFirst

	for i, san := range rec.Moves {
		var number string
		switch {
		case isWhite:
			number = fmt.Sprintf("%d.", moveNum)
		case i == 0:
			number = fmt.Sprintf("%d...", moveNum)
		}
		fn(number, san)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
