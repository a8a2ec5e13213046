// flags.go - Command-line flag definitions and configuration
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// options holds the parsed command line.
type options struct {
	fs *flag.FlagSet

	// Output options
	outputFile   string
	appendOutput bool
	format       string
	lineLength   int
	movesPerLine int
	noEPSuffix   bool
	noEval       bool
	compactJSON  bool

	// Header defaults
	event string
	site  string
	white string
	black string

	// Moves applied to every loaded game
	moves string

	// Duplicate detection
	suppressDuplicates bool

	// Logging
	logFile   string
	appendLog string
	quiet     bool
	verbose   bool

	// Performance
	workers int

	help    bool
	version bool

	inputs []string
}

// newOptions defines the flags on a fresh flag set writing usage to w.
func newOptions(w io.Writer) *options {
	o := &options{fs: flag.NewFlagSet("checkmate", flag.ContinueOnError)}
	fs := o.fs
	fs.SetOutput(w)

	fs.StringVar(&o.outputFile, "o", "", "Output file (default: stdout)")
	fs.BoolVar(&o.appendOutput, "a", false, "Append to output file instead of overwrite")
	fs.StringVar(&o.format, "f", "fen", "Output format: fen, pgn, json")
	fs.IntVar(&o.lineLength, "w", 80, "Maximum PGN line length")
	fs.IntVar(&o.movesPerLine, "movesperline", 6, "Move numbers per line of snapshot move text (0 = one line)")
	fs.BoolVar(&o.noEPSuffix, "noep", false, "Don't annotate en-passant captures with e.p.")
	fs.BoolVar(&o.noEval, "noeval", false, "Don't compute evaluation scores")
	fs.BoolVar(&o.compactJSON, "compact", false, "Write JSON without indentation")

	fs.StringVar(&o.event, "event", "", "Event tag for exported games")
	fs.StringVar(&o.site, "site", "", "Site tag for exported games")
	fs.StringVar(&o.white, "white", "", "White tag for exported games")
	fs.StringVar(&o.black, "black", "", "Black tag for exported games")

	fs.StringVar(&o.moves, "m", "", "SAN moves to play after loading each input, space separated")
	fs.BoolVar(&o.suppressDuplicates, "D", false, "Suppress games ending in the same position as an earlier game")

	fs.StringVar(&o.logFile, "l", "", "Write diagnostics to log file")
	fs.StringVar(&o.appendLog, "L", "", "Append diagnostics to log file")
	fs.BoolVar(&o.quiet, "s", false, "Silent mode (no diagnostics)")
	fs.BoolVar(&o.verbose, "v", false, "Log every move")

	fs.IntVar(&o.workers, "j", 0, "Number of worker goroutines (0 = number of CPUs)")

	fs.BoolVar(&o.help, "h", false, "Show help")
	fs.BoolVar(&o.version, "version", false, "Show version")
	// -A is expanded by expandArgsFile before parsing
	fs.String("A", "", "File containing command-line arguments (one per line, # for comments)")

	fs.Usage = func() { usage(fs) }
	return o
}

// parse parses args, expanding any -A argument file first.
func (o *options) parse(args []string) error {
	args, err := expandArgsFile(args)
	if err != nil {
		return err
	}
	if err := o.fs.Parse(args); err != nil {
		return err
	}
	o.inputs = o.fs.Args()
	return nil
}

// applyFlags applies command-line flags to the configuration.
func (o *options) applyFlags(cfg *config.Config) error {
	format, ok := config.ParseOutputFormat(o.format)
	if !ok {
		return fmt.Errorf("unknown output format %q: %w", o.format, errors.ErrInvalidConfig)
	}
	if o.lineLength < 0 {
		return fmt.Errorf("line length %d: %w", o.lineLength, errors.ErrInvalidConfig)
	}

	cfg.Output.Format = format
	cfg.Output.MaxLineLength = uint(o.lineLength)
	cfg.Output.MovesPerLine = o.movesPerLine
	cfg.Output.EnPassantSuffix = !o.noEPSuffix
	cfg.Output.IndentJSON = !o.compactJSON
	cfg.Evaluate = !o.noEval

	applyTagFlags(cfg.Tags, o)

	switch {
	case o.quiet:
		cfg.Verbosity = 0
	case o.verbose:
		cfg.Verbosity = 2
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	return cfg.Validate()
}

// applyTagFlags overrides the configured header defaults that were given.
func applyTagFlags(tags *config.TagConfig, o *options) {
	for _, f := range []struct {
		value string
		dst   *string
	}{
		{o.event, &tags.Event},
		{o.site, &tags.Site},
		{o.white, &tags.White},
		{o.black, &tags.Black},
	} {
		if f.value != "" {
			*f.dst = f.value
		}
	}
}

// expandArgsFile replaces "-A file" with the arguments read from file.
func expandArgsFile(args []string) ([]string, error) {
	for i := 0; i < len(args); i++ {
		if args[i] != "-A" && args[i] != "--A" {
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("-A needs a file name: %w", errors.ErrInvalidConfig)
		}
		fileArgs, err := loadArgsFile(args[i+1])
		if err != nil {
			return nil, err
		}
		expanded := append(append(append([]string{}, args[:i]...), fileArgs...), args[i+2:]...)
		return expanded, nil
	}
	return args, nil
}

// loadArgsFile reads arguments from a file, one or more per line. Blank
// lines and lines starting with # are ignored.
func loadArgsFile(filename string) ([]string, error) {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var args []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, splitArgsLine(line)...)
	}
	return args, scanner.Err()
}

// splitArgsLine splits a line on whitespace, keeping single or double
// quoted sections together.
func splitArgsLine(line string) []string {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Usage: checkmate [options] [input-files...]\n\n")
	fmt.Fprintf(w, "Replays chess games from FEN or PGN and prints the resulting positions.\n")
	fmt.Fprintf(w, "Files ending in .fen hold one position per line; other files and stdin are PGN.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nOutput formats (-f):\n")
	fmt.Fprintf(w, "  fen    Final position of each game, one per line (default)\n")
	fmt.Fprintf(w, "  pgn    Seven tag roster and movetext with the computed result\n")
	fmt.Fprintf(w, "  json   State snapshot of each game\n")
}
