// checkmate replays chess games from FEN or PGN input and prints the
// resulting positions as FEN, PGN or JSON state snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/game"
	"github.com/lgbarn/checkmate-go/internal/hashing"
	"github.com/lgbarn/checkmate-go/internal/output"
	"github.com/lgbarn/checkmate-go/internal/worker"
)

const programVersion = "0.1.0"

// Exit codes
const (
	exitOK = iota
	exitGameErrors
	exitUsage
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the whole program minus process setup, so tests can drive it.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := newOptions(stderr)
	if err := opts.parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts.help {
		opts.fs.Usage()
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "checkmate version %s\n", programVersion)
		return exitOK
	}

	cfg := config.NewConfig()
	cfg.OutputFile = stdout
	cfg.LogFile = stderr
	if err := opts.applyFlags(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	files, err := setupFiles(cfg, opts)
	defer closeFiles(files)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	jobs, failed := collectJobs(opts.inputs, stdin, cfg, stderr)
	results, _ := worker.Run(ctx, worker.Analyse(cfg), jobs, worker.WithWorkers(cfg.Workers))

	var detector *hashing.DuplicateDetector
	if opts.suppressDuplicates {
		detector = hashing.NewDuplicateDetector(false)
	}

	writer := output.NewGameWriter(cfg.OutputFile, cfg)
	moves := strings.Fields(opts.moves)
	written := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", res.Err)
			failed++
			continue
		}
		if err := playMoves(ctx, res.Game, moves); err != nil {
			fmt.Fprintf(stderr, "Error: %s game %d: %v\n", res.Name, res.Index+1, err)
			failed++
			continue
		}
		if detector != nil && detector.CheckAndAdd(res.Game.Board(), res.Game.Cursor()) {
			cfg.Logf(2, "%s game %d duplicates an earlier game", res.Name, res.Index+1)
			continue
		}
		if err := writer.WriteGame(res.Game); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			return exitGameErrors
		}
		written++
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitGameErrors
	}

	reportStatistics(cfg, detector, written, len(jobs))
	if failed > 0 {
		return exitGameErrors
	}
	return exitOK
}

// reportStatistics logs the final game counts.
func reportStatistics(cfg *config.Config, detector *hashing.DuplicateDetector, written, total int) {
	if detector != nil {
		cfg.Logf(1, "%d game(s) written, %d duplicate(s) out of %d.", written, detector.DuplicateCount(), total)
		return
	}
	cfg.Logf(1, "%d game(s) written out of %d.", written, total)
}

// playMoves plays SAN moves on g in order, stopping at the first failure.
func playMoves(ctx context.Context, g *game.Game, moves []string) error {
	for _, san := range moves {
		if _, err := g.PlaySAN(ctx, san); err != nil {
			return err
		}
	}
	return nil
}

// setupFiles opens the output and log files named by the flags. The
// returned files must be closed by the caller, even on error.
func setupFiles(cfg *config.Config, opts *options) ([]*os.File, error) {
	var files []*os.File

	open := func(name string, appendMode bool) (*os.File, error) {
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if appendMode {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(name, flags, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created files
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", name)
		}
		files = append(files, f)
		return f, nil
	}

	if opts.outputFile != "" {
		f, err := open(opts.outputFile, opts.appendOutput)
		if err != nil {
			return files, err
		}
		cfg.OutputFile = f
	}

	switch {
	case opts.appendLog != "":
		f, err := open(opts.appendLog, true)
		if err != nil {
			return files, err
		}
		cfg.LogFile = f
	case opts.logFile != "":
		f, err := open(opts.logFile, false)
		if err != nil {
			return files, err
		}
		cfg.LogFile = f
	}
	return files, nil
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		f.Close() //nolint:errcheck,gosec // G104: cleanup on exit
	}
}
