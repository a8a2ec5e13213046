// input.go - Turning input files into worker jobs
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/parser"
	"github.com/lgbarn/checkmate-go/internal/worker"
)

// collectJobs reads every input and returns one job per game or position,
// numbered in input order, and the number of inputs that could not be read.
// With no inputs, PGN is read from stdin.
func collectJobs(inputs []string, stdin io.Reader, cfg *config.Config, stderr io.Writer) ([]worker.Job, int) {
	var jobs []worker.Job
	failed := 0

	add := func(name string, found []worker.Job, err error) {
		for _, job := range found {
			job.Index = len(jobs)
			job.Name = name
			jobs = append(jobs, job)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error reading %s: %v\n", name, err)
			failed++
		}
	}

	if len(inputs) == 0 {
		found, err := readPGN(stdin, cfg)
		add("stdin", found, err)
		return jobs, failed
	}

	for _, name := range inputs {
		file, err := os.Open(name) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			add(name, nil, err)
			continue
		}
		var found []worker.Job
		if isFENFile(name) {
			found, err = readFEN(file, isEPDFile(name))
		} else {
			found, err = readPGN(file, cfg)
		}
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		add(name, found, err)
		cfg.Logf(1, "Read %d game(s) from %s", len(found), name)
	}
	return jobs, failed
}

func isFENFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".fen" || ext == ".epd"
}

func isEPDFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".epd")
}

// readPGN returns one job per game. Games before a syntax error are kept.
func readPGN(r io.Reader, cfg *config.Config) ([]worker.Job, error) {
	games, err := parser.NewParser(r, cfg).ParseAllGames()
	jobs := make([]worker.Job, len(games))
	for i, g := range games {
		jobs[i] = worker.Job{Parsed: g}
	}
	return jobs, err
}

// readFEN returns one job per non-blank line; lines starting with # are
// comments. EPD lines are converted to FEN first.
func readFEN(r io.Reader, epd bool) ([]worker.Job, error) {
	var jobs []worker.Job
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if epd {
			line = epdToFEN(line)
		}
		jobs = append(jobs, worker.Job{Text: line})
	}
	return jobs, scanner.Err()
}

// epdToFEN keeps the four position fields of an EPD record and takes the
// clocks from its hmvc and fmvn operations, defaulting to "0 1". A line that
// already ends in two numeric clock fields is returned unchanged.
func epdToFEN(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return line
	}
	if len(fields) == 6 && isNumber(fields[4]) && isNumber(fields[5]) {
		return line
	}

	halfmove, fullmove := "0", "1"
	for _, op := range strings.Split(strings.Join(fields[4:], " "), ";") {
		parts := strings.Fields(op)
		if len(parts) != 2 || !isNumber(parts[1]) {
			continue
		}
		switch parts[0] {
		case "hmvc":
			halfmove = parts[1]
		case "fmvn":
			fullmove = parts[1]
		}
	}
	return strings.Join(append(fields[:4:4], halfmove, fullmove), " ")
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
