package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/output"
	"github.com/lgbarn/checkmate-go/internal/testutil"
)

const italianFEN = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"

// runCLI runs the program on stdin and returns its exit code and output.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSplitArgsLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple args", "a b c", []string{"a", "b", "c"}},
		{"double quoted string", `"hello world" foo`, []string{"hello world", "foo"}},
		{"single quoted string", `'hello world' foo`, []string{"hello world", "foo"}},
		{"empty string", "", nil},
		{"tabs as separators", "a\tb\tc", []string{"a", "b", "c"}},
		{"quoted moves", `-m "e4 e5"`, []string{"-m", "e4 e5"}},
		{"empty quotes", `-white ""`, []string{"-white", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, splitArgsLine(tt.line), tt.want)
		})
	}
}

func TestExpandArgsFile(t *testing.T) {
	dir := t.TempDir()
	argsFile := writeFile(t, dir, "args.txt", `# output settings
-f pgn
-white "Bobby Fischer"

-s
`)

	got, err := expandArgsFile([]string{"-j", "2", "-A", argsFile, "game.pgn"})
	if err != nil {
		t.Fatalf("expandArgsFile() error = %v", err)
	}
	want := []string{"-j", "2", "-f", "pgn", "-white", "Bobby Fischer", "-s", "game.pgn"}
	testutil.AssertEqual(t, got, want)

	if _, err := expandArgsFile([]string{"-A"}); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expandArgsFile(-A) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := loadArgsFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("loadArgsFile() expected error for missing file")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				testutil.AssertEqual(t, cfg.Output.Format, config.FEN)
				testutil.AssertEqual(t, cfg.Verbosity, 1)
				testutil.AssertEqual(t, cfg.Output.EnPassantSuffix, true)
			},
		},
		{
			name: "json compact without evaluation",
			args: []string{"-f", "JSON", "-compact", "-noeval"},
			check: func(t *testing.T, cfg *config.Config) {
				testutil.AssertEqual(t, cfg.Output.Format, config.JSON)
				testutil.AssertEqual(t, cfg.Output.IndentJSON, false)
				testutil.AssertEqual(t, cfg.Evaluate, false)
			},
		},
		{
			name: "tags and verbosity",
			args: []string{"-white", "Alice", "-event", "Club", "-v", "-j", "3"},
			check: func(t *testing.T, cfg *config.Config) {
				testutil.AssertEqual(t, cfg.Tags.White, "Alice")
				testutil.AssertEqual(t, cfg.Tags.Event, "Club")
				testutil.AssertEqual(t, cfg.Tags.Black, "?")
				testutil.AssertEqual(t, cfg.Verbosity, 2)
				testutil.AssertEqual(t, cfg.Workers, 3)
			},
		},
		{
			name: "quiet wins over verbose",
			args: []string{"-s", "-v"},
			check: func(t *testing.T, cfg *config.Config) {
				testutil.AssertEqual(t, cfg.Verbosity, 0)
			},
		},
		{name: "unknown format", args: []string{"-f", "epd"}, wantErr: true},
		{name: "line too short", args: []string{"-w", "5"}, wantErr: true},
		{name: "negative line length", args: []string{"-w", "-1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var usageOut bytes.Buffer
			opts := newOptions(&usageOut)
			if err := opts.parse(tt.args); err != nil {
				t.Fatalf("parse() error = %v", err)
			}
			cfg := config.NewConfig()
			err := opts.applyFlags(cfg)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				return
			}
			if err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestRun_FENFromStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, "1. e4 e5 2. Nf3 Nc6 *\n\n1. d4 *\n", "-s")
	testutil.AssertEqual(t, code, exitOK)
	testutil.AssertEqual(t, stdout, italianFEN+"\n"+"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq - 0 1\n")
}

func TestRun_PGNOutputWithMoves(t *testing.T) {
	code, stdout, stderr := runCLI(t, "1. e4 e5 *", "-s", "-f", "pgn", "-white", "Alice", "-m", "Nf3 Nc6")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	testutil.AssertEqual(t, strings.Contains(stdout, `[White "Alice"]`), true)
	testutil.AssertEqual(t, strings.Contains(stdout, "1. e4 e5 2. Nf3 Nc6 *"), true)
}

func TestRun_JSONFromFiles(t *testing.T) {
	dir := t.TempDir()
	pgn := writeFile(t, dir, "mate.pgn", "1. f3 e5 2. g4 Qh4# 0-1\n")
	fen := writeFile(t, dir, "positions.fen", "# comment\n"+italianFEN+"\n\n4k3/8/8/8/8/8/8/4K3 w - - 0 1\n")

	code, stdout, stderr := runCLI(t, "", "-s", "-f", "json", "-noeval", pgn, fen)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	var got output.JSONOutput
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(got.Games) != 3 {
		t.Fatalf("games = %d, want 3", len(got.Games))
	}
	testutil.AssertEqual(t, got.Games[0].Result, "0-1")
	testutil.AssertEqual(t, got.Games[0].Checkmate, true)
	testutil.AssertEqual(t, got.Games[1].FEN, italianFEN)
	testutil.AssertEqual(t, got.Games[2].IsDraw, true)
	testutil.AssertEqual(t, got.Games[2].Result, "1/2-1/2")
	testutil.AssertEqual(t, got.Games[2].Scores == nil, true)
}

func TestEPDToFEN(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"operations dropped", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 bm e5; id \"open\";",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"clock operations", "4k3/8/8/8/8/8/8/4K2R w K - bm Rh8+; hmvc 12; fmvn 40;", "4k3/8/8/8/8/8/8/4K2R w K - 12 40"},
		{"bare position", "4k3/8/8/8/8/8/8/4K3 w - -", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"full FEN kept", italianFEN, italianFEN},
		{"too short", "4k3/8/8/8/8/8/8/4K3 w", "4k3/8/8/8/8/8/8/4K3 w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, epdToFEN(tt.line), tt.want)
		})
	}
}

func TestRun_EPDFile(t *testing.T) {
	dir := t.TempDir()
	epd := writeFile(t, dir, "tests.epd", "4k3/8/8/8/8/8/8/4K2R w K - bm Rh8+; hmvc 12; fmvn 40;\n")

	code, stdout, stderr := runCLI(t, "", "-s", epd)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	testutil.AssertEqual(t, stdout, "4k3/8/8/8/8/8/8/4K2R w K - 12 40\n")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.pgn", "1. e4 e5 2. Ke3 Nc6 3. d4 *\n\n1. d4 d5 *\n")

	code, stdout, stderr := runCLI(t, "", "-s", bad, filepath.Join(dir, "missing.pgn"))
	testutil.AssertEqual(t, code, exitGameErrors)
	testutil.AssertEqual(t, stdout, "rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2\n")
	testutil.AssertEqual(t, strings.Contains(stderr, "Ke3"), true)
	testutil.AssertEqual(t, strings.Contains(stderr, "missing.pgn"), true)

	code, _, stderr = runCLI(t, "1. e4 *", "-s", "-m", "Ke2 Ke7")
	testutil.AssertEqual(t, code, exitGameErrors)
	testutil.AssertEqual(t, strings.Contains(stderr, "Ke7"), true)
}

func TestRun_Usage(t *testing.T) {
	code, _, _ := runCLI(t, "", "-f", "xml")
	testutil.AssertEqual(t, code, exitUsage)

	code, _, _ = runCLI(t, "", "-nosuchflag")
	testutil.AssertEqual(t, code, exitUsage)

	code, stdout, _ := runCLI(t, "", "-version")
	testutil.AssertEqual(t, code, exitOK)
	testutil.AssertEqual(t, stdout, "checkmate version "+programVersion+"\n")

	code, _, stderr := runCLI(t, "", "-h")
	testutil.AssertEqual(t, code, exitOK)
	testutil.AssertEqual(t, strings.Contains(stderr, "Usage: checkmate"), true)
}

func TestRun_OutputAndLogFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.fen")
	logPath := filepath.Join(dir, "run.log")

	code, stdout, _ := runCLI(t, "1. e4 e5 2. Nf3 Nc6 *", "-o", out, "-l", logPath)
	testutil.AssertEqual(t, code, exitOK)
	testutil.AssertEqual(t, stdout, "")

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(data), italianFEN+"\n")

	logData, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, strings.Contains(string(logData), "1 game(s) written out of 1."), true)
}

func TestRun_SuppressDuplicates(t *testing.T) {
	pgn := "1. e4 e5 2. Nf3 Nc6 *\n\n1. Nf3 Nc6 2. e4 e5 *\n\n1. d4 *\n"

	code, stdout, stderr := runCLI(t, pgn, "-D")
	testutil.AssertEqual(t, code, exitOK)
	testutil.AssertEqual(t, strings.Count(stdout, "\n"), 2)
	testutil.AssertEqual(t, strings.Contains(stderr, "2 game(s) written, 1 duplicate(s) out of 3."), true)
}
