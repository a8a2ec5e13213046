package testutil

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/game"
	"github.com/lgbarn/checkmate-go/internal/parser"
)

// QuietConfig returns the default config with logging discarded.
func QuietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	return cfg
}

// MustParseGames parses every game in pgn. It calls t.Fatal on a parse
// error or when no game is found.
func MustParseGames(t testing.TB, pgn string) []*parser.Game {
	t.Helper()
	games, err := parser.NewParser(strings.NewReader(pgn), QuietConfig()).ParseAllGames()
	if err != nil {
		t.Fatalf("ParseAllGames() error = %v\n%s", err, pgn)
	}
	if len(games) == 0 {
		t.Fatalf("no games in PGN:\n%s", pgn)
	}
	return games
}

// MustLoadPGN returns a game with pgn loaded.
func MustLoadPGN(t testing.TB, pgn string) *game.Game {
	t.Helper()
	g := game.New(QuietConfig())
	if _, err := g.LoadPGN(pgn); err != nil {
		t.Fatalf("LoadPGN() error = %v\n%s", err, pgn)
	}
	return g
}

// MustLoadFEN returns a game starting from fen.
func MustLoadFEN(t testing.TB, fen string) *game.Game {
	t.Helper()
	g := game.New(QuietConfig())
	if _, err := g.LoadFEN(fen); err != nil {
		t.Fatalf("LoadFEN(%q) error = %v", fen, err)
	}
	return g
}

// Play makes moves given in coordinate form such as "e2e4", failing the
// test on the first rejected move. It returns the last snapshot.
func Play(t testing.TB, g *game.Game, moves ...string) *game.Snapshot {
	t.Helper()
	var snap *game.Snapshot
	for _, m := range moves {
		if len(m) != 4 {
			t.Fatalf("bad move %q", m)
		}
		var err error
		snap, err = g.MoveFrom(context.Background(), Square(t, m[:2]), Square(t, m[2:]))
		if err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
	return snap
}
