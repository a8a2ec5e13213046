package game

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/config"
)

func quietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	return cfg
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	return New(quietConfig(), opts...)
}

func fromFEN(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g := newTestGame(t, opts...)
	_, err := g.LoadFEN(fen)
	require.NoError(t, err)
	return g
}

func sq(name string) chess.Square {
	s, ok := chess.ParseSquare(name)
	if !ok {
		panic("bad square " + name)
	}
	return s
}

// play makes each move given as origin and destination pairs, e.g. "e2e4".
func play(t *testing.T, g *Game, moves ...string) *Snapshot {
	t.Helper()
	var snap *Snapshot
	for _, m := range moves {
		var err error
		snap, err = g.MoveFrom(context.Background(), sq(m[:2]), sq(m[2:4]))
		require.NoError(t, err, "move %s", m)
	}
	return snap
}
