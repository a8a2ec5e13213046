package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/parser"
)

const scholarsMate = `[Event "Casual"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`

func TestLoadPGN_ScholarsMate(t *testing.T) {
	var count int
	g := newTestGame(t, WithListener(func(*Snapshot) { count++ }))

	snap, err := g.LoadPGN(scholarsMate)
	require.NoError(t, err)

	assert.True(t, snap.Checkmate)
	assert.True(t, snap.BlackInCheck)
	assert.Equal(t, "black", snap.ToMove)
	assert.Equal(t, "1-0", snap.Result)
	assert.Equal(t, "Qxf7#", snap.LastMove)
	assert.Equal(t, 7, snap.Ply)
	assert.Equal(t, "Alice", g.Tags().Get("White"))
	assert.Equal(t, 1, count)
}

func TestLoadPGN_FailureLeavesGameUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		pgn    string
		target error
	}{
		{"unresolvable move", "1. e4 e5 2. Ke3 *", errors.ErrUnresolvableMove},
		{"ambiguous move", "[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1\"]\n\n1. Nd2 *", errors.ErrUnresolvableMove},
		{"illegal castling", "1. O-O *", errors.ErrUnresolvableMove},
		{"syntax error", "1. e4 e5 2. Zf3 *", errors.ErrInvalidPGN},
		{"bad FEN tag", "[FEN \"not a fen\"]\n\n1. e4 *", errors.ErrInvalidFEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			play(t, g, "d2d4")
			before := g.Board().State()
			fen := g.FEN()

			_, err := g.LoadPGN(tt.pgn)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "LoadPGN() error = %v, want %v", err, tt.target)
			assert.Equal(t, before, g.Board().State())
			assert.Equal(t, fen, g.FEN())
			assert.Equal(t, 1, g.Cursor())
		})
	}
}

func TestLoadPGN_ErrorNamesMove(t *testing.T) {
	g := newTestGame(t)
	_, err := g.LoadPGN("1. e4 e5 2. Ke3 *")

	var me *errors.MoveError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 3, me.Ply)
	assert.Equal(t, "Ke3", me.MoveText)
}

func TestLoadPGN_FromSetUpPosition(t *testing.T) {
	g := newTestGame(t)
	pgn := "[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1\"]\n\n1. Nbd2 Kd7 2. Nfe3 *"

	snap, err := g.LoadPGN(pgn)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Ply)
	assert.Equal(t, "1. Nbd2 Kd7 2. Ne3", snap.PGN)

	out, err := g.ExportPGN()
	require.NoError(t, err)
	assert.Contains(t, out, `[SetUp "1"]`)
	assert.Contains(t, out, `[FEN "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1"]`)
}

func TestResolveSAN(t *testing.T) {
	g := fromFEN(t, "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1")

	tests := []struct {
		san     string
		from    string
		wantErr bool
	}{
		{"Nbd2", "b1", false},
		{"Nfd2", "f1", false},
		{"N1c3", "b1", false},
		{"Ng3", "f1", false},
		{"Nd2", "", true},
		{"Nd3", "", true},
		{"Qd2", "", true},
		{"Kd2", "e1", false},
	}

	for _, tt := range tests {
		t.Run(tt.san, func(t *testing.T) {
			m, err := parser.DecodeMove(tt.san)
			require.NoError(t, err)

			p, dest, _, err := g.resolveSAN(m)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrUnresolvableMove), "resolveSAN(%s) error = %v", tt.san, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sq(tt.from), p.Position)
			assert.Equal(t, m.To, dest)
		})
	}
}

func TestExportPGN_RoundTrip(t *testing.T) {
	g := newTestGame(t)
	play(t, g, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
	g.SetTag("White", "Alice")

	out, err := g.ExportPGN()
	require.NoError(t, err)
	assert.Contains(t, out, `[White "Alice"]`)
	assert.Contains(t, out, `[Result "1-0"]`)
	assert.Contains(t, out, "4. Qxf7# 1-0")
	assert.NotContains(t, out, "[FEN")

	loaded := newTestGame(t)
	_, err = loaded.LoadPGN(out)
	require.NoError(t, err)
	assert.Equal(t, g.FEN(), loaded.FEN())
	assert.Equal(t, "Alice", loaded.Tags().Get("White"))
	assert.Equal(t, g.MoveText(), loaded.MoveText())
}

func TestLoadFEN(t *testing.T) {
	g := newTestGame(t)
	play(t, g, "e2e4")

	fen := "8/8/8/4k3/8/8/8/R3K3 b - - 12 40"
	snap, err := g.LoadFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, snap.FEN)
	assert.Equal(t, 0, snap.Ply)
	assert.Equal(t, 0, snap.TotalMoves)

	_, err = g.Undo()
	assert.True(t, errors.Is(err, errors.ErrNoMoveToUndo))

	_, err = g.LoadFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.True(t, errors.Is(err, errors.ErrInvalidFEN))
	assert.Equal(t, fen, g.FEN())
}

func TestLoadText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantFEN string
		target  error
	}{
		{"fen", "  " + engine.InitialFEN + "\n", engine.InitialFEN, nil},
		{"pgn", "1. e4 e5 2. Nf3 Nc6 *", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", nil},
		{"short garbage is fen", "e4 e5 Nf3", "", errors.ErrInvalidFEN},
		{"empty", "", "", errors.ErrInvalidFEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			snap, err := g.LoadText(tt.input)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "LoadText() error = %v, want %v", err, tt.target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFEN, snap.FEN)
		})
	}
}

func TestRestart(t *testing.T) {
	g := fromFEN(t, "8/8/8/4k3/8/8/8/R3K3 b - - 12 40")
	g.SetTag("Event", "Club")

	snap := g.Restart()
	assert.Equal(t, engine.InitialFEN, snap.FEN)
	assert.Empty(t, g.Tags())

	out, err := g.ExportPGN()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "*"))
	assert.NotContains(t, out, "SetUp")
}
