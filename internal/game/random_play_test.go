package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/checkmate-go/internal/chess"
)

type legalMove struct {
	from, to chess.Square
}

func legalMoves(g *Game) []legalMove {
	var moves []legalMove
	for _, p := range g.Board().ActivePieces(g.ToMove()) {
		from := p.Position
		for _, to := range g.LegalDestinations(from) {
			moves = append(moves, legalMove{from, to})
		}
	}
	return moves
}

// playRandom plays up to maxPlies random legal moves and returns the board
// state and FEN before the first move and after each one.
func playRandom(t *testing.T, g *Game, rng *rand.Rand, maxPlies int) ([]chess.BoardState, []string) {
	t.Helper()
	states := []chess.BoardState{g.Board().State()}
	fens := []string{g.FEN()}
	for ply := 0; ply < maxPlies; ply++ {
		moves := legalMoves(g)
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		_, err := g.MoveFrom(context.Background(), m.from, m.to)
		require.NoError(t, err, "ply %d %s-%s from %s", ply+1, m.from, m.to, fens[len(fens)-1])
		states = append(states, g.Board().State())
		fens = append(fens, g.FEN())
	}
	return states, fens
}

func TestRandomPlay_UndoRedoRoundTrip(t *testing.T) {
	const games, maxPlies = 25, 160

	for seed := int64(1); seed <= games; seed++ {
		rng := rand.New(rand.NewSource(seed))
		cfg := quietConfig()
		cfg.Evaluate = false
		g := New(cfg)

		states, fens := playRandom(t, g, rng, maxPlies)
		played := append([]chess.Move(nil), g.History()...)
		n := len(played)

		for ply := n; ply > 0; ply-- {
			_, err := g.Undo()
			require.NoError(t, err, "seed %d undo to ply %d", seed, ply-1)
			require.Equal(t, states[ply-1], g.Board().State(), "seed %d after undo to ply %d", seed, ply-1)
		}
		assert.Equal(t, n, g.TotalMoves())

		_, err := g.GoTo(n / 2)
		require.NoError(t, err)
		assert.Equal(t, states[n/2], g.Board().State(), "seed %d GoTo(%d)", seed, n/2)

		snap, err := g.GoTo(n)
		require.NoError(t, err)
		assert.Equal(t, fens[n], snap.FEN, "seed %d GoTo(%d)", seed, n)
		assert.Equal(t, states[n], g.Board().State(), "seed %d GoTo(%d)", seed, n)

		redone := g.History()
		require.Len(t, redone, n)
		for i, want := range played {
			got := redone[i]
			assert.Equal(t, want.SAN, got.SAN, "seed %d ply %d", seed, i+1)
			assert.Equal(t, want.Kind, got.Kind, "seed %d ply %d", seed, i+1)
			assert.Equal(t, want.Check, got.Check, "seed %d ply %d check", seed, i+1)
			assert.Equal(t, want.Checkmate, got.Checkmate, "seed %d ply %d checkmate", seed, i+1)
			assert.Equal(t, want.Stalemate, got.Stalemate, "seed %d ply %d stalemate", seed, i+1)
		}

		pgn, err := g.ExportPGN()
		require.NoError(t, err)
		reloaded := New(cfg)
		_, err = reloaded.LoadPGN(pgn)
		require.NoError(t, err, "seed %d:\n%s", seed, pgn)
		assert.Equal(t, fens[n], reloaded.FEN(), "seed %d PGN round trip", seed)
	}
}
