package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// Select makes the piece on sq the selected piece and returns its legal
// destinations. Selecting an empty square or an opposing piece clears the
// selection and returns nil.
func (g *Game) Select(sq chess.Square) []chess.Square {
	p := g.board.At(sq)
	if p == nil || p.Colour != g.board.ToMove {
		g.selected = chess.NoSquare
		return nil
	}
	g.selected = sq
	g.cfg.Logf(2, "selected %s", p)
	return engine.LegalDestinations(g.board, p)
}

// Selected returns the selected square, if any.
func (g *Game) Selected() (chess.Square, bool) {
	return g.selected, g.selected.Valid()
}

// ClearSelection returns to the idle state.
func (g *Game) ClearSelection() {
	g.selected = chess.NoSquare
}

// Submit plays the selected piece to destination. The selection is cleared
// whether or not the move succeeds.
func (g *Game) Submit(ctx context.Context, destination chess.Square) (*Snapshot, error) {
	origin := g.selected
	g.selected = chess.NoSquare
	if !origin.Valid() {
		return nil, g.moveError(fmt.Errorf("nothing selected: %w", errors.ErrInvalidMove), chess.NoSquare, destination)
	}
	return g.MoveFrom(ctx, origin, destination)
}
