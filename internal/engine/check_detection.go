package engine

import (
	"fmt"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// IsValidMove reports whether the piece on origin may move to destination by
// its geometry. It fails with ErrInvalidMove when origin is empty, when
// destination is off the board or when destination holds a piece of the
// mover's colour.
func IsValidMove(b *chess.Board, origin, destination chess.Square) (bool, error) {
	p := b.At(origin)
	if p == nil {
		return false, fmt.Errorf("no piece on %s: %w", origin, errors.ErrInvalidMove)
	}
	if !destination.Valid() {
		return false, fmt.Errorf("destination %d off board: %w", int(destination), errors.ErrInvalidMove)
	}
	if target := b.At(destination); target != nil && target.Colour == p.Colour {
		return false, fmt.Errorf("%s occupied by own %s: %w", destination, target.Type, errors.ErrInvalidMove)
	}
	return PseudoLegal(b, p, destination), nil
}

// IsKingInCheck returns true if any active enemy piece can move onto the
// king of the given colour.
func IsKingInCheck(b *chess.Board, colour chess.Colour) bool {
	king := b.King(colour)
	if king == nil {
		return false
	}
	return IsSquareAttacked(b, king.Position, colour.Opposite())
}

// IsSquareAttacked returns true if an active piece of colour by can move
// onto sq. Pawns only attack diagonally, so for empty squares the caller
// should place a piece there first (see SimulateMove).
func IsSquareAttacked(b *chess.Board, sq chess.Square, by chess.Colour) bool {
	for _, p := range b.Pieces {
		if p.Active && p.Colour == by && attacks(b, p, sq) {
			return true
		}
	}
	return false
}
