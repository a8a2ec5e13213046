package engine

import (
	"fmt"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// ClassifyMove decides the kind of moving the piece on origin to destination.
// En passant is only considered when ordinary validation rejects the move and
// the piece is a recorded en-passant attacker aiming at the target square.
// Anything else that fails validation is ErrInvalidMove.
func ClassifyMove(b *chess.Board, origin, destination chess.Square) (chess.MoveKind, error) {
	ok, err := IsValidMove(b, origin, destination)
	if err != nil {
		return chess.Normal, err
	}
	piece := b.At(origin)

	if !ok {
		if ep := b.EnPassant; ep.HasAttacker(piece.ID) && ep.Square == destination {
			return chess.EnPassant, nil
		}
		return chess.Normal, fmt.Errorf("%s cannot move %s-%s: %w", piece.Type, origin, destination, errors.ErrInvalidMove)
	}

	promotes := piece.Type == chess.Pawn && destination.Rank() == promotionRank(piece.Colour)
	if b.At(destination) != nil {
		if promotes {
			return chess.PromotionCapture, nil
		}
		return chess.Capture, nil
	}

	switch {
	case piece.Type == chess.King && isCastlingShape(piece, destination):
		if destination.File() > origin.File() {
			return chess.CastleKingside, nil
		}
		return chess.CastleQueenside, nil
	case promotes:
		return chess.Promotion, nil
	}
	return chess.Normal, nil
}
