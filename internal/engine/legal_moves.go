package engine

import (
	"github.com/lgbarn/checkmate-go/internal/chess"
)

// LegalDestinations returns the squares piece may move to without leaving
// its own king in check, in ascending square order. The en-passant capture
// square is included when the piece is one of the recorded attackers.
func LegalDestinations(b *chess.Board, piece *chess.Piece) []chess.Square {
	var out []chess.Square
	forEachLegalDestination(b, piece, func(sq chess.Square) bool {
		out = append(out, sq)
		return true
	})
	return out
}

// HasLegalMove reports whether colour has at least one legal move.
func HasLegalMove(b *chess.Board, colour chess.Colour) bool {
	for _, p := range b.ActivePieces(colour) {
		found := false
		forEachLegalDestination(b, p, func(chess.Square) bool {
			found = true
			return false
		})
		if found {
			return true
		}
	}
	return false
}

// IsLegalMove reports whether moving piece to destination, removing whatever
// stands on target, leaves the mover's king safe.
func IsLegalMove(b *chess.Board, piece *chess.Piece, destination, target chess.Square) bool {
	return !SimulateMove(b, piece, destination, target, func() bool {
		return IsKingInCheck(b, piece.Colour)
	})
}

// forEachLegalDestination calls fn for every legal destination until fn
// returns false. Candidates rejected by IsValidMove are skipped.
func forEachLegalDestination(b *chess.Board, piece *chess.Piece, fn func(chess.Square) bool) {
	if !piece.Active {
		return
	}
	ep := b.EnPassant
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		ok, err := IsValidMove(b, piece.Position, sq)
		if err != nil || !ok {
			if ep.HasAttacker(piece.ID) && sq == ep.Square {
				victim := b.Piece(ep.Target)
				if victim != nil && victim.Active && IsLegalMove(b, piece, sq, victim.Position) {
					if !fn(sq) {
						return
					}
				}
			}
			continue
		}
		if IsLegalMove(b, piece, sq, sq) && !fn(sq) {
			return
		}
	}
}

// CanBeCapturedEnPassant returns the en-passant state created by the piece on
// sq, or nil. The piece must be a pawn that has just advanced two squares
// with an enemy pawn beside it on the same rank.
func CanBeCapturedEnPassant(b *chess.Board, sq chess.Square) *chess.EnPassantState {
	p := b.At(sq)
	if p == nil || p.Type != chess.Pawn || p.MoveCount != 1 {
		return nil
	}
	if abs(int(p.Position)-int(p.InitialPosition)) != 2*chess.BoardSize {
		return nil
	}

	var attackers []chess.PieceID
	for _, df := range []int{-1, 1} {
		n := b.At(sq.Offset(df, 0))
		if n != nil && n.Type == chess.Pawn && n.Colour != p.Colour {
			attackers = append(attackers, n.ID)
		}
	}
	if len(attackers) == 0 {
		return nil
	}
	return &chess.EnPassantState{
		Square:    sq.Offset(0, -p.Colour.Direction()),
		Target:    p.ID,
		Attackers: attackers,
	}
}
