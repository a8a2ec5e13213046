package engine

import (
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
)

// Rook offsets from the king's file.
const (
	kingsideRookOffset  = 3
	queensideRookOffset = -4
)

// castlingRook returns the rook square for a castling move of king to dest.
func castlingRook(king *chess.Piece, dest chess.Square) chess.Square {
	if dest.File() > king.Position.File() {
		return king.Position.Offset(kingsideRookOffset, 0)
	}
	return king.Position.Offset(queensideRookOffset, 0)
}

// IsCastlingAllowed reports whether king may castle onto dest. The king and
// the rook must be unmoved, every square between them empty and no square
// the king stands on or crosses attacked.
func IsCastlingAllowed(b *chess.Board, king *chess.Piece, dest chess.Square) bool {
	if king.Type != chess.King || !king.Active || king.HasMoved() || !isCastlingShape(king, dest) {
		return false
	}

	rook := b.At(castlingRook(king, dest))
	if rook == nil || rook.Type != chess.Rook || rook.Colour != king.Colour || rook.HasMoved() {
		return false
	}

	step := sign(rook.Position.File() - king.Position.File())
	for sq := king.Position.Offset(step, 0); sq != rook.Position; sq = sq.Offset(step, 0) {
		if !b.IsEmpty(sq) {
			return false
		}
	}

	if IsKingInCheck(b, king.Colour) {
		return false
	}
	for sq := king.Position.Offset(step, 0); ; sq = sq.Offset(step, 0) {
		attacked := SimulateMove(b, king, sq, chess.NoSquare, func() bool {
			return IsKingInCheck(b, king.Colour)
		})
		if attacked {
			return false
		}
		if sq == dest {
			return true
		}
	}
}

// CastlingRights derives the castling string from scratch: a right exists
// while the king is unmoved on its home square and the matching rook is
// active and unmoved on its corner.
func CastlingRights(b *chess.Board) string {
	var sb strings.Builder
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		rank := 0
		if c == chess.Black {
			rank = 7
		}
		king := b.At(chess.NewSquare(4, rank))
		if king == nil || king.Type != chess.King || king.Colour != c || king.HasMoved() {
			continue
		}
		if isUnmovedRook(b.At(chess.NewSquare(7, rank)), c) {
			sb.WriteByte(rightLetter('K', c))
		}
		if isUnmovedRook(b.At(chess.NewSquare(0, rank)), c) {
			sb.WriteByte(rightLetter('Q', c))
		}
	}
	return sb.String()
}

func isUnmovedRook(p *chess.Piece, c chess.Colour) bool {
	return p != nil && p.Type == chess.Rook && p.Colour == c && !p.HasMoved()
}

func rightLetter(side byte, c chess.Colour) byte {
	if c == chess.Black {
		return side + 'a' - 'A'
	}
	return side
}
