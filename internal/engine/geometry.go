// Package engine provides chess move validation and board manipulation:
// piece geometry, the rules of play, move application and the FEN and SAN
// notations. Functions are stateless and operate on a *chess.Board.
package engine

import "github.com/lgbarn/checkmate-go/internal/chess"

// PseudoLegal reports whether piece p may move to dest according to its
// movement shape and the board occupancy, ignoring whether the move leaves
// its own king in check. En passant is not considered here.
func PseudoLegal(b *chess.Board, p *chess.Piece, dest chess.Square) bool {
	if p.Type == chess.King && isCastlingShape(p, dest) {
		return IsCastlingAllowed(b, p, dest)
	}
	return attacks(b, p, dest)
}

// attacks is PseudoLegal without castling. It is what check detection uses,
// which keeps castling validation from recursing into itself.
func attacks(b *chess.Board, p *chess.Piece, dest chess.Square) bool {
	if !p.Active || !dest.Valid() || dest == p.Position {
		return false
	}
	if occupant := b.At(dest); occupant != nil && occupant.Colour == p.Colour {
		return false
	}

	df := dest.File() - p.Position.File()
	dr := dest.Rank() - p.Position.Rank()

	switch p.Type {
	case chess.Pawn:
		return canPawnMove(b, p, dest, df, dr)
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.Bishop:
		return abs(df) == abs(dr) && isPathClear(b, p.Position, df, dr)
	case chess.Rook:
		return (df == 0 || dr == 0) && isPathClear(b, p.Position, df, dr)
	case chess.Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && isPathClear(b, p.Position, df, dr)
	case chess.King:
		return abs(df) <= 1 && abs(dr) <= 1
	}
	return false
}

// canPawnMove checks the three pawn shapes: a single push onto an empty
// square, a double push from the starting rank through two empty squares and
// a diagonal step onto an enemy piece.
func canPawnMove(b *chess.Board, p *chess.Piece, dest chess.Square, df, dr int) bool {
	dir := p.Colour.Direction()
	switch {
	case df == 0 && dr == dir:
		return b.IsEmpty(dest)
	case df == 0 && dr == 2*dir:
		if p.Position.Rank() != pawnStartRank(p.Colour) {
			return false
		}
		return b.IsEmpty(p.Position.Offset(0, dir)) && b.IsEmpty(dest)
	case abs(df) == 1 && dr == dir:
		target := b.At(dest)
		return target != nil && target.Colour != p.Colour
	}
	return false
}

func pawnStartRank(c chess.Colour) int {
	if c == chess.White {
		return 1
	}
	return 6
}

func promotionRank(c chess.Colour) int {
	if c == chess.White {
		return 7
	}
	return 0
}

// isPathClear walks every square strictly between from and from+(df,dr).
func isPathClear(b *chess.Board, from chess.Square, df, dr int) bool {
	stepF, stepR := sign(df), sign(dr)
	steps := max(abs(df), abs(dr))
	for i := 1; i < steps; i++ {
		if !b.IsEmpty(from.Offset(i*stepF, i*stepR)) {
			return false
		}
	}
	return true
}

func isCastlingShape(king *chess.Piece, dest chess.Square) bool {
	return dest.Valid() && dest.Rank() == king.Position.Rank() &&
		abs(dest.File()-king.Position.File()) == 2
}
