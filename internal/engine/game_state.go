package engine

import "github.com/lgbarn/checkmate-go/internal/chess"

// Status is the composite result of StateBoard.
type Status struct {
	Check                bool
	Checkmate            bool
	Stalemate            bool
	InsufficientMaterial bool
}

// IsKingCheckmate returns true if colour is in check and no legal move
// removes the check.
func IsKingCheckmate(b *chess.Board, colour chess.Colour) bool {
	return IsKingInCheck(b, colour) && !HasLegalMove(b, colour)
}

// IsStalemate returns true if colour is not in check but has no legal move.
func IsStalemate(b *chess.Board, colour chess.Colour) bool {
	return !IsKingInCheck(b, colour) && !HasLegalMove(b, colour)
}

// StateBoard evaluates the position for colour, normally the side about to
// move. Insufficient material short-circuits the check, mate and stalemate
// tests.
func StateBoard(b *chess.Board, colour chess.Colour) Status {
	var s Status
	if !HasEnoughPiecesForCheckmate(b, chess.White) && !HasEnoughPiecesForCheckmate(b, chess.Black) {
		s.InsufficientMaterial = true
		return s
	}
	s.Check = IsKingInCheck(b, colour)
	if s.Check {
		s.Checkmate = !HasLegalMove(b, colour)
	} else {
		s.Stalemate = !HasLegalMove(b, colour)
	}
	return s
}
