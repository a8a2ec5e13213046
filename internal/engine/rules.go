package engine

import (
	"github.com/lgbarn/checkmate-go/internal/chess"
)

// Draw thresholds.
const (
	FiftyMoveLimit = 100 // half-moves; the rule applies once the clock exceeds it
	ThreefoldCount = 3
	FivefoldCount  = 5
)

// DrawRuleResult contains the results of draw rule detection for the side to
// move.
type DrawRuleResult struct {
	// FiftyMoveRule is true once the half-move clock exceeds 100.
	FiftyMoveRule bool

	// ThreefoldRepetition is true if the current position occurred three or
	// more times.
	ThreefoldRepetition bool

	// FivefoldRepetition is true if the current position occurred five or
	// more times.
	FivefoldRepetition bool

	// InsufficientMaterial is true if neither side can mate.
	InsufficientMaterial bool

	// Stalemate is true if the side to move has no legal move and is not in
	// check.
	Stalemate bool
}

// CanClaimDraw reports whether a player may claim a draw.
func (r DrawRuleResult) CanClaimDraw() bool {
	return r.FiftyMoveRule || r.ThreefoldRepetition
}

// IsDraw reports whether the game is drawn without a claim.
func (r DrawRuleResult) IsDraw() bool {
	return r.Stalemate || r.InsufficientMaterial || r.FivefoldRepetition
}

// AnalyzeDrawRules evaluates every draw condition for the side to move.
func AnalyzeDrawRules(b *chess.Board) DrawRuleResult {
	result := DrawRuleResult{
		FiftyMoveRule:       CheckFiftyMoveRule(b),
		ThreefoldRepetition: CheckThreefoldRepetition(b),
		FivefoldRepetition:  CheckFivefoldRepetition(b),
	}
	status := StateBoard(b, b.ToMove)
	result.InsufficientMaterial = status.InsufficientMaterial
	result.Stalemate = status.Stalemate
	return result
}

// HasEnoughPiecesForCheckmate reports whether colour keeps enough material to
// mate: any queen, rook or pawn, two bishops, or a bishop with a knight.
// A lone pawn counts because it can promote.
func HasEnoughPiecesForCheckmate(b *chess.Board, colour chess.Colour) bool {
	var bishops, knights, others int
	for _, p := range b.ActivePieces(colour) {
		switch p.Type {
		case chess.King:
		case chess.Bishop:
			bishops++
		case chess.Knight:
			knights++
		default:
			others++
		}
	}
	switch {
	case others > 0:
		return true
	case bishops >= 2:
		return true
	case bishops >= 1 && knights >= 1:
		return true
	}
	return false
}

// HasInsufficientMaterial returns true if neither side has mating material.
func HasInsufficientMaterial(b *chess.Board) bool {
	return !HasEnoughPiecesForCheckmate(b, chess.White) && !HasEnoughPiecesForCheckmate(b, chess.Black)
}

// CheckFiftyMoveRule returns true when the half-move clock exceeds 100.
func CheckFiftyMoveRule(b *chess.Board) bool {
	return b.HalfmoveClock > FiftyMoveLimit
}

// CheckThreefoldRepetition returns true when the current position has been
// recorded at least three times.
func CheckThreefoldRepetition(b *chess.Board) bool {
	return b.Repetitions.Count(PositionKey(b)) >= ThreefoldCount
}

// CheckFivefoldRepetition returns true when the current position has been
// recorded at least five times.
func CheckFivefoldRepetition(b *chess.Board) bool {
	return b.Repetitions.Count(PositionKey(b)) >= FivefoldCount
}
