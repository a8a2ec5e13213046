// Package eval scores positions with a static piece-square heuristic.
// It reads the board and never modifies it.
package eval

import (
	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
)

// Normalisation bounds for the raw differences.
const (
	scoreBound    = 6515
	positionBound = 515
	pieceBound    = 6000
)

// Scores holds normalised evaluations in [0,1]; 1 favours White.
type Scores struct {
	Score         float64
	PositionScore float64
	PieceScore    float64
}

// Evaluator scores a position.
type Evaluator interface {
	Evaluate(b *chess.Board) Scores
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(b *chess.Board) Scores

// Evaluate calls f(b).
func (f EvaluatorFunc) Evaluate(b *chess.Board) Scores {
	return f(b)
}

// PieceSquare evaluates material plus piece-square table bonuses.
type PieceSquare struct{}

// NewPieceSquare returns the default evaluator.
func NewPieceSquare() *PieceSquare {
	return &PieceSquare{}
}

// Evaluate returns 0.5 for drawn positions, 1 or 0 when the side to move is
// mated, and otherwise the normalised material and placement balance.
func (PieceSquare) Evaluate(b *chess.Board) Scores {
	status := engine.StateBoard(b, b.ToMove)
	switch {
	case status.Checkmate && b.ToMove == chess.Black:
		return uniform(1)
	case status.Checkmate:
		return uniform(0)
	case status.Stalemate || status.InsufficientMaterial || engine.CheckFivefoldRepetition(b):
		return uniform(0.5)
	}

	var position, pieces int
	for _, p := range b.Pieces {
		if !p.Active {
			continue
		}
		bonus := squareBonus(p)
		if p.Colour == chess.White {
			position += bonus
			pieces += p.Value
		} else {
			position -= bonus
			pieces -= p.Value
		}
	}

	return Scores{
		Score:         normalise(position+pieces, scoreBound),
		PositionScore: normalise(position, positionBound),
		PieceScore:    normalise(pieces, pieceBound),
	}
}

func uniform(v float64) Scores {
	return Scores{Score: v, PositionScore: v, PieceScore: v}
}

// normalise maps [-bound, bound] onto [0,1], clamping outside values.
func normalise(v, bound int) float64 {
	n := float64(v+bound) / float64(2*bound)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// squareBonus looks the piece up in its table. Tables are written from
// White's side with a1 first; Black reads them mirrored.
func squareBonus(p *chess.Piece) int {
	table := tables[p.Type]
	if table == nil || !p.Position.Valid() {
		return 0
	}
	idx := int(p.Position)
	if p.Colour == chess.Black {
		idx = chess.NumSquares - 1 - idx
	}
	return table[idx]
}

var tables = map[chess.PieceType]*[chess.NumSquares]int{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		0, 0, 5, 10, 10, 5, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}
