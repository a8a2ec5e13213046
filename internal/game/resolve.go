package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/parser"
)

// PlaySAN plays a move written in standard algebraic notation, such as
// "Nbd2", "exd6 e.p." or "e8=Q+".
func (g *Game) PlaySAN(ctx context.Context, san string) (*Snapshot, error) {
	text := strings.TrimSuffix(strings.TrimSpace(san), engine.EnPassantAnnotation)
	m, err := parser.DecodeMove(text)
	if err != nil {
		return nil, g.sanError(err, san)
	}
	p, destination, kind, err := g.resolveSAN(m)
	if err != nil {
		return nil, g.sanError(err, san)
	}
	return g.PlayMove(ctx, p.ID, destination, kind, m.Promotion)
}

func (g *Game) sanError(err error, san string) error {
	return &errors.MoveError{Err: err, Ply: len(g.history) + 1, MoveText: san}
}

type candidate struct {
	piece *chess.Piece
	kind  chess.MoveKind
}

// resolveSAN finds the single piece of the side to move that the decoded
// move refers to. Candidates are pieces of the named type, matching any
// origin hints, whose move to the destination classifies and is legal.
func (g *Game) resolveSAN(m *parser.Move) (*chess.Piece, chess.Square, chess.MoveKind, error) {
	b := g.board

	if m.IsCastle() {
		king := b.King(b.ToMove)
		if king == nil {
			return nil, chess.NoSquare, chess.Normal, fmt.Errorf("%s without a king: %w", m.Text, errors.ErrUnresolvableMove)
		}
		df := 2
		if m.Castle == chess.CastleQueenside {
			df = -2
		}
		destination := king.Position.Offset(df, 0)
		kind, err := engine.ClassifyMove(b, king.Position, destination)
		if err != nil || kind != m.Castle {
			return nil, chess.NoSquare, chess.Normal, fmt.Errorf("%s is not available: %w", m.Text, errors.ErrUnresolvableMove)
		}
		return king, destination, kind, nil
	}

	var found []candidate
	for _, p := range b.ActivePieces(b.ToMove) {
		if p.Type != m.Piece {
			continue
		}
		if m.FromFile != parser.NoHint && p.Position.File() != m.FromFile {
			continue
		}
		if m.FromRank != parser.NoHint && p.Position.Rank() != m.FromRank {
			continue
		}
		kind, err := engine.ClassifyMove(b, p.Position, m.To)
		if err != nil || kind.IsCastle() {
			continue
		}
		target := m.To
		if kind == chess.EnPassant {
			victim := b.Piece(b.EnPassant.Target)
			if victim == nil {
				continue
			}
			target = victim.Position
		}
		if engine.IsLegalMove(b, p, m.To, target) {
			found = append(found, candidate{piece: p, kind: kind})
		}
	}

	if len(found) != 1 {
		return nil, chess.NoSquare, chess.Normal, fmt.Errorf("%s matches %d pieces: %w", m.Text, len(found), errors.ErrUnresolvableMove)
	}
	return found[0].piece, m.To, found[0].kind, nil
}
