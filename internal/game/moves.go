package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// MoveFrom plays the piece on origin to destination. The move kind is
// classified from the position.
func (g *Game) MoveFrom(ctx context.Context, origin, destination chess.Square) (*Snapshot, error) {
	p := g.board.At(origin)
	if p == nil {
		return nil, g.moveError(fmt.Errorf("no piece on %s: %w", origin, errors.ErrInvalidMove), origin, destination)
	}
	return g.MovePiece(ctx, p.ID, destination)
}

// MovePiece plays the piece with the given id to destination. The move kind
// is classified from the position; promotions ask the resolver for a piece.
func (g *Game) MovePiece(ctx context.Context, id chess.PieceID, destination chess.Square) (*Snapshot, error) {
	p, err := g.pieceToMove(id)
	if err != nil {
		return nil, g.moveError(err, chess.NoSquare, destination)
	}
	kind, err := engine.ClassifyMove(g.board, p.Position, destination)
	if err != nil {
		return nil, g.moveError(err, p.Position, destination)
	}
	return g.PlayMove(ctx, id, destination, kind, chess.NoPiece)
}

// PlayMove plays a move whose kind the caller has already determined. The
// kind must agree with the position. A promotion kind with promotion set to
// chess.NoPiece asks the resolver. Playing a new move discards the redo
// stack. On failure the position is left exactly as it was.
func (g *Game) PlayMove(ctx context.Context, id chess.PieceID, destination chess.Square, kind chess.MoveKind, promotion chess.PieceType) (*Snapshot, error) {
	p, err := g.pieceToMove(id)
	if err != nil {
		return nil, g.moveError(err, chess.NoSquare, destination)
	}
	origin := p.Position

	if kind.IsPromotion() && promotion == chess.NoPiece {
		promotion, err = g.resolver.ResolvePromotion(ctx, PromotionRequest{Colour: p.Colour, From: origin, To: destination})
		if err != nil {
			return nil, g.moveError(errors.Wrap(err, "promotion"), origin, destination)
		}
	}

	if _, err := g.commit(p, destination, kind, promotion); err != nil {
		return nil, g.moveError(err, origin, destination)
	}
	g.redo = nil
	g.selected = chess.NoSquare
	return g.emit(), nil
}

func (g *Game) pieceToMove(id chess.PieceID) (*chess.Piece, error) {
	p := g.board.Piece(id)
	switch {
	case p == nil || !p.Active:
		return nil, fmt.Errorf("no active piece %d: %w", id, errors.ErrInvalidMove)
	case p.Colour != g.board.ToMove:
		return nil, fmt.Errorf("%s %s cannot move on %s's turn: %w", p.Colour, p.Type, g.board.ToMove, errors.ErrInvalidMove)
	}
	return p, nil
}

// commit validates, applies and records one move. A move that leaves the
// mover's king in check is unwound and reported as ErrIllegalExposesKing.
// Castling is exempt from that check because its legality already proved
// the king safe.
func (g *Game) commit(p *chess.Piece, destination chess.Square, kind chess.MoveKind, promotion chess.PieceType) (chess.Move, error) {
	b := g.board

	if !kind.Valid() {
		return chess.Move{}, fmt.Errorf("%v: %w", kind, errors.ErrUnknownMoveType)
	}
	classified, err := engine.ClassifyMove(b, p.Position, destination)
	if err != nil {
		return chess.Move{}, err
	}
	if classified != kind {
		return chess.Move{}, fmt.Errorf("%s-%s is %v, not %v: %w", p.Position, destination, classified, kind, errors.ErrInvalidMove)
	}

	previousEnPassant := b.EnPassant
	move, err := engine.PerformMove(b, p, destination, kind, promotion)
	if err != nil {
		return chess.Move{}, err
	}

	if !kind.IsCastle() && engine.IsKingInCheck(b, move.Colour) {
		if err := engine.PerformUnmove(b, move); err != nil {
			return chess.Move{}, err
		}
		b.EnPassant = previousEnPassant
		return chess.Move{}, errors.ErrIllegalExposesKing
	}

	g.halfmoves = append(g.halfmoves, b.HalfmoveClock)
	if move.Piece == chess.Pawn || move.IsCapture() {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}
	if move.Colour == chess.Black {
		b.FullmoveNumber++
	}
	b.ToMove = move.Colour.Opposite()
	b.Castling = engine.CastlingRights(b)
	b.Repetitions.Push(engine.PositionKey(b))

	g.history = append(g.history, move)
	g.cfg.Logf(2, "%d: %s", len(g.history), move.Summary())
	return move, nil
}

// Undo takes back the last move and pushes it onto the redo stack.
func (g *Game) Undo() (*Snapshot, error) {
	if err := g.undo(); err != nil {
		return nil, err
	}
	return g.emit(), nil
}

func (g *Game) undo() error {
	if len(g.history) == 0 {
		return errors.ErrNoMoveToUndo
	}
	b := g.board
	move := g.history[len(g.history)-1]

	if err := engine.PerformUnmove(b, move); err != nil {
		return err
	}
	g.history = g.history[:len(g.history)-1]

	b.Repetitions.Pop()
	b.HalfmoveClock = g.halfmoves[len(g.halfmoves)-1]
	g.halfmoves = g.halfmoves[:len(g.halfmoves)-1]
	if move.Colour == chess.Black {
		b.FullmoveNumber--
	}
	b.ToMove = move.Colour
	b.Castling = engine.CastlingRights(b)
	b.EnPassant = g.currentEnPassant()

	g.redo = append(g.redo, move)
	g.selected = chess.NoSquare
	g.cfg.Logf(2, "undo %d: %s", len(g.history)+1, move.Summary())
	return nil
}

// currentEnPassant recomputes the en-passant state of the current position
// from the last history move, or the loaded state when history is empty.
func (g *Game) currentEnPassant() *chess.EnPassantState {
	if len(g.history) == 0 {
		return g.startEnPassant
	}
	last := g.history[len(g.history)-1]
	if last.Piece != chess.Pawn {
		return nil
	}
	if d := last.To.Rank() - last.From.Rank(); d != 2 && d != -2 {
		return nil
	}
	return engine.CanBeCapturedEnPassant(g.board, last.To)
}

// Redo replays the most recently undone move through the normal move path.
// If it cannot be replayed the move stays on the redo stack.
func (g *Game) Redo() (*Snapshot, error) {
	if err := g.redoOne(); err != nil {
		return nil, err
	}
	return g.emit(), nil
}

func (g *Game) redoOne() error {
	if len(g.redo) == 0 {
		return errors.ErrNoMoveToRedo
	}
	move := g.redo[len(g.redo)-1]
	g.redo = g.redo[:len(g.redo)-1]

	p := g.board.Piece(move.PieceID)
	if p == nil {
		g.redo = append(g.redo, move)
		return fmt.Errorf("redo: unknown piece %d: %w", move.PieceID, errors.ErrInvalidMove)
	}
	if _, err := g.commit(p, move.To, move.Kind, move.Promotion); err != nil {
		g.redo = append(g.redo, move)
		return g.moveError(errors.Wrap(err, "redo"), move.From, move.To)
	}
	return nil
}

// ResetToStart undoes every move.
func (g *Game) ResetToStart() (*Snapshot, error) {
	if len(g.history) == 0 {
		return nil, errors.ErrNoMoveToUndo
	}
	for len(g.history) > 0 {
		if err := g.undo(); err != nil {
			return nil, err
		}
	}
	return g.emit(), nil
}

// RestoreLast redoes every undone move.
func (g *Game) RestoreLast() (*Snapshot, error) {
	if len(g.redo) == 0 {
		return nil, errors.ErrNoMoveToRedo
	}
	for len(g.redo) > 0 {
		if err := g.redoOne(); err != nil {
			return nil, err
		}
	}
	return g.emit(), nil
}

// GoTo undoes or redoes moves until exactly index half-moves are played.
func (g *Game) GoTo(index int) (*Snapshot, error) {
	switch {
	case index < 0:
		return nil, fmt.Errorf("move index %d: %w", index, errors.ErrNoMoveToUndo)
	case index > g.TotalMoves():
		return nil, fmt.Errorf("move index %d beyond %d: %w", index, g.TotalMoves(), errors.ErrNoMoveToRedo)
	}
	for len(g.history) > index {
		if err := g.undo(); err != nil {
			return nil, err
		}
	}
	for len(g.history) < index {
		if err := g.redoOne(); err != nil {
			return nil, err
		}
	}
	return g.emit(), nil
}

// moveError adds the ply and squares to a move failure.
func (g *Game) moveError(err error, origin, destination chess.Square) error {
	me := &errors.MoveError{Err: err, Ply: len(g.history) + 1}
	if origin.Valid() {
		me.Origin = origin.String()
	}
	if destination.Valid() {
		me.Destination = destination.String()
	}
	return me
}
