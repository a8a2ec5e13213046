package engine

import (
	"fmt"
	"time"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// SimulateMove provisionally moves piece to destination, deactivating any
// piece standing on target, and returns query's answer for that position.
// The board is restored on every exit path, including a panicking query.
// Pass target = destination for ordinary captures, the captured pawn's square
// for en passant and chess.NoSquare when nothing is taken.
func SimulateMove(b *chess.Board, piece *chess.Piece, destination, target chess.Square, query func() bool) bool {
	origin := piece.Position
	captured := b.At(target)
	if captured == piece {
		captured = nil
	}

	defer func() {
		piece.Position = origin
		if captured != nil {
			captured.Active = true
		}
		b.UpdateGrid()
	}()

	if captured != nil {
		captured.Active = false
	}
	piece.Position = destination
	b.UpdateGrid()

	return query()
}

// PerformMove applies a classified move to the board and returns its record.
// promotion is only consulted for promotion kinds. The en-passant state is
// replaced with the one the move creates for the opponent; PerformUnmove does
// not restore it. The turn, clocks and castling rights are left to the caller.
func PerformMove(b *chess.Board, piece *chess.Piece, destination chess.Square, kind chess.MoveKind, promotion chess.PieceType) (chess.Move, error) {
	if !kind.Valid() {
		return chess.Move{}, fmt.Errorf("%v: %w", kind, errors.ErrUnknownMoveType)
	}
	if piece == nil || !piece.Active {
		return chess.Move{}, fmt.Errorf("no active piece to move: %w", errors.ErrInvalidMove)
	}
	if kind.IsPromotion() && !promotion.IsPromotionChoice() {
		return chess.Move{}, fmt.Errorf("%v: %w", promotion, errors.ErrInvalidPromotion)
	}

	move := chess.Move{
		PieceID:   piece.ID,
		Piece:     piece.Type,
		Colour:    piece.Colour,
		From:      piece.Position,
		To:        destination,
		Kind:      kind,
		Captured:  chess.NoPieceID,
		Promotion: chess.NoPiece,
	}

	var target *chess.Piece
	switch kind {
	case chess.Capture, chess.PromotionCapture:
		target = b.At(destination)
	case chess.EnPassant:
		target = b.At(enPassantVictimSquare(piece.Colour, destination))
		if target != nil && target.Type != chess.Pawn {
			target = nil
		}
	}
	if kind.IsCapture() {
		if target == nil || target.Colour == piece.Colour {
			return chess.Move{}, fmt.Errorf("%v to %s has nothing to capture: %w", kind, destination, errors.ErrInvalidMove)
		}
		move.Captured = target.ID
	}
	if kind.IsPromotion() {
		move.Promotion = promotion
	}

	san := sanBody(b, piece, move)

	switch kind {
	case chess.Normal:
		piece.Position = destination
	case chess.Capture, chess.EnPassant:
		capturePiece(b, piece.Colour, target)
		piece.Position = destination
	case chess.Promotion:
		piece.Position = destination
		piece.Promote(promotion)
	case chess.PromotionCapture:
		capturePiece(b, piece.Colour, target)
		piece.Position = destination
		piece.Promote(promotion)
	case chess.CastleKingside, chess.CastleQueenside:
		rook := b.At(castlingRook(piece, destination))
		if rook == nil || rook.Type != chess.Rook {
			return chess.Move{}, fmt.Errorf("no rook to castle with: %w", errors.ErrInvalidMove)
		}
		rook.Position = castlingRookDestination(move.From, kind)
		rook.MoveCount++
		piece.Position = destination
	}
	piece.MoveCount++
	b.UpdateGrid()

	b.EnPassant = nil
	if piece.Type == chess.Pawn && abs(destination.Rank()-move.From.Rank()) == 2 {
		b.EnPassant = CanBeCapturedEnPassant(b, destination)
	}

	status := StateBoard(b, piece.Colour.Opposite())
	move.Check = status.Check
	move.Checkmate = status.Checkmate
	move.Stalemate = status.Stalemate
	move.InsufficientMaterial = status.InsufficientMaterial
	move.SAN = san + checkSuffix(status)
	move.Timestamp = time.Now()

	return move, nil
}

// PerformUnmove reverses a move produced by PerformMove.
func PerformUnmove(b *chess.Board, move chess.Move) error {
	if !move.Kind.Valid() {
		return fmt.Errorf("%v: %w", move.Kind, errors.ErrUnknownMoveType)
	}
	piece := b.Piece(move.PieceID)
	if piece == nil {
		return fmt.Errorf("unknown piece %d: %w", move.PieceID, errors.ErrInvalidMove)
	}

	switch move.Kind {
	case chess.Normal:
	case chess.Capture, chess.EnPassant:
		uncapturePiece(b, move.Colour, move.Captured)
	case chess.Promotion:
		piece.Demote()
	case chess.PromotionCapture:
		piece.Demote()
		uncapturePiece(b, move.Colour, move.Captured)
	case chess.CastleKingside, chess.CastleQueenside:
		if rook := b.At(castlingRookDestination(move.From, move.Kind)); rook != nil {
			if move.Kind == chess.CastleKingside {
				rook.Position = move.From.Offset(kingsideRookOffset, 0)
			} else {
				rook.Position = move.From.Offset(queensideRookOffset, 0)
			}
			rook.MoveCount--
		}
	}
	piece.Position = move.From
	piece.MoveCount--
	b.UpdateGrid()
	return nil
}

func capturePiece(b *chess.Board, by chess.Colour, target *chess.Piece) {
	target.Active = false
	b.RecordCapture(by, target.ID)
}

func uncapturePiece(b *chess.Board, by chess.Colour, id chess.PieceID) {
	if p := b.Piece(id); p != nil {
		p.Active = true
		b.ForgetCapture(by, id)
	}
}

func castlingRookDestination(kingFrom chess.Square, kind chess.MoveKind) chess.Square {
	if kind == chess.CastleKingside {
		return kingFrom.Offset(1, 0)
	}
	return kingFrom.Offset(-1, 0)
}

// enPassantVictimSquare is the square one rank behind the destination, seen
// from the capturing side.
func enPassantVictimSquare(capturer chess.Colour, destination chess.Square) chess.Square {
	return destination.Offset(0, -capturer.Direction())
}
