package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// PromotionRequest describes a pawn waiting for its promotion piece.
type PromotionRequest struct {
	Colour chess.Colour
	From   chess.Square
	To     chess.Square
}

// PromotionResolver chooses the piece a pawn promotes to. The move does not
// complete until ResolvePromotion returns.
type PromotionResolver interface {
	ResolvePromotion(ctx context.Context, req PromotionRequest) (chess.PieceType, error)
}

// ResolverFunc adapts a function to the PromotionResolver interface.
type ResolverFunc func(ctx context.Context, req PromotionRequest) (chess.PieceType, error)

// ResolvePromotion calls f and rejects choices other than queen, rook,
// bishop or knight.
func (f ResolverFunc) ResolvePromotion(ctx context.Context, req PromotionRequest) (chess.PieceType, error) {
	t, err := f(ctx, req)
	if err != nil {
		return chess.NoPiece, err
	}
	if !t.IsPromotionChoice() {
		return chess.NoPiece, fmt.Errorf("%v: %w", t, errors.ErrInvalidPromotion)
	}
	return t, nil
}

// AutoQueen always promotes to a queen.
var AutoQueen PromotionResolver = ResolverFunc(func(context.Context, PromotionRequest) (chess.PieceType, error) {
	return chess.Queen, nil
})

// PendingPromotion is a promotion waiting on a ChannelResolver.
type PendingPromotion struct {
	PromotionRequest
	reply chan chess.PieceType
}

// Choose answers the request. It must be called exactly once.
func (p *PendingPromotion) Choose(t chess.PieceType) {
	p.reply <- t
}

// ChannelResolver hands promotion requests to another goroutine, typically
// a user interface, and blocks until it answers or the context ends.
type ChannelResolver struct {
	requests chan *PendingPromotion
}

// NewChannelResolver creates a resolver with an unbuffered request channel.
func NewChannelResolver() *ChannelResolver {
	return &ChannelResolver{requests: make(chan *PendingPromotion)}
}

// Requests returns the channel on which pending promotions are delivered.
func (r *ChannelResolver) Requests() <-chan *PendingPromotion {
	return r.requests
}

// ResolvePromotion publishes req and waits for the answer.
func (r *ChannelResolver) ResolvePromotion(ctx context.Context, req PromotionRequest) (chess.PieceType, error) {
	pending := &PendingPromotion{PromotionRequest: req, reply: make(chan chess.PieceType, 1)}

	select {
	case r.requests <- pending:
	case <-ctx.Done():
		return chess.NoPiece, ctx.Err()
	}

	select {
	case t := <-pending.reply:
		if !t.IsPromotionChoice() {
			return chess.NoPiece, fmt.Errorf("%v: %w", t, errors.ErrInvalidPromotion)
		}
		return t, nil
	case <-ctx.Done():
		return chess.NoPiece, ctx.Err()
	}
}
