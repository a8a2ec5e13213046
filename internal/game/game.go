// Package game implements a chess game session on top of the rules engine.
//
// A Game owns one board and serialises everything that changes it: move
// submission (with rollback of moves that expose the mover's king), undo and
// redo, absolute navigation expressed as repeated undo/redo, FEN and PGN
// loading, and PGN export. Every committed change produces an
// output.Snapshot which is returned to the caller and sent to listeners.
//
// A Game is not safe for concurrent use. Callers must not submit a move
// while another submission is waiting on the promotion resolver.
package game

import (
	"github.com/google/uuid"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/config"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/eval"
)

// Listener receives the snapshot emitted after each state change.
type Listener func(snap *Snapshot)

// Option configures a Game.
type Option func(*Game)

// WithPromotionResolver sets the resolver asked for the promotion piece
// when a move does not name one.
func WithPromotionResolver(r PromotionResolver) Option {
	return func(g *Game) {
		g.resolver = r
	}
}

// WithEvaluator replaces the default piece-square evaluator.
func WithEvaluator(e eval.Evaluator) Option {
	return func(g *Game) {
		g.evaluator = e
	}
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(g *Game) {
		g.listeners = append(g.listeners, l)
	}
}

// Game is one game session.
type Game struct {
	id  string
	cfg *config.Config

	board     *chess.Board
	history   []chess.Move
	redo      []chess.Move
	halfmoves []int // clock before each history move

	// Position the history starts from
	startFEN       string
	startEnPassant *chess.EnPassantState
	startFullmove  int
	startColour    chess.Colour

	tags chess.Tags

	selected chess.Square

	resolver  PromotionResolver
	evaluator eval.Evaluator
	listeners []Listener
}

// New creates a game in the standard starting position.
// If cfg is nil, a default config is used.
func New(cfg *config.Config, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	g := &Game{
		id:        uuid.NewString(),
		cfg:       cfg,
		board:     chess.NewInitialBoard(),
		tags:      chess.Tags{},
		selected:  chess.NoSquare,
		resolver:  AutoQueen,
		evaluator: eval.NewPieceSquare(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.board.Castling = engine.CastlingRights(g.board)
	g.markStart()
	return g
}

// markStart records the current board as the start of an empty history.
func (g *Game) markStart() {
	b := g.board
	g.history = nil
	g.redo = nil
	g.halfmoves = nil
	g.selected = chess.NoSquare
	g.startFEN = engine.GenerateFEN(b)
	g.startEnPassant = b.EnPassant
	g.startFullmove = b.FullmoveNumber
	g.startColour = b.ToMove
	b.Repetitions.Reset()
	b.Repetitions.Push(engine.PositionKey(b))
}

// Subscribe registers a listener for future snapshots.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// ID returns the session identifier.
func (g *Game) ID() string {
	return g.id
}

// Board returns the board. Callers must treat it as read-only.
func (g *Game) Board() *chess.Board {
	return g.board
}

// ToMove returns the colour to move.
func (g *Game) ToMove() chess.Colour {
	return g.board.ToMove
}

// FEN returns the FEN of the current position.
func (g *Game) FEN() string {
	return engine.GenerateFEN(g.board)
}

// History returns a copy of the committed moves, oldest first.
func (g *Game) History() []chess.Move {
	return append([]chess.Move(nil), g.history...)
}

// LastMove returns the most recent committed move.
func (g *Game) LastMove() (chess.Move, bool) {
	if len(g.history) == 0 {
		return chess.Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// TotalMoves returns the number of half-moves in the game line: those
// played plus those that can be redone.
func (g *Game) TotalMoves() int {
	return len(g.history) + len(g.redo)
}

// Cursor returns the number of half-moves currently played, the index
// understood by GoTo.
func (g *Game) Cursor() int {
	return len(g.history)
}

// Tags returns the PGN tags recorded by the last PGN load.
func (g *Game) Tags() chess.Tags {
	return g.tags
}

// SetTag sets a PGN tag used on export.
func (g *Game) SetTag(name, value string) {
	g.tags.Set(name, value)
}

// LegalDestinations returns the legal destinations of the piece on sq,
// whatever its colour, or nil for an empty square.
func (g *Game) LegalDestinations(sq chess.Square) []chess.Square {
	p := g.board.At(sq)
	if p == nil {
		return nil
	}
	return engine.LegalDestinations(g.board, p)
}

// CapturedPieces lists captured pieces by the colour that took them, in
// capture order, and optionally grouped by piece type.
type CapturedPieces struct {
	ByWhite []chess.Piece
	ByBlack []chess.Piece

	// Set only when grouping was requested
	ByWhiteType map[chess.PieceType][]chess.Piece
	ByBlackType map[chess.PieceType][]chess.Piece
}

// CapturedPieces returns the captured pieces, grouped by type when grouped
// is set.
func (g *Game) CapturedPieces(grouped bool) CapturedPieces {
	var c CapturedPieces
	c.ByWhite = g.capturedBy(chess.White)
	c.ByBlack = g.capturedBy(chess.Black)
	if grouped {
		c.ByWhiteType = groupByType(c.ByWhite)
		c.ByBlackType = groupByType(c.ByBlack)
	}
	return c
}

func (g *Game) capturedBy(colour chess.Colour) []chess.Piece {
	ids := g.board.Captured[colour]
	pieces := make([]chess.Piece, 0, len(ids))
	for _, id := range ids {
		if p := g.board.Piece(id); p != nil {
			pieces = append(pieces, *p)
		}
	}
	return pieces
}

func groupByType(pieces []chess.Piece) map[chess.PieceType][]chess.Piece {
	groups := make(map[chess.PieceType][]chess.Piece)
	for _, p := range pieces {
		groups[p.Type] = append(groups[p.Type], p)
	}
	return groups
}
