package game

import (
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/errors"
	"github.com/lgbarn/checkmate-go/internal/parser"
)

// maxFENFields separates FEN from PGN input in LoadText.
const maxFENFields = 6

// Restart sets up the standard starting position with an empty history.
func (g *Game) Restart() *Snapshot {
	g.board.SetupInitialPosition()
	g.board.Castling = engine.CastlingRights(g.board)
	g.tags = chess.Tags{}
	g.markStart()
	return g.emit()
}

// LoadFEN replaces the position with fen and clears the history. A
// malformed FEN leaves the game untouched.
func (g *Game) LoadFEN(fen string) (*Snapshot, error) {
	fen = strings.TrimSpace(fen)
	if err := engine.ApplyFEN(g.board, fen); err != nil {
		return nil, err
	}
	g.tags = chess.Tags{}
	g.markStart()
	g.cfg.Logf(1, "Loaded FEN %s", fen)
	return g.emit(), nil
}

// LoadPGN replaces the game with the first game in text, replaying its
// moves from the standard position or from its FEN tag. On any error the
// game is left untouched.
func (g *Game) LoadPGN(text string) (*Snapshot, error) {
	pg, err := parser.ParseString(text, g.cfg)
	if err != nil {
		return nil, err
	}
	return g.LoadGame(pg)
}

// LoadText loads input with at most six whitespace separated fields as FEN
// and anything longer as PGN.
func (g *Game) LoadText(text string) (*Snapshot, error) {
	fields := strings.Fields(text)
	if len(fields) <= maxFENFields {
		return g.LoadFEN(strings.Join(fields, " "))
	}
	return g.LoadPGN(text)
}

// LoadGame replaces the game with a parsed PGN game. Moves are replayed on
// a scratch game which is adopted only when every move succeeds.
func (g *Game) LoadGame(pg *parser.Game) (*Snapshot, error) {
	scratch := &Game{
		id:        g.id,
		cfg:       g.cfg,
		board:     chess.NewBoard(),
		selected:  chess.NoSquare,
		resolver:  g.resolver,
		evaluator: g.evaluator,
		listeners: g.listeners,
	}

	start := engine.InitialFEN
	if fen := pg.Tags.Get("FEN"); fen != "" {
		start = fen
	}
	if err := engine.ApplyFEN(scratch.board, start); err != nil {
		return nil, errors.Wrap(err, "PGN FEN tag")
	}
	scratch.markStart()

	for i, m := range pg.Moves {
		if err := scratch.replay(m); err != nil {
			return nil, &errors.MoveError{Err: err, Ply: i + 1, MoveText: m.Text}
		}
	}

	scratch.tags = chess.Tags{}
	for name, value := range pg.Tags {
		scratch.tags.Set(name, value)
	}
	*g = *scratch

	g.cfg.Logf(1, "Loaded PGN game %q vs %q, %d moves", g.tags.Get("White"), g.tags.Get("Black"), len(g.history))
	return g.emit(), nil
}

// replay resolves one SAN move and commits it.
func (g *Game) replay(m *parser.Move) error {
	p, destination, kind, err := g.resolveSAN(m)
	if err != nil {
		return err
	}
	_, err = g.commit(p, destination, kind, m.Promotion)
	return err
}
