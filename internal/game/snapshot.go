package game

import (
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
	"github.com/lgbarn/checkmate-go/internal/output"
)

// Snapshot is the state event emitted after each change.
type Snapshot = output.Snapshot

// emit builds a snapshot and hands it to every listener.
func (g *Game) emit() *Snapshot {
	snap := g.Snapshot()
	for _, l := range g.listeners {
		l(snap)
	}
	return snap
}

// Snapshot describes the current state of the game.
func (g *Game) Snapshot() *Snapshot {
	b := g.board
	draw := engine.AnalyzeDrawRules(b)
	status := engine.StateBoard(b, b.ToMove)

	snap := &Snapshot{
		GameID:         g.id,
		FEN:            g.FEN(),
		PGN:            g.MoveText(),
		ToMove:         strings.ToLower(b.ToMove.String()),
		FullmoveNumber: b.FullmoveNumber,
		HalfmoveClock:  b.HalfmoveClock,
		Castling: output.Castling{
			WhiteKingside:  b.CastlingAvailable('K'),
			WhiteQueenside: b.CastlingAvailable('Q'),
			BlackKingside:  b.CastlingAvailable('k'),
			BlackQueenside: b.CastlingAvailable('q'),
		},
		EnPassant:    "-",
		Ply:          len(g.history),
		TotalMoves:   g.TotalMoves(),
		CanClaimDraw: draw.CanClaimDraw(),
		IsDraw:       draw.IsDraw(),
		WhiteInCheck: engine.IsKingInCheck(b, chess.White),
		BlackInCheck: engine.IsKingInCheck(b, chess.Black),
		Checkmate:    status.Checkmate,
		Stalemate:    status.Stalemate,
		Result:       g.Result(),
	}
	if b.EnPassant != nil {
		snap.EnPassant = b.EnPassant.Square.String()
	}
	if m, ok := g.LastMove(); ok {
		snap.LastMove = g.displaySAN(m)
		snap.LastMoveUCI = m.UCI()
	}
	if g.cfg.Evaluate && g.evaluator != nil {
		s := g.evaluator.Evaluate(b)
		snap.Scores = &output.Scores{Score: s.Score, PositionScore: s.PositionScore, PieceScore: s.PieceScore}
	}
	return snap
}

// Result returns the PGN result of the current position: "1-0" or "0-1"
// for checkmate, "1/2-1/2" for a draw that needs no claim, "*" otherwise.
func (g *Game) Result() string {
	b := g.board
	status := engine.StateBoard(b, b.ToMove)
	switch {
	case status.Checkmate && b.ToMove == chess.Black:
		return "1-0"
	case status.Checkmate:
		return "0-1"
	case engine.AnalyzeDrawRules(b).IsDraw():
		return "1/2-1/2"
	}
	return "*"
}

// displaySAN is the SAN used in move text, with the en-passant annotation
// when configured.
func (g *Game) displaySAN(m chess.Move) string {
	if m.Kind == chess.EnPassant && g.cfg.Output.EnPassantSuffix {
		return m.SAN + engine.EnPassantAnnotation
	}
	return m.SAN
}

// Record returns the game for PGN export. Tags default to the configured
// roster values, overridden by loaded or set tags. Games that do not start
// from the standard position carry SetUp and FEN tags.
func (g *Game) Record() *output.Record {
	tags := chess.Tags{}
	for name, value := range g.cfg.Tags.Defaults() {
		tags.Set(name, value)
	}
	for name, value := range g.tags {
		tags.Set(name, value)
	}
	if g.startFEN != engine.InitialFEN {
		tags.Set("SetUp", "1")
		tags.Set("FEN", g.startFEN)
	} else {
		delete(tags, "SetUp")
		delete(tags, "FEN")
	}

	rec := g.moveRecord()
	rec.Tags = tags
	rec.Result = g.Result()
	return rec
}

func (g *Game) moveRecord() *output.Record {
	moves := make([]string, len(g.history))
	for i, m := range g.history {
		moves[i] = g.displaySAN(m)
	}
	return &output.Record{
		Moves:      moves,
		FirstMove:  g.startFullmove,
		BlackFirst: g.startColour == chess.Black,
	}
}

// MoveText returns the numbered SAN of the moves played so far.
func (g *Game) MoveText() string {
	return output.FormatMoveText(g.moveRecord(), g.cfg.Output.MovesPerLine)
}

// ExportPGN renders the game as PGN with the computed result.
func (g *Game) ExportPGN() (string, error) {
	var sb strings.Builder
	if err := output.WritePGN(&sb, g.Record(), int(g.cfg.Output.MaxLineLength)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
