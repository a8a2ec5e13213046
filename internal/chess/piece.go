package chess

import "fmt"

// PieceID is the stable index of a piece in the board's arena.
type PieceID int

// NoPieceID marks the absence of a piece.
const NoPieceID PieceID = -1

// Piece is one record of the piece arena. Capture and promotion are state
// transitions on the same record, so a piece keeps its ID for the lifetime
// of the board.
type Piece struct {
	ID              PieceID
	Type            PieceType
	Colour          Colour
	Position        Square // meaningful only while Active
	InitialPosition Square
	MoveCount       int
	Active          bool
	Promoted        bool
	Value           int
}

// Promote turns the piece into t, keeping its identity and move count.
func (p *Piece) Promote(t PieceType) {
	p.Type = t
	p.Value = t.Value()
	p.Promoted = true
}

// Demote reverts a promoted piece to a pawn.
func (p *Piece) Demote() {
	if !p.Promoted {
		return
	}
	p.Type = Pawn
	p.Value = Pawn.Value()
	p.Promoted = false
}

// Letter returns the FEN letter of the piece: uppercase for White.
func (p *Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// Glyph returns the Unicode symbol of the piece.
func (p *Piece) Glyph() string {
	return Glyph(p.Type, p.Colour)
}

// StartedOnLight reports whether the piece began the game on a light square.
func (p *Piece) StartedOnLight() bool {
	return p.InitialPosition.IsLight()
}

// String describes the piece, e.g. "White Bishop #5 on e3 (from f1, light)".
func (p *Piece) String() string {
	shade := "dark"
	if p.StartedOnLight() {
		shade = "light"
	}
	where := "captured"
	if p.Active {
		where = "on " + p.Position.String()
	}
	return fmt.Sprintf("%s %s #%d %s (from %s, %s)", p.Colour, p.Type, p.ID, where, p.InitialPosition, shade)
}

// HasMoved reports whether the piece has made at least one move.
func (p *Piece) HasMoved() bool {
	return p.MoveCount > 0
}
