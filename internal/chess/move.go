package chess

import (
	"fmt"
	"strings"
	"time"
)

// MoveKind classifies a half-move. The set is closed: Valid reports whether a
// value belongs to it.
type MoveKind int

const (
	Normal MoveKind = iota
	Capture
	CastleKingside
	CastleQueenside
	Promotion
	PromotionCapture
	EnPassant
)

var moveKindNames = [...]string{
	Normal:           "Normal",
	Capture:          "Capture",
	CastleKingside:   "CastleKingside",
	CastleQueenside:  "CastleQueenside",
	Promotion:        "Promotion",
	PromotionCapture: "PromotionCapture",
	EnPassant:        "EnPassant",
}

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	if k.Valid() {
		return moveKindNames[k]
	}
	return fmt.Sprintf("MoveKind(%d)", int(k))
}

// Valid reports whether k is one of the defined move kinds.
func (k MoveKind) Valid() bool {
	return k >= Normal && k <= EnPassant
}

// IsCapture reports whether the kind removes an enemy piece.
func (k MoveKind) IsCapture() bool {
	return k == Capture || k == PromotionCapture || k == EnPassant
}

// IsCastle reports whether the kind is either castling move.
func (k MoveKind) IsCastle() bool {
	return k == CastleKingside || k == CastleQueenside
}

// IsPromotion reports whether the kind changes the moving pawn's type.
func (k MoveKind) IsPromotion() bool {
	return k == Promotion || k == PromotionCapture
}

// Move records one executed half-move. A Move is a value: once returned by
// the actions engine it is never modified.
type Move struct {
	PieceID   PieceID
	Piece     PieceType // type before the move (Pawn for promotions)
	Colour    Colour
	From      Square
	To        Square
	Kind      MoveKind
	Captured  PieceID // NoPieceID unless Kind.IsCapture()
	Promotion PieceType

	// Position flags computed against the board after the move.
	Check                bool
	Checkmate            bool
	Stalemate            bool
	InsufficientMaterial bool

	SAN       string
	Timestamp time.Time
}

// IsCapture reports whether the move removed an enemy piece.
func (m Move) IsCapture() bool {
	return m.Kind.IsCapture()
}

// UCI returns the move in long algebraic form, e.g. "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Kind.IsPromotion() {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// Summary returns a one-line human readable description of the move.
func (m Move) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s-%s (%s)", m.Colour, m.Piece, m.From, m.To, m.Kind)
	if m.Kind.IsPromotion() {
		fmt.Fprintf(&sb, " promotes to %s", m.Promotion)
	}
	switch {
	case m.Checkmate:
		sb.WriteString(" checkmate")
	case m.Check:
		sb.WriteString(" check")
	}
	if m.Stalemate {
		sb.WriteString(" stalemate")
	}
	if m.InsufficientMaterial {
		sb.WriteString(" insufficient material")
	}
	return sb.String()
}
