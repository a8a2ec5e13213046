package engine

import (
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
)

// EnPassantAnnotation is appended to the SAN of en-passant captures when
// annotation is enabled.
const EnPassantAnnotation = " e.p."

// Disambiguation returns the origin file, rank or both needed to tell piece
// apart from other pieces of the same type and colour that could legally
// move to dest. It returns "" when no other piece can.
func Disambiguation(b *chess.Board, piece *chess.Piece, dest chess.Square) string {
	var rivals []*chess.Piece
	for _, p := range b.ActivePieces(piece.Colour) {
		if p == piece || p.Type != piece.Type {
			continue
		}
		if PseudoLegal(b, p, dest) && IsLegalMove(b, p, dest, dest) {
			rivals = append(rivals, p)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, r := range rivals {
		if r.Position.File() == piece.Position.File() {
			sameFile = true
		}
		if r.Position.Rank() == piece.Position.Rank() {
			sameRank = true
		}
	}
	from := piece.Position.String()
	switch {
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}

// sanBody renders the SAN of m without the check suffix. It must be called
// on the position before the move.
func sanBody(b *chess.Board, piece *chess.Piece, m chess.Move) string {
	switch m.Kind {
	case chess.CastleKingside:
		return "O-O"
	case chess.CastleQueenside:
		return "O-O-O"
	}

	var sb strings.Builder
	if piece.Type != chess.Pawn {
		sb.WriteByte(piece.Type.Letter())
		sb.WriteString(Disambiguation(b, piece, m.To))
	} else if m.IsCapture() {
		sb.WriteByte(byte('a' + m.From.File()))
	}
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.Kind.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	return sb.String()
}

func checkSuffix(s Status) string {
	switch {
	case s.Checkmate:
		return "#"
	case s.Check:
		return "+"
	}
	return ""
}
