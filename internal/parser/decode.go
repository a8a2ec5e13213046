package parser

import (
	"strings"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// NoHint marks an absent origin file or rank in a decoded move.
const NoHint = -1

// Move is one SAN token decoded without reference to a position.
// Resolving it to a piece on the board is the game's job.
type Move struct {
	Text      string          // Token as written, without check or annotation suffixes
	Piece     chess.PieceType // Piece letter, Pawn when omitted
	FromFile  int             // Origin file hint 0-7, or NoHint
	FromRank  int             // Origin rank hint 0-7, or NoHint
	To        chess.Square    // Destination (NoSquare for castling)
	Capture   bool
	Promotion chess.PieceType
	Castle    chess.MoveKind // CastleKingside, CastleQueenside or Normal
	Check     bool
	Mate      bool
	EnPassant bool // "e.p." followed the move

	NAGs     []string
	Comments []string
}

// IsCastle reports whether the move is a castling token.
func (m *Move) IsCastle() bool {
	return m.Castle.IsCastle()
}

// isCol returns true if c is a valid column (file) character.
func isCol(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// isPiece returns the piece type named by an uppercase SAN piece letter.
// Lowercase letters are files, so 'b' is never a bishop.
func isPiece(c byte) chess.PieceType {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N', 'P':
		t, _ := chess.PieceTypeFromLetter(c)
		return t
	}
	return chess.NoPiece
}

// isCapture returns true if c is a capture or separator character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':' || c == '-'
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// isAnnotation returns true for the move quality suffixes.
func isAnnotation(c byte) bool {
	return c == '!' || c == '?'
}

func decodeError(text string) error {
	return &errors.ParseError{Err: errors.ErrInvalidPGN, Input: "PGN", Field: "move", Token: text}
}

// DecodeMove parses SAN text into a Move. Both "e8=Q" and "e8Q" promotions,
// long algebraic "Ng1-f3", and castling written with O, o or 0 are accepted.
func DecodeMove(text string) (*Move, error) {
	move := &Move{
		Piece:    chess.Pawn,
		FromFile: NoHint,
		FromRank: NoHint,
		To:       chess.NoSquare,
		Castle:   chess.Normal,
	}

	body := text
suffixes:
	for len(body) > 0 {
		switch c := body[len(body)-1]; {
		case c == '#':
			move.Mate = true
		case c == '+':
			move.Check = true
		case isAnnotation(c):
		default:
			break suffixes
		}
		body = body[:len(body)-1]
	}
	move.Text = body
	if body == "" {
		return nil, decodeError(text)
	}

	if isCastlingChar(body[0]) {
		switch strings.Map(normaliseCastling, body) {
		case "O-O":
			move.Piece = chess.King
			move.Castle = chess.CastleKingside
			return move, nil
		case "O-O-O":
			move.Piece = chess.King
			move.Castle = chess.CastleQueenside
			return move, nil
		}
		return nil, decodeError(text)
	}

	if t := isPiece(body[0]); t != chess.NoPiece {
		move.Piece = t
		body = body[1:]
	}

	// Promotion suffix
	if n := len(body); n > 0 {
		if t := isPiece(body[n-1]); t.IsPromotionChoice() {
			move.Promotion = t
			body = body[:n-1]
			body = strings.TrimSuffix(body, "=")
		}
	}
	if move.Promotion != chess.NoPiece && move.Piece != chess.Pawn {
		return nil, decodeError(text)
	}

	// Destination square
	n := len(body)
	if n < 2 || !isCol(body[n-2]) || !isRank(body[n-1]) {
		return nil, decodeError(text)
	}
	move.To, _ = chess.ParseSquare(body[n-2:])
	body = body[:n-2]

	if n := len(body); n > 0 && isCapture(body[n-1]) {
		move.Capture = body[n-1] != '-'
		body = body[:n-1]
	}

	// Whatever remains is origin disambiguation
	if len(body) > 0 && isCol(body[0]) {
		move.FromFile = int(body[0] - 'a')
		body = body[1:]
	}
	if len(body) > 0 && isRank(body[0]) {
		move.FromRank = int(body[0] - '1')
		body = body[1:]
	}
	if body != "" {
		return nil, decodeError(text)
	}

	if move.Piece == chess.Pawn {
		promotes := move.To.Rank() == 0 || move.To.Rank() == chess.BoardSize-1
		if promotes != (move.Promotion != chess.NoPiece) {
			return nil, decodeError(text)
		}
	}
	return move, nil
}

func normaliseCastling(r rune) rune {
	if r == 'o' || r == '0' {
		return 'O'
	}
	return r
}
