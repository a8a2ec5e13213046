// Package chess provides the core chess data model: colours, piece types,
// squares, the piece arena, move records and the board that owns them.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the FEN side-to-move letter for the colour.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Direction returns +1 for White, -1 for Black (the pawn direction in ranks).
func (c Colour) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// PieceType represents the kind of a chess piece.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	if p >= 0 && int(p) < len(pieceTypeNames) {
		return pieceTypeNames[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Value returns the material value of a piece type on the engine's scale.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1000
	case Knight:
		return 5000
	case Bishop:
		return 3000
	case Rook:
		return 7000
	case Queen:
		return 10000
	case King:
		return 1
	}
	return 0
}

// IsPromotionChoice reports whether a pawn may promote to p.
func (p PieceType) IsPromotionChoice() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// PieceTypeFromLetter converts a piece letter of either case to its type.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	switch c {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return NoPiece, false
}

// Glyph returns the Unicode chess symbol for a piece of the given colour.
func Glyph(p PieceType, c Colour) string {
	white := [...]string{"", "♙", "♘", "♗", "♖", "♕", "♔"}
	black := [...]string{"", "♟", "♞", "♝", "♜", "♛", "♚"}
	if p < 0 || int(p) >= len(white) {
		return "?"
	}
	if c == White {
		return white[p]
	}
	return black[p]
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// Square is a board index 0-63, rank-major with a1 = 0 and h8 = 63.
type Square int

// NoSquare marks the absence of a square.
const NoSquare Square = -1

// NewSquare builds a square from a 0-based file and rank.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// File returns the 0-based file (a = 0).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank (rank 1 = 0).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Offset returns the square df files and dr ranks away, or NoSquare when
// that leaves the board.
func (s Square) Offset(df, dr int) Square {
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// IsLight reports whether the square is a light square.
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// ParseSquare converts an algebraic square name such as "e4".
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return NoSquare, false
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return NewSquare(int(file-'a'), int(rank-'1')), true
}
