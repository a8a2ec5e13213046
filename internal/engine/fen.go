package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	castlingPattern  = regexp.MustCompile(`^[KQkq]+$|^-$`)
	enPassantPattern = regexp.MustCompile(`^[a-h][36]$`)
)

// placement is one piece parsed from the position field.
type placement struct {
	piece  chess.PieceType
	colour chess.Colour
	square chess.Square
}

// fenRecord is a fully validated FEN string, ready to be applied.
type fenRecord struct {
	placements []placement
	toMove     chess.Colour
	castling   string
	enPassant  chess.Square
	halfmove   int
	fullmove   int
}

// NewBoardFromFEN creates a board from a FEN string.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	b := chess.NewBoard()
	if err := ApplyFEN(b, fen); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyFEN resets b and repopulates it from fen. The string is validated in
// full before b is touched, so a malformed FEN leaves b unchanged. Existing
// inactive piece records are reused for the new placement.
func ApplyFEN(b *chess.Board, fen string) error {
	rec, err := parseFEN(fen)
	if err != nil {
		return err
	}

	b.Reset()
	for _, pl := range rec.placements {
		b.AddPiece(pl.piece, pl.colour, pl.square)
	}
	b.UpdateGrid()
	b.ToMove = rec.toMove
	b.HalfmoveClock = rec.halfmove
	b.FullmoveNumber = rec.fullmove

	applyCastlingField(b, rec.castling)
	b.Castling = CastlingRights(b)

	if rec.enPassant.Valid() {
		// The pawn that just moved stands one rank beyond the target square.
		pawnSquare := rec.enPassant.Offset(0, rec.toMove.Opposite().Direction())
		pawn := b.At(pawnSquare)
		pawn.InitialPosition = pawnSquare.Offset(0, -2*pawn.Colour.Direction())
		pawn.MoveCount = 1
		b.EnPassant = CanBeCapturedEnPassant(b, pawnSquare)
	}
	return nil
}

// applyCastlingField sets move counts so that the loaded castling rights
// are reproduced by CastlingRights: kings and rooks not named by a right are
// treated as having moved.
func applyCastlingField(b *chess.Board, field string) {
	for _, p := range b.Pieces {
		if p.Active && (p.Type == chess.King || p.Type == chess.Rook) {
			p.MoveCount = 1
		}
	}
	for _, r := range field {
		c := chess.White
		rank := 0
		if r == 'k' || r == 'q' {
			c, rank = chess.Black, 7
		}
		rookFile := 7
		if r == 'Q' || r == 'q' {
			rookFile = 0
		}
		if king := b.At(chess.NewSquare(4, rank)); king != nil && king.Type == chess.King && king.Colour == c {
			king.MoveCount = 0
		}
		if rook := b.At(chess.NewSquare(rookFile, rank)); rook != nil && rook.Type == chess.Rook && rook.Colour == c {
			rook.MoveCount = 0
		}
	}
}

// parseFEN validates every field and reports all problems together.
func parseFEN(fen string) (*fenRecord, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, &errors.ParseError{
			Err:   fmt.Errorf("expected 4 to 6 fields, got %d: %w", len(parts), errors.ErrInvalidFEN),
			Input: "FEN",
		}
	}

	rec := &fenRecord{enPassant: chess.NoSquare, halfmove: 0, fullmove: 1}
	var result *multierror.Error

	placements, err := parsePiecePositions(parts[0])
	result = multierror.Append(result, err)
	rec.placements = placements

	rec.toMove, err = parseSideToMove(parts[1])
	result = multierror.Append(result, err)

	rec.castling, err = parseCastlingRights(parts[2])
	result = multierror.Append(result, err)

	rec.enPassant, err = parseEnPassant(parts[3], rec.toMove, placements)
	result = multierror.Append(result, err)

	rec.halfmove, rec.fullmove, err = parseClocks(parts[4:])
	result = multierror.Append(result, err)

	if result.ErrorOrNil() == nil {
		return rec, nil
	}
	result.ErrorFormat = joinFieldErrors
	return nil, result
}

// joinFieldErrors renders all FEN field errors on one line.
func joinFieldErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func fieldError(field, token, format string, args ...interface{}) error {
	return &errors.ParseError{
		Err:   fmt.Errorf(format+": %w", append(args, errors.ErrInvalidFEN)...),
		Input: "FEN",
		Field: field,
		Token: token,
	}
}

// parsePiecePositions parses the piece placement field. Rows are given from
// rank 8 down to rank 1 and each must cover exactly eight files.
func parsePiecePositions(positions string) ([]placement, error) {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.BoardSize {
		return nil, fieldError("placement", positions, "expected 8 ranks, got %d", len(rows))
	}

	var out []placement
	kings := map[chess.Colour]int{}
	for i := len(rows) - 1; i >= 0; i-- {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range rows[i] {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			t, ok := chess.PieceTypeFromLetter(byte(c))
			if !ok || c > 'z' {
				return nil, fieldError("placement", string(c), "invalid piece character")
			}
			if file >= chess.BoardSize {
				return nil, fieldError("placement", rows[i], "rank %d covers more than 8 files", rank+1)
			}
			colour := chess.White
			if c >= 'a' {
				colour = chess.Black
			}
			if t == chess.Pawn && (rank == 0 || rank == 7) {
				return nil, fieldError("placement", rows[i], "pawn on rank %d", rank+1)
			}
			if t == chess.King {
				kings[colour]++
			}
			out = append(out, placement{piece: t, colour: colour, square: chess.NewSquare(file, rank)})
			file++
		}
		if file != chess.BoardSize {
			return nil, fieldError("placement", rows[i], "rank %d covers %d files", rank+1, file)
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return nil, fieldError("placement", positions, "need one king per side, got %d white and %d black",
			kings[chess.White], kings[chess.Black])
	}
	return out, nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, fieldError("side to move", field, "expected w or b")
}

// parseCastlingRights validates the castling availability field.
func parseCastlingRights(field string) (string, error) {
	if !castlingPattern.MatchString(field) {
		return "", fieldError("castling", field, "expected a subset of KQkq or -")
	}
	if field == "-" {
		return "", nil
	}
	return field, nil
}

// parseEnPassant validates the en passant target square and checks that the
// pawn which just advanced stands beyond it.
func parseEnPassant(field string, toMove chess.Colour, placements []placement) (chess.Square, error) {
	if field == "-" {
		return chess.NoSquare, nil
	}
	if !enPassantPattern.MatchString(field) {
		return chess.NoSquare, fieldError("en passant", field, "expected a square on rank 3 or 6")
	}
	sq, _ := chess.ParseSquare(field)
	mover := toMove.Opposite()
	if (mover == chess.White && sq.Rank() != 2) || (mover == chess.Black && sq.Rank() != 5) {
		return chess.NoSquare, fieldError("en passant", field, "square does not match side to move")
	}
	pawnSquare := sq.Offset(0, mover.Direction())
	for _, pl := range placements {
		if pl.square == pawnSquare && pl.piece == chess.Pawn && pl.colour == mover {
			return sq, nil
		}
	}
	return chess.NoSquare, fieldError("en passant", field, "no %s pawn on %s", mover, pawnSquare)
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(fields []string) (int, int, error) {
	half, full := 0, 1
	if len(fields) >= 1 {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return 0, 1, fieldError("halfmove clock", fields[0], "expected a non-negative number")
		}
		half = n
	}
	if len(fields) >= 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return 0, 1, fieldError("fullmove number", fields[1], "expected a positive number")
		}
		full = n
	}
	return half, full, nil
}

// GenerateFEN converts a board to a FEN string.
func GenerateFEN(b *chess.Board) string {
	var sb strings.Builder
	writePositionKey(&sb, b)
	fmt.Fprintf(&sb, " %d %d", b.HalfmoveClock, b.FullmoveNumber)
	return sb.String()
}

// PositionKey returns the first four FEN fields. It identifies a position
// for repetition counting, where the clocks must not take part.
func PositionKey(b *chess.Board) string {
	var sb strings.Builder
	writePositionKey(&sb, b)
	return sb.String()
}

func writePositionKey(sb *strings.Builder, b *chess.Board) {
	writePiecePositions(sb, b)
	sb.WriteByte(' ')
	sb.WriteByte(b.ToMove.Letter())
	sb.WriteByte(' ')
	if b.Castling == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.Castling)
	}
	sb.WriteByte(' ')
	if b.EnPassant != nil {
		sb.WriteString(b.EnPassant.Square.String())
	} else {
		sb.WriteByte('-')
	}
}

// writePiecePositions writes the piece placement, rank 8 first.
func writePiecePositions(sb *strings.Builder, b *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < chess.BoardSize; file++ {
			p := b.At(chess.NewSquare(file, rank))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
