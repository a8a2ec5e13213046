package chess

import "slices"

// EnPassantState describes a pawn that may be captured en passant on the
// next half-move.
type EnPassantState struct {
	Square    Square    // square the capturing pawn lands on
	Target    PieceID   // pawn that just advanced two squares
	Attackers []PieceID // enemy pawns beside it on the same rank
}

// HasAttacker reports whether id may capture en passant.
func (e *EnPassantState) HasAttacker(id PieceID) bool {
	return e != nil && slices.Contains(e.Attackers, id)
}

// Board owns the piece arena and the state of a chess position.
// The grid is derived from the active pieces and rebuilt by UpdateGrid.
type Board struct {
	// Pieces is the arena indexed by PieceID. Records are never removed.
	Pieces []*Piece

	grid [NumSquares]PieceID

	ToMove         Colour
	Castling       string // subset of "KQkq" in that order, "" for none
	EnPassant      *EnPassantState
	HalfmoveClock  int
	FullmoveNumber int

	// Captured lists the pieces taken by each colour, in capture order.
	Captured map[Colour][]PieceID

	// Repetitions counts occurrences of position keys.
	Repetitions *RepetitionTable
}

// NewBoard creates an empty board with White to move.
func NewBoard() *Board {
	b := &Board{
		Captured:    make(map[Colour][]PieceID),
		Repetitions: NewRepetitionTable(),
	}
	b.Reset()
	return b
}

// NewInitialBoard creates a board set up in the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// Reset clears the position. Existing piece records are deactivated and
// un-promoted so that AddPiece can reuse them.
func (b *Board) Reset() {
	for _, p := range b.Pieces {
		p.Demote()
		p.Active = false
		p.MoveCount = 0
	}
	b.ToMove = White
	b.Castling = ""
	b.EnPassant = nil
	b.HalfmoveClock = 0
	b.FullmoveNumber = 1
	clear(b.Captured)
	b.Repetitions.Reset()
	b.UpdateGrid()
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetupInitialPosition resets the board to the standard starting array.
func (b *Board) SetupInitialPosition() {
	b.Reset()
	for file := 0; file < BoardSize; file++ {
		b.AddPiece(backRank[file], White, NewSquare(file, 0))
		b.AddPiece(Pawn, White, NewSquare(file, 1))
		b.AddPiece(Pawn, Black, NewSquare(file, 6))
		b.AddPiece(backRank[file], Black, NewSquare(file, 7))
	}
	b.Castling = "KQkq"
	b.UpdateGrid()
}

// AddPiece places a piece on sq. An inactive record of the same type and
// colour is reused before a new one is allocated. The grid is not rebuilt.
func (b *Board) AddPiece(t PieceType, c Colour, sq Square) *Piece {
	for _, p := range b.Pieces {
		if !p.Active && p.Type == t && p.Colour == c {
			p.Position = sq
			p.InitialPosition = sq
			p.MoveCount = 0
			p.Active = true
			return p
		}
	}
	p := &Piece{
		ID:              PieceID(len(b.Pieces)),
		Type:            t,
		Colour:          c,
		Position:        sq,
		InitialPosition: sq,
		Active:          true,
		Value:           t.Value(),
	}
	b.Pieces = append(b.Pieces, p)
	return p
}

// UpdateGrid rebuilds the occupancy grid from the active pieces.
func (b *Board) UpdateGrid() {
	for i := range b.grid {
		b.grid[i] = NoPieceID
	}
	for _, p := range b.Pieces {
		if p.Active && p.Position.Valid() {
			b.grid[p.Position] = p.ID
		}
	}
}

// At returns the active piece on sq, or nil.
func (b *Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	id := b.grid[sq]
	if id == NoPieceID {
		return nil
	}
	return b.Pieces[id]
}

// Piece returns the record with the given id, or nil.
func (b *Board) Piece(id PieceID) *Piece {
	if id < 0 || int(id) >= len(b.Pieces) {
		return nil
	}
	return b.Pieces[id]
}

// IsEmpty reports whether no active piece stands on sq.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == nil
}

// ActivePieces returns the active pieces of colour c in arena order.
func (b *Board) ActivePieces(c Colour) []*Piece {
	var out []*Piece
	for _, p := range b.Pieces {
		if p.Active && p.Colour == c {
			out = append(out, p)
		}
	}
	return out
}

// King returns the active king of colour c, or nil.
func (b *Board) King(c Colour) *Piece {
	for _, p := range b.Pieces {
		if p.Active && p.Colour == c && p.Type == King {
			return p
		}
	}
	return nil
}

// RecordCapture appends a captured piece to the capturing colour's list.
func (b *Board) RecordCapture(by Colour, id PieceID) {
	b.Captured[by] = append(b.Captured[by], id)
}

// ForgetCapture removes the most recent occurrence of id from the capturing
// colour's list.
func (b *Board) ForgetCapture(by Colour, id PieceID) {
	list := b.Captured[by]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == id {
			b.Captured[by] = slices.Delete(list, i, i+1)
			return
		}
	}
}

// CastlingAvailable reports whether the right identified by its FEN letter
// is present.
func (b *Board) CastlingAvailable(right byte) bool {
	for i := 0; i < len(b.Castling); i++ {
		if b.Castling[i] == right {
			return true
		}
	}
	return false
}

// PieceState is a comparable copy of one piece record.
type PieceState struct {
	ID              PieceID
	Type            PieceType
	Colour          Colour
	Position        Square
	InitialPosition Square
	MoveCount       int
	Active          bool
	Promoted        bool
}

// BoardState is a value copy of the position used to compare boards.
type BoardState struct {
	Grid           [NumSquares]PieceID
	Pieces         []PieceState
	ToMove         Colour
	Castling       string
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
}

// State returns a value copy of the position.
func (b *Board) State() BoardState {
	s := BoardState{
		Grid:           b.grid,
		ToMove:         b.ToMove,
		Castling:       b.Castling,
		EnPassant:      NoSquare,
		HalfmoveClock:  b.HalfmoveClock,
		FullmoveNumber: b.FullmoveNumber,
	}
	if b.EnPassant != nil {
		s.EnPassant = b.EnPassant.Square
	}
	for _, p := range b.Pieces {
		s.Pieces = append(s.Pieces, PieceState{
			ID:              p.ID,
			Type:            p.Type,
			Colour:          p.Colour,
			Position:        p.Position,
			InitialPosition: p.InitialPosition,
			MoveCount:       p.MoveCount,
			Active:          p.Active,
			Promoted:        p.Promoted,
		})
	}
	return s
}

// RepetitionTable counts how often each position key has occurred and keeps
// the order of recording so the last entry can be withdrawn on undo.
type RepetitionTable struct {
	counts  map[string]int
	history []string
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[string]int)}
}

// Push records one occurrence of key.
func (r *RepetitionTable) Push(key string) {
	r.counts[key]++
	r.history = append(r.history, key)
}

// Pop withdraws the most recently recorded key.
func (r *RepetitionTable) Pop() (string, bool) {
	if len(r.history) == 0 {
		return "", false
	}
	key := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	if r.counts[key]--; r.counts[key] <= 0 {
		delete(r.counts, key)
	}
	return key, true
}

// Count returns how often key has been recorded.
func (r *RepetitionTable) Count(key string) int {
	return r.counts[key]
}

// Len returns the number of recorded positions.
func (r *RepetitionTable) Len() int {
	return len(r.history)
}

// Reset empties the table.
func (r *RepetitionTable) Reset() {
	clear(r.counts)
	r.history = r.history[:0]
}
