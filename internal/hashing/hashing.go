// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/engine"
)

// Zobrist keys, fixed for the lifetime of the process.
var (
	pieceKeys     [2][7][chess.NumSquares]uint64 // colour, piece type, square
	blackToMove   uint64
	castlingKeys  [4]uint64 // K, Q, k, q
	enPassantKeys [chess.BoardSize]uint64
)

func init() {
	state := uint64(0x9E3779B97F4A7C15)
	for c := range pieceKeys {
		for t := range pieceKeys[c] {
			for sq := range pieceKeys[c][t] {
				pieceKeys[c][t][sq] = splitmix64(&state)
			}
		}
	}
	blackToMove = splitmix64(&state)
	for i := range castlingKeys {
		castlingKeys[i] = splitmix64(&state)
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = splitmix64(&state)
	}
}

// splitmix64 advances state and returns the next pseudo-random value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// PositionHash returns the Zobrist hash of the placement, side to move,
// castling rights and en-passant square. Move clocks are not included.
func PositionHash(b *chess.Board) uint64 {
	var h uint64
	for _, p := range b.Pieces {
		if p.Active {
			h ^= pieceKeys[p.Colour][p.Type][p.Position]
		}
	}
	if b.ToMove == chess.Black {
		h ^= blackToMove
	}
	for i, right := range []byte("KQkq") {
		if b.CastlingAvailable(right) {
			h ^= castlingKeys[i]
		}
	}
	if b.EnPassant != nil {
		h ^= enPassantKeys[b.EnPassant.Square.File()]
	}
	return h
}

// GameSignature identifies the final position of a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// Plies is the number of half-moves played
	Plies int
	// Key is the position key, compared to rule out hash collisions
	Key string
}

// DuplicateDetector remembers the final positions of the games it has seen.
// It is not safe for concurrent use.
type DuplicateDetector struct {
	table      map[uint64][]GameSignature
	exactMatch bool
	duplicates int
}

// NewDuplicateDetector creates a detector. With exactMatch, games are only
// duplicates if they also have the same number of half-moves.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		table:      make(map[uint64][]GameSignature),
		exactMatch: exactMatch,
	}
}

// Signature builds the signature of a game that ended on b after plies
// half-moves.
func Signature(b *chess.Board, plies int) GameSignature {
	return GameSignature{
		Hash:  PositionHash(b),
		Plies: plies,
		Key:   engine.PositionKey(b),
	}
}

// CheckAndAdd reports whether a game ending on b after plies half-moves
// duplicates an earlier one. New games are remembered.
func (d *DuplicateDetector) CheckAndAdd(b *chess.Board, plies int) bool {
	sig := Signature(b, plies)
	for _, seen := range d.table[sig.Hash] {
		if d.matches(sig, seen) {
			d.duplicates++
			return true
		}
	}
	d.table[sig.Hash] = append(d.table[sig.Hash], sig)
	return false
}

func (d *DuplicateDetector) matches(a, b GameSignature) bool {
	if a.Key != b.Key {
		return false
	}
	return !d.exactMatch || a.Plies == b.Plies
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicates
}

// UniqueCount returns the number of distinct games remembered.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.table {
		count += len(sigs)
	}
	return count
}

// Reset forgets every game.
func (d *DuplicateDetector) Reset() {
	d.table = make(map[uint64][]GameSignature)
	d.duplicates = 0
}
