// Package testutil provides helpers shared by the checkmate-go tests.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/checkmate-go/internal/chess"
	"github.com/lgbarn/checkmate-go/internal/errors"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
func AssertEqual(t testing.TB, got, want interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// AssertErrorIs fails unless err matches target somewhere in its chain.
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
}

// AssertSamePosition reports the first difference between two positions:
// grid, piece records, side to move, castling, en passant and clocks.
func AssertSamePosition(t testing.TB, got, want *chess.Board) {
	t.Helper()
	if diff := cmp.Diff(want.State(), got.State()); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

// Square parses an algebraic square name, failing the test if it is bad.
func Square(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return sq
}
