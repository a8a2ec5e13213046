// Package errors provides sentinel errors and error types for the checkmate engine.
// It defines the failure conditions a move submission or a loader can report and
// structured error types that preserve context while allowing inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidMove indicates illegal geometry, an empty origin, an off-board
	// destination or a destination held by a piece of the mover's colour.
	ErrInvalidMove = errors.New("invalid move")

	// ErrIllegalExposesKing indicates a geometrically legal move that leaves the
	// mover's own king in check.
	ErrIllegalExposesKing = errors.New("move leaves own king in check")

	// ErrNoMoveToUndo indicates an undo with an empty move history.
	ErrNoMoveToUndo = errors.New("no move to undo")

	// ErrNoMoveToRedo indicates a redo with an empty redo stack.
	ErrNoMoveToRedo = errors.New("no move to redo")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPGN indicates malformed PGN input.
	ErrInvalidPGN = errors.New("invalid PGN")

	// ErrUnresolvableMove indicates a SAN token that maps to no piece or to more
	// than one piece of the side to move.
	ErrUnresolvableMove = errors.New("unresolvable move")

	// ErrUnknownMoveType indicates a move kind outside the closed set.
	// It is an internal invariant violation, not bad input.
	ErrUnknownMoveType = errors.New("unknown move type")

	// ErrInvalidPromotion indicates a promotion choice other than queen, rook,
	// bishop or knight.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a move failure with the ply and squares involved.
type MoveError struct {
	Err         error  // The underlying error
	Ply         int    // 1-based ply the move would have been (0 if unknown)
	Origin      string // Origin square in algebraic form (if known)
	Destination string // Destination square in algebraic form (if known)
	MoveText    string // SAN text being replayed (if any)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Origin != "" || e.Destination != "" {
		parts = append(parts, fmt.Sprintf("%s-%s", orDash(e.Origin), orDash(e.Destination)))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

func orDash(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// ParseError represents a FEN or PGN loading error with its location.
type ParseError struct {
	Err   error  // The underlying error
	Input string // "FEN" or "PGN"
	Field string // FEN field or PGN section name
	Line  int    // Line number (1-based, PGN only)
	Token string // Offending token
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	loc := e.Input
	if e.Field != "" {
		if loc != "" {
			loc += " "
		}
		loc += e.Field
	}
	if e.Line > 0 {
		loc += fmt.Sprintf(" line %d", e.Line)
	}
	if loc = strings.TrimSpace(loc); loc != "" {
		parts = append(parts, loc)
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Token))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessage(err, context)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessagef(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
