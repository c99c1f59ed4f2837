package ast

import (
	"errors"
	"fmt"
)

// Sentinel errors, in the style of nfa/error.go in the engines this
// package borrows its conventions from: a small set of package-level
// errors, wrapped with context where the wrapping adds information.
var (
	// ErrUnknownKind is returned when a normalization pass or printer
	// encounters a Node whose Kind it does not recognize.
	ErrUnknownKind = errors.New("ast: unknown node kind")

	// ErrSyntax is returned by Parse for malformed pattern text.
	ErrSyntax = errors.New("ast: syntax error")

	// ErrBareCurly is returned for a Curly node with both bounds
	// unbounded (the C original asserts !(min==-1 && max==-1)), and
	// for a Curly that expands to nothing, such as {0} or {0,0}.
	ErrBareCurly = errors.New("ast: curly quantifier has no bounds")
)

// KindError wraps ErrUnknownKind with the pass name and offending kind,
// matching CompileError's Pattern-plus-Err shape in nfa/error.go.
type KindError struct {
	Pass string
	Kind Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("ast: %s: unknown node kind %v", e.Pass, e.Kind)
}

func (e *KindError) Unwrap() error { return ErrUnknownKind }

// SyntaxError reports a parse failure at a specific byte offset.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ast: syntax error in %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
