package build

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/chi/internal/syntax"
)

// ErrorKind classifies a tree building failure.
type ErrorKind uint8

const (
	// NoKind is returned by KindOf for errors that did not come from the
	// tree builder.
	NoKind ErrorKind = iota

	// MalformedTree: the concrete tree does not have the shape expected
	// for the construct at this position, or uses an unsupported form.
	MalformedTree

	// ArityMismatch: a declaration has initializers, but not one per name.
	ArityMismatch

	// LiteralConversion: literal text cannot be converted to its value.
	LiteralConversion

	// UnknownOperator: an operator token is missing from the operator
	// tables. The grammar and the builder disagree.
	UnknownOperator

	// TooDeep: blocks or expressions nest beyond the configured limit.
	TooDeep
)

var kindNames = [...]string{
	NoKind:            "none",
	MalformedTree:     "malformed tree",
	ArityMismatch:     "arity mismatch",
	LiteralConversion: "literal conversion",
	UnknownOperator:   "unknown operator",
	TooDeep:           "too deep",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is a tree building failure. The builder stops at the first one.
type Error struct {
	Kind      ErrorKind
	Pos       syntax.Pos
	Construct string // construct being built, e.g. "declaration"

	Expected string // MalformedTree: expected shape
	Actual   string // MalformedTree: actual shape; LiteralConversion, UnknownOperator: token text

	IDs   int // ArityMismatch: number of declared names
	Exprs int // ArityMismatch: number of initializers

	Limit int // TooDeep: the nesting limit

	Err error // underlying cause, if any
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case MalformedTree:
		msg = fmt.Sprintf("malformed tree: expected %s, found %s", e.Expected, e.Actual)
	case ArityMismatch:
		msg = fmt.Sprintf("arity mismatch: %d identifiers but %d initializers", e.IDs, e.Exprs)
	case LiteralConversion:
		msg = fmt.Sprintf("cannot convert literal %q", e.Actual)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	case UnknownOperator:
		msg = fmt.Sprintf("unknown operator %q", e.Actual)
	case TooDeep:
		msg = fmt.Sprintf("nesting exceeds %d levels", e.Limit)
	default:
		msg = e.Kind.String()
	}
	return e.Pos.String() + ": " + e.Construct + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or NoKind.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoKind
}

func malformed(n *syntax.Node, construct, expected string) *Error {
	var pos syntax.Pos
	if n != nil {
		pos = n.Pos
	}
	return &Error{
		Kind:      MalformedTree,
		Pos:       pos,
		Construct: construct,
		Expected:  expected,
		Actual:    n.Shape(),
	}
}
