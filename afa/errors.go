package afa

import "fmt"

// CompileErrorKind enumerates the compile-time error kinds Compile can
// return.
type CompileErrorKind int

const (
	// UnsupportedOperator is raised when compiling an Escape subformula.
	UnsupportedOperator CompileErrorKind = iota
	// InvalidParameter covers N <= 0, Next with steps <= 0, and
	// malformed intervals (start > end, negative bounds).
	InvalidParameter
)

func (k CompileErrorKind) String() string {
	switch k {
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case InvalidParameter:
		return "InvalidParameter"
	default:
		return "unknown"
	}
}

// CompileError is returned by Compile when a formula cannot be turned
// into an automaton. Partial compilation state is always discarded —
// Compile never returns both a non-nil *Automaton and a non-nil error.
type CompileError struct {
	Kind    CompileErrorKind
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("afa: compile error (%s): %s", e.Kind, e.Message)
}

// EvalErrorKind enumerates the evaluation-time error kinds an Automaton
// can return.
type EvalErrorKind int

const (
	// UnknownVariable indicates a free variable in the state polynomial
	// is not in the final mapping or substitution map — a broken table
	// invariant (I2/I3), and therefore fatal.
	UnknownVariable EvalErrorKind = iota
	// LocationOutOfRange indicates an ego location outside [0, N).
	LocationOutOfRange
)

func (k EvalErrorKind) String() string {
	switch k {
	case UnknownVariable:
		return "UnknownVariable"
	case LocationOutOfRange:
		return "LocationOutOfRange"
	default:
		return "unknown"
	}
}

// EvalError is returned by automaton evaluation operations.
type EvalError struct {
	Kind    EvalErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("afa: eval error (%s): %s", e.Kind, e.Message)
}
