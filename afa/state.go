package afa

import (
	"strconv"

	"github.com/katalvlaran/strel/alphabet"
	"github.com/katalvlaran/strel/formula"
)

// State is an automaton state Q = (ψ, ℓ): a subformula paired with an
// ego location.
type State struct {
	Expr     formula.Expr
	Location alphabet.Location
}

// Key returns the canonical string identity of s: the subformula's
// canonical key paired with its location. Structurally equal states
// produce equal keys — this is the identity used throughout the
// transition table.
func (s State) Key() string {
	return "(" + s.Expr.String() + ", " + strconv.Itoa(int(s.Location)) + ")"
}
