package afa

import (
	"github.com/katalvlaran/strel/algebra"
	"github.com/katalvlaran/strel/alphabet"
	"github.com/katalvlaran/strel/formula"
)

// table is the transition table: the mapping from states (ψ, ℓ) to
// their symbolic one-step successor and declared variable, plus the
// alias rewrite map. It is built exclusively during compilation and is
// read-only afterwards.
type table[K any] struct {
	manager algebra.Manager[K]
	labelFn alphabet.LabelFunc[K]

	// transitions and vars are keyed by State.Key().
	transitions map[string]func(alphabet.Graph) algebra.Polynomial[K]
	vars        map[string]algebra.Polynomial[K]
	varStates   map[string]State // variable name -> originating state
	aliases     map[string]formula.Expr // keyed by Expr.String()
}

func newTable[K any](manager algebra.Manager[K], labelFn alphabet.LabelFunc[K]) *table[K] {
	return &table[K]{
		manager:     manager,
		labelFn:     labelFn,
		transitions: make(map[string]func(alphabet.Graph) algebra.Polynomial[K]),
		vars:        make(map[string]algebra.Polynomial[K]),
		varStates:   make(map[string]State),
		aliases:     make(map[string]formula.Expr),
	}
}

// declare returns the variable polynomial for (expr, loc), declaring it
// on first use (idempotent).
func (t *table[K]) declare(expr formula.Expr, loc alphabet.Location) algebra.Polynomial[K] {
	s := State{Expr: expr, Location: loc}
	key := s.Key()
	if p, ok := t.vars[key]; ok {
		return p
	}
	p := t.manager.Declare(key)
	t.vars[key] = p
	t.varStates[key] = s
	return p
}

// install sets the transition function for (expr, loc) if none is set
// yet (idempotent).
func (t *table[K]) install(expr formula.Expr, loc alphabet.Location, fn func(alphabet.Graph) algebra.Polynomial[K]) {
	key := (State{Expr: expr, Location: loc}).Key()
	if _, ok := t.transitions[key]; ok {
		return
	}
	t.transitions[key] = fn
}

// alias records that expr should be evaluated as its rewrite target
// instead, if no alias is recorded for it yet (idempotent; I4 shallow
// acyclicity is guaranteed by the compiler never aliasing an expr to
// itself or to another already-aliased expr's source).
func (t *table[K]) alias(expr, target formula.Expr) {
	key := expr.String()
	if _, ok := t.aliases[key]; ok {
		return
	}
	t.aliases[key] = target
}

// resolve chases expr through the alias map to its non-alias form.
func (t *table[K]) resolve(expr formula.Expr) formula.Expr {
	for {
		next, ok := t.aliases[expr.String()]
		if !ok {
			return expr
		}
		expr = next
	}
}

// evalTransition resolves the transition of a state for input graph g:
// chase aliases, handle Constant/Identifier analytically, else invoke
// the installed transition function.
func (t *table[K]) evalTransition(g alphabet.Graph, s State) (algebra.Polynomial[K], error) {
	expr := t.resolve(s.Expr)
	switch v := expr.(type) {
	case formula.Constant:
		if v.Value {
			return t.manager.Top(), nil
		}
		return t.manager.Bottom(), nil
	case formula.Identifier:
		return t.manager.Const(t.labelFn(g, s.Location, v.Name)), nil
	}
	key := (State{Expr: expr, Location: s.Location}).Key()
	fn, ok := t.transitions[key]
	if !ok {
		return nil, &EvalError{Kind: UnknownVariable, Message: "no transition installed for state " + key}
	}
	return fn(g), nil
}

// varOf returns the declared variable polynomial for a state, with the
// same alias/constant handling as evalTransition.
func (t *table[K]) varOf(s State) (algebra.Polynomial[K], error) {
	expr := t.resolve(s.Expr)
	switch v := expr.(type) {
	case formula.Constant:
		if v.Value {
			return t.manager.Top(), nil
		}
		return t.manager.Bottom(), nil
	}
	key := (State{Expr: expr, Location: s.Location}).Key()
	p, ok := t.vars[key]
	if !ok {
		return nil, &EvalError{Kind: UnknownVariable, Message: "no variable declared for state " + key}
	}
	return p, nil
}

// stateOf reconstructs the (Expr, Location) state that declared the
// given polynomial variable name — used by the runner to resolve the
// free variables of a state polynomial back into states to transition.
func (t *table[K]) stateOf(varName string) (State, bool) {
	s, ok := t.varStates[varName]
	return s, ok
}

// states returns every declared (ψ, ℓ) state, in the domain of vars
// (== domain of transitions by I1, except for alias sources).
func (t *table[K]) states() []State {
	out := make([]State, 0, len(t.varStates))
	for _, s := range t.varStates {
		out = append(out, s)
	}
	return out
}
