package afa

import (
	"github.com/katalvlaran/strel/algebra"
	"github.com/katalvlaran/strel/alphabet"
	"github.com/katalvlaran/strel/formula"
)

// Automaton is the compiled, read-only AFA for a STREL formula. It is
// produced once by Compile and may be evaluated against any number of
// traces; evaluation never mutates it.
type Automaton[K any] struct {
	initialExpr formula.Expr
	table       *table[K]
	manager     algebra.Manager[K]
	accepting   map[string]struct{} // state keys
	maxLocs     int
}

// Compile builds an Automaton for phi over max locations, using manager
// as the polynomial carrier and labelFn to resolve predicates. distAttr
// names the edge attribute Reach reads as distance; an empty string
// defaults to "weight".
func Compile[K any](phi formula.Expr, manager algebra.Manager[K], labelFn alphabet.LabelFunc[K], maxLocs int, distAttr string) (*Automaton[K], error) {
	if maxLocs <= 0 {
		return nil, &CompileError{Kind: InvalidParameter, Message: "maxLocs must be positive"}
	}
	if distAttr == "" {
		distAttr = "weight"
	}

	t := newTable(manager, labelFn)
	c := &compiler[K]{t: t, maxLocs: maxLocs, distAttr: distAttr}
	if err := c.compile(phi); err != nil {
		// Partial compilation state is discarded: the half-built table
		// is simply not wrapped into an Automaton.
		return nil, err
	}

	aut := &Automaton[K]{initialExpr: phi, table: t, manager: manager, accepting: make(map[string]struct{}), maxLocs: maxLocs}
	aut.computeAccepting()
	return aut, nil
}

// MakeBoolAutomaton is the qualitative convenience constructor for the
// common case of monitoring over the Boolean semiring.
func MakeBoolAutomaton(phi formula.Expr, labelFn alphabet.LabelFunc[bool], maxLocs int, distAttr string) (*Automaton[bool], error) {
	return Compile[bool](phi, algebra.NewBooleanManager(), labelFn, maxLocs, distAttr)
}

// isAcceptingExpr reports whether e is an accepting state for a run
// whose initial formula is initial: the initial expression itself, or
// the negation of an untimed Eventually/Until — the greatest-fixed-point
// obligations whose self-referential transitions are discharged by
// acceptance, not by a base case.
func isAcceptingExpr(e, initial formula.Expr) bool {
	if e.String() == initial.String() {
		return true
	}
	not, ok := e.(formula.NotOp)
	if !ok {
		return false
	}
	switch arg := not.Arg.(type) {
	case formula.EventuallyOp:
		return arg.Interval.IsUntimed()
	case formula.UntilOp:
		return arg.Interval.IsUntimed()
	default:
		return false
	}
}

func (a *Automaton[K]) computeAccepting() {
	for key, s := range a.table.varStates {
		if isAcceptingExpr(s.Expr, a.initialExpr) {
			a.accepting[key] = struct{}{}
		}
	}
}

// States returns every declared automaton state.
func (a *Automaton[K]) States() []State { return a.table.states() }

// AcceptingStates returns every accepting state.
func (a *Automaton[K]) AcceptingStates() []State {
	out := make([]State, 0, len(a.accepting))
	for _, s := range a.table.varStates {
		if _, ok := a.accepting[s.Key()]; ok {
			out = append(out, s)
		}
	}
	return out
}

// InitialAt returns the initial state polynomial for ego location loc.
func (a *Automaton[K]) InitialAt(loc alphabet.Location) (algebra.Polynomial[K], error) {
	if int(loc) < 0 || int(loc) >= a.maxLocs {
		return nil, &EvalError{Kind: LocationOutOfRange, Message: "ego location out of range"}
	}
	return a.table.varOf(State{Expr: a.initialExpr, Location: loc})
}

// FinalMapping assigns the carrier's top value to every accepting state
// and bottom to every other declared state, keyed by canonical state
// string.
func (a *Automaton[K]) FinalMapping() map[string]K {
	out := make(map[string]K, len(a.table.varStates))
	for key := range a.table.varStates {
		if _, ok := a.accepting[key]; ok {
			out[key] = a.manager.Top().Eval(nil)
		} else {
			out[key] = a.manager.Bottom().Eval(nil)
		}
	}
	return out
}

// Next performs one forward evaluation step: substitute every free
// variable of current with its one-step transition under input.
func (a *Automaton[K]) Next(input alphabet.Graph, current algebra.Polynomial[K]) (algebra.Polynomial[K], error) {
	return safeEval(func() (algebra.Polynomial[K], error) {
		substitution := make(map[string]algebra.Polynomial[K])
		for varName := range current.Support() {
			s, ok := a.table.stateOf(varName)
			if !ok {
				return nil, &EvalError{Kind: UnknownVariable, Message: "no state registered for variable " + varName}
			}
			next, err := a.table.evalTransition(input, s)
			if err != nil {
				return nil, err
			}
			substitution[varName] = next
		}
		return current.Let(substitution), nil
	})
}

// CheckRun evaluates the automaton over trace at ego location loc,
// forward or in reverse. Forward and reverse are equivalent only for
// fragments without strict liveness obligations — reverse is an
// optimization for safety-like fragments, not a universally sound
// alternative.
func (a *Automaton[K]) CheckRun(loc alphabet.Location, trace []alphabet.Graph, reverse bool) (K, error) {
	if reverse {
		return a.checkRunReverse(loc, trace)
	}
	return a.checkRunForward(loc, trace)
}

func (a *Automaton[K]) checkRunForward(loc alphabet.Location, trace []alphabet.Graph) (K, error) {
	return safeEval(func() (K, error) {
		state, err := a.InitialAt(loc)
		if err != nil {
			var zero K
			return zero, err
		}
		for _, input := range trace {
			state, err = a.Next(input, state)
			if err != nil {
				var zero K
				return zero, err
			}
		}
		return state.Eval(a.FinalMapping()), nil
	})
}

func (a *Automaton[K]) checkRunReverse(loc alphabet.Location, trace []alphabet.Graph) (K, error) {
	return safeEval(func() (K, error) {
		costs := a.FinalMapping()
		states := a.table.states()

		for i := len(trace) - 1; i >= 0; i-- {
			input := trace[i]
			newCosts := make(map[string]K, len(states))
			for _, s := range states {
				poly, err := a.table.evalTransition(input, s)
				if err != nil {
					var zero K
					return zero, err
				}
				newCosts[s.Key()] = poly.Eval(costs)
			}
			costs = newCosts
		}

		initial, err := a.InitialAt(loc)
		if err != nil {
			var zero K
			return zero, err
		}
		return initial.Eval(costs), nil
	})
}

// safeEval recovers panics raised by algebra.Polynomial.Eval (an
// unknown variable — a broken table invariant) and by the transition
// closures built in compiler.go (which cannot themselves return an
// error, by construction) and turns them into a normal *EvalError
// return. Any other panic is not ours to interpret and is re-raised.
func safeEval[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r == nil {
			return
		} else if ee, ok := r.(*EvalError); ok {
			err = ee
		} else if uv, ok := r.(algebra.UnknownVariableError); ok {
			err = &EvalError{Kind: UnknownVariable, Message: uv.Error()}
		} else {
			panic(r)
		}
	}()
	return fn()
}
