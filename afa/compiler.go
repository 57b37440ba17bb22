package afa

import (
	"math"

	"github.com/katalvlaran/strel/algebra"
	"github.com/katalvlaran/strel/alphabet"
	"github.com/katalvlaran/strel/formula"
	"github.com/katalvlaran/strel/reach"
)

// compiler is the post-order visitor that expands derived STREL
// operators into the seven kernel operators (Not, And, Or, Next, untimed
// Eventually, untimed Until, Reach) and installs their symbolic
// transitions into the table.
type compiler[K any] struct {
	t       *table[K]
	maxLocs int
	distAttr string
}

// visited reports whether expr has already been compiled, so a shared
// subformula reached from two parents is only expanded once.
func (c *compiler[K]) visited(expr formula.Expr) bool {
	key := (State{Expr: expr, Location: 0}).Key()
	_, ok := c.t.vars[key]
	return ok
}

// forEachLoc declares a variable and installs fn as the transition for
// expr at every location in [0, maxLocs).
func (c *compiler[K]) forEachLoc(expr formula.Expr, fn func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K]) {
	for i := 0; i < c.maxLocs; i++ {
		loc := alphabet.Location(i)
		c.t.declare(expr, loc)
		c.t.install(expr, loc, func(g alphabet.Graph) algebra.Polynomial[K] {
			return fn(loc, g)
		})
	}
}

// addAlias declares a variable (sharing the alias target's eventual
// transition) at every location and records the alias rewrite.
func (c *compiler[K]) addAlias(expr, target formula.Expr) {
	for i := 0; i < c.maxLocs; i++ {
		loc := alphabet.Location(i)
		c.t.declare(expr, loc)
	}
	c.t.alias(expr, target)
}

// compile is the post-order visit entry point.
func (c *compiler[K]) compile(expr formula.Expr) error {
	if c.visited(expr) {
		return nil
	}

	switch e := expr.(type) {
	case formula.Constant:
		// Constants are always handled analytically (evalTransition/varOf
		// resolve them directly) — never declared, per I3.
		return nil

	case formula.Identifier:
		// Identifier is handled analytically by evalTransition, but
		// still gets a declared variable and an installed (vestigial,
		// never actually invoked) transition so dom(transitions) =
		// dom(vars) holds uniformly across every state.
		c.forEachLoc(expr, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			p, err := c.t.evalTransition(g, State{Expr: expr, Location: loc})
			if err != nil {
				panic(err)
			}
			return p
		})
		return nil

	case formula.NotOp:
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		c.forEachLoc(expr, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			p, err := c.t.evalTransition(g, State{Expr: e.Arg, Location: loc})
			if err != nil {
				panic(err)
			}
			return p.Negate()
		})
		return nil

	case formula.AndOp:
		if err := c.compile(e.LHS); err != nil {
			return err
		}
		if err := c.compile(e.RHS); err != nil {
			return err
		}
		c.forEachLoc(expr, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			l, err := c.t.evalTransition(g, State{Expr: e.LHS, Location: loc})
			if err != nil {
				panic(err)
			}
			r, err := c.t.evalTransition(g, State{Expr: e.RHS, Location: loc})
			if err != nil {
				panic(err)
			}
			return l.Mul(r)
		})
		return nil

	case formula.OrOp:
		if err := c.compile(e.LHS); err != nil {
			return err
		}
		if err := c.compile(e.RHS); err != nil {
			return err
		}
		c.forEachLoc(expr, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			l, err := c.t.evalTransition(g, State{Expr: e.LHS, Location: loc})
			if err != nil {
				panic(err)
			}
			r, err := c.t.evalTransition(g, State{Expr: e.RHS, Location: loc})
			if err != nil {
				panic(err)
			}
			return l.Add(r)
		})
		return nil

	case formula.NextOp:
		if e.Steps < 1 {
			return &CompileError{Kind: InvalidParameter, Message: "NextOp.Steps must be >= 1"}
		}
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		return c.expandNext(e)

	case formula.GloballyOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		return c.expandGlobally(e)

	case formula.EventuallyOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		return c.expandEventually(e)

	case formula.UntilOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.LHS); err != nil {
			return err
		}
		if err := c.compile(e.RHS); err != nil {
			return err
		}
		return c.expandUntil(e)

	case formula.SomewhereOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		return c.expandSomewhere(e)

	case formula.EverywhereOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.Arg); err != nil {
			return err
		}
		return c.expandEverywhere(e)

	case formula.ReachOp:
		if err := c.checkInterval(e.Interval); err != nil {
			return err
		}
		if err := c.compile(e.LHS); err != nil {
			return err
		}
		if err := c.compile(e.RHS); err != nil {
			return err
		}
		return c.expandReach(e)

	case formula.EscapeOp:
		return &CompileError{Kind: UnsupportedOperator, Message: "Escape is not supported"}

	default:
		return &CompileError{Kind: InvalidParameter, Message: "unrecognized expression node"}
	}
}

func (c *compiler[K]) checkInterval(iv *formula.TimeInterval) error {
	start, end := iv.Bounds()
	if start < 0 || end < 0 {
		return &CompileError{Kind: InvalidParameter, Message: "interval bounds must be non-negative"}
	}
	if start > end {
		return &CompileError{Kind: InvalidParameter, Message: "interval start must be <= end"}
	}
	return nil
}

// expandNext installs NextOp(n, arg) for n = steps down to 1, each
// deferring to the previous one's variable: X[n]a's transition reads
// the variable for X[n-1]a, so a single forward step peels off one
// layer of Next at a time.
func (c *compiler[K]) expandNext(phi formula.NextOp) error {
	for i := phi.Steps; i >= 2; i-- {
		expr := formula.NextOp{Steps: i, Arg: phi.Arg}
		subExpr := formula.NextOp{Steps: i - 1, Arg: phi.Arg}
		c.forEachLoc(expr, func(loc alphabet.Location, _ alphabet.Graph) algebra.Polynomial[K] {
			p, err := c.t.varOf(State{Expr: subExpr, Location: loc})
			if err != nil {
				panic(err)
			}
			return p
		})
	}
	one := formula.NextOp{Steps: 1, Arg: phi.Arg}
	c.forEachLoc(one, func(loc alphabet.Location, _ alphabet.Graph) algebra.Polynomial[K] {
		p, err := c.t.varOf(State{Expr: phi.Arg, Location: loc})
		if err != nil {
			panic(err)
		}
		return p
	})
	return nil
}

// expandGlobally rewrites G[I] a = !(F[I] !a) and aliases phi to it.
func (c *compiler[K]) expandGlobally(phi formula.GloballyOp) error {
	rewrite := formula.NotOp{Arg: formula.EventuallyOp{Interval: phi.Interval, Arg: formula.NotOp{Arg: phi.Arg}}}
	if err := c.compile(rewrite); err != nil {
		return err
	}
	c.addAlias(phi, rewrite)
	return nil
}

// expandEventually implements the Eventually rewrite table: the
// untimed, left-closed, right-open-above, and fully-bounded interval
// cases each reduce to a combination of Next, Or and a bounded
// recursion on a smaller Eventually.
func (c *compiler[K]) expandEventually(phi formula.EventuallyOp) error {
	start, end := phi.Interval.Bounds()

	switch {
	case phi.Interval.IsUntimed():
		// F a = a | X F a  (greatest-fixed-point; self-referential)
		c.forEachLoc(phi, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			argEval, err := c.t.evalTransition(g, State{Expr: phi.Arg, Location: loc})
			if err != nil {
				panic(err)
			}
			self, err := c.t.varOf(State{Expr: phi, Location: loc})
			if err != nil {
				panic(err)
			}
			return argEval.Add(self)
		})
		return nil

	case start == 0:
		// F[0,t2] a, single pass: each F[0,i] depends only on F[0,i-1]
		// (or on a directly for i == 1), so one descending loop suffices.
		t2 := int(end)
		for i := t2; i >= 1; i-- {
			expr := formula.EventuallyOp{Interval: formula.NewInterval(0, float64(i)), Arg: phi.Arg}
			var subExpr formula.Expr
			if i > 1 {
				subExpr = formula.EventuallyOp{Interval: formula.NewInterval(0, float64(i-1)), Arg: phi.Arg}
			} else {
				subExpr = phi.Arg
			}
			c.forEachLoc(expr, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
				argEval, err := c.t.evalTransition(g, State{Expr: phi.Arg, Location: loc})
				if err != nil {
					panic(err)
				}
				sub, err := c.t.varOf(State{Expr: subExpr, Location: loc})
				if err != nil {
					panic(err)
				}
				return argEval.Add(sub)
			})
		}
		return nil

	case math.IsInf(end, 1):
		// F[t1,] a = X[t1] F a  (start > 0, else caught by IsUntimed above)
		t1 := int(start)
		rewrite := formula.NextOp{Steps: t1, Arg: formula.EventuallyOp{Arg: phi.Arg}}
		if err := c.compile(rewrite); err != nil {
			return err
		}
		c.addAlias(phi, rewrite)
		return nil

	default:
		// F[t1,t2] a = X[t1] F[0, t2-t1] a  (start > 0, finite end)
		t1, t2 := int(start), int(end)
		rewrite := formula.NextOp{
			Steps: t1,
			Arg:   formula.EventuallyOp{Interval: formula.NewInterval(0, float64(t2-t1)), Arg: phi.Arg},
		}
		if err := c.compile(rewrite); err != nil {
			return err
		}
		c.addAlias(phi, rewrite)
		return nil
	}
}

// expandUntil implements the Until rewrite table.
func (c *compiler[K]) expandUntil(phi formula.UntilOp) error {
	start, end := phi.Interval.Bounds()

	switch {
	case phi.Interval.IsUntimed():
		// a U b = b | (a & X phi)  (self-referential)
		c.forEachLoc(phi, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
			rhsEval, err := c.t.evalTransition(g, State{Expr: phi.RHS, Location: loc})
			if err != nil {
				panic(err)
			}
			lhsEval, err := c.t.evalTransition(g, State{Expr: phi.LHS, Location: loc})
			if err != nil {
				panic(err)
			}
			self, err := c.t.varOf(State{Expr: phi, Location: loc})
			if err != nil {
				panic(err)
			}
			return rhsEval.Add(lhsEval.Mul(self))
		})
		return nil

	case math.IsInf(end, 1):
		// a U[t1,] b = !(F[0,t1] !(a U b))
		t1 := start
		rewrite := formula.NotOp{Arg: formula.EventuallyOp{
			Interval: formula.NewInterval(0, t1),
			Arg:      formula.NotOp{Arg: formula.UntilOp{LHS: phi.LHS, RHS: phi.RHS}},
		}}
		if err := c.compile(rewrite); err != nil {
			return err
		}
		c.addAlias(phi, rewrite)
		return nil

	default:
		// a U[t1,t2] b = (F[t1,t2] b) & (a U[t1,] b)
		rewrite := formula.AndOp{
			LHS: formula.EventuallyOp{Interval: phi.Interval, Arg: phi.RHS},
			RHS: formula.UntilOp{LHS: phi.LHS, Interval: formula.IntervalFrom(start), RHS: phi.RHS},
		}
		if err := c.compile(rewrite); err != nil {
			return err
		}
		c.addAlias(phi, rewrite)
		return nil
	}
}

// expandSomewhere rewrites somewhere[I] a = true reach[I] a.
func (c *compiler[K]) expandSomewhere(phi formula.SomewhereOp) error {
	rewrite := formula.ReachOp{LHS: formula.True, Interval: phi.Interval, RHS: phi.Arg}
	if err := c.compile(rewrite); err != nil {
		return err
	}
	c.addAlias(phi, rewrite)
	return nil
}

// expandEverywhere rewrites everywhere[I] a = !(somewhere[I] !a).
func (c *compiler[K]) expandEverywhere(phi formula.EverywhereOp) error {
	rewrite := formula.NotOp{Arg: formula.SomewhereOp{Interval: phi.Interval, Arg: formula.NotOp{Arg: phi.Arg}}}
	if err := c.compile(rewrite); err != nil {
		return err
	}
	c.addAlias(phi, rewrite)
	return nil
}

// expandReach installs the Reach transition: enumerate weight-bounded
// simple paths from the ego location and fold each path into a
// symbolic product of its LHS steps times the RHS at the endpoint,
// summed over every path.
func (c *compiler[K]) expandReach(phi formula.ReachOp) error {
	d1, d2 := phi.Interval.Bounds()

	c.forEachLoc(phi, func(loc alphabet.Location, g alphabet.Graph) algebra.Polynomial[K] {
		sum := c.t.manager.Bottom()
		for edgePath := range reach.AllReachEdgePaths(g, loc, d1, d2, c.distAttr) {
			last := loc
			if len(edgePath) > 0 {
				last = edgePath[len(edgePath)-1].To
			}
			pathExpr, err := c.t.evalTransition(g, State{Expr: phi.RHS, Location: last})
			if err != nil {
				panic(err)
			}
			for i := len(edgePath) - 1; i >= 0; i-- {
				step, err := c.t.evalTransition(g, State{Expr: phi.LHS, Location: edgePath[i].From})
				if err != nil {
					panic(err)
				}
				pathExpr = pathExpr.Mul(step)
			}
			sum = sum.Add(pathExpr)
			if sum.IsTop() {
				return sum
			}
		}
		return sum
	})
	return nil
}
