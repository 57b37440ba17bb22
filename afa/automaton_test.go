package afa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/strel/afa"
	"github.com/katalvlaran/strel/alphabet"
	"github.com/katalvlaran/strel/formula"
)

// lineGraph builds the canonical 3-location line 0-1-2 with unit
// weights, used across every scenario below.
func lineGraph(t *testing.T) *alphabet.AdjacencyGraph {
	t.Helper()
	g, err := alphabet.NewAdjacencyGraph(3)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, map[string]float64{"weight": 1}))
	require.NoError(t, g.AddEdge(1, 2, map[string]float64{"weight": 1}))
	return g
}

func labelsWhere(set map[alphabet.Location][]string) alphabet.LabelFunc[bool] {
	labels := alphabet.NewPredicateLabels()
	for loc, preds := range set {
		for _, p := range preds {
			labels.Set(loc, p, true)
		}
	}
	return labels.BoolLabelFunc()
}

// stepLabels lets a predicate vary across the distinct graph snapshots
// of a trace (PredicateLabels alone only varies by location, since its
// LabelFunc ignores the graph argument). Keyed by graph identity so
// distinct *alphabet.AdjacencyGraph values can represent distinct steps
// even when topologically identical.
type stepLabels map[*alphabet.AdjacencyGraph]map[alphabet.Location]bool

func (s stepLabels) labelFunc(predicate string) alphabet.LabelFunc[bool] {
	return func(g alphabet.Graph, loc alphabet.Location, p string) bool {
		if p != predicate {
			return false
		}
		ag, ok := g.(*alphabet.AdjacencyGraph)
		if !ok {
			return false
		}
		return s[ag][loc]
	}
}

func TestIdentifierAcceptsExactlyWhereLabelHolds(t *testing.T) {
	g := lineGraph(t)
	labelFn := labelsWhere(map[alphabet.Location][]string{1: {"a"}})

	aut, err := afa.MakeBoolAutomaton(formula.Identifier{Name: "a"}, labelFn, 3, "")
	require.NoError(t, err)

	for loc, want := range map[alphabet.Location]bool{0: false, 1: true, 2: false} {
		got, err := aut.CheckRun(loc, []alphabet.Graph{g}, false)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "location %d", loc)
	}
}

func TestNextOpShiftsByStepsAlongTrace(t *testing.T) {
	g0, g1, g2 := lineGraph(t), lineGraph(t), lineGraph(t)
	// "a" holds at location 1 only on the trace's last snapshot, g2.
	steps := stepLabels{g2: {1: true}}
	labelFn := steps.labelFunc("a")

	phi := formula.NextOp{Steps: 2, Arg: formula.Identifier{Name: "a"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	got, err := aut.CheckRun(1, []alphabet.Graph{g0, g1, g2}, false)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = aut.CheckRun(1, []alphabet.Graph{g0, g1}, false)
	require.NoError(t, err)
	assert.False(t, got, "a trace too short to fully resolve X[2] must not yet be satisfied")
}

func TestEventuallyBoundedHoldsWithinWindow(t *testing.T) {
	gFalse, gTrue := lineGraph(t), lineGraph(t)
	steps := stepLabels{gTrue: {0: true}}
	labelFn := steps.labelFunc("a")

	phi := formula.EventuallyOp{Interval: formula.NewInterval(0, 1), Arg: formula.Identifier{Name: "a"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	// "a" becomes true at the trace's second snapshot — within F[0,1]'s
	// window relative to the run's start.
	got, err := aut.CheckRun(0, []alphabet.Graph{gFalse, gTrue}, false)
	require.NoError(t, err)
	assert.True(t, got)

	// Pushed one snapshot further out, "a" falls outside the window.
	got, err = aut.CheckRun(0, []alphabet.Graph{gFalse, gFalse, gTrue}, false)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestUntilHoldsUntilTargetBecomesTrue(t *testing.T) {
	g0, g1, g2 := lineGraph(t), lineGraph(t), lineGraph(t)
	// At location 0, "a" holds on the first two snapshots and "b" on the third.
	aSteps := stepLabels{g0: {0: true}, g1: {0: true}}
	bSteps := stepLabels{g2: {0: true}}
	labelFn := func(g alphabet.Graph, loc alphabet.Location, p string) bool {
		return aSteps.labelFunc("a")(g, loc, p) || bSteps.labelFunc("b")(g, loc, p)
	}

	phi := formula.UntilOp{LHS: formula.Identifier{Name: "a"}, Interval: formula.Untimed, RHS: formula.Identifier{Name: "b"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	trace := []alphabet.Graph{g0, g1, g2}
	got, err := aut.CheckRun(0, trace, false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSomewhereFindsPredicateWithinSpatialRadius(t *testing.T) {
	g := lineGraph(t)
	labelFn := labelsWhere(map[alphabet.Location][]string{2: {"a"}})

	phi := formula.SomewhereOp{Interval: formula.NewInterval(0, 2), Arg: formula.Identifier{Name: "a"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	got, err := aut.CheckRun(0, []alphabet.Graph{g}, false)
	require.NoError(t, err)
	assert.True(t, got)

	phiTooNear := formula.SomewhereOp{Interval: formula.NewInterval(0, 1), Arg: formula.Identifier{Name: "a"}}
	autNear, err := afa.MakeBoolAutomaton(phiTooNear, labelFn, 3, "")
	require.NoError(t, err)

	got, err = autNear.CheckRun(0, []alphabet.Graph{g}, false)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestReachRequiresLhsAlongEveryPrefix(t *testing.T) {
	g := lineGraph(t)
	// "a" holds at 0 and 1 (the path prefix), "b" holds only at 2 (the target).
	labelFn := labelsWhere(map[alphabet.Location][]string{
		0: {"a"},
		1: {"a"},
		2: {"b"},
	})

	phi := formula.ReachOp{LHS: formula.Identifier{Name: "a"}, Interval: formula.NewInterval(0, 2), RHS: formula.Identifier{Name: "b"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	got, err := aut.CheckRun(0, []alphabet.Graph{g}, false)
	require.NoError(t, err)
	assert.True(t, got)

	// Break the chain: "a" does not hold at 1, so no admissible path's
	// prefix satisfies LHS throughout.
	labelFnBroken := labelsWhere(map[alphabet.Location][]string{
		0: {"a"},
		2: {"b"},
	})
	autBroken, err := afa.MakeBoolAutomaton(phi, labelFnBroken, 3, "")
	require.NoError(t, err)

	got, err = autBroken.CheckRun(0, []alphabet.Graph{g}, false)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestForwardAndReverseAgreeOnSafetyFragment(t *testing.T) {
	g := lineGraph(t)
	labelFn := labelsWhere(map[alphabet.Location][]string{0: {"a"}, 1: {"a"}, 2: {"a"}})

	phi := formula.GloballyOp{Interval: formula.NewInterval(0, 1), Arg: formula.Identifier{Name: "a"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	trace := []alphabet.Graph{g}

	forward, err := aut.CheckRun(0, trace, false)
	require.NoError(t, err)
	reverse, err := aut.CheckRun(0, trace, true)
	require.NoError(t, err)
	assert.Equal(t, forward, reverse)
}

func TestCompileRejectsEscape(t *testing.T) {
	labelFn := labelsWhere(nil)
	_, err := afa.MakeBoolAutomaton(formula.EscapeOp{Interval: formula.Untimed, Arg: formula.Identifier{Name: "a"}}, labelFn, 3, "")
	require.Error(t, err)
	var compileErr *afa.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, afa.UnsupportedOperator, compileErr.Kind)
}

func TestCompileRejectsNonPositiveNextSteps(t *testing.T) {
	labelFn := labelsWhere(nil)
	_, err := afa.MakeBoolAutomaton(formula.NextOp{Steps: 0, Arg: formula.Identifier{Name: "a"}}, labelFn, 3, "")
	require.Error(t, err)
	var compileErr *afa.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, afa.InvalidParameter, compileErr.Kind)
}

func TestCompileRejectsInvertedInterval(t *testing.T) {
	labelFn := labelsWhere(nil)
	bad := formula.NewInterval(2, 1)
	_, err := afa.MakeBoolAutomaton(formula.EventuallyOp{Interval: bad, Arg: formula.Identifier{Name: "a"}}, labelFn, 3, "")
	require.Error(t, err)
	var compileErr *afa.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, afa.InvalidParameter, compileErr.Kind)
}

func TestCompileRejectsNonPositiveMaxLocs(t *testing.T) {
	labelFn := labelsWhere(nil)
	_, err := afa.MakeBoolAutomaton(formula.Identifier{Name: "a"}, labelFn, 0, "")
	require.Error(t, err)
	var compileErr *afa.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, afa.InvalidParameter, compileErr.Kind)
}

func TestInitialAtRejectsOutOfRangeLocation(t *testing.T) {
	labelFn := labelsWhere(nil)
	aut, err := afa.MakeBoolAutomaton(formula.Identifier{Name: "a"}, labelFn, 3, "")
	require.NoError(t, err)

	_, err = aut.InitialAt(alphabet.Location(3))
	require.Error(t, err)
	var evalErr *afa.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, afa.LocationOutOfRange, evalErr.Kind)
}

// TestTableConsistency checks P1 from outside the package: every
// declared state has a valid ego location, and a reverse run (which
// evaluates the transition of every declared state) finds a transition
// installed for each of them.
func TestTableConsistency(t *testing.T) {
	labelFn := labelsWhere(map[alphabet.Location][]string{2: {"a"}})
	phi := formula.ReachOp{LHS: formula.True, Interval: formula.NewInterval(0, 2), RHS: formula.Identifier{Name: "a"}}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	states := aut.States()
	assert.NotEmpty(t, states)
	for _, s := range states {
		_, err := aut.InitialAt(s.Location)
		require.NoError(t, err)
	}

	_, err = aut.CheckRun(0, []alphabet.Graph{lineGraph(t)}, true)
	require.NoError(t, err)
}

// TestAcceptingStatesIncludesInitial checks the acceptance rule's first
// disjunct: the initial expression is always its own accepting state.
func TestAcceptingStatesIncludesInitial(t *testing.T) {
	labelFn := labelsWhere(nil)
	phi := formula.Identifier{Name: "a"}
	aut, err := afa.MakeBoolAutomaton(phi, labelFn, 3, "")
	require.NoError(t, err)

	found := false
	for _, s := range aut.AcceptingStates() {
		if s.Expr.String() == phi.String() {
			found = true
		}
	}
	assert.True(t, found)
}
