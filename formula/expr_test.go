package formula_test

import (
	"testing"

	"github.com/katalvlaran/strel/formula"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKeyEquality(t *testing.T) {
	// P4: structurally equal subformulas produce equal canonical keys.
	a := formula.AndOp{LHS: formula.Identifier{Name: "p"}, RHS: formula.Identifier{Name: "q"}}
	b := formula.AndOp{LHS: formula.Identifier{Name: "p"}, RHS: formula.Identifier{Name: "q"}}
	require.Equal(t, a.String(), b.String())

	c := formula.AndOp{LHS: formula.Identifier{Name: "q"}, RHS: formula.Identifier{Name: "p"}}
	require.NotEqual(t, a.String(), c.String())
}

func TestUntimedIntervalTieBreaks(t *testing.T) {
	require.True(t, formula.Untimed.IsUntimed())
	require.True(t, (&formula.TimeInterval{}).IsUntimed())

	zero := 0.0
	require.True(t, (&formula.TimeInterval{Start: &zero}).IsUntimed())

	five := 5.0
	require.False(t, formula.IntervalFrom(five).IsUntimed())
	require.True(t, formula.IntervalFrom(0).IsUntimed())
}

func TestNotCollapsesDoubleNegation(t *testing.T) {
	p := formula.Identifier{Name: "p"}
	notP := formula.Not(p)
	require.Equal(t, formula.NotOp{Arg: p}, notP)

	notNotP := formula.Not(notP)
	require.Equal(t, p, notNotP)
}

func TestNextOpCanonicalString(t *testing.T) {
	n := formula.NextOp{Steps: 3, Arg: formula.Identifier{Name: "p"}}
	require.Equal(t, "X[3](p)", n.String())
}
