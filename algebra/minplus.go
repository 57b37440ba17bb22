package algebra

import (
	"math"
	"strconv"
)

// minPlusKind mirrors boolKind's shape for the tropical semiring:
// ⊕ = min, ⊗ = +, ⊤ = 0 (⊗-identity), ⊥ = +Inf (⊕-identity). There is
// no meaningful Negate for min-plus; it is provided for interface
// conformance and returns its operand unchanged (min-plus has no
// additive inverse) — a formula compiled against this carrier is
// expected never to route through NotOp's transition.
type minPlusKind uint8

const (
	mpTop minPlusKind = iota
	mpBottom
	mpVar
	mpConst
	mpMin
	mpPlus
)

type minPlusPoly struct {
	kind minPlusKind
	name string
	val  float64
	a, b *minPlusPoly
}

var (
	mpTopSingleton    = &minPlusPoly{kind: mpTop}
	mpBottomSingleton = &minPlusPoly{kind: mpBottom}
)

func (p *minPlusPoly) Add(qp Polynomial[float64]) Polynomial[float64] {
	q := qp.(*minPlusPoly)
	switch {
	case p.kind == mpBottom:
		return q
	case q.kind == mpBottom:
		return p
	default:
		return &minPlusPoly{kind: mpMin, a: p, b: q}
	}
}

func (p *minPlusPoly) Mul(qp Polynomial[float64]) Polynomial[float64] {
	q := qp.(*minPlusPoly)
	switch {
	case p.kind == mpTop:
		return q
	case q.kind == mpTop:
		return p
	case p.kind == mpBottom || q.kind == mpBottom:
		return mpBottomSingleton
	default:
		return &minPlusPoly{kind: mpPlus, a: p, b: q}
	}
}

func (p *minPlusPoly) Negate() Polynomial[float64] { return p }

func (p *minPlusPoly) Support() map[string]struct{} {
	out := make(map[string]struct{})
	p.collectSupport(out)
	return out
}

func (p *minPlusPoly) collectSupport(out map[string]struct{}) {
	switch p.kind {
	case mpVar:
		out[p.name] = struct{}{}
	case mpMin, mpPlus:
		p.a.collectSupport(out)
		p.b.collectSupport(out)
	}
}

func (p *minPlusPoly) Let(mapping map[string]Polynomial[float64]) Polynomial[float64] {
	switch p.kind {
	case mpTop, mpBottom, mpConst:
		return p
	case mpVar:
		if sub, ok := mapping[p.name]; ok {
			return sub
		}
		return p
	case mpMin:
		return p.a.Let(mapping).Add(p.b.Let(mapping))
	case mpPlus:
		return p.a.Let(mapping).Mul(p.b.Let(mapping))
	default:
		panic("algebra: unreachable minPlusPoly kind")
	}
}

func (p *minPlusPoly) Eval(mapping map[string]float64) float64 {
	switch p.kind {
	case mpTop:
		return 0
	case mpBottom:
		return math.Inf(1)
	case mpConst:
		return p.val
	case mpVar:
		v, ok := mapping[p.name]
		if !ok {
			panic(UnknownVariableError{Name: p.name})
		}
		return v
	case mpMin:
		return math.Min(p.a.Eval(mapping), p.b.Eval(mapping))
	case mpPlus:
		return p.a.Eval(mapping) + p.b.Eval(mapping)
	default:
		panic("algebra: unreachable minPlusPoly kind")
	}
}

// IsTop reports whether p is structurally the ⊗-identity (0). Unlike
// the Boolean carrier, Add never folds to ⊤ here (a min node is never
// ⊤), so Reach's short-circuit fires only when the running sum is a
// single ⊤ path term, such as a first path whose cost is exactly 0;
// otherwise the sum runs to completion.
func (p *minPlusPoly) IsTop() bool { return p.kind == mpTop }

func (p *minPlusPoly) String() string {
	switch p.kind {
	case mpTop:
		return "0"
	case mpBottom:
		return "+inf"
	case mpConst:
		return strconv.FormatFloat(p.val, 'g', -1, 64)
	case mpVar:
		return p.name
	case mpMin:
		return "min(" + p.a.String() + ", " + p.b.String() + ")"
	case mpPlus:
		return "(" + p.a.String() + " + " + p.b.String() + ")"
	default:
		return "?"
	}
}

// MinPlusManager is a quantitative Manager[float64] over the tropical
// (min-plus) semiring: ⊕ = min, ⊗ = +, ⊤ = 0, ⊥ = +Inf. It gives Reach
// and its enclosing formula a weighted carrier alongside the Boolean
// one, for robustness-style monitoring instead of a plain true/false
// verdict.
type MinPlusManager struct {
	vars map[string]*minPlusPoly
}

// NewMinPlusManager constructs an empty min-plus polynomial manager.
func NewMinPlusManager() *MinPlusManager {
	return &MinPlusManager{vars: make(map[string]*minPlusPoly)}
}

func (m *MinPlusManager) Top() Polynomial[float64]    { return mpTopSingleton }
func (m *MinPlusManager) Bottom() Polynomial[float64] { return mpBottomSingleton }

func (m *MinPlusManager) Const(k float64) Polynomial[float64] {
	switch {
	case k == 0:
		return mpTopSingleton
	case math.IsInf(k, 1):
		return mpBottomSingleton
	default:
		return &minPlusPoly{kind: mpConst, val: k}
	}
}

func (m *MinPlusManager) Declare(name string) Polynomial[float64] {
	if v, ok := m.vars[name]; ok {
		return v
	}
	v := &minPlusPoly{kind: mpVar, name: name}
	m.vars[name] = v
	return v
}

var _ Manager[float64] = (*MinPlusManager)(nil)
