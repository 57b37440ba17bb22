package algebra

import "fmt"

// UnknownVariableError is returned (via panic/recover at the Eval call
// site) when a polynomial's support references a name absent from the
// evaluation mapping — a broken table invariant. Polynomial.Eval panics
// with this value; callers that need a plain error (package afa)
// recover it.
type UnknownVariableError struct{ Name string }

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("algebra: unknown variable %q in evaluation mapping", e.Name)
}

type boolKind uint8

const (
	boolTop boolKind = iota
	boolBottom
	boolVar
	boolAnd
	boolOr
	boolNot
)

// boolPoly is an (unreduced) Boolean expression DAG node. Construction
// through Add/Mul/Negate/Const/Top/Bottom folds away top/bottom
// operands immediately; this is plain constant folding, not BDD
// reduction or automaton minimization — the Reach transition's IsTop
// short-circuit depends on the folding alone.
type boolPoly struct {
	kind boolKind
	name string
	a, b *boolPoly // operands for And/Or; a only for Not
}

var (
	topSingleton    = &boolPoly{kind: boolTop}
	bottomSingleton = &boolPoly{kind: boolBottom}
)

func (p *boolPoly) Add(qp Polynomial[bool]) Polynomial[bool] {
	q := qp.(*boolPoly)
	switch {
	case p.kind == boolTop || q.kind == boolTop:
		return topSingleton
	case p.kind == boolBottom:
		return q
	case q.kind == boolBottom:
		return p
	default:
		return &boolPoly{kind: boolOr, a: p, b: q}
	}
}

func (p *boolPoly) Mul(qp Polynomial[bool]) Polynomial[bool] {
	q := qp.(*boolPoly)
	switch {
	case p.kind == boolBottom || q.kind == boolBottom:
		return bottomSingleton
	case p.kind == boolTop:
		return q
	case q.kind == boolTop:
		return p
	default:
		return &boolPoly{kind: boolAnd, a: p, b: q}
	}
}

func (p *boolPoly) Negate() Polynomial[bool] {
	switch p.kind {
	case boolTop:
		return bottomSingleton
	case boolBottom:
		return topSingleton
	case boolNot:
		return p.a
	default:
		return &boolPoly{kind: boolNot, a: p}
	}
}

func (p *boolPoly) Support() map[string]struct{} {
	out := make(map[string]struct{})
	p.collectSupport(out)
	return out
}

func (p *boolPoly) collectSupport(out map[string]struct{}) {
	switch p.kind {
	case boolVar:
		out[p.name] = struct{}{}
	case boolNot:
		p.a.collectSupport(out)
	case boolAnd, boolOr:
		p.a.collectSupport(out)
		p.b.collectSupport(out)
	}
}

func (p *boolPoly) Let(mapping map[string]Polynomial[bool]) Polynomial[bool] {
	switch p.kind {
	case boolTop, boolBottom:
		return p
	case boolVar:
		if sub, ok := mapping[p.name]; ok {
			return sub
		}
		return p
	case boolNot:
		return p.a.Let(mapping).Negate()
	case boolAnd:
		return p.a.Let(mapping).Mul(p.b.Let(mapping))
	case boolOr:
		return p.a.Let(mapping).Add(p.b.Let(mapping))
	default:
		panic("algebra: unreachable boolPoly kind")
	}
}

func (p *boolPoly) Eval(mapping map[string]bool) bool {
	switch p.kind {
	case boolTop:
		return true
	case boolBottom:
		return false
	case boolVar:
		v, ok := mapping[p.name]
		if !ok {
			panic(UnknownVariableError{Name: p.name})
		}
		return v
	case boolNot:
		return !p.a.Eval(mapping)
	case boolAnd:
		return p.a.Eval(mapping) && p.b.Eval(mapping)
	case boolOr:
		return p.a.Eval(mapping) || p.b.Eval(mapping)
	default:
		panic("algebra: unreachable boolPoly kind")
	}
}

func (p *boolPoly) IsTop() bool { return p.kind == boolTop }

func (p *boolPoly) String() string {
	switch p.kind {
	case boolTop:
		return "true"
	case boolBottom:
		return "false"
	case boolVar:
		return p.name
	case boolNot:
		return "!(" + p.a.String() + ")"
	case boolAnd:
		return "(" + p.a.String() + " & " + p.b.String() + ")"
	case boolOr:
		return "(" + p.a.String() + " | " + p.b.String() + ")"
	default:
		return "?"
	}
}

// BooleanManager is the qualitative Manager[bool]: ⊕ = logical or,
// ⊗ = logical and, ⊤ = true, ⊥ = false.
type BooleanManager struct {
	vars map[string]*boolPoly
}

// NewBooleanManager constructs an empty Boolean polynomial manager.
func NewBooleanManager() *BooleanManager {
	return &BooleanManager{vars: make(map[string]*boolPoly)}
}

func (m *BooleanManager) Top() Polynomial[bool]    { return topSingleton }
func (m *BooleanManager) Bottom() Polynomial[bool] { return bottomSingleton }

func (m *BooleanManager) Const(k bool) Polynomial[bool] {
	if k {
		return topSingleton
	}
	return bottomSingleton
}

func (m *BooleanManager) Declare(name string) Polynomial[bool] {
	if v, ok := m.vars[name]; ok {
		return v
	}
	v := &boolPoly{kind: boolVar, name: name}
	m.vars[name] = v
	return v
}

var _ Manager[bool] = (*BooleanManager)(nil)
