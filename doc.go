// Package strel is a runtime monitor for Spatio-Temporal Reach and Escape
// Logic (STREL) over graph-valued signals.
//
// 🚀 What is strel?
//
//	A compact, near-zero-dependency library that compiles a
//	STREL formula into an Alternating Finite Automaton (AFA) and evaluates
//	it against a finite trace of location graphs:
//
//	  • Formula model: a closed STREL expression AST (formula/)
//	  • Polynomial algebra: a generic semiring carrier abstraction, with
//	    Boolean and min-plus concrete managers (algebra/)
//	  • Location graphs: a read-only, thread-built adjacency graph over
//	    integer locations with named distance attributes (alphabet/)
//	  • Reach paths: bounded-distance simple-path enumeration for the
//	    spatial Reach operator (reach/)
//	  • The automaton: the compiler and the forward/reverse trace
//	    evaluator (afa/)
//
// ✨ Why choose strel?
//
//   - Small kernel       — every derived temporal/spatial operator rewrites
//     into seven primitives: Not, And, Or, Next, untimed Eventually,
//     untimed Until, Reach
//   - Semiring-generic   — evaluate qualitatively (bool) or quantitatively
//     (any semiring your algebra.Manager implements)
//   - One-shot compile   — compilation fully precedes evaluation; the
//     compiled automaton is read-only and safe to reuse across traces
//   - Pure Go            — no cgo, no network, no hidden state
//
// Under the hood, everything is organized under five subpackages:
//
//	formula/  — the STREL expression AST
//	algebra/  — the polynomial manager abstraction (C1) + two carriers
//	alphabet/ — the location-graph data structure (read-only alphabet)
//	reach/    — the weight-bounded simple-path enumerator for Reach
//	afa/      — the transition table, compiler, and automaton runner
//
// Quick example: φ = Eventually[0,2](p) on a 3-location line graph,
// evaluated at ego location 0 over a 3-step trace, returns ⊤ the moment p
// becomes true at location 0 within 2 steps.
//
// Compilation and evaluation never touch a parser, a wire format, or a
// log sink — those are deliberately out of scope for this package.
//
//	go get github.com/katalvlaran/strel
package strel
