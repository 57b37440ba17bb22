// Package alphabet is the input alphabet for trace evaluation: a
// read-only, fixed-size (N locations) graph carrying named float64 edge
// attributes, plus a standalone label-function abstraction for
// predicate evaluation.
//
// AdjacencyGraph is the concrete implementation: functional options at
// construction (Option, WithDirected), a fixed location count, and
// per-edge named attributes (map[string]float64) instead of a single
// weight, so the same edge can carry both a "weight"/"hop" distance
// used by Reach and other named signal values.
//
// Construction (AddEdge) is mutex-guarded; once built, a graph is meant
// to be treated as read-only for the rest of its life.
package alphabet
