// Package formula is the STREL expression AST: a closed set of node
// variants (Constant, Identifier, NotOp, AndOp, OrOp, NextOp,
// EventuallyOp, GloballyOp, UntilOp, SomewhereOp, EverywhereOp, ReachOp,
// EscapeOp) plus TimeInterval. See expr.go for the full variant list.
package formula
