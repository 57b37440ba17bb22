// Package afa is the Alternating Finite Automaton core: the transition
// table, the formula compiler, and the automaton runner that together
// turn a compiled STREL formula into something that can be checked
// against a trace of labeled graphs, forward or in reverse.
package afa
