// Package reach implements the bounded-distance simple-path enumerator
// that realizes STREL's spatial Reach operator: every simple path from
// a source location whose cumulative edge weight falls in [d1, d2].
package reach

import "github.com/katalvlaran/strel/alphabet"

// EdgeStep is one hop of an enumerated path: From, To and the weight of
// that single edge (not the cumulative distance).
type EdgeStep struct {
	From, To alphabet.Location
	Weight   float64
}

// frame is one level of the explicit DFS stack: the edges out of the
// node last appended to the path, the index of the next one to try,
// and the cumulative distance of the path up to (and including) that
// node.
type frame struct {
	edges   []alphabet.Edge
	next    int
	nodeLen float64 // cumulative distance of the path ending at this node
}

// AllReachEdgePaths enumerates every simple path from loc in g whose
// cumulative weight (read from the attr attribute, defaulting absent
// edges to 1.0) lies in [d1, d2] inclusive. It walks the graph with an
// explicit stack of sibling-edge iterators (standard iterative DFS
// backtracking, in the style of the Cormen et al. DFS-with-explicit-
// stack formulation rather than recursion), plus an ordered "current
// path" used both as the visited set and as the running cumulative
// distance.
//
// The empty path (the source alone) is yielded iff d1 == 0. Paths are
// explored depth-first; an extension is attempted only while the
// cumulative weight so far is <= d2. Every vertex can only be pushed
// once per path (simplicity), and the search naturally terminates
// because the graph is finite.
//
// This is a go1.23 range-over-func iterator: range over the returned
// func to consume paths lazily, `break` to stop early.
func AllReachEdgePaths(g alphabet.Graph, loc alphabet.Location, d1, d2 float64, attr string) func(yield func([]EdgeStep) bool) {
	return func(yield func([]EdgeStep) bool) {
		if d1 <= 0 {
			if !yield(nil) {
				return
			}
		}

		allNodes := g.Nodes()

		visited := map[alphabet.Location]bool{loc: true}
		var path []EdgeStep // current path, parallel to the stack below
		stack := []frame{{edges: g.Edges(loc, attr, 1.0), nodeLen: 0}}

		allVisited := func() bool {
			if len(visited) >= len(allNodes) {
				return true
			}
			for _, n := range allNodes {
				if !visited[n] {
					return false
				}
			}
			return true
		}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			var nextEdge *alphabet.Edge
			for top.next < len(top.edges) {
				cand := top.edges[top.next]
				top.next++
				if !visited[cand.To] {
					nextEdge = &cand
					break
				}
			}

			if nextEdge == nil {
				// Exhausted this node's edges: backtrack.
				stack = stack[:len(stack)-1]
				if len(path) > 0 {
					last := path[len(path)-1]
					delete(visited, last.To)
					path = path[:len(path)-1]
				}
				continue
			}

			from := loc
			if len(path) > 0 {
				from = path[len(path)-1].To
			}
			newLen := top.nodeLen + nextEdge.Weight

			if newLen <= d2 {
				path = append(path, EdgeStep{From: from, To: nextEdge.To, Weight: nextEdge.Weight})
				visited[nextEdge.To] = true

				if d1 <= newLen && newLen <= d2 {
					out := make([]EdgeStep, len(path))
					copy(out, path)
					if !yield(out) {
						return
					}
				}

				if !allVisited() {
					stack = append(stack, frame{
						edges:   g.Edges(nextEdge.To, attr, 1.0),
						nodeLen: newLen,
					})
				} else {
					// No more unvisited targets to extend into;
					// undo the push immediately (nothing left to explore from here).
					delete(visited, nextEdge.To)
					path = path[:len(path)-1]
				}
			}
		}
	}
}
