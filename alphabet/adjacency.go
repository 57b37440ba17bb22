package alphabet

import "sync"

// edgeRecord is one stored edge: To plus a named-attribute bag (e.g.
// "weight", "hop"). Attributes absent from this map fall back to the
// caller-supplied default in Edges().
type edgeRecord struct {
	to    Location
	attrs map[string]float64
}

// AdjacencyGraph is the concrete, thread-built Graph: a fixed-size
// adjacency list over Location in [0, N), directed or undirected,
// carrying named float64 edge attributes. It is the alphabet's
// workhorse implementation.
//
// AdjacencyGraph is safe to mutate concurrently with AddEdge during
// construction; once handed to afa.Compile or used in a trace it is
// expected to be treated as read-only.
type AdjacencyGraph struct {
	mu       sync.RWMutex
	n        int
	directed bool
	adj      [][]edgeRecord
}

// Option configures an AdjacencyGraph at construction.
type Option func(*AdjacencyGraph)

// WithDirected sets the graph's edge orientation (default: undirected,
// i.e. AddEdge also installs the mirror edge).
func WithDirected(directed bool) Option {
	return func(g *AdjacencyGraph) { g.directed = directed }
}

// NewAdjacencyGraph constructs an empty graph over locations [0, n).
func NewAdjacencyGraph(n int, opts ...Option) (*AdjacencyGraph, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	g := &AdjacencyGraph{
		n:   n,
		adj: make([][]edgeRecord, n),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Size returns the number of locations N this graph was built with.
func (g *AdjacencyGraph) Size() int { return g.n }

// validLocation reports whether loc is within [0, N).
func (g *AdjacencyGraph) validLocation(loc Location) bool {
	return loc >= 0 && int(loc) < g.n
}

// AddEdge adds an edge u->v (and, for undirected graphs, v->u) with the
// given named attributes. Returns ErrLocationOutOfRange if either
// endpoint is outside [0, N).
func (g *AdjacencyGraph) AddEdge(u, v Location, attrs map[string]float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validLocation(u) || !g.validLocation(v) {
		return ErrLocationOutOfRange
	}

	g.adj[u] = append(g.adj[u], edgeRecord{to: v, attrs: cloneAttrs(attrs)})
	if !g.directed && u != v {
		g.adj[v] = append(g.adj[v], edgeRecord{to: u, attrs: cloneAttrs(attrs)})
	}
	return nil
}

func cloneAttrs(attrs map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// Nodes returns every location [0, N) in ascending order.
func (g *AdjacencyGraph) Nodes() []Location {
	out := make([]Location, g.n)
	for i := range out {
		out[i] = Location(i)
	}
	return out
}

// Edges returns every outgoing edge from u, reading attr (falling back
// to def when an edge lacks it). Returns nil if u is out of range, and
// an empty slice if u has no outgoing edges.
func (g *AdjacencyGraph) Edges(u Location, attr string, def float64) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.validLocation(u) {
		return nil
	}
	recs := g.adj[u]
	out := make([]Edge, len(recs))
	for i, r := range recs {
		w, ok := r.attrs[attr]
		if !ok {
			w = def
		}
		out[i] = Edge{To: r.to, Weight: w}
	}
	return out
}

var _ Graph = (*AdjacencyGraph)(nil)
