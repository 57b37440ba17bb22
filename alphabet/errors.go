package alphabet

import "errors"

// Sentinel errors for AdjacencyGraph construction and mutation.
var (
	// ErrLocationOutOfRange indicates a location outside [0, N).
	ErrLocationOutOfRange = errors.New("alphabet: location out of range")

	// ErrInvalidSize indicates a non-positive location count was
	// requested.
	ErrInvalidSize = errors.New("alphabet: location count must be positive")

	// ErrDuplicateEdge names a second edge between the same ordered
	// pair. AdjacencyGraph.AddEdge does not return it: it stores
	// parallel edges side by side.
	ErrDuplicateEdge = errors.New("alphabet: duplicate edge")
)
