package specbuilder

import "errors"

// Sentinel errors for SpeciesBuilder: package-level errors.New values,
// never stringified at the definition site, wrapped with
// fmt.Errorf("%w: ...") at the call site.
var (
	// ErrNoRows indicates Build was called before any row was added.
	ErrNoRows = errors.New("specbuilder: no rows added")

	// ErrRowSizeInvalid indicates a row was added with a non-positive size.
	ErrRowSizeInvalid = errors.New("specbuilder: row size must be positive")

	// ErrMaxInDegreeInvalid indicates WithMaxInDegree received a non-positive value.
	ErrMaxInDegreeInvalid = errors.New("specbuilder: max_in_degree must be positive")

	// ErrEdgeOutOfRange indicates AddEdge referenced a node outside the
	// builder's current node range.
	ErrEdgeOutOfRange = errors.New("specbuilder: edge node out of range")

	// ErrEdgeNotForward indicates AddEdge's source row was not strictly
	// earlier than its destination row.
	ErrEdgeNotForward = errors.New("specbuilder: edge must go strictly forward")

	// ErrNoOutputRow indicates Build was called without an output row
	// (the last row added via AddOutputRow).
	ErrNoOutputRow = errors.New("specbuilder: no output row added")

	// ErrNeedRandSource indicates InitializeSparse/InitializeDense was
	// called with a nil *rand.Rand.
	ErrNeedRandSource = errors.New("specbuilder: rng is required")

	// ErrRowIndexInvalid indicates FullyConnect referenced a row outside
	// [0, rows).
	ErrRowIndexInvalid = errors.New("specbuilder: row index out of range")
)
