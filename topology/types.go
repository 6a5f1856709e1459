package topology

import "github.com/mfagerlund/evolvatron/activation"

// maxParallelEdges is the hard cap on duplicate (src, dst) copies a
// SpeciesSpec may carry. Structural mutation never constructs more
// than two parallel copies of an edge, so Validate enforces the same
// bound rather than leaving it unbounded.
const maxParallelEdges = 2

// Edge is a directed connection from a node in an earlier row to a
// node in a later row. Edge carries no identity beyond its (Src, Dst)
// pair and its position in SpeciesSpec.Edges — that position, after
// BuildRowPlans, is the canonical edge index every Individual's
// Weights slice is aligned to.
type Edge struct {
	Src int32
	Dst int32
}

// RowPlan describes, for one row, the contiguous node-index range it
// owns and the contiguous slice of SpeciesSpec.Edges (in canonical
// (dest,src) order) whose destinations lie in that row.
type RowPlan struct {
	NodeStart int
	NodeCount int
	EdgeStart int
	EdgeCount int
}

// SpeciesSpec is the shared, validated topology for every individual of
// one species: row layout, per-row activation whitelist, the forward
// edge set, and the derived row plans used by the evaluator.
//
// SpeciesSpec carries no internal lock: it is owned by exactly one
// species and mutated only inside structural mutation operators, which
// hold single-writer discipline by convention (the evolution loop never
// mutates a spec concurrently with evaluating individuals against it).
type SpeciesSpec struct {
	RowCounts           []int
	AllowedActivations  []activation.Mask // len == len(RowCounts)
	Edges               []Edge            // canonical order only valid after BuildRowPlans
	MaxInDegree         int
	RowPlans            []RowPlan // derived; empty until BuildRowPlans is called
}

// TotalNodes returns the sum of all row counts.
func (s *SpeciesSpec) TotalNodes() int {
	n := 0
	for _, c := range s.RowCounts {
		n += c
	}
	return n
}

// RowStart returns the first node index owned by row r. It does not
// bounds-check r and panics if r > len(RowCounts) (RowOf performs the
// bounds-checked lookup for external callers).
func (s *SpeciesSpec) RowStart(r int) int {
	start := 0
	for i := 0; i < r; i++ {
		start += s.RowCounts[i]
	}
	return start
}

// RowOf returns the row index owning node, or ErrNodeOutOfRange.
func (s *SpeciesSpec) RowOf(node int) (int, error) {
	if node < 0 {
		return 0, ErrNodeOutOfRange
	}
	start := 0
	for r, count := range s.RowCounts {
		if node < start+count {
			return r, nil
		}
		start += count
	}
	return 0, ErrNodeOutOfRange
}

// IsActivationAllowed reports whether row r's whitelist permits a. Out-
// of-range rows are never allowed.
func (s *SpeciesSpec) IsActivationAllowed(row int, a activation.ActivationType) bool {
	if row < 0 || row >= len(s.AllowedActivations) {
		return false
	}
	return s.AllowedActivations[row].Allows(a)
}

// LastRow returns the index of the output row.
func (s *SpeciesSpec) LastRow() int {
	return len(s.RowCounts) - 1
}

// InDegree counts incoming edges to node by a linear scan of Edges.
// Callers on a hot path should instead use RowPlans (edges are already
// partitioned by destination row after BuildRowPlans); InDegree is
// provided for validation and for callers inspecting a spec before
// row plans have been rebuilt.
func (s *SpeciesSpec) InDegree(node int) int {
	n := 0
	for _, e := range s.Edges {
		if int(e.Dst) == node {
			n++
		}
	}
	return n
}
