package topology

import "sort"

// Validate checks row layout, activation-mask alignment, the output
// row's activation mask, edge ranges, forward-only edges, and
// parallel-edge and in-degree bounds, returning a concrete
// *InvalidTopologyError on the first violation found, checked in the
// order listed below. It does not check reachability; see package
// connectivity for that.
func (s *SpeciesSpec) Validate() error {
	// At least one row.
	if len(s.RowCounts) == 0 {
		return invalidf(ReasonEmptyRows, "row_counts is empty")
	}
	// Structural: activation masks must align 1:1 with rows.
	if len(s.AllowedActivations) != len(s.RowCounts) {
		return invalidf(ReasonMismatchedRowData, "len(allowed_activations)=%d != len(row_counts)=%d",
			len(s.AllowedActivations), len(s.RowCounts))
	}
	// All row counts positive.
	for r, c := range s.RowCounts {
		if c <= 0 {
			return invalidf(ReasonNonPositiveRowCount, "row %d has count %d", r, c)
		}
	}
	// Output row's allowed-activation mask only contains output-valid
	// activations.
	if !s.AllowedActivations[s.LastRow()].OutputSafe() {
		return invalidf(ReasonInvalidOutputActivation, "row %d", s.LastRow())
	}

	total := s.TotalNodes()
	inDegree := make(map[int32]int, total)
	parallel := make(map[Edge]int, len(s.Edges))

	for i, e := range s.Edges {
		// Both endpoints must be within [0, total_nodes).
		if e.Src < 0 || int(e.Src) >= total || e.Dst < 0 || int(e.Dst) >= total {
			return invalidf(ReasonEdgeOutOfRange, "edge %d = (%d -> %d)", i, e.Src, e.Dst)
		}
		srcRow, err := s.RowOf(int(e.Src))
		if err != nil {
			return invalidf(ReasonEdgeOutOfRange, "edge %d source %d: %v", i, e.Src, err)
		}
		dstRow, err := s.RowOf(int(e.Dst))
		if err != nil {
			return invalidf(ReasonEdgeOutOfRange, "edge %d dest %d: %v", i, e.Dst, err)
		}
		// Strict forward ordering.
		if srcRow >= dstRow {
			return invalidf(ReasonBackEdge, "edge %d = (%d -> %d): row(%d)=%d, row(%d)=%d",
				i, e.Src, e.Dst, e.Src, srcRow, e.Dst, dstRow)
		}
		inDegree[e.Dst]++
		parallel[e]++
		if parallel[e] > maxParallelEdges {
			return invalidf(ReasonTooManyParallelEdges, "edge (%d -> %d) appears %d times", e.Src, e.Dst, parallel[e])
		}
	}

	// In-degree bound.
	for node, deg := range inDegree {
		if deg > s.MaxInDegree {
			return invalidf(ReasonInDegreeExceeded, "node %d has in-degree %d > max %d", node, deg, s.MaxInDegree)
		}
	}

	return nil
}

// EdgeLess is the canonical (Dst, Src) ascending ordering every sorted
// edge list and every weight array alignment is defined in terms of.
// Exported so callers that must sort a tagged copy of an edge list
// alongside auxiliary per-edge data (see package mutate's Reindex
// bookkeeping) use the exact same ordering.
func EdgeLess(a, b Edge) bool {
	if a.Dst != b.Dst {
		return a.Dst < b.Dst
	}
	return a.Src < b.Src
}

// SortEdgesCanonical sorts Edges by (Dst, Src) ascending using a
// stable sort, so edges that tie on (Dst, Src) — parallel copies —
// keep their relative input order. Callers that need to track how a
// structural edit permuted edge indices (see package mutate) sort
// their own tagged copy with the same comparator and stability
// guarantee instead of calling this method, then assign the result to
// Edges directly before calling DeriveRowPlans.
func (s *SpeciesSpec) SortEdgesCanonical() {
	sort.SliceStable(s.Edges, func(i, j int) bool {
		return EdgeLess(s.Edges[i], s.Edges[j])
	})
}

// DeriveRowPlans computes RowPlans assuming Edges is already in
// canonical (Dst, Src) order; it does not sort.
func (s *SpeciesSpec) DeriveRowPlans() {
	plans := make([]RowPlan, len(s.RowCounts))
	nodeStart := 0
	edgeCursor := 0
	for r, count := range s.RowCounts {
		rowEnd := nodeStart + count
		edgeStart := edgeCursor
		for edgeCursor < len(s.Edges) && int(s.Edges[edgeCursor].Dst) < rowEnd {
			edgeCursor++
		}
		plans[r] = RowPlan{
			NodeStart: nodeStart,
			NodeCount: count,
			EdgeStart: edgeStart,
			EdgeCount: edgeCursor - edgeStart,
		}
		nodeStart = rowEnd
	}
	s.RowPlans = plans
}

// BuildRowPlans sorts Edges into canonical order — the order every
// weight array must be aligned to — and derives RowPlans, one entry
// per row, each covering the contiguous slice of the sorted edge list
// whose destinations lie in that row.
//
// BuildRowPlans does not call Validate; callers that need a guaranteed-
// valid spec should call Validate() either before or after, as
// appropriate to the mutation in progress.
func (s *SpeciesSpec) BuildRowPlans() {
	s.SortEdgesCanonical()
	s.DeriveRowPlans()
}
