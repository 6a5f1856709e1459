package mutate

import (
	"math/rand"
	"sort"

	"github.com/mfagerlund/evolvatron/connectivity"
	"github.com/mfagerlund/evolvatron/topology"
)

// taggedEdge carries an edge alongside the index it occupied before a
// structural edit (or -1 if the edge is brand new), so the final
// canonical sort can be traced back into a Reindex.
type taggedEdge struct {
	edge topology.Edge
	orig int
}

// commitEdgeSet sorts items into canonical order, writes the result
// into spec.Edges, re-derives RowPlans, and returns the Reindex
// describing the permutation. oldLen is the edge count spec had before
// this edit.
func commitEdgeSet(spec *topology.SpeciesSpec, items []taggedEdge, oldLen int) Reindex {
	sort.SliceStable(items, func(i, j int) bool {
		return topology.EdgeLess(items[i].edge, items[j].edge)
	})
	spec.Edges = make([]topology.Edge, len(items))
	mapping := make([]int, oldLen)
	for i := range mapping {
		mapping[i] = -1
	}
	var added []int
	for pos, it := range items {
		spec.Edges[pos] = it.edge
		if it.orig >= 0 {
			mapping[it.orig] = pos
		} else {
			added = append(added, pos)
		}
	}
	spec.DeriveRowPlans()
	return Reindex{Mapping: mapping, Added: added}
}

func taggedFromCurrent(spec *topology.SpeciesSpec) []taggedEdge {
	items := make([]taggedEdge, len(spec.Edges))
	for i, e := range spec.Edges {
		items[i] = taggedEdge{edge: e, orig: i}
	}
	return items
}

func parallelCount(spec *topology.SpeciesSpec, src, dst int32) int {
	n := 0
	for _, e := range spec.Edges {
		if e.Src == src && e.Dst == dst {
			n++
		}
	}
	return n
}

// EdgeAdd tries up to Attempts times to find a forward (src, dst) pair
// not already doubly present and within dst's in-degree bound, and
// inserts it. Reports ok=false, leaving spec unchanged, if no
// candidate is found.
func EdgeAdd(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	total := spec.TotalNodes()
	for attempt := 0; attempt < Attempts; attempt++ {
		src := rng.Intn(total)
		srcRow, _ := spec.RowOf(src)
		if srcRow == spec.LastRow() {
			continue
		}
		dstRow := srcRow + 1 + rng.Intn(spec.LastRow()-srcRow)
		dstStart := spec.RowStart(dstRow)
		dst := dstStart + rng.Intn(spec.RowCounts[dstRow])

		if parallelCount(spec, int32(src), int32(dst)) >= 2 {
			continue
		}
		if spec.InDegree(dst) >= spec.MaxInDegree {
			continue
		}

		items := taggedFromCurrent(spec)
		items = append(items, taggedEdge{edge: topology.Edge{Src: int32(src), Dst: int32(dst)}, orig: -1})
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// EdgeDeleteRandom tries up to Attempts times to find an edge whose
// removal leaves every output still reachable from some input, and
// deletes it.
func EdgeDeleteRandom(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) == 0 {
		return Reindex{}, false
	}
	for attempt := 0; attempt < Attempts; attempt++ {
		idx := rng.Intn(len(spec.Edges))
		if !connectivity.CanDeleteEdge(spec, idx) {
			continue
		}
		items := make([]taggedEdge, 0, len(spec.Edges)-1)
		for i, e := range spec.Edges {
			if i != idx {
				items = append(items, taggedEdge{edge: e, orig: i})
			}
		}
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// inactiveNodesBetween returns nodes in rows strictly between rowA and
// rowC that have neither an incoming nor an outgoing edge.
func inactiveNodesBetween(spec *topology.SpeciesSpec, rowA, rowC int) []int {
	hasEdge := make(map[int32]bool, spec.TotalNodes())
	for _, e := range spec.Edges {
		hasEdge[e.Src] = true
		hasEdge[e.Dst] = true
	}
	var out []int
	for row := rowA + 1; row < rowC; row++ {
		start := spec.RowStart(row)
		for i := 0; i < spec.RowCounts[row]; i++ {
			node := start + i
			if !hasEdge[int32(node)] {
				out = append(out, node)
			}
		}
	}
	return out
}

// EdgeSplit tries up to Attempts times to find an edge (a, c) spanning
// at least two rows and a currently inactive intermediate node b
// strictly between them, replacing (a, c) with (a, b), (b, c). Net +1
// edge.
func EdgeSplit(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) == 0 {
		return Reindex{}, false
	}
	for attempt := 0; attempt < Attempts; attempt++ {
		idx := rng.Intn(len(spec.Edges))
		e := spec.Edges[idx]
		rowA, _ := spec.RowOf(int(e.Src))
		rowC, _ := spec.RowOf(int(e.Dst))
		if rowC-rowA < 2 {
			continue
		}
		candidates := inactiveNodesBetween(spec, rowA, rowC)
		if len(candidates) == 0 {
			continue
		}
		b := candidates[rng.Intn(len(candidates))]

		items := make([]taggedEdge, 0, len(spec.Edges)+1)
		for i, other := range spec.Edges {
			if i != idx {
				items = append(items, taggedEdge{edge: other, orig: i})
			}
		}
		items = append(items,
			taggedEdge{edge: topology.Edge{Src: e.Src, Dst: int32(b)}, orig: -1},
			taggedEdge{edge: topology.Edge{Src: int32(b), Dst: e.Dst}, orig: -1},
		)
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// EdgeSplitSmart behaves like EdgeSplit but additionally bridges the
// newly activated intermediate b into the rest of the active graph
// with two extra low-weight stabilization edges: one from an active
// node in row(b)-1 (preferring a, the original source, if active) to
// b, and one from b to an active node in row(b)+1 (preferring c).
// Net: -1 edge, +4 edges. Callers read r.Added (always length 4,
// listing the four new edges' indices in ascending canonical order,
// not in the order they were created) to initialize the new weights
// at small amplitude.
func EdgeSplitSmart(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) == 0 {
		return Reindex{}, false
	}
	rs := connectivity.Reachability(spec)
	for attempt := 0; attempt < Attempts; attempt++ {
		idx := rng.Intn(len(spec.Edges))
		e := spec.Edges[idx]
		rowA, _ := spec.RowOf(int(e.Src))
		rowC, _ := spec.RowOf(int(e.Dst))
		if rowC-rowA < 2 {
			continue
		}
		candidates := inactiveNodesBetween(spec, rowA, rowC)
		if len(candidates) == 0 {
			continue
		}
		b := candidates[rng.Intn(len(candidates))]
		rowB, _ := spec.RowOf(b)

		stabIn := findActiveInRow(spec, rs, rowB-1, int(e.Src))
		stabOut := findActiveInRow(spec, rs, rowB+1, int(e.Dst))
		if stabIn < 0 || stabOut < 0 {
			continue
		}

		items := make([]taggedEdge, 0, len(spec.Edges)+4)
		for i, other := range spec.Edges {
			if i != idx {
				items = append(items, taggedEdge{edge: other, orig: i})
			}
		}
		items = append(items,
			taggedEdge{edge: topology.Edge{Src: e.Src, Dst: int32(b)}, orig: -1},
			taggedEdge{edge: topology.Edge{Src: int32(b), Dst: e.Dst}, orig: -1},
			taggedEdge{edge: topology.Edge{Src: int32(stabIn), Dst: int32(b)}, orig: -1},
			taggedEdge{edge: topology.Edge{Src: int32(b), Dst: int32(stabOut)}, orig: -1},
		)
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// findActiveInRow returns preferred if it lies in row and is active;
// otherwise the first active node found in row, or -1 if none.
func findActiveInRow(spec *topology.SpeciesSpec, rs connectivity.ReachabilitySets, row, preferred int) int {
	if row < 0 || row >= len(spec.RowCounts) {
		return -1
	}
	if pr, _ := spec.RowOf(preferred); pr == row && rs.Active(preferred) {
		return preferred
	}
	start := spec.RowStart(row)
	for i := 0; i < spec.RowCounts[row]; i++ {
		node := start + i
		if rs.Active(node) {
			return node
		}
	}
	return -1
}

// EdgeRedirect tries up to Attempts times to reassign either the
// source or the destination of a randomly chosen edge to a different
// node, preserving acyclicity, the 2-parallel-edge cap, the in-degree
// bound, and every output's reachability from some input.
func EdgeRedirect(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) == 0 {
		return Reindex{}, false
	}
	total := spec.TotalNodes()
	for attempt := 0; attempt < Attempts; attempt++ {
		idx := rng.Intn(len(spec.Edges))
		e := spec.Edges[idx]
		redirectDst := rng.Intn(2) == 0

		var candidate topology.Edge
		if redirectDst {
			srcRow, _ := spec.RowOf(int(e.Src))
			if srcRow == spec.LastRow() {
				continue
			}
			newDstRow := srcRow + 1 + rng.Intn(spec.LastRow()-srcRow)
			newDst := spec.RowStart(newDstRow) + rng.Intn(spec.RowCounts[newDstRow])
			candidate = topology.Edge{Src: e.Src, Dst: int32(newDst)}
		} else {
			dstRow, _ := spec.RowOf(int(e.Dst))
			if dstRow == 0 {
				continue
			}
			newSrcRow := rng.Intn(dstRow)
			newSrc := spec.RowStart(newSrcRow) + rng.Intn(spec.RowCounts[newSrcRow])
			candidate = topology.Edge{Src: int32(newSrc), Dst: e.Dst}
		}
		if candidate == e {
			continue
		}
		if parallelCount(spec, candidate.Src, candidate.Dst) >= 2 {
			continue
		}
		if candidate.Dst != e.Dst && spec.InDegree(int(candidate.Dst)) >= spec.MaxInDegree {
			continue
		}
		if int(candidate.Src) < 0 || int(candidate.Src) >= total {
			continue
		}

		items := make([]taggedEdge, 0, len(spec.Edges))
		for i, other := range spec.Edges {
			if i == idx {
				items = append(items, taggedEdge{edge: candidate, orig: i})
			} else {
				items = append(items, taggedEdge{edge: other, orig: i})
			}
		}
		trial := &topology.SpeciesSpec{RowCounts: spec.RowCounts, MaxInDegree: spec.MaxInDegree, Edges: make([]topology.Edge, len(items))}
		for k, it := range items {
			trial.Edges[k] = it.edge
		}
		if connectivity.ValidateConnectivity(trial) != nil {
			continue
		}
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// EdgeDuplicate tries up to Attempts times to find an edge with fewer
// than 2 parallel copies and adds a second copy, independently
// weight-initialized by the caller via Reindex.Added.
func EdgeDuplicate(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) == 0 {
		return Reindex{}, false
	}
	for attempt := 0; attempt < Attempts; attempt++ {
		idx := rng.Intn(len(spec.Edges))
		e := spec.Edges[idx]
		if parallelCount(spec, e.Src, e.Dst) >= 2 {
			continue
		}
		if spec.InDegree(int(e.Dst)) >= spec.MaxInDegree {
			continue
		}
		items := taggedFromCurrent(spec)
		items = append(items, taggedEdge{edge: e, orig: -1})
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

// EdgeSwap picks two distinct edges and exchanges their destinations,
// retrying up to Attempts times until the swap preserves acyclicity,
// the parallel-edge cap, in-degree bounds for both endpoints, and
// every output's reachability from some input.
func EdgeSwap(spec *topology.SpeciesSpec, rng *rand.Rand) (Reindex, bool) {
	if len(spec.Edges) < 2 {
		return Reindex{}, false
	}
	for attempt := 0; attempt < Attempts; attempt++ {
		i := rng.Intn(len(spec.Edges))
		j := rng.Intn(len(spec.Edges))
		if i == j {
			continue
		}
		ei, ej := spec.Edges[i], spec.Edges[j]
		newI := topology.Edge{Src: ei.Src, Dst: ej.Dst}
		newJ := topology.Edge{Src: ej.Src, Dst: ei.Dst}

		srcRowI, _ := spec.RowOf(int(newI.Src))
		dstRowI, _ := spec.RowOf(int(newI.Dst))
		srcRowJ, _ := spec.RowOf(int(newJ.Src))
		dstRowJ, _ := spec.RowOf(int(newJ.Dst))
		if srcRowI >= dstRowI || srcRowJ >= dstRowJ {
			continue
		}
		if newI == ei || newJ == ej {
			continue
		}

		items := make([]taggedEdge, 0, len(spec.Edges))
		for k, other := range spec.Edges {
			switch k {
			case i:
				items = append(items, taggedEdge{edge: newI, orig: k})
			case j:
				items = append(items, taggedEdge{edge: newJ, orig: k})
			default:
				items = append(items, taggedEdge{edge: other, orig: k})
			}
		}
		// Parallel-edge and in-degree checks against the post-swap set.
		if countOccurrences(items, newI) > 2 || countOccurrences(items, newJ) > 2 {
			continue
		}
		if inDegreeOf(items, newI.Dst) > spec.MaxInDegree || inDegreeOf(items, newJ.Dst) > spec.MaxInDegree {
			continue
		}
		trial := &topology.SpeciesSpec{RowCounts: spec.RowCounts, MaxInDegree: spec.MaxInDegree, Edges: make([]topology.Edge, len(items))}
		for k, it := range items {
			trial.Edges[k] = it.edge
		}
		if connectivity.ValidateConnectivity(trial) != nil {
			continue
		}
		return commitEdgeSet(spec, items, len(spec.Edges)), true
	}
	return Reindex{}, false
}

func countOccurrences(items []taggedEdge, e topology.Edge) int {
	n := 0
	for _, it := range items {
		if it.edge == e {
			n++
		}
	}
	return n
}

func inDegreeOf(items []taggedEdge, dst int32) int {
	n := 0
	for _, it := range items {
		if it.edge.Dst == dst {
			n++
		}
	}
	return n
}

// MergeResult reports which two pre-merge edge indices collapsed into
// one, alongside the Reindex describing the resulting permutation.
// KeptOldIndex is the edge whose (src, dst) survives; DroppedOldIndex
// is the duplicate removed. Every individual under this spec must sum
// its own weights[KeptOldIndex] and weights[DroppedOldIndex] and place
// the total at Reindex.Mapping[KeptOldIndex] — only the caller has
// access to each individual's own weight values, so EdgeMerge itself
// only identifies which edges collapsed.
type MergeResult struct {
	Reindex        Reindex
	KeptOldIndex   int
	DroppedOldIndex int
}

// EdgeMerge finds a (src, dst) pair with exactly two parallel copies
// and collapses them into one. Returns ok=false if no duplicated pair
// exists.
func EdgeMerge(spec *topology.SpeciesSpec) (MergeResult, bool) {
	seen := make(map[topology.Edge][]int, len(spec.Edges))
	for i, e := range spec.Edges {
		seen[e] = append(seen[e], i)
	}
	var idxs []int
	for _, idx := range seen {
		if len(idx) >= 2 {
			idxs = idx[:2]
			break
		}
	}
	if idxs == nil {
		return MergeResult{}, false
	}
	kept, dropped := idxs[0], idxs[1]
	items := make([]taggedEdge, 0, len(spec.Edges)-1)
	for i, e := range spec.Edges {
		if i != dropped {
			items = append(items, taggedEdge{edge: e, orig: i})
		}
	}
	r := commitEdgeSet(spec, items, len(spec.Edges))
	return MergeResult{Reindex: r, KeptOldIndex: kept, DroppedOldIndex: dropped}, true
}

// ApplyMerge applies a MergeResult to one individual's weights,
// summing the two collapsed weights into the surviving slot.
func ApplyMerge(weights []float64, m MergeResult) []float64 {
	summed := weights[m.KeptOldIndex] + weights[m.DroppedOldIndex]
	out := ApplyReindex(weights, m.Reindex, func(int) float64 { return 0 })
	out[m.Reindex.Mapping[m.KeptOldIndex]] = summed
	return out
}
