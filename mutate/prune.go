package mutate

import (
	"math"
	"sort"

	"github.com/mfagerlund/evolvatron/connectivity"
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/topology"
)

// minEdgesForPruning disables weak-edge pruning below this edge count,
// so a species never prunes itself down to a degenerate topology.
const minEdgesForPruning = 4

// PruneWeakEdges computes each edge's mean absolute weight across
// individuals, marks edges below threshold as candidates, and deletes
// a baseRate fraction of candidates (weakest first) that connectivity
// still permits deleting. Returns one Reindex to apply to every
// individual's weights, and the count of edges actually removed.
//
// Each candidate's deletability is checked against spec as it stood
// before this call, not against the edges already marked for removal
// in the same pass; two weak edges that are each other's sole
// alternate path can both be accepted here even though removing them
// together would disconnect a node. In practice this only matters for
// sparse topologies pruned at a high baseRate.
func PruneWeakEdges(spec *topology.SpeciesSpec, individuals []*individual.Individual, threshold, baseRate float64) (Reindex, int) {
	if len(spec.Edges) < minEdgesForPruning {
		return Identity(len(spec.Edges)), 0
	}

	meanAbs := make([]float64, len(spec.Edges))
	for _, ind := range individuals {
		for i, w := range ind.Weights {
			meanAbs[i] += math.Abs(w)
		}
	}
	if len(individuals) > 0 {
		for i := range meanAbs {
			meanAbs[i] /= float64(len(individuals))
		}
	}

	type candidate struct {
		idx  int
		mean float64
	}
	var candidates []candidate
	for i, m := range meanAbs {
		if m < threshold {
			candidates = append(candidates, candidate{idx: i, mean: m})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].mean < candidates[j].mean })

	target := int(math.Round(float64(len(candidates)) * baseRate))
	toRemove := make(map[int]bool, target)
	removed := 0
	for _, c := range candidates {
		if removed >= target {
			break
		}
		if !connectivity.CanDeleteEdge(spec, c.idx) {
			continue
		}
		toRemove[c.idx] = true
		removed++
	}
	if removed == 0 {
		return Identity(len(spec.Edges)), 0
	}

	items := make([]taggedEdge, 0, len(spec.Edges)-removed)
	for i, e := range spec.Edges {
		if !toRemove[i] {
			items = append(items, taggedEdge{edge: e, orig: i})
		}
	}
	return commitEdgeSet(spec, items, len(spec.Edges)), removed
}
