package evolve

import (
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/mutate"
)

// applyStructuralMutations rolls each configured structural operator
// once per generation for sp, in a fixed order, each independently
// gated by its own rate in e.config.StructuralMutationRate. A
// successful operator edits sp.Topology and reindexes every individual
// in sp.Individuals through the returned mutate.Reindex; a failed "try"
// (see mutate.Attempts) or a roll that doesn't fire leaves the species
// untouched.
//
// edge_add and edge_delete_random are not consulted at their static
// configured rate: e.config.Complexity scales both by how far sp's
// active (input-to-output-reachable) hidden-node and edge counts sit
// from their targets, via mutate.ComplexityScore/EffectiveRates, and
// forces deletion to 0 below Complexity.MinActiveEdges.
func (e *Evolver) applyStructuralMutations(sp *Species) {
	order := []string{
		OpEdgeAdd, OpEdgeDeleteRandom, OpEdgeSplit, OpEdgeSplitSmart,
		OpEdgeRedirect, OpEdgeDuplicate, OpEdgeSwap,
	}
	activeHidden, activeEdges := mutate.CountActiveHiddenAndEdges(sp.Topology)
	s := mutate.ComplexityScore(activeHidden, activeEdges, e.config.Complexity)
	addRate, deleteRate := mutate.EffectiveRates(
		activeEdges, s,
		e.config.StructuralMutationRate[OpEdgeAdd],
		e.config.StructuralMutationRate[OpEdgeDeleteRandom],
		e.config.Complexity,
	)
	for _, op := range order {
		rate := e.config.StructuralMutationRate[op]
		switch op {
		case OpEdgeAdd:
			rate = addRate
		case OpEdgeDeleteRandom:
			rate = deleteRate
		}
		if rate <= 0 || e.rng.Float64() >= rate {
			continue
		}
		e.runStructuralOp(sp, op)
	}

	if e.config.WeakEdgePruningEnabled {
		r, removed := mutate.PruneWeakEdges(sp.Topology, sp.Individuals, e.config.WeakEdgeThreshold, e.config.BaseWeakEdgePruneRate)
		if removed > 0 {
			reindexAll(sp, r)
		}
	}
}

func (e *Evolver) runStructuralOp(sp *Species, op string) {
	switch op {
	case OpEdgeAdd:
		if r, ok := mutate.EdgeAdd(sp.Topology, e.rng); ok {
			reindexAllWithInit(sp, r, e.glorotInit(sp))
		}
	case OpEdgeDeleteRandom:
		if r, ok := mutate.EdgeDeleteRandom(sp.Topology, e.rng); ok {
			reindexAll(sp, r)
		}
	case OpEdgeSplit:
		if r, ok := mutate.EdgeSplit(sp.Topology, e.rng); ok {
			reindexAllWithInit(sp, r, e.glorotInit(sp))
		}
	case OpEdgeSplitSmart:
		if r, ok := mutate.EdgeSplitSmart(sp.Topology, e.rng); ok {
			reindexAllWithInit(sp, r, func(int) float64 { return e.rng.Float64()*0.02 - 0.01 })
		}
	case OpEdgeRedirect:
		if r, ok := mutate.EdgeRedirect(sp.Topology, e.rng); ok {
			reindexAll(sp, r)
		}
	case OpEdgeDuplicate:
		if r, ok := mutate.EdgeDuplicate(sp.Topology, e.rng); ok {
			reindexAllWithInit(sp, r, e.glorotInit(sp))
		}
	case OpEdgeSwap:
		if r, ok := mutate.EdgeSwap(sp.Topology, e.rng); ok {
			reindexAll(sp, r)
		}
	}
}

func (e *Evolver) glorotInit(sp *Species) func(int) float64 {
	fanIn := make([]int, sp.Topology.TotalNodes())
	fanOut := make([]int, sp.Topology.TotalNodes())
	for _, edge := range sp.Topology.Edges {
		fanIn[edge.Dst]++
		fanOut[edge.Src]++
	}
	return func(dstIndex int) float64 {
		edge := sp.Topology.Edges[dstIndex]
		return individual.GlorotWeight(fanIn[edge.Dst], fanOut[edge.Src], e.rng)
	}
}

func reindexAll(sp *Species, r mutate.Reindex) {
	reindexAllWithInit(sp, r, func(int) float64 { return 0 })
}

func reindexAllWithInit(sp *Species, r mutate.Reindex, initNew func(dstIndex int) float64) {
	for _, ind := range sp.Individuals {
		ind.Weights = mutate.ApplyReindex(ind.Weights, r, initNew)
	}
}
