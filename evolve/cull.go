package evolve

import (
	"math/rand"

	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/mutate"
	"github.com/mfagerlund/evolvatron/topology"
)

// shouldCull reports whether sp meets the culling predicate: under
// CullAll, every one of the four stagnation conditions must hold
// (AND); under CullAny, at least one is enough (OR).
func shouldCull(sp *Species, cfg EvolutionConfig, globalBestMedian float64) bool {
	conditions := [4]bool{
		sp.Age > cfg.GraceGenerations,
		sp.Stats.GenerationsSinceImprovement >= cfg.StagnationThreshold,
		sp.Stats.BestFitnessEver < cfg.RelativePerformanceThreshold*globalBestMedian,
		sp.Stats.FitnessVariance < cfg.SpeciesDiversityThreshold,
	}
	switch cfg.CullMode {
	case CullAny:
		for _, c := range conditions {
			if c {
				return true
			}
		}
		return false
	default:
		for _, c := range conditions {
			if !c {
				return false
			}
		}
		return true
	}
}

// cull replaces every species that meets the culling predicate with a
// diversified newborn, never dropping the population below
// config.MinSpeciesCount.
func (e *Evolver) cull(pop *Population) {
	if len(pop.AllSpecies) <= e.config.MinSpeciesCount {
		return
	}

	globalBestMedian := globalMedianOfBest(pop)
	var survivors []*Species
	var culled []*Species
	for _, sp := range pop.AllSpecies {
		if shouldCull(sp, e.config, globalBestMedian) {
			culled = append(culled, sp)
		} else {
			survivors = append(survivors, sp)
		}
	}

	maxCull := len(pop.AllSpecies) - e.config.MinSpeciesCount
	if len(culled) > maxCull {
		survivors = append(survivors, culled[maxCull:]...)
		culled = culled[:maxCull]
	}

	for range culled {
		newborn := e.diversify(survivors)
		survivors = append(survivors, newborn)
		pop.TotalSpeciesCreated++
	}
	pop.AllSpecies = survivors
}

func globalMedianOfBest(pop *Population) float64 {
	var bests []float64
	for _, sp := range pop.AllSpecies {
		bests = append(bests, sp.Stats.BestFitnessEver)
	}
	if len(bests) == 0 {
		return 0
	}
	return median(bests)
}

// diversify spawns a new species: choose a founding species weighted
// by median fitness, deep-copy and perturb its topology, repair any
// structural damage, then adapt a founding individual's weights onto
// the perturbed topology (preserving edges whose (src, dst) tuple
// still exists, Glorot-initializing the rest), and spawn
// IndividualsPerSpecies children from it.
func (e *Evolver) diversify(candidates []*Species) *Species {
	founder := e.chooseFounder(candidates)
	perturbed, survivingEdges := e.perturbTopology(founder.Topology)

	founderInd := bestIndividual(founder.Individuals)
	adapted := adaptIndividual(founderInd, founder.Topology, perturbed, survivingEdges, e.rng)

	sp := &Species{Topology: perturbed}
	for i := 0; i < e.config.IndividualsPerSpecies; i++ {
		child := adapted.Clone()
		mutate.ApplyPerIndividual(child, perturbed, e.config.Weights, e.rng)
		sp.Individuals = append(sp.Individuals, child)
	}
	return sp
}

func (e *Evolver) chooseFounder(candidates []*Species) *Species {
	total := 0.0
	for _, sp := range candidates {
		total += positivePart(sp.Stats.MedianFitness)
	}
	if total <= 0 {
		return candidates[e.rng.Intn(len(candidates))]
	}
	target := e.rng.Float64() * total
	acc := 0.0
	for _, sp := range candidates {
		acc += positivePart(sp.Stats.MedianFitness)
		if acc >= target {
			return sp
		}
	}
	return candidates[len(candidates)-1]
}

func positivePart(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func bestIndividual(individuals []*individual.Individual) *individual.Individual {
	best := individuals[0]
	for _, ind := range individuals[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// perturbHiddenRowFraction bounds how much a hidden row's node count
// can shrink or grow in one diversification step.
const perturbHiddenRowFraction = 0.2

// perturbTopology deep-copies founder, perturbs hidden-row sizes
// within bounds, drops edges referencing removed nodes, and re-runs
// BuildRowPlans/Validate. It returns the perturbed spec and the set of
// (src, dst) edges that survived unchanged from the founder, by
// tuple.
func (e *Evolver) perturbTopology(founder *topology.SpeciesSpec) (*topology.SpeciesSpec, map[topology.Edge]bool) {
	oldRowCounts := append([]int(nil), founder.RowCounts...)
	newRowCounts := append([]int(nil), founder.RowCounts...)
	for row := 1; row < len(newRowCounts)-1; row++ {
		delta := int(float64(newRowCounts[row]) * perturbHiddenRowFraction)
		if delta < 1 {
			delta = 1
		}
		change := e.rng.Intn(2*delta+1) - delta
		newCount := newRowCounts[row] + change
		if newCount < 1 {
			newCount = 1
		}
		newRowCounts[row] = newCount
	}

	oldStart := rowStarts(oldRowCounts)
	newStart := rowStarts(newRowCounts)

	// remapNode maps an old absolute node index to its new absolute
	// index, or -1 if the node's row shrank and dropped it (only the
	// last nodes of a row are ever dropped, so earlier offsets within
	// the row are unaffected).
	remapNode := func(old int) int {
		row, err := founder.RowOf(old)
		if err != nil {
			return -1
		}
		offset := old - oldStart[row]
		if offset >= newRowCounts[row] {
			return -1
		}
		return newStart[row] + offset
	}

	perturbed := founder.Clone()
	perturbed.RowCounts = newRowCounts

	var kept []topology.Edge
	survivingTuples := make(map[topology.Edge]bool)
	for _, edge := range perturbed.Edges {
		newSrc, newDst := remapNode(int(edge.Src)), remapNode(int(edge.Dst))
		if newSrc < 0 || newDst < 0 {
			continue
		}
		remapped := topology.Edge{Src: int32(newSrc), Dst: int32(newDst)}
		kept = append(kept, remapped)
		if newSrc == int(edge.Src) && newDst == int(edge.Dst) {
			survivingTuples[remapped] = true
		}
	}
	perturbed.Edges = kept
	perturbed.BuildRowPlans()

	if err := perturbed.Validate(); err != nil {
		perturbed = repairConnectivity(perturbed, e.rng)
	}
	return perturbed, survivingTuples
}

func rowStarts(rowCounts []int) []int {
	starts := make([]int, len(rowCounts))
	acc := 0
	for i, c := range rowCounts {
		starts[i] = acc
		acc += c
	}
	return starts
}

// repairConnectivity adds a minimal chain of edges (mirroring
// specbuilder.InitializeSparse) so every row has at least one
// incoming edge from the row before it, then rebuilds row plans.
func repairConnectivity(spec *topology.SpeciesSpec, rng *rand.Rand) *topology.SpeciesSpec {
	for row := 1; row < len(spec.RowCounts); row++ {
		start := spec.RowStart(row)
		prevStart, prevCount := spec.RowStart(row-1), spec.RowCounts[row-1]
		for i := 0; i < spec.RowCounts[row]; i++ {
			node := start + i
			if spec.InDegree(node) == 0 {
				src := prevStart + rng.Intn(prevCount)
				spec.Edges = append(spec.Edges, topology.Edge{Src: int32(src), Dst: int32(node)})
			}
		}
	}
	spec.BuildRowPlans()
	return spec
}

// adaptIndividual builds a fresh individual.Individual sized for
// perturbed, preserving founderInd's weight for every edge whose
// (src, dst) tuple survived and Glorot-initializing every other
// weight; biases, node params, and activations are copied node-for-
// node where the node index still exists and fresh otherwise.
func adaptIndividual(founderInd *individual.Individual, founderSpec, perturbed *topology.SpeciesSpec, survivingTuples map[topology.Edge]bool, rng *rand.Rand) *individual.Individual {
	adapted := individual.New(perturbed)

	founderWeightByTuple := make(map[topology.Edge]float64, len(founderSpec.Edges))
	for i, e := range founderSpec.Edges {
		founderWeightByTuple[e] = founderInd.Weights[i]
	}

	for i, e := range perturbed.Edges {
		if w, ok := founderWeightByTuple[e]; ok && survivingTuples[e] {
			adapted.Weights[i] = w
		} else {
			adapted.Weights[i] = individual.GlorotWeight(perturbed.InDegree(int(e.Dst)), 1, rng)
		}
	}

	n := min(len(founderInd.Biases), len(adapted.Biases))
	copy(adapted.Biases[:n], founderInd.Biases[:n])
	copy(adapted.NodeParams[:n], founderInd.NodeParams[:n])
	copy(adapted.Activations[:n], founderInd.Activations[:n])

	return adapted
}
