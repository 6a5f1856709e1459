package evolve

import (
	"sort"

	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/topology"
)

// SpeciesStats tracks the running performance record a species' culling
// and diversification decisions are based on.
type SpeciesStats struct {
	BestFitnessEver            float64
	MedianFitness              float64
	FitnessVariance            float64
	GenerationsSinceImprovement int
}

// Species owns one independently mutated topology and the individuals
// evolving against it.
type Species struct {
	Topology    *topology.SpeciesSpec
	Individuals []*individual.Individual
	Age         int
	Stats       SpeciesStats
}

// Population is the evolutionary loop's top-level state: an ordered
// sequence of species plus the generation counter and a monotone
// count of every species ever created (including replacements born
// during culling).
type Population struct {
	AllSpecies          []*Species
	Generation          int
	TotalSpeciesCreated int
}

// GetBestIndividual returns the single highest-fitness individual
// across every species, and the species it belongs to. Returns nil,
// nil if the population holds no individuals.
func (p *Population) GetBestIndividual() (*individual.Individual, *Species) {
	var best *individual.Individual
	var bestSpecies *Species
	for _, sp := range p.AllSpecies {
		for _, ind := range sp.Individuals {
			if best == nil || ind.Fitness > best.Fitness {
				best = ind
				bestSpecies = sp
			}
		}
	}
	return best, bestSpecies
}

// Statistics summarizes fitness across the whole population.
type Statistics struct {
	BestFitness   float64
	MeanFitness   float64
	MedianFitness float64
	WorstFitness  float64
}

// GetStatistics computes Statistics across every individual in every
// species. Returns the zero value if the population holds no
// individuals.
func (p *Population) GetStatistics() Statistics {
	var all []float64
	for _, sp := range p.AllSpecies {
		for _, ind := range sp.Individuals {
			all = append(all, ind.Fitness)
		}
	}
	if len(all) == 0 {
		return Statistics{}
	}
	sum := 0.0
	best, worst := all[0], all[0]
	for _, f := range all {
		sum += f
		if f > best {
			best = f
		}
		if f < worst {
			worst = f
		}
	}
	return Statistics{
		BestFitness:   best,
		MeanFitness:   sum / float64(len(all)),
		MedianFitness: median(all),
		WorstFitness:  worst,
	}
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}
