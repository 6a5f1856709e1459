package evolve

import (
	"math/rand"

	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/mutate"
	"github.com/mfagerlund/evolvatron/topology"
)

// Evolver advances a Population one generation at a time. It owns a
// single *rand.Rand seeded at construction; every sub-operation within
// a call to StepGeneration consumes from that stream in a fixed order,
// so repeated runs from the same seed and config produce identical
// sequences of species topologies, weight initializations, mutations,
// and (given the same environment) evaluation outcomes.
type Evolver struct {
	rng    *rand.Rand
	config EvolutionConfig
}

// NewEvolver returns an Evolver seeded deterministically from seed.
func NewEvolver(seed int64, config EvolutionConfig) *Evolver {
	return &Evolver{rng: rand.New(rand.NewSource(seed)), config: config}
}

// InitializePopulation builds config.SpeciesCount species, each a
// fresh clone of founderTopology with individuals Glorot-initialized
// against it.
func (e *Evolver) InitializePopulation(founderTopology *topology.SpeciesSpec) *Population {
	pop := &Population{}
	for i := 0; i < e.config.SpeciesCount; i++ {
		sp := e.newSpecies(founderTopology.Clone())
		pop.AllSpecies = append(pop.AllSpecies, sp)
		pop.TotalSpeciesCreated++
	}
	return pop
}

func (e *Evolver) newSpecies(spec *topology.SpeciesSpec) *Species {
	sp := &Species{Topology: spec}
	for i := 0; i < e.config.IndividualsPerSpecies; i++ {
		ind := individual.New(spec)
		ind.InitializeGlorot(spec, e.rng)
		sp.Individuals = append(sp.Individuals, ind)
	}
	return sp
}

// StepGeneration runs one generation: update stats, cull stagnant
// species (replacing each with a diversified newborn), build the next
// generation for every surviving species via elitism + tournament
// selection, then advance the generation counter and every species'
// age. Individual.Fitness must already be populated by the caller
// before this is invoked.
func (e *Evolver) StepGeneration(pop *Population) {
	for _, sp := range pop.AllSpecies {
		updateStats(sp)
	}

	e.cull(pop)

	for _, sp := range pop.AllSpecies {
		sp.Individuals = e.buildNextGeneration(sp)
		e.applyStructuralMutations(sp)
	}

	pop.Generation++
	for _, sp := range pop.AllSpecies {
		sp.Age++
	}
}

func updateStats(sp *Species) {
	if len(sp.Individuals) == 0 {
		return
	}
	fits := make([]float64, len(sp.Individuals))
	for i, ind := range sp.Individuals {
		fits[i] = ind.Fitness
	}
	med := median(fits)
	best := fits[0]
	for _, f := range fits[1:] {
		if f > best {
			best = f
		}
	}
	if best > sp.Stats.BestFitnessEver {
		sp.Stats.BestFitnessEver = best
		sp.Stats.GenerationsSinceImprovement = 0
	} else {
		sp.Stats.GenerationsSinceImprovement++
	}
	sp.Stats.MedianFitness = med
	sp.Stats.FitnessVariance = variance(fits)
}

func (e *Evolver) buildNextGeneration(sp *Species) []*individual.Individual {
	ranked := rankByFitness(sp.Individuals)
	next := make([]*individual.Individual, 0, e.config.IndividualsPerSpecies)

	elites := e.config.Elites
	if elites > len(ranked) {
		elites = len(ranked)
	}
	for i := 0; i < elites; i++ {
		next = append(next, ranked[i].Clone())
	}

	poolSize := int(float64(len(ranked)) * e.config.ParentPoolPercentage)
	if poolSize < 1 {
		poolSize = 1
	}
	if poolSize > len(ranked) {
		poolSize = len(ranked)
	}
	pool := ranked[:poolSize]

	for len(next) < e.config.IndividualsPerSpecies {
		parent := e.tournamentSelect(pool)
		child := parent.Clone()
		mutate.ApplyPerIndividual(child, sp.Topology, e.config.Weights, e.rng)
		next = append(next, child)
	}
	return next
}

func rankByFitness(individuals []*individual.Individual) []*individual.Individual {
	ranked := append([]*individual.Individual(nil), individuals...)
	for i := 1; i < len(ranked); i++ {
		v := ranked[i]
		j := i - 1
		for j >= 0 && ranked[j].Fitness < v.Fitness {
			ranked[j+1] = ranked[j]
			j--
		}
		ranked[j+1] = v
	}
	return ranked
}

func (e *Evolver) tournamentSelect(pool []*individual.Individual) *individual.Individual {
	best := pool[e.rng.Intn(len(pool))]
	for i := 1; i < e.config.TournamentSize; i++ {
		candidate := pool[e.rng.Intn(len(pool))]
		if candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}
