package evolvatron

import (
	"github.com/mfagerlund/evolvatron/evolve"
	"github.com/mfagerlund/evolvatron/specbuilder"
)

// Evolver advances a Population one generation at a time.
type Evolver = evolve.Evolver

// NewEvolver returns an Evolver seeded deterministically from seed.
func NewEvolver(seed int64, config evolve.EvolutionConfig) *Evolver {
	return evolve.NewEvolver(seed, config)
}

// SpeciesBuilder builds a validated topology.SpeciesSpec via chained
// method calls.
type SpeciesBuilder = specbuilder.SpeciesBuilder

// NewSpeciesBuilder returns an empty SpeciesBuilder.
func NewSpeciesBuilder() *SpeciesBuilder {
	return specbuilder.NewSpeciesBuilder()
}

// DefaultEvolutionConfig returns a reasonable starting configuration.
func DefaultEvolutionConfig() evolve.EvolutionConfig {
	return evolve.DefaultEvolutionConfig()
}
