// Package evolve implements the speciated evolutionary loop: a
// Population of Species, each holding a shared topology.SpeciesSpec
// and its individuals, advanced one generation at a time by Evolver.
//
// Evolver owns a single *rand.Rand seeded at construction; every
// sub-operation within a generation — tournament draws, mutation dice
// rolls, structural-operator candidate choice, diversification —
// consumes from that one stream in a fixed order, so StepGeneration is
// a pure function of the population's state and the evolver's RNG
// stream. Fitness evaluation itself happens outside this package (see
// neatenv) and is expected to have already written Individual.Fitness
// before StepGeneration is called.
package evolve
