package neatenv

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/mfagerlund/evolvatron/evolve"
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/neateval"
	"github.com/mfagerlund/evolvatron/topology"
)

// FitnessEvaluator runs every individual in a Population against an
// Environment and writes the result onto Individual.Fitness. Workers
// <= 1 evaluates sequentially in species/individual order; Workers > 1
// fans the work out over that many goroutines pulling from a shared
// job channel.
type FitnessEvaluator struct {
	Workers int
}

// NewFitnessEvaluator returns a sequential FitnessEvaluator.
func NewFitnessEvaluator() *FitnessEvaluator {
	return &FitnessEvaluator{Workers: 1}
}

type evalJob struct {
	speciesIndex    int
	individualIndex int
	policy          Policy
}

type evalResult struct {
	speciesIndex    int
	individualIndex int
	fitness         float64
	err             error
}

// EvaluatePopulation runs every individual in pop against environment
// and writes the sanitized fitness scalar back onto Individual.Fitness.
// seed, together with pop.Generation and each individual's position,
// deterministically derives the per-individual sub-seed Run receives,
// so the result is independent of Workers.
func (fe *FitnessEvaluator) EvaluatePopulation(ctx context.Context, pop *evolve.Population, environment Environment, seed int64) error {
	var evaluator neateval.Evaluator

	var jobs []evalJob
	for si, sp := range pop.AllSpecies {
		for ii, ind := range sp.Individuals {
			jobs = append(jobs, evalJob{
				speciesIndex:    si,
				individualIndex: ii,
				policy:          policyFor(sp.Topology, ind, evaluator),
			})
		}
	}

	results := fe.run(ctx, jobs, environment, pop, seed)
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
		pop.AllSpecies[r.speciesIndex].Individuals[r.individualIndex].Fitness = sanitizeFitness(r.fitness)
	}
	return nil
}

func (fe *FitnessEvaluator) run(ctx context.Context, jobs []evalJob, environment Environment, pop *evolve.Population, seed int64) []evalResult {
	results := make([]evalResult, len(jobs))

	runOne := func(j evalJob) evalResult {
		if err := ctx.Err(); err != nil {
			return evalResult{speciesIndex: j.speciesIndex, individualIndex: j.individualIndex, err: err}
		}
		s := subSeed(seed, pop.Generation, j.speciesIndex, j.individualIndex)
		fitness, err := environment.Run(ctx, j.policy, s)
		return evalResult{speciesIndex: j.speciesIndex, individualIndex: j.individualIndex, fitness: fitness, err: err}
	}

	if fe.Workers <= 1 {
		for i, j := range jobs {
			results[i] = runOne(j)
		}
		return results
	}

	workers := fe.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				results[idx] = runOne(jobs[idx])
			}
		}()
	}
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	return results
}

// policyFor closes ind's evaluation against spec into a Policy, ready
// to be handed to an Environment.
func policyFor(spec *topology.SpeciesSpec, ind *individual.Individual, ev neateval.Evaluator) Policy {
	return func(inputs []float64) ([]float64, error) {
		return ev.Evaluate(spec, ind, inputs)
	}
}

// subSeed derives a sub-seed for one individual's episode from the
// run seed, generation, species index, and individual index, so the
// same coordinates always produce the same seed regardless of worker
// scheduling.
func subSeed(seed int64, generation, speciesIndex, individualIndex int) int64 {
	h := fnv.New64a()
	var buf [32]byte
	putInt64(buf[0:8], seed)
	putInt64(buf[8:16], int64(generation))
	putInt64(buf[16:24], int64(speciesIndex))
	putInt64(buf[24:32], int64(individualIndex))
	h.Write(buf[:])
	return int64(h.Sum64())
}

func putInt64(b []byte, v int64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
