package mutate

import (
	"math"
	"math/rand"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/topology"
)

// ApplyPerIndividual rolls each of the per-individual operators in
// turn against ind, in the fixed order jitter, reset, L1 shrink,
// activation swap, node-param mutate — consuming rng for every dice
// roll whether or not the operator fires, so the call order is a
// deterministic function of cfg and the rng stream alone.
func ApplyPerIndividual(ind *individual.Individual, spec *topology.SpeciesSpec, cfg WeightConfig, rng *rand.Rand) {
	if rng.Float64() < cfg.WeightJitter {
		jitterWeights(ind, cfg.WeightJitterStddev, rng)
	}
	if rng.Float64() < cfg.WeightReset {
		resetOneWeight(ind, rng)
	}
	if rng.Float64() < cfg.WeightL1Shrink {
		shrinkWeights(ind, cfg.L1ShrinkFactor)
	}
	swapActivations(ind, spec, cfg.ActivationSwap, rng)
	mutateNodeParams(ind, cfg.NodeParamMutate, cfg.NodeParamStddev, rng)
}

func jitterWeights(ind *individual.Individual, stddev float64, rng *rand.Rand) {
	for i, w := range ind.Weights {
		ind.Weights[i] = w + rng.NormFloat64()*stddev*math.Abs(w)
	}
}

func resetOneWeight(ind *individual.Individual, rng *rand.Rand) {
	if len(ind.Weights) == 0 {
		return
	}
	i := rng.Intn(len(ind.Weights))
	ind.Weights[i] = rng.Float64()*2 - 1
}

func shrinkWeights(ind *individual.Individual, factor float64) {
	for i := range ind.Weights {
		ind.Weights[i] *= factor
	}
}

func swapActivations(ind *individual.Individual, spec *topology.SpeciesSpec, prob float64, rng *rand.Rand) {
	for row := 1; row < len(spec.RowCounts); row++ {
		mask := spec.AllowedActivations[row]
		if mask.Count() <= 1 {
			continue
		}
		start := spec.RowStart(row)
		for i := 0; i < spec.RowCounts[row]; i++ {
			node := start + i
			if rng.Float64() >= prob {
				continue
			}
			choice := pickAllowedExcept(mask, ind.Activations[node], rng)
			ind.Activations[node] = choice
			ind.NodeParams[node] = choice.DefaultParameters()
		}
	}
}

func pickAllowedExcept(mask activation.Mask, current activation.ActivationType, rng *rand.Rand) activation.ActivationType {
	var candidates []activation.ActivationType
	for _, a := range activation.All() {
		if mask.Allows(a) && a != current {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return current
	}
	return candidates[rng.Intn(len(candidates))]
}

func mutateNodeParams(ind *individual.Individual, prob, stddev float64, rng *rand.Rand) {
	for node, a := range ind.Activations {
		n := a.RequiredParamCount()
		if n == 0 {
			continue
		}
		if rng.Float64() >= prob {
			continue
		}
		for slot := 0; slot < n; slot++ {
			v := ind.NodeParams[node][slot] + rng.NormFloat64()*stddev
			ind.NodeParams[node][slot] = clamp(v, -10, 10)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
