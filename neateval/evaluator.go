package neateval

import (
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/topology"
)

// BatchEvaluator evaluates many individuals against the same spec in
// one call. Any implementation must produce byte-identical output to
// calling Evaluator.Evaluate once per (individual, input) pair; this
// is the seam a GPU-backed or vectorized evaluator would implement.
type BatchEvaluator interface {
	EvaluateBatch(spec *topology.SpeciesSpec, individuals []*individual.Individual, inputs [][]float64) ([][]float64, error)
}

// Evaluator runs the row-plan feed-forward algorithm. It holds no
// state: every call allocates its own scratch buffer, so the zero
// value is ready to use and safe to call concurrently from multiple
// goroutines evaluating different individuals.
type Evaluator struct{}

var _ BatchEvaluator = Evaluator{}

// Evaluate computes spec/ind's output for inputs, returning a fresh
// slice. Returns *InvalidInputSizeError if len(inputs) does not match
// the input row's node count.
func (Evaluator) Evaluate(spec *topology.SpeciesSpec, ind *individual.Individual, inputs []float64) ([]float64, error) {
	if len(inputs) != spec.RowCounts[0] {
		return nil, &InvalidInputSizeError{Got: len(inputs), Want: spec.RowCounts[0]}
	}

	values := make([]float64, spec.TotalNodes())
	copy(values, inputs)

	for row := 1; row < len(spec.RowPlans); row++ {
		plan := spec.RowPlans[row]
		acc := make([]float64, plan.NodeCount)
		for i := 0; i < plan.NodeCount; i++ {
			acc[i] = ind.Biases[plan.NodeStart+i]
		}
		for e := plan.EdgeStart; e < plan.EdgeStart+plan.EdgeCount; e++ {
			edge := spec.Edges[e]
			acc[int(edge.Dst)-plan.NodeStart] += ind.Weights[e] * values[edge.Src]
		}
		for i := 0; i < plan.NodeCount; i++ {
			node := plan.NodeStart + i
			values[node] = ind.Activations[node].Evaluate(acc[i], ind.NodeParams[node])
		}
	}

	outRow := spec.LastRow()
	outStart, outCount := spec.RowStart(outRow), spec.RowCounts[outRow]
	out := make([]float64, outCount)
	copy(out, values[outStart:outStart+outCount])
	return out, nil
}

// EvaluateBatch implements BatchEvaluator by calling Evaluate once per
// individual/input pair, in order.
func (ev Evaluator) EvaluateBatch(spec *topology.SpeciesSpec, individuals []*individual.Individual, inputs [][]float64) ([][]float64, error) {
	out := make([][]float64, len(individuals))
	for i, ind := range individuals {
		row, err := ev.Evaluate(spec, ind, inputs[i])
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
