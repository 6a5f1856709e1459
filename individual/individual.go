package individual

import (
	"math"
	"math/rand"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/topology"
)

// Individual is one genome evaluated against a shared
// topology.SpeciesSpec. Weights is aligned 1:1 with the spec's
// canonical (dest, src)-sorted edge order; Biases, NodeParams, and
// Activations are aligned 1:1 with node index.
type Individual struct {
	Weights     []float64
	Biases      []float64
	NodeParams  [][4]float64
	Activations []activation.ActivationType
	Fitness     float64
	Age         int
}

// New builds an Individual sized for spec, with zero weights and
// biases, default node parameters, and the first allowed activation of
// each row (falling back to Linear when a row's mask is empty).
func New(spec *topology.SpeciesSpec) *Individual {
	n := spec.TotalNodes()
	ind := &Individual{
		Weights:     make([]float64, len(spec.Edges)),
		Biases:      make([]float64, n),
		NodeParams:  make([][4]float64, n),
		Activations: make([]activation.ActivationType, n),
	}
	for row := range spec.RowCounts {
		a := firstAllowed(spec, row)
		start := spec.RowStart(row)
		for i := 0; i < spec.RowCounts[row]; i++ {
			ind.Activations[start+i] = a
			ind.NodeParams[start+i] = a.DefaultParameters()
		}
	}
	return ind
}

func firstAllowed(spec *topology.SpeciesSpec, row int) activation.ActivationType {
	mask := spec.AllowedActivations[row]
	for _, a := range activation.All() {
		if mask.Allows(a) {
			return a
		}
	}
	return activation.Linear
}

// InitializeGlorot draws every weight from a Glorot-uniform
// distribution scaled by the destination node's in-degree (as fan-in)
// and the source node's out-degree across the whole edge list (as
// fan-out). Biases are left unchanged.
func (ind *Individual) InitializeGlorot(spec *topology.SpeciesSpec, rng *rand.Rand) {
	fanIn := make([]int, len(ind.Biases))
	fanOut := make([]int, len(ind.Biases))
	for _, e := range spec.Edges {
		fanIn[e.Dst]++
		fanOut[e.Src]++
	}
	for i, e := range spec.Edges {
		ind.Weights[i] = GlorotWeight(fanIn[e.Dst], fanOut[e.Src], rng)
	}
}

// GlorotWeight draws one weight uniformly from [-limit, limit] where
// limit = sqrt(6 / (fanIn + fanOut)), the standard Glorot/Xavier
// initialization bound. fanIn and fanOut below 1 are treated as 1 to
// avoid a division by zero for newly unconnected nodes.
func GlorotWeight(fanIn, fanOut int, rng *rand.Rand) float64 {
	if fanIn < 1 {
		fanIn = 1
	}
	if fanOut < 1 {
		fanOut = 1
	}
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return (rng.Float64()*2 - 1) * limit
}

// Clone returns a deep copy; no slice or array is shared with ind.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		Weights:     append([]float64(nil), ind.Weights...),
		Biases:      append([]float64(nil), ind.Biases...),
		NodeParams:  append([][4]float64(nil), ind.NodeParams...),
		Activations: append([]activation.ActivationType(nil), ind.Activations...),
		Fitness:     ind.Fitness,
		Age:         ind.Age,
	}
}
