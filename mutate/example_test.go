package mutate_test

import (
	"fmt"
	"math/rand"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/mutate"
	"github.com/mfagerlund/evolvatron/topology"
)

func ExampleEdgeAdd() {
	spec := &topology.SpeciesSpec{
		RowCounts: []int{2, 2, 1},
		AllowedActivations: []activation.Mask{
			0,
			activation.MaskOf(activation.Tanh),
			activation.OutputMask(),
		},
		MaxInDegree: 4,
		Edges: []topology.Edge{
			{Src: 0, Dst: 2}, {Src: 1, Dst: 3},
			{Src: 2, Dst: 4}, {Src: 3, Dst: 4},
		},
	}
	spec.BuildRowPlans()
	ind := individual.New(spec)
	rng := rand.New(rand.NewSource(7))
	ind.InitializeGlorot(spec, rng)

	if r, ok := mutate.EdgeAdd(spec, rng); ok {
		ind.Weights = mutate.ApplyReindex(ind.Weights, r, func(int) float64 { return 0 })
	}
	fmt.Println(len(ind.Weights) == len(spec.Edges))
	// Output:
	// true
}
