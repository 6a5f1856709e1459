package connectivity_test

import (
	"fmt"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/connectivity"
	"github.com/mfagerlund/evolvatron/topology"
)

func ExampleCanDeleteEdge() {
	spec := &topology.SpeciesSpec{
		RowCounts: []int{1, 2, 1},
		AllowedActivations: []activation.Mask{
			0,
			activation.MaskOf(activation.Tanh),
			activation.OutputMask(),
		},
		MaxInDegree: 2,
		Edges: []topology.Edge{
			{Src: 0, Dst: 1}, {Src: 1, Dst: 2},
			{Src: 2, Dst: 3}, {Src: 0, Dst: 2},
		},
	}
	spec.BuildRowPlans()
	// Canonical (Dst, Src) order is now: (0,1) (0,2) (1,2) (2,3).

	fmt.Println(connectivity.CanDeleteEdge(spec, 0)) // (0,1): node 2 stays reachable via (0,2).
	fmt.Println(connectivity.CanDeleteEdge(spec, 3)) // (2,3): the sole edge into the output.
	// Output:
	// true
	// false
}
