package evolve_test

import (
	"fmt"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/evolve"
	"github.com/mfagerlund/evolvatron/topology"
)

func ExampleEvolver_InitializePopulation() {
	founder := &topology.SpeciesSpec{
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
	founder.BuildRowPlans()

	cfg := evolve.DefaultEvolutionConfig()
	cfg.SpeciesCount = 2
	cfg.IndividualsPerSpecies = 4

	ev := evolve.NewEvolver(1, cfg)
	pop := ev.InitializePopulation(founder)

	fmt.Println(len(pop.AllSpecies))
	fmt.Println(len(pop.AllSpecies[0].Individuals))
	// Output:
	// 2
	// 4
}
