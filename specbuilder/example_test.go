package specbuilder_test

import (
	"fmt"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/specbuilder"
)

func ExampleSpeciesBuilder_Build() {
	spec, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddHiddenRow(3, activation.Tanh, activation.ReLU).
		AddOutputRow(1, activation.Linear).
		WithMaxInDegree(3).
		FullyConnect(0, 1).
		FullyConnect(1, 2).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(spec.TotalNodes())
	fmt.Println(len(spec.Edges))
	// Output:
	// 6
	// 9
}
