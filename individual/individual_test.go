package individual_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/individual"
	"github.com/mfagerlund/evolvatron/topology"
)

func twoLayerSpec() *topology.SpeciesSpec {
	s := &topology.SpeciesSpec{
		RowCounts: []int{1, 2, 1},
		AllowedActivations: []activation.Mask{
			0,
			activation.MaskOf(activation.Linear),
			activation.MaskOf(activation.Linear),
		},
		MaxInDegree: 4,
		Edges: []topology.Edge{
			{Src: 0, Dst: 1}, {Src: 0, Dst: 2},
			{Src: 1, Dst: 3}, {Src: 2, Dst: 3},
		},
	}
	s.BuildRowPlans()
	return s
}

func TestNewSizesArraysToSpec(t *testing.T) {
	s := twoLayerSpec()
	ind := individual.New(s)
	require.Len(t, ind.Weights, len(s.Edges))
	require.Len(t, ind.Biases, s.TotalNodes())
	require.Len(t, ind.NodeParams, s.TotalNodes())
	require.Len(t, ind.Activations, s.TotalNodes())
	require.Equal(t, activation.Linear, ind.Activations[1])
}

func TestCloneIsDeep(t *testing.T) {
	s := twoLayerSpec()
	ind := individual.New(s)
	ind.Weights[0] = 0.5
	clone := ind.Clone()
	clone.Weights[0] = 9.0
	require.NotEqual(t, ind.Weights[0], clone.Weights[0])
	clone.NodeParams[0][0] = 1.0
	require.NotEqual(t, ind.NodeParams[0][0], clone.NodeParams[0][0])
	clone.Activations[1] = activation.Tanh
	require.NotEqual(t, ind.Activations[1], clone.Activations[1])
}

func TestInitializeGlorotProducesBoundedWeights(t *testing.T) {
	s := twoLayerSpec()
	ind := individual.New(s)
	rng := rand.New(rand.NewSource(42))
	ind.InitializeGlorot(s, rng)
	// Every edge in twoLayerSpec has fanIn + fanOut = 3.
	limit := math.Sqrt(6.0 / 3.0)
	for i, w := range ind.Weights {
		require.False(t, w == 0, "weight %d should not be exactly zero with overwhelming probability", i)
		require.LessOrEqual(t, w, limit)
		require.GreaterOrEqual(t, w, -limit)
	}
}

func TestGlorotWeightWithinBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		w := individual.GlorotWeight(3, 5, rng)
		require.LessOrEqual(t, w, 1.0)
		require.GreaterOrEqual(t, w, -1.0)
	}
}
