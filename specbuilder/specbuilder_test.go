package specbuilder_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/specbuilder"
)

func TestBuildHappyPath(t *testing.T) {
	spec, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddHiddenRow(3, activation.Tanh, activation.ReLU).
		AddOutputRow(1, activation.Linear).
		WithMaxInDegree(8).
		AddEdge(0, 2).
		AddEdge(1, 3).
		FullyConnect(1, 2).
		Build()
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 1}, spec.RowCounts)
	require.Len(t, spec.RowPlans, 3)
}

func TestAddInputRowMustBeFirst(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddHiddenRow(2, activation.Tanh).
		AddInputRow(2).
		AddOutputRow(1, activation.Linear).
		Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, specbuilder.ErrNoRows))
}

func TestAddOutputRowRequiredBeforeBuild(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddHiddenRow(2, activation.Tanh).
		Build()
	require.True(t, errors.Is(err, specbuilder.ErrNoOutputRow))
}

func TestAddRowAfterOutputRejected(t *testing.T) {
	b := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(1, activation.Linear).
		AddHiddenRow(2, activation.Tanh)
	_, err := b.Build()
	require.True(t, errors.Is(err, specbuilder.ErrNoOutputRow) || errors.Is(err, specbuilder.ErrNoRows))
}

func TestAddEdgeRejectsBackwardAndOutOfRange(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		AddEdge(2, 0).
		Build()
	require.True(t, errors.Is(err, specbuilder.ErrEdgeNotForward))

	_, err = specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		AddEdge(0, 99).
		Build()
	require.True(t, errors.Is(err, specbuilder.ErrEdgeOutOfRange))
}

func TestRowSizeMustBePositive(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().AddInputRow(0).Build()
	require.True(t, errors.Is(err, specbuilder.ErrRowSizeInvalid))
}

func TestWithMaxInDegreeMustBePositive(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(1, activation.Linear).
		WithMaxInDegree(0).
		Build()
	require.True(t, errors.Is(err, specbuilder.ErrMaxInDegreeInvalid))
}

func TestFullyConnectRejectsBadRowOrder(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		FullyConnect(1, 0).
		Build()
	require.Error(t, err)
}

func TestInitializeSparseConnectsEveryRow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	spec, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(4).
		AddHiddenRow(5, activation.Tanh).
		AddHiddenRow(3, activation.Tanh).
		AddOutputRow(2, activation.Linear).
		WithMaxInDegree(16).
		InitializeSparse(rng).
		Build()
	require.NoError(t, err)

	for node := spec.RowCounts[0]; node < spec.TotalNodes(); node++ {
		require.GreaterOrEqual(t, spec.InDegree(node), 1, "node %d has no incoming edge", node)
	}
}

func TestInitializeSparseRequiresRand(t *testing.T) {
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		InitializeSparse(nil).
		Build()
	require.True(t, errors.Is(err, specbuilder.ErrNeedRandSource))
}

func TestInitializeDenseRespectsMaxInDegreeAndDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	spec, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(10).
		AddHiddenRow(10, activation.Tanh).
		AddOutputRow(2, activation.Linear).
		WithMaxInDegree(5).
		InitializeDense(rng, 0.5).
		Build()
	require.NoError(t, err)

	for node := spec.RowCounts[0]; node < spec.TotalNodes(); node++ {
		require.LessOrEqual(t, spec.InDegree(node), 5)
		require.GreaterOrEqual(t, spec.InDegree(node), 1)
	}
}

func TestInitializeDenseRejectsBadDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		InitializeDense(rng, 0).
		Build()
	require.Error(t, err)

	_, err = specbuilder.NewSpeciesBuilder().
		AddInputRow(2).
		AddOutputRow(2, activation.Linear).
		InitializeDense(rng, 1.5).
		Build()
	require.Error(t, err)
}
