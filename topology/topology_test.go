package topology_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/topology"
)

func validSpec() *topology.SpeciesSpec {
	return &topology.SpeciesSpec{
		RowCounts: []int{2, 2, 1},
		AllowedActivations: []activation.Mask{
			0,
			activation.AllMask(),
			activation.OutputMask(),
		},
		Edges: []topology.Edge{
			{Src: 0, Dst: 2}, {Src: 1, Dst: 3},
			{Src: 2, Dst: 4}, {Src: 3, Dst: 4},
		},
		MaxInDegree: 4,
	}
}

func TestValidateHappyPath(t *testing.T) {
	s := validSpec()
	require.NoError(t, s.Validate())
}

func TestValidateEmptyRows(t *testing.T) {
	s := &topology.SpeciesSpec{}
	err := s.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, topology.ErrInvalidTopology))
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonEmptyRows, ite.Reason)
}

func TestValidateNonPositiveRowCount(t *testing.T) {
	s := validSpec()
	s.RowCounts[1] = 0
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonNonPositiveRowCount, ite.Reason)
}

func TestValidateBackEdge(t *testing.T) {
	s := validSpec()
	s.Edges = append(s.Edges, topology.Edge{Src: 4, Dst: 0})
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonBackEdge, ite.Reason)
}

func TestValidateInDegreeExceeded(t *testing.T) {
	s := validSpec()
	s.MaxInDegree = 1
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonInDegreeExceeded, ite.Reason)
}

func TestValidateOutputActivation(t *testing.T) {
	s := validSpec()
	s.AllowedActivations[2] = activation.MaskOf(activation.ReLU)
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonInvalidOutputActivation, ite.Reason)
}

func TestValidateEdgeOutOfRange(t *testing.T) {
	s := validSpec()
	s.Edges[0].Dst = 99
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonEdgeOutOfRange, ite.Reason)
}

func TestValidateTooManyParallelEdges(t *testing.T) {
	s := validSpec()
	s.Edges = append(s.Edges, topology.Edge{Src: 0, Dst: 2}, topology.Edge{Src: 0, Dst: 2})
	s.MaxInDegree = 10
	err := s.Validate()
	var ite *topology.InvalidTopologyError
	require.True(t, errors.As(err, &ite))
	require.Equal(t, topology.ReasonTooManyParallelEdges, ite.Reason)
}

func TestBuildRowPlansCanonicalization(t *testing.T) {
	s := &topology.SpeciesSpec{
		RowCounts: []int{1, 2, 3},
		AllowedActivations: []activation.Mask{
			0, activation.AllMask(), activation.OutputMask(),
		},
		MaxInDegree: 4,
		Edges: []topology.Edge{
			{Src: 1, Dst: 4}, {Src: 0, Dst: 3}, {Src: 2, Dst: 5}, {Src: 1, Dst: 3},
		},
	}
	s.BuildRowPlans()

	gotDst := make([]int32, len(s.Edges))
	for i, e := range s.Edges {
		gotDst[i] = e.Dst
	}
	require.Equal(t, []int32{3, 3, 4, 5}, gotDst)

	// RowPlans partition the canonical edge list by destination row.
	require.Len(t, s.RowPlans, 3)
	require.Equal(t, topology.RowPlan{NodeStart: 0, NodeCount: 1, EdgeStart: 0, EdgeCount: 0}, s.RowPlans[0])
	require.Equal(t, topology.RowPlan{NodeStart: 1, NodeCount: 2, EdgeStart: 0, EdgeCount: 0}, s.RowPlans[1])
	require.Equal(t, topology.RowPlan{NodeStart: 3, NodeCount: 3, EdgeStart: 0, EdgeCount: 4}, s.RowPlans[2])
}

func TestRowOf(t *testing.T) {
	s := validSpec()
	s.BuildRowPlans()
	r, err := s.RowOf(0)
	require.NoError(t, err)
	require.Equal(t, 0, r)
	r, err = s.RowOf(4)
	require.NoError(t, err)
	require.Equal(t, 2, r)
	_, err = s.RowOf(-1)
	require.ErrorIs(t, err, topology.ErrNodeOutOfRange)
	_, err = s.RowOf(99)
	require.ErrorIs(t, err, topology.ErrNodeOutOfRange)
}

func TestCloneIsDeep(t *testing.T) {
	s := validSpec()
	s.BuildRowPlans()
	clone := s.Clone()
	clone.Edges[0].Dst = 999
	require.NotEqual(t, s.Edges[0].Dst, clone.Edges[0].Dst)
	clone.RowCounts[0] = 999
	require.NotEqual(t, s.RowCounts[0], clone.RowCounts[0])
}
