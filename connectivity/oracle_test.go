package connectivity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/evolvatron/connectivity"
	"github.com/mfagerlund/evolvatron/topology"
)

// chainSpec builds a 3-row spec: 2 inputs -> 2 hidden -> 1 output,
// with two disjoint input->hidden->output chains and no redundant edge.
func chainSpec() *topology.SpeciesSpec {
	s := &topology.SpeciesSpec{
		RowCounts:   []int{2, 2, 1},
		MaxInDegree: 4,
		Edges: []topology.Edge{
			{Src: 0, Dst: 2}, {Src: 1, Dst: 3},
			{Src: 2, Dst: 4}, {Src: 3, Dst: 4},
		},
	}
	s.BuildRowPlans()
	return s
}

func TestReachabilityAllActiveOnFullChain(t *testing.T) {
	s := chainSpec()
	rs := connectivity.Reachability(s)
	for node := 0; node < s.TotalNodes(); node++ {
		require.True(t, rs.Active(node), "node %d should be active", node)
	}
}

func TestValidateConnectivityPasses(t *testing.T) {
	require.NoError(t, connectivity.ValidateConnectivity(chainSpec()))
}

func TestValidateConnectivityFailsWhenOutputUnreachable(t *testing.T) {
	s := &topology.SpeciesSpec{
		RowCounts:   []int{2, 2, 1},
		MaxInDegree: 4,
		Edges: []topology.Edge{
			{Src: 0, Dst: 2}, {Src: 1, Dst: 3},
		},
	}
	s.BuildRowPlans()
	err := connectivity.ValidateConnectivity(s)
	require.Error(t, err)
	var dis *connectivity.DisconnectedOutputError
	require.ErrorAs(t, err, &dis)
	require.Equal(t, 4, dis.Node)
}

func TestCanDeleteEdgeTrueForRedundantPath(t *testing.T) {
	s := chainSpec()
	s.Edges = append(s.Edges, topology.Edge{Src: 2, Dst: 4})
	s.BuildRowPlans()
	// find index of a duplicated (2,4) edge
	idx := -1
	for i, e := range s.Edges {
		if e.Src == 2 && e.Dst == 4 {
			idx = i
			break
		}
	}
	require.True(t, connectivity.CanDeleteEdge(s, idx))
}

func TestCanDeleteEdgeFalseWhenSolePathToOutput(t *testing.T) {
	s := chainSpec()
	idx := -1
	for i, e := range s.Edges {
		if e.Src == 2 && e.Dst == 4 {
			idx = i
			break
		}
	}
	require.False(t, connectivity.CanDeleteEdge(s, idx))
}

func TestCanDeleteEdgeOutOfRangeIsFalse(t *testing.T) {
	s := chainSpec()
	require.False(t, connectivity.CanDeleteEdge(s, len(s.Edges)))
	require.False(t, connectivity.CanDeleteEdge(s, -1))
}
