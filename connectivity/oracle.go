package connectivity

import "github.com/mfagerlund/evolvatron/topology"

// ReachabilitySets holds the result of one Reachability pass: Forward
// marks every node reachable from the input row by following edges
// forward, Backward marks every node reachable from the output row by
// following edges backward. A node is active iff both are true.
type ReachabilitySets struct {
	Forward  []bool
	Backward []bool
}

// Active reports whether node is reachable from some input and can
// reach some output.
func (rs ReachabilitySets) Active(node int) bool {
	return rs.Forward[node] && rs.Backward[node]
}

// adjacency builds forward and backward neighbor lists from spec.Edges.
func adjacency(spec *topology.SpeciesSpec) (fwd, bwd [][]int) {
	n := spec.TotalNodes()
	fwd = make([][]int, n)
	bwd = make([][]int, n)
	for _, e := range spec.Edges {
		s, d := int(e.Src), int(e.Dst)
		fwd[s] = append(fwd[s], d)
		bwd[d] = append(bwd[d], s)
	}
	return fwd, bwd
}

// walk runs a plain BFS over adj starting from every node in starts,
// returning a visited map covering the whole node space.
func walk(adj [][]int, starts []int) []bool {
	visited := make([]bool, len(adj))
	queue := make([]int, 0, len(starts))
	for _, s := range starts {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, nbr := range adj[node] {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	return visited
}

// Reachability computes forward reachability from the input row and
// backward reachability from the output row over spec's edge set.
func Reachability(spec *topology.SpeciesSpec) ReachabilitySets {
	fwd, bwd := adjacency(spec)

	inputStart, inputCount := 0, spec.RowCounts[0]
	inputs := make([]int, inputCount)
	for i := range inputs {
		inputs[i] = inputStart + i
	}

	outputRow := spec.LastRow()
	outputStart, outputCount := spec.RowStart(outputRow), spec.RowCounts[outputRow]
	outputs := make([]int, outputCount)
	for i := range outputs {
		outputs[i] = outputStart + i
	}

	return ReachabilitySets{
		Forward:  walk(fwd, inputs),
		Backward: walk(bwd, outputs),
	}
}

// CanDeleteEdge reports whether removing the edge at edgeIndex still
// leaves every output node reachable from some input node. spec.Edges
// is left unmodified; the candidate removal is simulated.
func CanDeleteEdge(spec *topology.SpeciesSpec, edgeIndex int) bool {
	if edgeIndex < 0 || edgeIndex >= len(spec.Edges) {
		return false
	}
	trial := &topology.SpeciesSpec{
		RowCounts:          spec.RowCounts,
		AllowedActivations: spec.AllowedActivations,
		MaxInDegree:        spec.MaxInDegree,
		Edges:              make([]topology.Edge, 0, len(spec.Edges)-1),
	}
	for i, e := range spec.Edges {
		if i != edgeIndex {
			trial.Edges = append(trial.Edges, e)
		}
	}
	return ValidateConnectivity(trial) == nil
}

// ValidateConnectivity reports nil iff every output node is active
// (reachable from some input and, trivially, itself an output), i.e.
// iff every output is still fed by at least one input-to-output path.
func ValidateConnectivity(spec *topology.SpeciesSpec) error {
	rs := Reachability(spec)
	outputRow := spec.LastRow()
	outputStart, outputCount := spec.RowStart(outputRow), spec.RowCounts[outputRow]
	for i := 0; i < outputCount; i++ {
		node := outputStart + i
		if !rs.Forward[node] {
			return &DisconnectedOutputError{Node: node}
		}
	}
	return nil
}
