package mutate

// Reindex describes how a structural operator permuted a spec's edge
// list. Mapping has one entry per pre-mutation edge: the new index it
// was moved to, or -1 if that edge was deleted. Added lists the
// indices of brand-new edges introduced by the operator, in the order
// their weights should be initialized.
type Reindex struct {
	Mapping []int
	Added   []int
}

// Identity returns a Reindex describing no change for a spec with n
// edges; used by operators that fail to find a valid candidate.
func Identity(n int) Reindex {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return Reindex{Mapping: m}
}

// ApplyReindex produces the new weight slice for one individual given
// the Reindex of a structural operation that has already been applied
// to the spec. initNew supplies the initial weight for each new edge
// index in r.Added, called once per added index in order.
func ApplyReindex(weights []float64, r Reindex, initNew func(dstIndex int) float64) []float64 {
	newLen := len(r.Mapping) - countRemoved(r.Mapping) + len(r.Added)
	out := make([]float64, newLen)
	for oldIdx, newIdx := range r.Mapping {
		if newIdx >= 0 {
			out[newIdx] = weights[oldIdx]
		}
	}
	for _, idx := range r.Added {
		out[idx] = initNew(idx)
	}
	return out
}

func countRemoved(mapping []int) int {
	n := 0
	for _, v := range mapping {
		if v < 0 {
			n++
		}
	}
	return n
}
