package topology

import "github.com/mfagerlund/evolvatron/activation"

// Clone returns a deep copy: no slice is shared between s and the
// result. Species diversification depends on this being a true deep
// copy before perturbing the clone.
func (s *SpeciesSpec) Clone() *SpeciesSpec {
	clone := &SpeciesSpec{
		RowCounts:          append([]int(nil), s.RowCounts...),
		AllowedActivations: append([]activation.Mask(nil), s.AllowedActivations...),
		Edges:              append([]Edge(nil), s.Edges...),
		MaxInDegree:        s.MaxInDegree,
		RowPlans:           append([]RowPlan(nil), s.RowPlans...),
	}
	return clone
}
