package mutate

import (
	"github.com/mfagerlund/evolvatron/connectivity"
	"github.com/mfagerlund/evolvatron/topology"
)

// ComplexityScore computes s = ½·(activeHidden/targetHidden) +
// ½·(activeEdges/targetEdges), the knob EffectiveRates scales the
// structural add/delete rates by.
func ComplexityScore(activeHidden, activeEdges int, cfg ComplexityConfig) float64 {
	hiddenRatio := 0.0
	if cfg.TargetHidden > 0 {
		hiddenRatio = float64(activeHidden) / float64(cfg.TargetHidden)
	}
	edgeRatio := 0.0
	if cfg.TargetEdges > 0 {
		edgeRatio = float64(activeEdges) / float64(cfg.TargetEdges)
	}
	return 0.5*hiddenRatio + 0.5*edgeRatio
}

// EffectiveRates scales baseAdd/baseDelete by the complexity score s:
// below 1.0 (under target) addition is boosted and deletion damped;
// above 1.0 (over target) the inverse. Below cfg.MinActiveEdges,
// deletion is forced to 0 and addition set to baseAdd unscaled.
func EffectiveRates(activeEdges int, s float64, baseAdd, baseDelete float64, cfg ComplexityConfig) (add, del float64) {
	if activeEdges < cfg.MinActiveEdges {
		return baseAdd, 0
	}
	switch {
	case s < 1.0:
		return baseAdd * (2 - s), baseDelete * s
	case s > 1.0:
		return baseAdd / s, baseDelete * s
	default:
		return baseAdd, baseDelete
	}
}

// CountActiveHiddenAndEdges reports how many hidden-row nodes and
// edges lie on some active input-to-output path.
func CountActiveHiddenAndEdges(spec *topology.SpeciesSpec) (activeHidden, activeEdges int) {
	rs := connectivity.Reachability(spec)
	for row := 1; row < spec.LastRow(); row++ {
		start := spec.RowStart(row)
		for i := 0; i < spec.RowCounts[row]; i++ {
			if rs.Active(start + i) {
				activeHidden++
			}
		}
	}
	for _, e := range spec.Edges {
		if rs.Active(int(e.Src)) && rs.Active(int(e.Dst)) {
			activeEdges++
		}
	}
	return activeHidden, activeEdges
}
