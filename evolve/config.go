package evolve

import "github.com/mfagerlund/evolvatron/mutate"

// CullMode selects the predicate a species is culled under: CullAll
// requires every stagnation condition to hold (AND); CullAny requires
// only one (OR), the more aggressive NEAT-like alternative.
type CullMode int

const (
	CullAll CullMode = iota
	CullAny
)

// EvolutionConfig collects every tunable the evolutionary loop reads.
// Fields are used as given; zero values do not fall back to
// DefaultEvolutionConfig's defaults.
type EvolutionConfig struct {
	// Population
	SpeciesCount          int
	IndividualsPerSpecies int
	MinSpeciesCount       int

	// Selection
	Elites                int
	TournamentSize        int
	ParentPoolPercentage  float64

	// Culling
	CullMode                     CullMode
	GraceGenerations             int
	StagnationThreshold          int
	SpeciesDiversityThreshold    float64
	RelativePerformanceThreshold float64

	// Per-individual mutation
	Weights mutate.WeightConfig

	// Structural mutation: one rate per named operator, consulted once
	// per species at generation time. A fired operator edits the
	// species' shared topology, so every individual, elites included,
	// has its weights reindexed.
	StructuralMutationRate map[string]float64

	// Weak-edge pruning
	WeakEdgePruningEnabled bool
	WeakEdgeThreshold      float64
	BaseWeakEdgePruneRate  float64

	Complexity mutate.ComplexityConfig
}

// Structural mutation operator names used as keys into
// EvolutionConfig.StructuralMutationRate.
const (
	OpEdgeAdd          = "edge_add"
	OpEdgeDeleteRandom = "edge_delete_random"
	OpEdgeSplit        = "edge_split"
	OpEdgeSplitSmart   = "edge_split_smart"
	OpEdgeRedirect     = "edge_redirect"
	OpEdgeDuplicate    = "edge_duplicate"
	OpEdgeSwap         = "edge_swap"
)

// DefaultEvolutionConfig returns a reasonable starting configuration.
func DefaultEvolutionConfig() EvolutionConfig {
	return EvolutionConfig{
		SpeciesCount:          8,
		IndividualsPerSpecies: 50,
		MinSpeciesCount:       2,

		Elites:               2,
		TournamentSize:       3,
		ParentPoolPercentage: 0.5,

		CullMode:                     CullAll,
		GraceGenerations:             5,
		StagnationThreshold:          15,
		SpeciesDiversityThreshold:    1e-6,
		RelativePerformanceThreshold: 0.5,

		Weights: mutate.DefaultWeightConfig(),

		StructuralMutationRate: map[string]float64{
			OpEdgeAdd:          0.05,
			OpEdgeDeleteRandom: 0.03,
			OpEdgeSplit:        0.02,
			OpEdgeSplitSmart:   0.02,
			OpEdgeRedirect:     0.02,
			OpEdgeDuplicate:    0.01,
			OpEdgeSwap:         0.01,
		},

		WeakEdgePruningEnabled: true,
		WeakEdgeThreshold:      0.02,
		BaseWeakEdgePruneRate:  0.1,

		Complexity: mutate.ComplexityConfig{
			TargetHidden:   20,
			TargetEdges:    60,
			MinActiveEdges: 8,
		},
	}
}
