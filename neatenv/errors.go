package neatenv

import "math"

// NonFiniteOutput is substituted for any fitness an environment
// returns that is NaN or +/-Inf, so a single runaway episode cannot
// corrupt ranking, tournament selection, or statistics downstream.
const NonFiniteOutput = -math.MaxFloat64

func sanitizeFitness(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NonFiniteOutput
	}
	return f
}
