package neatenv

import "context"

// Policy maps an episode's inputs to outputs. Implementations close
// over one individual's evaluator against its species topology and
// must be safe to call repeatedly without mutating shared state.
type Policy func(inputs []float64) ([]float64, error)

// Environment is the external collaborator a population is evaluated
// against: it knows the shapes of its input/output vectors and can run
// one episode of a policy to a fitness scalar. Run must be safe to
// call concurrently from multiple workers, each with its own seed.
// Timeouts are Run's own responsibility; ctx carries only cancellation
// from the caller, which Run should observe at its own I/O boundaries.
type Environment interface {
	InputSize() int
	OutputSize() int
	Run(ctx context.Context, policy Policy, seed int64) (float64, error)
}
