// Package neatenv defines the environment contract individuals are
// evaluated against and the fitness evaluator that wires a Population
// to it: FitnessEvaluator closes an individual's evaluator over its
// species topology into a Policy, Environment.Run runs one episode of
// that Policy and reports a fitness scalar, and FitnessEvaluator then
// writes that scalar back onto the individual.
//
// Evaluation may fan out over a worker pool since every episode is
// read-only with respect to the population; each worker derives its
// own sub-seed so results stay reproducible regardless of how many
// workers run concurrently. The loop itself never cancels; it only
// observes a caller-supplied context.Context at job boundaries so a
// caller can abort an in-flight EvaluatePopulation early.
package neatenv
