// Package neateval evaluates an individual.Individual against the
// topology.SpeciesSpec it belongs to: one forward pass over the row
// plans, accumulating each node's weighted input plus bias, then
// applying that node's activation function.
//
// Evaluation is synchronous, allocation-light, and makes no calls
// outside the pure-function activation table; the only error path is
// an input-size mismatch.
package neateval
