// Package individual holds the per-genome mutable state evolved
// against a shared topology.SpeciesSpec: weights aligned to the spec's
// canonical edge order, per-node biases and activation parameters, a
// per-node activation choice, and the fitness/age scalars the
// evolutionary loop tracks.
//
// An Individual owns all of its arrays outright; nothing is shared
// with its species or with any other individual, so Clone is always a
// deep copy.
package individual
