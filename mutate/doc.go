// Package mutate implements the two mutation surfaces evolved
// individuals are subjected to: per-individual weight, activation, and
// node-parameter mutations that leave topology untouched, and
// structural operators that edit a species' shared topology.SpeciesSpec
// and report how every individual's Weights slice must be
// reindexed in response.
//
// Structural operators never mutate individuals directly. Each one
// returns a Reindex value describing the edge-index permutation it
// caused; ApplyReindex is the single function every caller threads
// every individual's Weights slice through, so there is never a hidden
// aliasing path between a spec rebuild and stale weight data.
package mutate
