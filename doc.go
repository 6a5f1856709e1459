// Package evolvatron is a layered, row-plan neuroevolution engine: a
// strictly feed-forward, acyclic topology model (package topology),
// built up via a fluent constructor (package specbuilder), evaluated
// by a deterministic row-by-row evaluator (package neateval), evolved
// by a speciated population loop with a per-individual and structural
// mutation suite (packages mutate and evolve), and scored against an
// external environment (package neatenv).
//
// Subpackages:
//
//	activation/   — closed activation-function enum and dispatch
//	topology/     — SpeciesSpec, row plans, validation
//	specbuilder/  — fluent builder for SpeciesSpec
//	connectivity/ — reachability oracle over a SpeciesSpec
//	individual/   — per-genome weights, biases, activations
//	neateval/     — the feed-forward evaluator
//	mutate/       — per-individual and structural mutation operators
//	evolve/       — Population, Species, Evolver, culling, diversification
//	neatenv/      — environment contract and fitness evaluation
//
// This package itself re-exports the two types most callers construct
// directly so a simple program need only import "evolvatron".
package evolvatron
