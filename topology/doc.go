// Package topology defines SpeciesSpec, the layered, acyclic-by-
// construction topology shared by every individual of one species:
// an ordered sequence of rows (row 0 = inputs, last row = outputs),
// a forward-only edge set, per-row activation whitelists, and a
// bounded in-degree.
//
// SpeciesSpec is the single source of truth for the canonical edge
// order: after BuildRowPlans, weight array index i in an Individual
// corresponds to SpeciesSpec.Edges[i]. Nothing else — no separate
// edge-ID type, no back-reference — may be used to address a weight.
package topology
