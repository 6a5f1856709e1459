// Package connectivity answers reachability questions over a
// topology.SpeciesSpec's edge set: which nodes are forward-reachable
// from the input row, which are backward-reachable from the output
// row, whether a candidate edge can be removed without disconnecting
// any output from every input, and whether a whole spec satisfies that
// property already.
//
// Edges are always strictly forward by construction, so no cycle
// detection is needed; both passes are plain breadth-first traversals
// over an adjacency list built on the fly from spec.Edges.
package connectivity
