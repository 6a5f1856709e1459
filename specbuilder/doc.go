// Package specbuilder provides SpeciesBuilder, a fluent constructor for
// topology.SpeciesSpec: add rows in order (inputs, then zero or more
// hidden rows, then outputs), add or generate edges, and Build() once
// to validate and derive row plans. Row and edge construction is
// inherently sequential, so the builder accumulates state across
// chained calls rather than taking a set of independent options.
package specbuilder
