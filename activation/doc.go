// Package activation defines the closed set of per-node activation
// functions available to a topology, and dispatches evaluation by a
// small table rather than by dynamic dispatch (no interfaces, no
// polymorphism — a single closed enum with a switch-backed Evaluate).
//
// Each ActivationType carries its own parameter arity (RequiredParamCount),
// default parameter vector (DefaultParameters), and output-layer
// eligibility flag (ValidForOutput). Parameters beyond the required
// count are ignored by Evaluate; callers are not required to zero them.
package activation
