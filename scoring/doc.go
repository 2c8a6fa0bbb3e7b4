// Package scoring implements the cost model that turns a task's
// difficulty vector and one or two agents' abilities into a numeric
// energy cost, plus the community-relative difficulty evaluator and the
// community statistics both allocation strategies consume.
//
// Every function here is pure, deterministic, and total for well-formed
// equal-length vectors. Dimension-length mismatch is a caller
// precondition violation, not a recoverable case; callers validate the
// snapshot once at the entry-point boundary.
package scoring
