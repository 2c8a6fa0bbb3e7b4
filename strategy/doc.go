// Package strategy implements the two task-partner allocation strategies
// built on the scoring cost model:
//
//   - Heuristic: per-agent greedy preference ranking with energy-reserve
//     constraints and partially randomized output order;
//   - Optimal: globally optimal assignment via minimum-cost bipartite
//     matching over tasks x (all agent pairs + all individual agents),
//     projected down to a single agent's local preference output.
//
// Both strategies honor one calling convention: every entry point always
// returns a usable (possibly empty) preference list and never raises to
// the caller. Internal faults are logged, counted, and converted to
// empty output at the boundary; a degenerate-but-valid empty result is
// not a fault and is reported as an ordinary computation.
package strategy
