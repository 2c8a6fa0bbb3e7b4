// Package types defines the core value types shared by every taskmesh
// package: agents, tasks, community snapshots, and the preference records
// strategies emit.
//
// The types package is the lowest-level package with no internal
// dependencies, so placing the shared vocabulary here avoids circular
// imports between scoring, strategy, and runner.
//
// All values are treated as immutable for the duration of a preference
// computation. Strategies never mutate a snapshot; the external
// collaborator that owns persistence (the tournament runner) applies
// energy deductions and task removal between calls.
package types
