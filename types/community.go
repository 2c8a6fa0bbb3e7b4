package types

import "errors"

// Snapshot validation errors. These indicate precondition violations by
// the caller and are expected to surface only in development: entry
// points convert them to empty preference lists at the boundary.
var (
	// ErrNoMembers indicates a snapshot with no agents at all.
	ErrNoMembers = errors.New("community has no members")

	// ErrDimensionMismatch indicates ability or difficulty vectors of
	// unequal length within one snapshot.
	ErrDimensionMismatch = errors.New("ability and difficulty vectors must share one length")
)

// AgentID uniquely identifies an agent. IDs are stable within a round;
// the external simulation assigns them before the first phase.
type AgentID string

// Vector is an ordered sequence of non-negative scores, one per
// difficulty dimension. Every ability and difficulty vector in a
// community shares the same fixed length.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Dominates reports whether v meets or exceeds other on every dimension.
// Both vectors must have the same length.
func (v Vector) Dominates(other Vector) bool {
	for i := range other {
		if v[i] < other[i] {
			return false
		}
	}
	return true
}

// Agent is a participant with per-dimension abilities and a depletable
// energy budget. Energy may go negative; once it falls below the
// community's floor the external simulation sets Incapacitated, and such
// agents must never be offered as partners.
type Agent struct {
	ID            AgentID `json:"id"`
	Abilities     Vector  `json:"abilities"`
	Energy        float64 `json:"energy"`
	Incapacitated bool    `json:"incapacitated"`
}

// Clone returns an independent copy of the agent.
func (a Agent) Clone() Agent {
	a.Abilities = a.Abilities.Clone()
	return a
}

// Task is a difficulty vector to be paid down by one or two agents'
// abilities. Tasks carry no identity of their own: a task is identified
// by its index in Community.Tasks, and the external simulation removes
// completed tasks between rounds.
type Task Vector

// Community is the read-only snapshot handed to every preference
// computation. Member order defines no priority. An empty snapshot is
// valid input and yields empty preference output rather than an error.
type Community struct {
	Members []Agent `json:"members"`
	Tasks   []Task  `json:"tasks"`
}

// Dimensions returns the shared vector length of the snapshot, taken
// from the first member. Zero when the community has no members.
func (c Community) Dimensions() int {
	if len(c.Members) == 0 {
		return 0
	}
	return len(c.Members[0].Abilities)
}

// Member returns the agent with the given id.
func (c Community) Member(id AgentID) (Agent, bool) {
	for _, m := range c.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Agent{}, false
}

// Validate checks the snapshot's structural invariants: at least one
// member, and one shared vector length across all abilities and tasks.
func (c Community) Validate() error {
	if len(c.Members) == 0 {
		return ErrNoMembers
	}
	dims := len(c.Members[0].Abilities)
	for _, m := range c.Members[1:] {
		if len(m.Abilities) != dims {
			return ErrDimensionMismatch
		}
	}
	for _, t := range c.Tasks {
		if len(t) != dims {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot. The runner clones before
// mutating so the caller's community is never written to.
func (c Community) Clone() Community {
	out := Community{
		Members: make([]Agent, len(c.Members)),
		Tasks:   make([]Task, len(c.Tasks)),
	}
	for i, m := range c.Members {
		out.Members[i] = m.Clone()
	}
	for i, t := range c.Tasks {
		out.Tasks[i] = Task(Vector(t).Clone())
	}
	return out
}
