package types

// PartnerBid is a phase I preference record: the calling agent's intent
// to attempt the task at TaskIndex jointly with PartnerID. A bid is a
// declared preference, not a binding commitment; the tournament runner
// decides which bids become assignments.
type PartnerBid struct {
	TaskIndex int     `json:"task_index"`
	PartnerID AgentID `json:"partner_id"`
}

// Assignment couples a task with the one or two agents chosen to attempt
// it, plus the realized cost from the solver's matrix cell. Produced by
// the optimal strategy's global solution and by the runner when it
// commits preferences.
type Assignment struct {
	TaskIndex int       `json:"task_index"`
	Members   []AgentID `json:"members"`
	Cost      float64   `json:"cost"`
}

// Pair reports whether the assignment is a two-agent partnership.
func (a Assignment) Pair() bool {
	return len(a.Members) == 2
}

// Contains reports whether the assignment names the given agent.
func (a Assignment) Contains(id AgentID) bool {
	for _, m := range a.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Partner returns the other member of a two-agent assignment. The second
// return value is false for solo assignments or when id is not a member.
func (a Assignment) Partner(id AgentID) (AgentID, bool) {
	if !a.Pair() || !a.Contains(id) {
		return "", false
	}
	if a.Members[0] == id {
		return a.Members[1], true
	}
	return a.Members[0], true
}
