package scoring

import "github.com/BaSui01/taskmesh/types"

// CommunityStats aggregates a snapshot into the elementwise mean ability
// vector and the mean energy scalar. It is recomputed fresh on every
// call: the snapshot may differ between invocations, and the core holds
// no cache by contract.
//
// Requires at least one member; returns types.ErrNoMembers otherwise.
func CommunityStats(c types.Community) (types.Vector, float64, error) {
	if len(c.Members) == 0 {
		return nil, 0, types.ErrNoMembers
	}

	avg := make(types.Vector, c.Dimensions())
	var totalEnergy float64
	for _, m := range c.Members {
		for i, ability := range m.Abilities {
			avg[i] += ability
		}
		totalEnergy += m.Energy
	}

	n := float64(len(c.Members))
	for i := range avg {
		avg[i] /= n
	}
	return avg, totalEnergy / n, nil
}
