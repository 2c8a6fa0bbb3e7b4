package scoring

import "github.com/BaSui01/taskmesh/types"

// hardDimensionWeight is the asymmetric multiplier applied to dimensions
// where a task exceeds the community average. Tasks that are hard
// relative to the community, not hard in absolute terms, should be
// prioritized.
const hardDimensionWeight = 1.5

// TaskDifficulty scores a task against the community's average
// abilities. Dimensions above the average contribute 1.5x their surplus;
// dimensions at or below contribute the raw, possibly negative,
// difference. Higher scores mean the community will struggle more.
func TaskDifficulty(task types.Task, avgAbilities types.Vector) float64 {
	var score float64
	for i := range task {
		diff := task[i] - avgAbilities[i]
		if diff > 0 {
			score += diff * hardDimensionWeight
		} else {
			score += diff
		}
	}
	return score
}
