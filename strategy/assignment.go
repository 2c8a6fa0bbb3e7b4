package strategy

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyMatrix indicates an assignment matrix with no rows or no
// columns; there is nothing to match.
var ErrEmptyMatrix = errors.New("assignment matrix is empty")

// solveAssignment computes a minimum-total-cost matching over a dense
// rectangular cost matrix: every row (or every column, whichever side is
// smaller) is matched to exactly one counterpart, and no counterpart is
// used twice. This is the classic linear assignment problem.
//
// The returned slice maps each row index to its matched column, with -1
// for rows left unmatched when rows outnumber columns. The second return
// is the total cost over matched cells.
func solveAssignment(cost [][]float64) ([]int, float64, error) {
	rows := len(cost)
	if rows == 0 || len(cost[0]) == 0 {
		return nil, 0, ErrEmptyMatrix
	}
	cols := len(cost[0])
	for i, row := range cost {
		if len(row) != cols {
			return nil, 0, fmt.Errorf("assignment matrix is ragged at row %d", i)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, fmt.Errorf("assignment matrix cell (%d,%d) is not finite", i, j)
			}
		}
	}

	// The Hungarian core requires rows <= cols; transpose when the task
	// side is the larger one and invert the mapping afterwards.
	if rows > cols {
		colToRow := hungarian(transpose(cost))
		match := make([]int, rows)
		for i := range match {
			match[i] = -1
		}
		var total float64
		for j, i := range colToRow {
			match[i] = j
			total += cost[i][j]
		}
		return match, total, nil
	}

	match := hungarian(cost)
	var total float64
	for i, j := range match {
		total += cost[i][j]
	}
	return match, total, nil
}

// hungarian solves the assignment problem for an n x m matrix with
// n <= m using the O(n^2 m) potentials formulation of the Hungarian
// method (Jonker-Volgenant style shortest augmenting paths). Returns the
// matched column for every row.
func hungarian(a [][]float64) []int {
	n := len(a)
	m := len(a[0])

	// Potentials and matching use 1-based indexing; index 0 is the
	// virtual unmatched slot.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)   // p[j] = row matched to column j
	way := make([]int, m+1) // predecessor column on the alternating path

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	match := make([]int, n)
	for j := 1; j <= m; j++ {
		if p[j] > 0 {
			match[p[j]-1] = j - 1
		}
	}
	return match
}

func transpose(a [][]float64) [][]float64 {
	out := make([][]float64, len(a[0]))
	for j := range out {
		out[j] = make([]float64, len(a))
		for i := range a {
			out[j][i] = a[i][j]
		}
	}
	return out
}
