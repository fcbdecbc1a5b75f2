package numeric

// DegreesOfFreedom returns how many more scalar values could vary
// independently: the Jacobian a's column count minus its rank.
// A TooManyUnknowns classification and a positive DOF describe the same
// underconstrained sketch from two angles: DOF says how far from fully
// constrained it is, Classify says what to report to the caller.
func DegreesOfFreedom(a *Matrix) int {
	rank := rowEchelonRank(a.Clone())
	dof := a.Cols() - rank
	if dof < 0 {
		return 0
	}
	return dof
}

// FreeParams identifies which of the n columns of a are actually free,
// rather than merely counting how many there are. For each column it
// appends a trial row that pins that column alone (a unit row, the same
// shape a WHERE_DRAGGED equation's Jacobian row would have) and re-runs the
// rank test: if pinning the column raises the rank, the column was one of
// the system's genuine degrees of freedom; if the rank does not move, the
// column was already determined by the others (or was itself already
// redundant with a prior trial column in this loop, which is why pinned
// columns accumulate into the trial matrix rather than being tested one at
// a time against the original alone).
//
// This mirrors the spec's "temporarily pin it and re-run the rank test"
// procedure directly; it is O(n²·rank_cost) and is meant to be run only
// when a caller explicitly asks for the free-parameter list, not on every
// solve.
func FreeParams(a *Matrix) []int {
	n := a.Cols()
	baseRank := rowEchelonRank(a.Clone())

	trial := a.Clone()
	pinnedRows := 0
	var free []int
	for col := 0; col < n; col++ {
		withPin := NewMatrix(trial.Rows()+1, n)
		for r := 0; r < trial.Rows(); r++ {
			for c := 0; c < n; c++ {
				withPin.Set(r, c, trial.At(r, c))
			}
		}
		withPin.Set(trial.Rows(), col, 1)

		if rowEchelonRank(withPin.Clone()) > baseRank+pinnedRows {
			free = append(free, col)
			trial = withPin
			pinnedRows++
		}
	}
	return free
}
