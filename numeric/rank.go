package numeric

// RankStatus classifies a group's Jacobian/residual pair ahead of a solve
// attempt, the same four-way split the original constraint solver reports
// back to its caller so a failed solve can explain itself.
type RankStatus int

const (
	// Okay means the system is square and full rank: a unique local
	// solution is expected.
	Okay RankStatus = iota
	// Redundant means some equations are linear combinations of others —
	// the sketch has more constraints than it needs, but they agree.
	Redundant
	// TooManyUnknowns means there are fewer independent equations than
	// unknowns — the sketch is underconstrained.
	TooManyUnknowns
	// Inconsistent means the augmented system has higher rank than the
	// coefficient matrix alone — the constraints contradict each other.
	Inconsistent
)

func (r RankStatus) String() string {
	switch r {
	case Okay:
		return "okay"
	case Redundant:
		return "redundant"
	case TooManyUnknowns:
		return "too many unknowns"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown rank status"
	}
}

// Classify reports the rank relationship between a's columns (unknowns),
// a's rows (equations) and the augmented matrix [A|b] (residual values at
// the working point).
//
//	Stage 1: row-reduce A to find its rank.
//	Stage 2: row-reduce [A|b] to find the augmented rank.
//	Stage 3: compare ranks and shapes to pick a RankStatus. TooManyUnknowns
//	         (rank < n) is checked ahead of Redundant: Redundant only
//	         applies to a system that is already full rank in its unknowns
//	         (rank == n) but has more equations than that (rank < m).
func Classify(a *Matrix, b []float64) RankStatus {
	rank := rowEchelonRank(a.Clone())

	aug := NewMatrix(a.Rows(), a.Cols()+1)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			aug.Set(i, j, a.At(i, j))
		}
		aug.Set(i, a.Cols(), b[i])
	}
	augRank := rowEchelonRank(aug)

	switch {
	case augRank > rank:
		return Inconsistent
	case rank < a.Cols():
		return TooManyUnknowns
	case rank < a.Rows():
		return Redundant
	default:
		return Okay
	}
}

// rowEchelonRank reduces m to row-echelon form in place (partial pivoting,
// no back substitution needed) and returns the number of nonzero pivot
// rows found.
func rowEchelonRank(m *Matrix) int {
	rows, cols := m.Rows(), m.Cols()
	rank := 0
	for col := 0; col < cols && rank < rows; col++ {
		pivotRow := -1
		best := pivotTolerance
		for r := rank; r < rows; r++ {
			if v := absFloat(m.At(r, col)); v > best {
				pivotRow, best = r, v
			}
		}
		if pivotRow < 0 {
			continue
		}
		swapRows(m, rank, pivotRow)
		for r := rank + 1; r < rows; r++ {
			factor := m.At(r, col) / m.At(rank, col)
			if factor == 0 {
				continue
			}
			for c := col; c < cols; c++ {
				m.Set(r, c, m.At(r, c)-factor*m.At(rank, c))
			}
		}
		rank++
	}
	return rank
}
