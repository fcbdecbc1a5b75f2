package numeric

import "fmt"

// pivotTolerance is the smallest magnitude a pivot candidate may have before
// it is treated as zero.
const pivotTolerance = 1e-12

// GaussianEliminate solves A·x = b for x using Gaussian elimination with
// partial pivoting. A is consumed via an internal copy; b is not mutated.
//
//	Stage 1 (Validate): A must be square and b must match its row count.
//	Stage 2 (Prepare): augment A with b into one working matrix.
//	Stage 3 (Execute): forward elimination with partial pivoting by column.
//	Stage 4 (Finalize): back substitution into x.
//
// Complexity: O(n^3) time, O(n^2) memory, where n = A.Rows().
func GaussianEliminate(a *Matrix, b []float64) ([]float64, error) {
	// Stage 1: Validate input shape
	n := a.Rows()
	if a.Rows() != a.Cols() {
		return nil, fmt.Errorf("GaussianEliminate: non-square %dx%d: %w", a.Rows(), a.Cols(), ErrDimensionMismatch)
	}
	if len(b) != n {
		return nil, fmt.Errorf("GaussianEliminate: rhs length %d != %d: %w", len(b), n, ErrDimensionMismatch)
	}

	// Stage 2: Augment A|b into one working matrix
	aug := NewMatrix(n, n+1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, a.At(i, j))
		}
		aug.Set(i, n, b[i])
	}

	// Stage 3: Forward elimination with partial pivoting
	var (
		pivotRow int
		pivotVal float64
		factor   float64
	)
	for col := 0; col < n; col++ {
		pivotRow = col
		pivotVal = absFloat(aug.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := absFloat(aug.At(r, col)); v > pivotVal {
				pivotRow, pivotVal = r, v
			}
		}
		if pivotVal < pivotTolerance {
			return nil, fmt.Errorf("GaussianEliminate: pivot at column %d below tolerance: %w", col, ErrSingular)
		}
		if pivotRow != col {
			swapRows(aug, col, pivotRow)
		}
		for r := col + 1; r < n; r++ {
			factor = aug.At(r, col) / aug.At(col, col)
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug.Set(r, c, aug.At(r, c)-factor*aug.At(col, c))
			}
		}
	}

	// Stage 4: Back substitution
	x := make([]float64, n)
	var sum float64
	for i := n - 1; i >= 0; i-- {
		sum = aug.At(i, n)
		for j := i + 1; j < n; j++ {
			sum -= aug.At(i, j) * x[j]
		}
		x[i] = sum / aug.At(i, i)
	}
	return x, nil
}

// regularization is the Tikhonov damping added to the normal-equations
// diagonal so a rank-deficient (REDUNDANT) Jacobian still yields a step
// instead of a singular-pivot error; it is small enough not to perturb a
// well-conditioned system's solution beyond Newton's own tolerance.
const regularization = 1e-10

// SolveLeastSquares solves A·x ≈ b in the minimum-norm sense via the normal
// equations (AᵀA + εI)·x = Aᵀb, used in place of GaussianEliminate whenever
// the working Jacobian is not square — the REDUNDANT_OKAY path (more
// equations than independent unknowns, e.g. a constraint declared twice)
// and a caller-supplied dragged-parameter system (which adds one equation
// per dragged scalar on top of the real constraint equations) both produce
// a rectangular system here. The εI term keeps AᵀA invertible even when A
// itself is rank-deficient, which is exactly the REDUNDANT case: the extra
// rows contribute nothing new to AᵀA's rank, so without damping the normal
// equations would themselves be singular.
//
// Complexity: O(n²m + n³) where A is m×n, dominated by forming AᵀA.
func SolveLeastSquares(a *Matrix, b []float64) ([]float64, error) {
	m, n := a.Rows(), a.Cols()
	if len(b) != m {
		return nil, fmt.Errorf("SolveLeastSquares: rhs length %d != %d: %w", len(b), m, ErrDimensionMismatch)
	}

	ata := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < m; k++ {
				sum += a.At(k, i) * a.At(k, j)
			}
			if i == j {
				sum += regularization
			}
			ata.Set(i, j, sum)
		}
	}

	atb := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < m; k++ {
			sum += a.At(k, i) * b[k]
		}
		atb[i] = sum
	}

	return GaussianEliminate(ata, atb)
}

// SolveSystem dispatches to GaussianEliminate for a square Jacobian and to
// SolveLeastSquares otherwise (REDUNDANT or dragged-augmented systems), and
// falls back to the least-squares path if the square solve itself reports a
// singular pivot — a structurally-square but rank-deficient Jacobian (two
// constraints that happen to coincide) is exactly the REDUNDANT case
// Classify lets through to Newton.
func SolveSystem(a *Matrix, b []float64) ([]float64, error) {
	if a.Rows() == a.Cols() {
		if x, err := GaussianEliminate(a, b); err == nil {
			return x, nil
		}
	}
	return SolveLeastSquares(a, b)
}

func swapRows(m *Matrix, i, j int) {
	if i == j {
		return
	}
	for c := 0; c < m.cols; c++ {
		m.data[i*m.cols+c], m.data[j*m.cols+c] = m.data[j*m.cols+c], m.data[i*m.cols+c]
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
