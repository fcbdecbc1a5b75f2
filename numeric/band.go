package numeric

import "fmt"

// BandedSolve solves A·x = b exploiting a known bandwidth: entries farther
// than leftOfDiag columns below the diagonal, or rightOfDiag columns above
// it, are assumed already zero and are never visited. Groups built from
// locally-numbered entities (the common case — a chain of coincident points
// and lines numbered as they were drawn) produce exactly this banded shape,
// and skipping the zero band turns the O(n^3) dense elimination into
// O(n*(leftOfDiag+rightOfDiag)^2).
//
// The caller is responsible for having actually verified the band is zero
// outside the given widths; BandedSolve does not check and will silently
// return a wrong answer if handed a matrix that isn't banded as claimed.
func BandedSolve(a *Matrix, b []float64, leftOfDiag, rightOfDiag int) ([]float64, error) {
	n := a.Rows()
	if a.Rows() != a.Cols() {
		return nil, fmt.Errorf("BandedSolve: non-square %dx%d: %w", a.Rows(), a.Cols(), ErrDimensionMismatch)
	}
	if len(b) != n {
		return nil, fmt.Errorf("BandedSolve: rhs length %d != %d: %w", len(b), n, ErrDimensionMismatch)
	}

	aug := a.Clone()
	rhs := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		pivot := aug.At(col, col)
		if absFloat(pivot) < pivotTolerance {
			return nil, fmt.Errorf("BandedSolve: pivot at column %d below tolerance: %w", col, ErrSingular)
		}
		lastRow := col + leftOfDiag
		if lastRow >= n {
			lastRow = n - 1
		}
		lastCol := col + rightOfDiag
		if lastCol >= n {
			lastCol = n - 1
		}
		for r := col + 1; r <= lastRow; r++ {
			factor := aug.At(r, col) / pivot
			if factor == 0 {
				continue
			}
			for c := col; c <= lastCol; c++ {
				aug.Set(r, c, aug.At(r, c)-factor*aug.At(col, c))
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		lastCol := i + rightOfDiag
		if lastCol >= n {
			lastCol = n - 1
		}
		for j := i + 1; j <= lastCol; j++ {
			sum -= aug.At(i, j) * x[j]
		}
		x[i] = sum / aug.At(i, i)
	}
	return x, nil
}
