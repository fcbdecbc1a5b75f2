package numeric

import "fmt"

// Matrix is a dense row-major float64 matrix, small enough for the solver's
// working set (groups of a few dozen equations/unknowns) that a flat slice
// beats any sparse representation.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a rows x cols matrix of zeros.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows and Cols report the matrix's shape.
func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// At returns m[i][j]; it panics on an out-of-range index since every caller
// in this package derives indices from the matrix's own Rows()/Cols().
func (m *Matrix) At(i, j int) float64 {
	m.checkBounds(i, j)
	return m.data[i*m.cols+j]
}

// Set assigns m[i][j] = v.
func (m *Matrix) Set(i, j int, v float64) {
	m.checkBounds(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("numeric: index (%d,%d) out of bounds for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}
