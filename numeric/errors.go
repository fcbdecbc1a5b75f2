package numeric

import "errors"

// ErrDimensionMismatch is returned by Matrix constructors and solvers when
// row/column counts don't agree with the arguments supplied.
var ErrDimensionMismatch = errors.New("numeric: dimension mismatch")

// ErrSingular is returned by GaussianEliminate/BandedSolve when a pivot
// cannot be found above the numeric tolerance — the system has no unique
// solution at the current working point.
var ErrSingular = errors.New("numeric: matrix is singular")

// ErrDidNotConverge is returned by DampedNewtonRaphson when the iteration
// exhausts its step budget without driving the residual norm below
// tolerance.
var ErrDidNotConverge = errors.New("numeric: Newton-Raphson did not converge")
