package numeric

import (
	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

// System bundles the working set Phase B iterates over: the equations to
// drive to zero and the ordered list of free parameters that are its
// unknowns. The order of both slices is load-bearing — it fixes which row/
// column of the Jacobian each equation/parameter maps to, and the band
// structure BandedSolve exploits comes from the caller keeping that order
// close to the original constraint emission order.
type System struct {
	Equations []expr.Equation
	Unknowns  []sketch.ParamHandle
}

// Residual evaluates every equation at the store's current parameter
// values.
func (sys *System) Residual(store *sketch.Store) []float64 {
	out := make([]float64, len(sys.Equations))
	for i, eq := range sys.Equations {
		out[i] = eq.E.Eval(store)
	}
	return out
}

// Jacobian builds the dense |Equations| x |Unknowns| matrix of partial
// derivatives, evaluated at the store's current parameter values. A
// ParamsUsed bloom check skips differentiating equations that provably
// don't depend on a given column, which matters once groups run into the
// hundreds of equations.
func (sys *System) Jacobian(store *sketch.Store) *Matrix {
	m := NewMatrix(len(sys.Equations), len(sys.Unknowns))
	for i, eq := range sys.Equations {
		sig := eq.E.ParamsUsed()
		for j, h := range sys.Unknowns {
			if !expr.MightDependOn(sig, h) {
				continue
			}
			d := eq.E.PartialWrt(h)
			m.Set(i, j, d.Eval(store))
		}
	}
	return m
}
