package numeric

import (
	"fmt"
	"math"

	"github.com/sketchsolve/core/sketch"
)

// DraggedWeight scales the soft pin equation a dragged parameter contributes
// to the Newton system. It is deliberately small relative to a typical
// constraint residual's coefficients (which are O(1)) so Newton satisfies the
// real constraints first and only holds a dragged parameter near its last
// position as a tie-breaker among the solutions that remain.
const DraggedWeight = 1e-2

// NewtonParams tunes the damped Newton-Raphson loop. Zero-valued fields on a
// caller-supplied NewtonParams are replaced with DefaultNewtonParams before
// the first iteration.
type NewtonParams struct {
	// MaxIterations bounds the outer Newton loop.
	MaxIterations int
	// Tolerance is the residual infinity-norm below which the system is
	// considered solved.
	Tolerance float64
	// MaxDamping bounds how many times a single step is halved looking for
	// one that doesn't increase the residual norm.
	MaxDamping int

	// OnIteration, if set, is called after every accepted iteration with
	// the iteration index and the residual infinity-norm it produced.
	OnIteration func(iteration int, residualNorm float64)
}

// DefaultNewtonParams mirrors the tuning the original solver shipped with:
// generous enough iteration and damping budgets that well-posed sketches
// converge in a handful of steps, tight enough that a divergent system
// fails fast instead of spinning.
func DefaultNewtonParams() NewtonParams {
	return NewtonParams{MaxIterations: 50, Tolerance: 1e-10, MaxDamping: 11}
}

func (p NewtonParams) withDefaults() NewtonParams {
	d := DefaultNewtonParams()
	if p.MaxIterations == 0 {
		p.MaxIterations = d.MaxIterations
	}
	if p.Tolerance == 0 {
		p.Tolerance = d.Tolerance
	}
	if p.MaxDamping == 0 {
		p.MaxDamping = d.MaxDamping
	}
	return p
}

// DampedNewtonRaphson drives sys's residual to zero by repeatedly solving
// the linearized system J·dx = -r for a step, then backtracking (halving
// the step) whenever a full step would increase the residual norm instead
// of decreasing it.
//
//	Stage 1: evaluate residual; stop if already within tolerance.
//	Stage 2: build the Jacobian and solve for the Newton step.
//	Stage 3: damp the step until it improves the residual norm.
//	Stage 4: apply the accepted step and loop.
func DampedNewtonRaphson(store *sketch.Store, sys *System, params NewtonParams) error {
	params = params.withDefaults()

	for iter := 0; iter < params.MaxIterations; iter++ {
		r := sys.Residual(store)
		norm := infNorm(r)
		if norm < params.Tolerance {
			return nil
		}

		j := sys.Jacobian(store)
		neg := make([]float64, len(r))
		for i, v := range r {
			neg[i] = -v
		}
		dx, err := SolveSystem(j, neg)
		if err != nil {
			return fmt.Errorf("DampedNewtonRaphson: iteration %d: %w", iter, err)
		}

		original := snapshot(store, sys.Unknowns)
		damping := 1.0
		accepted := false
		for d := 0; d < params.MaxDamping; d++ {
			applyStep(store, sys.Unknowns, original, dx, damping)
			newNorm := infNorm(sys.Residual(store))
			if newNorm < norm || newNorm < params.Tolerance {
				accepted = true
				break
			}
			damping /= 2
		}
		if !accepted {
			restore(store, sys.Unknowns, original)
			return fmt.Errorf("DampedNewtonRaphson: iteration %d: no damped step improved the residual: %w", iter, ErrDidNotConverge)
		}
		if params.OnIteration != nil {
			params.OnIteration(iter, infNorm(sys.Residual(store)))
		}
	}
	return fmt.Errorf("DampedNewtonRaphson: exhausted %d iterations: %w", params.MaxIterations, ErrDidNotConverge)
}

func infNorm(v []float64) float64 {
	max := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}

func snapshot(store *sketch.Store, handles []sketch.ParamHandle) []float64 {
	out := make([]float64, len(handles))
	for i, h := range handles {
		out[i] = store.Val(h)
	}
	return out
}

func applyStep(store *sketch.Store, handles []sketch.ParamHandle, original, dx []float64, damping float64) {
	for i, h := range handles {
		p, err := store.Params.FindByID(h)
		if err != nil {
			continue
		}
		p.Val = original[i] + damping*dx[i]
	}
}

func restore(store *sketch.Store, handles []sketch.ParamHandle, original []float64) {
	applyStep(store, handles, original, make([]float64, len(handles)), 0)
}
