package solve

import (
	"fmt"

	"github.com/sketchsolve/core/emit"
	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/numeric"
	"github.com/sketchsolve/core/sketch"
)

// Result reports what a Solve call found, whether or not it converged.
type Result struct {
	// Rank classifies the system Solve attempted: Okay or Redundant both
	// mean Newton-Raphson ran; Inconsistent means Solve bailed out before
	// Newton-Raphson ever started; TooManyUnknowns means the same unless
	// dragged parameters were supplied, in which case Newton-Raphson ran.
	Rank numeric.RankStatus
	// DOF is the number of unconstrained degrees of freedom the group's
	// real constraint equations leave over Unknowns — computed whenever
	// Solve bails out with TooManyUnknowns (the caller needs it to explain
	// the failure) or WithFindFree was requested (the caller asked for it explicitly on
	// a successful solve too); zero otherwise.
	DOF int
	// FreeParams names which of Unknowns the DOF count actually refers to,
	// populated only when WithFindFree was requested — computing it is
	// O(n^2 * rank_cost) so it is never done implicitly.
	FreeParams []sketch.ParamHandle
	// Equations is the full set this call emitted, kept so a caller (or the
	// diagnostic package) can re-run analysis without re-deriving them.
	Equations []expr.Equation
	// Unknowns is the ordered list of free parameters Solve iterated over.
	Unknowns []sketch.ParamHandle
}

// Solve runs the seven-step solve procedure for one group:
//
//  1. freeze every parameter belonging to an earlier group (Known = true);
//  2. collect the group's constraints in store order;
//  3. emit their residual equations;
//  4. run Phase A substitution to absorb trivial equalities;
//  5. collect the group's remaining free parameters as unknowns;
//  6. pointer-ify the equations and classify the resulting system's rank;
//  7. if the rank is Okay or Redundant, or TooManyUnknowns with dragged
//     parameters supplied, run damped Newton-Raphson to convergence.
//
// An Inconsistent classification, or TooManyUnknowns with no dragged
// parameters, is returned as an error alongside the Result describing why,
// without attempting Newton-Raphson at all — the caller
// (typically the diagnostic package) decides what to do next.
func Solve(store *sketch.Store, group sketch.GroupHandle, opts ...Option) (*Result, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Newton.OnIteration = options.OnIteration

	freezeEarlierGroups(store, group)

	var constraints []*sketch.ConstraintBase
	store.Constraints.Each(func(c *sketch.ConstraintBase) {
		if c.Group == group && !store.Constraints.IsTagged(c.H) {
			constraints = append(constraints, c)
		}
	})

	var eqs []expr.Equation
	for _, c := range constraints {
		eqs = append(eqs, emit.GenerateEquations(store, c)...)
	}

	if !options.SkipSubstitution {
		sub := numeric.NewSubstitution(store)
		eqs = sub.Absorb(eqs)
		sub.Apply()
	}

	unknowns := freeUnknowns(store, group)

	ptrEqs := make([]expr.Equation, len(eqs))
	for i, eq := range eqs {
		ptrEqs[i] = expr.Equation{H: eq.H, E: eq.E.DeepCopyWithParamsAsPointers(store.Params, nil)}
	}
	sys := &numeric.System{Equations: ptrEqs, Unknowns: unknowns}

	// The real Jacobian (the group's actual constraints, none of the
	// dragged-parameter soft pins) is what Result.Rank/DOF describe —
	// dragging never changes how constrained a sketch "really" is, only
	// which particular solution Newton settles on.
	jac := sys.Jacobian(store)
	resid := sys.Residual(store)
	status := numeric.Classify(jac, resid)
	if len(ptrEqs) == 0 {
		// A group with no constraints at all has nothing to contradict and
		// nothing to satisfy — Classify's row-count test would otherwise
		// call this TooManyUnknowns, but an empty equation set is
		// trivially consistent, not underconstrained in any way the caller
		// needs reported as a failure. Newton still runs (and converges in
		// its first iteration, since the residual is already the empty
		// vector) so DOF/FreeParams accounting stays on the single code
		// path below.
		status = numeric.Okay
	}
	result := &Result{Rank: status, Equations: ptrEqs, Unknowns: unknowns}

	bailWithoutNewton := status == numeric.Inconsistent ||
		(status == numeric.TooManyUnknowns && len(options.Dragged) == 0)
	if bailWithoutNewton {
		if status == numeric.TooManyUnknowns {
			result.DOF = numeric.DegreesOfFreedom(jac)
			if options.FindFree {
				result.FreeParams = freeParamHandles(jac, unknowns)
			}
		}
		return result, fmt.Errorf("solve: group %d: %s", group, status)
	}

	// status is Okay or Redundant, or the group is underdetermined but a
	// caller-supplied drag gives Newton somewhere definite to aim for: all
	// three proceed to Newton-Raphson. A Redundant system that converges is
	// the REDUNDANT_OKAY outcome the spec's C surface maps onto plain OKAY;
	// solve reports it via Rank rather than inventing a fifth status, since
	// "did Newton converge" is already carried by the returned error.
	newtonSys := sys
	if len(options.Dragged) > 0 {
		newtonSys = &numeric.System{
			Equations: append(append([]expr.Equation{}, ptrEqs...), draggedEquations(store, options.Dragged)...),
			Unknowns:  unknowns,
		}
	}
	if err := numeric.DampedNewtonRaphson(store, newtonSys, options.Newton); err != nil {
		if options.FindFree {
			result.DOF = numeric.DegreesOfFreedom(jac)
			result.FreeParams = freeParamHandles(jac, unknowns)
		}
		return result, fmt.Errorf("solve: group %d: %w", group, err)
	}

	if options.FindFree {
		result.DOF = numeric.DegreesOfFreedom(jac)
		result.FreeParams = freeParamHandles(jac, unknowns)
	}
	return result, nil
}

// draggedEquations builds one weighted soft equation per dragged parameter,
// pinning it to its value at the start of this solve. numeric.DraggedWeight
// keeps these equations from dominating the real constraint equations —
// Newton prefers to move other, undragged parameters to satisfy the real
// equations, only falling back on moving a dragged parameter when nothing
// else can absorb the residual. Already-Known (frozen or substituted)
// parameters are skipped: pinning something Newton never touches would just
// add a useless all-zero Jacobian row.
func draggedEquations(store *sketch.Store, dragged []sketch.ParamHandle) []expr.Equation {
	out := make([]expr.Equation, 0, len(dragged))
	for _, h := range dragged {
		p, err := store.Params.FindByID(h)
		if err != nil || p.Known || p.Substd.Valid() {
			continue
		}
		residual := expr.Times(
			expr.FromConst(numeric.DraggedWeight),
			expr.Minus(expr.FromParam(h), expr.FromConst(p.Val)),
		)
		out = append(out, expr.Equation{
			E: residual.DeepCopyWithParamsAsPointers(store.Params, nil),
		})
	}
	return out
}

// freeParamHandles translates numeric.FreeParams's column indices back into
// the ParamHandle values those columns of jac were built from.
func freeParamHandles(jac *numeric.Matrix, unknowns []sketch.ParamHandle) []sketch.ParamHandle {
	cols := numeric.FreeParams(jac)
	out := make([]sketch.ParamHandle, len(cols))
	for i, c := range cols {
		out[i] = unknowns[c]
	}
	return out
}

// freezeEarlierGroups marks every parameter belonging to a group that sorts
// before target as Known, so its value is held fixed during this solve
// rather than treated as an unknown.
func freezeEarlierGroups(store *sketch.Store, target sketch.GroupHandle) {
	store.Params.Each(func(p *sketch.Param) {
		if p.Group != target && p.Group < target {
			p.Known = true
		}
	})
}

// freeUnknowns collects, in store order, every parameter belonging to
// target that is neither Known nor folded away by Phase A substitution.
func freeUnknowns(store *sketch.Store, target sketch.GroupHandle) []sketch.ParamHandle {
	var out []sketch.ParamHandle
	store.Params.Each(func(p *sketch.Param) {
		if p.Group == target && !p.Known && !p.Substd.Valid() {
			out = append(out, p.H)
		}
	})
	return out
}
