package slvs

import (
	"fmt"

	"github.com/sketchsolve/core/diagnostic"
	"github.com/sketchsolve/core/emit"
	"github.com/sketchsolve/core/numeric"
	"github.com/sketchsolve/core/sketch"
	"github.com/sketchsolve/core/solve"
)

// Solve bridges sys onto a fresh sketch.Store and solves hGroup; parameters
// of earlier groups are held fixed, as solve.Solve does. Solved values are
// written back into sys.Param[i].Val in place (a parameter Phase A folded
// into another reads back its representative's value); sys.Result and, when
// FindFree is set, sys.DOF describe the outcome. A non-nil error is returned
// only for a malformed sys (a dangling reference); solve failures are
// reported through sys.Result instead, matching the original Slvs_Solve
// convention of "this always returns, check Result".
func Solve(sys *System, hGroup uint32) error {
	if len(sys.Param) == 0 {
		sys.Result = Okay
		return nil
	}
	group := sketch.GroupHandle(hGroup)

	store := sketch.NewStore()
	maxParam, maxEntity, maxConstraint := loadParams(store, sys), loadEntities(store, sys), sketch.ConstraintHandle(0)
	if err := validateEntityRefs(store, sys); err != nil {
		return err
	}
	maxConstraint = loadConstraints(store, sys)
	store.ReserveHandles(maxParam, maxEntity, maxConstraint)
	if err := allocateAuxParams(store, sys); err != nil {
		return err
	}

	var opts []solve.Option
	if sys.FindFree {
		opts = append(opts, solve.WithFindFree())
	}
	if dragged := draggedHandles(sys); len(dragged) > 0 {
		opts = append(opts, solve.WithDragged(dragged...))
	}

	result, err := solve.Solve(store, group, opts...)
	writeBackParams(store, sys)

	if err == nil {
		sys.Result = Okay
		sys.DOF = result.DOF
		return nil
	}

	switch result.Rank {
	case numeric.Inconsistent:
		sys.Result = Inconsistent
	case numeric.TooManyUnknowns:
		sys.Result = TooManyUnknowns
		sys.DOF = result.DOF
	default:
		sys.Result = DidntConverge
	}

	if sys.CalculateFaileds {
		bad, diagErr := diagnostic.FindBadConstraints(store, group)
		if diagErr == nil {
			sys.Failed = make([]uint32, len(bad))
			for i, h := range bad {
				sys.Failed[i] = uint32(h)
			}
		}
	}
	return nil
}

func loadParams(store *sketch.Store, sys *System) sketch.ParamHandle {
	var max sketch.ParamHandle
	for _, wp := range sys.Param {
		h := sketch.ParamHandle(wp.H)
		store.Params.Add(&sketch.Param{H: h, Group: sketch.GroupHandle(wp.Group), Val: wp.Val})
		if h > max {
			max = h
		}
	}
	return max
}

func loadEntities(store *sketch.Store, sys *System) sketch.EntityHandle {
	var max sketch.EntityHandle
	for _, we := range sys.Entity {
		e := &sketch.EntityBase{
			H:     sketch.EntityHandle(we.H),
			Group: sketch.GroupHandle(we.Group),
			Kind:  sketch.EntityKind(we.Type),
			Wrkpl: sketch.EntityHandle(we.Wrkpl),
			Normal:   sketch.EntityHandle(we.Normal),
			Distance: sketch.EntityHandle(we.Distance),
		}
		for i := range we.Point {
			e.PointRefs[i] = sketch.EntityHandle(we.Point[i])
		}
		for i := range we.Param {
			e.Param[i] = sketch.ParamHandle(we.Param[i])
		}
		store.Entities.Add(e)
		if e.H > max {
			max = e.H
		}
	}
	return max
}

// validateEntityRefs confirms every entity's Point/Normal/Distance/Wrkpl
// reference resolves, catching a malformed wire array before it reaches the
// emitter (which treats a dangling reference as a programming-error panic,
// not a user-correctable one).
func validateEntityRefs(store *sketch.Store, sys *System) error {
	for _, we := range sys.Entity {
		for _, p := range we.Point {
			if p == 0 {
				continue
			}
			if _, err := store.Entities.FindByID(sketch.EntityHandle(p)); err != nil {
				return fmt.Errorf("slvs: entity %d: point ref %d: %w", we.H, p, err)
			}
		}
		if we.Normal != 0 {
			if _, err := store.Entities.FindByID(sketch.EntityHandle(we.Normal)); err != nil {
				return fmt.Errorf("slvs: entity %d: normal ref %d: %w", we.H, we.Normal, err)
			}
		}
		if we.Distance != 0 {
			if _, err := store.Entities.FindByID(sketch.EntityHandle(we.Distance)); err != nil {
				return fmt.Errorf("slvs: entity %d: distance ref %d: %w", we.H, we.Distance, err)
			}
		}
	}
	return nil
}

func loadConstraints(store *sketch.Store, sys *System) sketch.ConstraintHandle {
	var max sketch.ConstraintHandle
	for _, wc := range sys.Constraint {
		c := &sketch.ConstraintBase{
			H:       sketch.ConstraintHandle(wc.H),
			Group:   sketch.GroupHandle(wc.Group),
			Kind:    sketch.ConstraintKind(wc.Type),
			Wrkpl:   sketch.EntityHandle(wc.Wrkpl),
			ValA:    wc.ValA,
			PtA:     sketch.EntityHandle(wc.PtA),
			PtB:     sketch.EntityHandle(wc.PtB),
			EntityA: sketch.EntityHandle(wc.EntityA),
			EntityB: sketch.EntityHandle(wc.EntityB),
			EntityC: sketch.EntityHandle(wc.EntityC),
			EntityD: sketch.EntityHandle(wc.EntityD),
			Other:   wc.Other != 0,
			Other2:  wc.Other2 != 0,
		}
		store.Constraints.Add(c)
		if c.H > max {
			max = c.H
		}
	}
	return max
}

// allocateAuxParams mirrors groupgen.Constraint's auxiliary-parameter
// allocation for the handful of constraint kinds that need one, but without
// groupgen.Constraint's handle-reassigning NewConstraint call — the wire
// constraint's handle was already preserved by loadConstraints above.
func allocateAuxParams(store *sketch.Store, sys *System) error {
	for _, wc := range sys.Constraint {
		c, err := store.Constraints.FindByID(sketch.ConstraintHandle(wc.H))
		if err != nil {
			return fmt.Errorf("slvs: %w", err)
		}
		if emit.Is2DOnly(c.Kind) && c.Wrkpl == sketch.FreeIn3D {
			return fmt.Errorf("slvs: constraint %d: kind %d requires a workplane", c.H, c.Kind)
		}
		if c.NeedsAuxParam() {
			p := store.NewParam(c.Group, 0.5)
			c.ValP = p.H
		}
	}
	return nil
}

func draggedHandles(sys *System) []sketch.ParamHandle {
	var out []sketch.ParamHandle
	for _, h := range sys.Dragged {
		if h != 0 {
			out = append(out, sketch.ParamHandle(h))
		}
	}
	return out
}

func writeBackParams(store *sketch.Store, sys *System) {
	for i := range sys.Param {
		p, err := store.Resolve(sketch.ParamHandle(sys.Param[i].H))
		if err != nil {
			continue
		}
		sys.Param[i].Val = p.Val
	}
}
