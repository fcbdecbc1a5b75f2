package diagnostic

import (
	"github.com/sketchsolve/core/sketch"
	"github.com/sketchsolve/core/solve"
)

// paramState snapshots the three fields a solve attempt can mutate, so a
// failed or merely exploratory trial can be undone exactly.
type paramState struct {
	val    float64
	known  bool
	substd sketch.ParamHandle
}

func snapshotParams(store *sketch.Store) map[sketch.ParamHandle]paramState {
	out := make(map[sketch.ParamHandle]paramState)
	store.Params.Each(func(p *sketch.Param) {
		out[p.H] = paramState{val: p.Val, known: p.Known, substd: p.Substd}
	})
	return out
}

func restoreParams(store *sketch.Store, snap map[sketch.ParamHandle]paramState) {
	store.Params.Each(func(p *sketch.Param) {
		s := snap[p.H]
		p.Val, p.Known, p.Substd = s.val, s.known, s.substd
	})
}

// trySolve tags every constraint in excluded, attempts solve.Solve for
// group, then untags them and restores every parameter to its pre-trial
// value regardless of outcome.
func trySolve(store *sketch.Store, group sketch.GroupHandle, excluded []sketch.ConstraintHandle) bool {
	snap := snapshotParams(store)
	for _, h := range excluded {
		store.Constraints.Tag(h)
	}
	_, err := solve.Solve(store, group)
	for _, h := range excluded {
		store.Constraints.Untag(h)
	}
	restoreParams(store, snap)
	return err == nil
}

// constraintsInGroup returns a group's constraint handles in store order.
func constraintsInGroup(store *sketch.Store, group sketch.GroupHandle) []sketch.ConstraintHandle {
	var out []sketch.ConstraintHandle
	store.Constraints.Each(func(c *sketch.ConstraintBase) {
		if c.Group == group {
			out = append(out, c.H)
		}
	})
	return out
}

// FindBadConstraints locates a small set of constraints whose removal lets
// group solve. It repeatedly bisects the remaining candidate set: if
// excluding one half lets the other half solve, at least one offending
// constraint lies in the excluded half, so the search recurses into it;
// otherwise it recurses into the other half instead. Each culprit found is
// removed from the candidate pool and the process repeats until the
// remaining constraints solve cleanly.
//
// This assumes each bisection step's "solves without this half" signal
// correctly localizes a culprit, which holds for the common case of one or
// a few independently-bad constraints; a pair of constraints that are only
// inconsistent in combination with each other (neither bad alone) can
// defeat it, landing both halves in the same bisection step and forcing a
// fall-through to ErrNoCulpritIsolated.
func FindBadConstraints(store *sketch.Store, group sketch.GroupHandle) ([]sketch.ConstraintHandle, error) {
	all := constraintsInGroup(store, group)
	var bad []sketch.ConstraintHandle

	for {
		if trySolve(store, group, bad) {
			return bad, nil
		}
		remaining := subtractHandles(all, bad)
		culprit, ok := bisect(store, group, bad, remaining)
		if !ok {
			return bad, ErrNoCulpritIsolated
		}
		bad = append(bad, culprit)
	}
}

// bisect searches candidates (always disjoint from the already-confirmed
// bad set) for a single constraint whose removal, on top of bad, lets the
// rest solve.
func bisect(store *sketch.Store, group sketch.GroupHandle, bad, candidates []sketch.ConstraintHandle) (sketch.ConstraintHandle, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	if len(candidates) == 1 {
		trial := append(append([]sketch.ConstraintHandle{}, bad...), candidates...)
		if trySolve(store, group, trial) {
			return candidates[0], true
		}
		return 0, false
	}

	mid := len(candidates) / 2
	left, right := candidates[:mid], candidates[mid:]

	// Excluding left (keeping right + bad's complement): if that solves,
	// the culprit is somewhere in left.
	excludingLeft := append(append([]sketch.ConstraintHandle{}, bad...), left...)
	if trySolve(store, group, excludingLeft) {
		return bisect(store, group, bad, left)
	}
	return bisect(store, group, bad, right)
}

func subtractHandles(all, remove []sketch.ConstraintHandle) []sketch.ConstraintHandle {
	removed := make(map[sketch.ConstraintHandle]bool, len(remove))
	for _, h := range remove {
		removed[h] = true
	}
	out := make([]sketch.ConstraintHandle, 0, len(all))
	for _, h := range all {
		if !removed[h] {
			out = append(out, h)
		}
	}
	return out
}
