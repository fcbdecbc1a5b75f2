package solve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolve/core/groupgen"
	"github.com/sketchsolve/core/numeric"
	"github.com/sketchsolve/core/sketch"
	"github.com/sketchsolve/core/solve"
)

func distance3(ax, ay, az, bx, by, bz float64) float64 {
	dx, dy, dz := ax-bx, ay-by, az-bz
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// dragFully adds a WHERE_DRAGGED constraint pinning e to its current value,
// contributing one equation per parameter it owns.
func dragFully(t *testing.T, store *sketch.Store, group sketch.GroupHandle, e *sketch.EntityBase) {
	t.Helper()
	_, err := groupgen.Constraint(store, &sketch.ConstraintBase{Group: group, Kind: sketch.WhereDragged, PtA: e.H})
	require.NoError(t, err)
}

// TestSolveTrilaterationConverges pins three reference points and locates a
// fourth purely from its distances to them — a classic well-determined
// square system (12 equations over 12 parameters as emitted; Phase A pins
// the nine reference parameters, leaving 3 equations in 3 unknowns) that
// exercises both the rank classifier's Okay path and several damped Newton
// iterations, since the
// fourth point starts well away from its true location.
func TestSolveTrilaterationConverges(t *testing.T) {
	store := sketch.NewStore()
	p0 := groupgen.PointIn3D(store, 1, 0, 0, 0)
	p1 := groupgen.PointIn3D(store, 1, 10, 0, 0)
	p2 := groupgen.PointIn3D(store, 1, 0, 10, 0)
	target := groupgen.PointIn3D(store, 1, 2, 2, 2) // seeded away from the true (3,4,5)

	dragFully(t, store, 1, p0)
	dragFully(t, store, 1, p1)
	dragFully(t, store, 1, p2)

	d0 := distance3(0, 0, 0, 3, 4, 5)
	d1 := distance3(10, 0, 0, 3, 4, 5)
	d2 := distance3(0, 10, 0, 3, 4, 5)

	for _, c := range []struct {
		ref *sketch.EntityBase
		d   float64
	}{{p0, d0}, {p1, d1}, {p2, d2}} {
		_, err := groupgen.Constraint(store, &sketch.ConstraintBase{
			Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
			PtA: c.ref.H, PtB: target.H, ValA: c.d,
		})
		require.NoError(t, err)
	}

	result, err := solve.Solve(store, 1)
	require.NoError(t, err)
	assert.Equal(t, numeric.Okay, result.Rank)

	assert.InDelta(t, 3.0, store.Val(target.Param[0]), 1e-6)
	assert.InDelta(t, 4.0, store.Val(target.Param[1]), 1e-6)
	assert.InDelta(t, 5.0, store.Val(target.Param[2]), 1e-6)
}

func TestSolveReportsTooManyUnknownsWhenUnderconstrained(t *testing.T) {
	store := sketch.NewStore()
	a := groupgen.PointIn3D(store, 1, 0, 0, 0)
	b := groupgen.PointIn3D(store, 1, 1, 1, 0)
	_, err := groupgen.Constraint(store, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D, PtA: a.H, PtB: b.H, ValA: 5,
	})
	require.NoError(t, err)

	result, err := solve.Solve(store, 1)
	require.Error(t, err)
	assert.Equal(t, numeric.TooManyUnknowns, result.Rank)
	assert.Greater(t, result.DOF, 0)
}

func TestSolveFreezesEarlierGroups(t *testing.T) {
	store := sketch.NewStore()
	base := groupgen.PointIn3D(store, 1, 2, 2, 0)

	moved := groupgen.PointIn3D(store, 2, 0, 0, 0)
	dragFully(t, store, 2, moved)

	_, err := solve.Solve(store, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, store.Val(base.Param[0]))
}
