package diagnostic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolve/core/diagnostic"
	"github.com/sketchsolve/core/groupgen"
	"github.com/sketchsolve/core/sketch"
)

// TestFindBadConstraintsIsolatesContradiction pins one point fully, then
// layers two mutually contradictory distance constraints onto a second
// point — the group cannot solve until one of the two is removed.
func TestFindBadConstraintsIsolatesContradiction(t *testing.T) {
	store := sketch.NewStore()
	anchor := groupgen.PointIn3D(store, 1, 0, 0, 0)
	other := groupgen.PointIn3D(store, 1, 3, 0, 0)

	_, err := groupgen.Constraint(store, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.WhereDragged, PtA: anchor.H,
	})
	require.NoError(t, err)
	_, err = groupgen.Constraint(store, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.WhereDragged, PtA: other.H,
	})
	require.NoError(t, err)
	good, err := groupgen.Constraint(store, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: anchor.H, PtB: other.H, ValA: 3,
	})
	require.NoError(t, err)
	bad, err := groupgen.Constraint(store, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: anchor.H, PtB: other.H, ValA: 7,
	})
	require.NoError(t, err)

	found, err := diagnostic.FindBadConstraints(store, 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, []sketch.ConstraintHandle{good.H, bad.H}, found[0])
}

func TestFindBadConstraintsReturnsEmptyWhenAlreadySolvable(t *testing.T) {
	store := sketch.NewStore()
	p := groupgen.PointIn3D(store, 1, 0, 0, 0)
	_, err := groupgen.Constraint(store, &sketch.ConstraintBase{Group: 1, Kind: sketch.WhereDragged, PtA: p.H})
	require.NoError(t, err)

	found, err := diagnostic.FindBadConstraints(store, 1)
	require.NoError(t, err)
	assert.Empty(t, found)
}
