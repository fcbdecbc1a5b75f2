package emit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolve/core/emit"
	"github.com/sketchsolve/core/sketch"
)

// newPoint3D builds a free POINT_IN_3D entity at (x,y,z).
func newPoint3D(s *sketch.Store, g sketch.GroupHandle, x, y, z float64) *sketch.EntityBase {
	px := s.NewParam(g, x)
	py := s.NewParam(g, y)
	pz := s.NewParam(g, z)
	return s.NewEntity(&sketch.EntityBase{
		Group: g,
		Kind:  sketch.PointIn3D,
		Wrkpl: sketch.FreeIn3D,
		Param: [4]sketch.ParamHandle{px.H, py.H, pz.H},
	})
}

func newLine(s *sketch.Store, g sketch.GroupHandle, a, b *sketch.EntityBase) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{
		Group:     g,
		Kind:      sketch.LineSegment,
		Wrkpl:     sketch.FreeIn3D,
		PointRefs: [4]sketch.EntityHandle{a.H, b.H},
	})
}

func TestPointExprsIn3D(t *testing.T) {
	s := sketch.NewStore()
	p := newPoint3D(s, 1, 1, 2, 3)
	v := emit.PointExprs(s, p.H)
	assert.Equal(t, 1.0, v.X.Eval(s))
	assert.Equal(t, 2.0, v.Y.Eval(s))
	assert.Equal(t, 3.0, v.Z.Eval(s))
}

func TestPtPtDistanceResidual(t *testing.T) {
	s := sketch.NewStore()
	a := newPoint3D(s, 1, 0, 0, 0)
	b := newPoint3D(s, 1, 3, 4, 0)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: a.H, PtB: b.H, ValA: 5,
	})
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 1)
	assert.InDelta(t, 0.0, eqs[0].E.Eval(s), 1e-12)
}

func TestPointsCoincidentProducesThreeEquationsIn3D(t *testing.T) {
	s := sketch.NewStore()
	a := newPoint3D(s, 1, 1, 2, 3)
	b := newPoint3D(s, 1, 1, 2, 3)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.PointsCoincident, Wrkpl: sketch.FreeIn3D, PtA: a.H, PtB: b.H,
	})
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 3)
	for _, eq := range eqs {
		assert.Equal(t, 0.0, eq.E.Eval(s))
	}
}

func TestReferenceConstraintEmitsNoEquations(t *testing.T) {
	s := sketch.NewStore()
	a := newPoint3D(s, 1, 0, 0, 0)
	b := newPoint3D(s, 1, 3, 4, 0)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: a.H, PtB: b.H, ValA: 999, Reference: true,
	})
	assert.Empty(t, emit.GenerateEquations(s, c))
}

func TestModifyToSatisfyUpdatesValA(t *testing.T) {
	s := sketch.NewStore()
	a := newPoint3D(s, 1, 0, 0, 0)
	b := newPoint3D(s, 1, 3, 4, 0)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D,
		PtA: a.H, PtB: b.H, ValA: 0, Reference: true,
	})
	require.NoError(t, emit.ModifyToSatisfy(s, c))
	assert.InDelta(t, 5.0, c.ValA, 1e-12)
}

func TestModifyToSatisfyRejectsNonReference(t *testing.T) {
	s := sketch.NewStore()
	a := newPoint3D(s, 1, 0, 0, 0)
	b := newPoint3D(s, 1, 3, 4, 0)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D, PtA: a.H, PtB: b.H,
	})
	err := emit.ModifyToSatisfy(s, c)
	assert.ErrorIs(t, err, emit.ErrNotReference)
}

func TestPerpendicularResidualZeroForRightAngle(t *testing.T) {
	s := sketch.NewStore()
	o := newPoint3D(s, 1, 0, 0, 0)
	px := newPoint3D(s, 1, 1, 0, 0)
	py := newPoint3D(s, 1, 0, 1, 0)
	l1 := newLine(s, 1, o, px)
	l2 := newLine(s, 1, o, py)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.Perpendicular, Wrkpl: sketch.FreeIn3D, EntityA: l1.H, EntityB: l2.H,
	})
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 1)
	assert.InDelta(t, 0.0, eqs[0].E.Eval(s), 1e-12)
}

func TestDiameterResidual(t *testing.T) {
	s := sketch.NewStore()
	pd := s.NewParam(1, 2.0)
	dist := s.NewEntity(&sketch.EntityBase{Group: 1, Kind: sketch.DistanceEntity, Param: [4]sketch.ParamHandle{pd.H}})
	center := newPoint3D(s, 1, 0, 0, 0)
	circle := s.NewEntity(&sketch.EntityBase{
		Group: 1, Kind: sketch.Circle, Wrkpl: sketch.FreeIn3D,
		PointRefs: [4]sketch.EntityHandle{center.H}, Distance: dist.H,
	})
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.Diameter, EntityA: circle.H, ValA: 4.0,
	})
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 1)
	assert.InDelta(t, 0.0, eqs[0].E.Eval(s), 1e-12)
}

func TestAngleGainMatchesFormula(t *testing.T) {
	s := sketch.NewStore()
	o := newPoint3D(s, 1, 0, 0, 0)
	px := newPoint3D(s, 1, 1, 0, 0)
	py := newPoint3D(s, 1, 0, 1, 0)
	l1 := newLine(s, 1, o, px)
	l2 := newLine(s, 1, o, py)
	c := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.Angle, EntityA: l1.H, EntityB: l2.H, ValA: 90,
	})
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 1)
	assert.InDelta(t, 0.0, eqs[0].E.Eval(s), 1e-9)

	// Away from the target the residual is gain*(cos(actual)-cos(target));
	// the lines stay perpendicular, so cos(actual) is 0.
	c60 := s.NewConstraint(&sketch.ConstraintBase{
		Group: 1, Kind: sketch.Angle, EntityA: l1.H, EntityB: l2.H, ValA: 60,
	})
	eqs60 := emit.GenerateEquations(s, c60)
	require.Len(t, eqs60, 1)
	cosTarget := math.Cos(60 * math.Pi / 180)
	want := 0.01 / (1.00001 - math.Abs(cosTarget))
	assert.InDelta(t, want*(0-cosTarget), eqs60[0].E.Eval(s), 1e-12)
}

func TestUnknownConstraintKindPanics(t *testing.T) {
	s := sketch.NewStore()
	c := &sketch.ConstraintBase{Kind: sketch.ConstraintKind(999999)}
	assert.Panics(t, func() { emit.GenerateEquations(s, c) })
}
