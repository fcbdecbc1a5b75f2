package groupgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchsolve/core/emit"
	"github.com/sketchsolve/core/groupgen"
	"github.com/sketchsolve/core/sketch"
)

func TestPointIn3DAllocatesThreeParams(t *testing.T) {
	s := sketch.NewStore()
	p := groupgen.PointIn3D(s, 1, 1, 2, 3)
	assert.True(t, p.Param[0].Valid())
	assert.True(t, p.Param[1].Valid())
	assert.True(t, p.Param[2].Valid())
	assert.Equal(t, 1.0, s.Val(p.Param[0]))
}

func TestCircleAllocatesDistanceEntity(t *testing.T) {
	s := sketch.NewStore()
	center := groupgen.PointIn3D(s, 1, 0, 0, 0)
	normal := groupgen.NormalIn3D(s, 1, 1, 0, 0, 0)
	circle := groupgen.Circle(s, 1, sketch.FreeIn3D, center.H, normal.H, 2.5)
	dist := s.MustEntity(circle.Distance)
	assert.Equal(t, sketch.DistanceEntity, dist.Kind)
	assert.Equal(t, 2.5, s.Val(dist.Param[0]))
}

func TestConstraintAllocatesAuxParamForPtOnLine(t *testing.T) {
	s := sketch.NewStore()
	a := groupgen.PointIn3D(s, 1, 0, 0, 0)
	b := groupgen.PointIn3D(s, 1, 1, 0, 0)
	line := groupgen.LineSegment(s, 1, sketch.FreeIn3D, a.H, b.H)
	p := groupgen.PointIn3D(s, 1, 0.4, 0, 0)

	c, err := groupgen.Constraint(s, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtOnLine, Wrkpl: sketch.FreeIn3D, PtA: p.H, EntityA: line.H,
	})
	require.NoError(t, err)
	assert.True(t, c.ValP.Valid())
}

func TestConstraintRejects2DOnlyKindWithoutWorkplane(t *testing.T) {
	s := sketch.NewStore()
	a := groupgen.PointIn3D(s, 1, 0, 0, 0)
	b := groupgen.PointIn3D(s, 1, 1, 0, 0)
	_, err := groupgen.Constraint(s, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.Horizontal, Wrkpl: sketch.FreeIn3D, PtA: a.H, PtB: b.H,
	})
	assert.Error(t, err)
}

func TestGeneratedEquationsAreConsistentWithGroupgenConstruction(t *testing.T) {
	s := sketch.NewStore()
	a := groupgen.PointIn3D(s, 1, 0, 0, 0)
	b := groupgen.PointIn3D(s, 1, 3, 4, 0)
	c, err := groupgen.Constraint(s, &sketch.ConstraintBase{
		Group: 1, Kind: sketch.PtPtDistance, Wrkpl: sketch.FreeIn3D, PtA: a.H, PtB: b.H, ValA: 5,
	})
	require.NoError(t, err)
	eqs := emit.GenerateEquations(s, c)
	require.Len(t, eqs, 1)
	assert.InDelta(t, 0.0, eqs[0].E.Eval(s), 1e-12)
}
