package emit

import (
	"fmt"
	"math"

	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

// ModifyToSatisfy re-values a reference constraint's driven dimension to
// whatever the current geometry actually measures, rather than generating an
// equation for the numeric kernel to solve against. It is how a dimension
// marked "reference" stays readable after an unrelated drag moves the
// geometry it annotates.
func ModifyToSatisfy(s *sketch.Store, c *sketch.ConstraintBase) error {
	if !c.Reference {
		return fmt.Errorf("ModifyToSatisfy: constraint %d: %w", c.H, ErrNotReference)
	}
	v, err := measure(s, c)
	if err != nil {
		return err
	}
	c.ValA = v
	return nil
}

// measure evaluates the unconstrained form of the residual formula for kind
// (i.e. the left-hand side before "- valA" is subtracted) at the store's
// current parameter values.
func measure(s *sketch.Store, c *sketch.ConstraintBase) (float64, error) {
	switch c.Kind {
	case sketch.PtPtDistance:
		if c.Wrkpl == sketch.FreeIn3D {
			a := PointExprs(s, c.PtA)
			b := PointExprs(s, c.PtB)
			return expr.Magnitude3(expr.MinusVec3(a, b)).Eval(s), nil
		}
		a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
		b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
		return expr.Magnitude2(expr.MinusVec2(a, b)).Eval(s), nil
	case sketch.ProjPtDistance:
		a, b := LineExprs(s, c.EntityA)
		dir := normalize3(expr.MinusVec3(b, a))
		pa := PointExprs(s, c.PtA)
		pb := PointExprs(s, c.PtB)
		return expr.Dot3(expr.MinusVec3(pb, pa), dir).Eval(s), nil
	case sketch.PtLineDistance:
		withValA := ptLineDistance(s, &sketch.ConstraintBase{
			Kind: c.Kind, Wrkpl: c.Wrkpl, PtA: c.PtA, EntityA: c.EntityA, ValA: 0,
		})
		return withValA.Eval(s), nil
	case sketch.PtPlaneDistance:
		return ptPlaneDistanceZero(s, c).Eval(s), nil
	case sketch.PtFaceDistance:
		withValA := ptFaceDistance(s, &sketch.ConstraintBase{
			Kind: c.Kind, PtA: c.PtA, EntityA: c.EntityA, ValA: 0,
		})
		return withValA.Eval(s), nil
	case sketch.Diameter:
		return expr.Times(expr.FromConst(2), CircleRadiusExpr(s, c.EntityA)).Eval(s), nil
	case sketch.LengthRatio:
		return expr.Div(lineLength(s, c.EntityA), lineLength(s, c.EntityB)).Eval(s), nil
	case sketch.LengthDifference:
		return expr.Minus(lineLength(s, c.EntityA), lineLength(s, c.EntityB)).Eval(s), nil
	case sketch.Angle:
		a0, a1 := LineExprs(s, c.EntityA)
		b0, b1 := LineExprs(s, c.EntityB)
		da := expr.MinusVec3(a1, a0)
		db := expr.MinusVec3(b1, b0)
		cosAngle := expr.Div(expr.Dot3(da, db), expr.Times(expr.Magnitude3(da), expr.Magnitude3(db))).Eval(s)
		cosAngle = math.Max(-1, math.Min(1, cosAngle))
		return math.Acos(cosAngle) * 180 / math.Pi, nil
	default:
		return 0, fmt.Errorf("ModifyToSatisfy: constraint kind %d has no reference form: %w", c.Kind, ErrNotReference)
	}
}
