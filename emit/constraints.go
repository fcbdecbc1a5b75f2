package emit

import (
	"fmt"
	"math"

	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

// GenerateEquations builds the residual equations a single constraint
// contributes to the current group's system. A Reference constraint (a
// driven dimension the UI displays rather than solves against) contributes
// none; ModifyToSatisfy re-values it instead.
//
// Handles are derived with sketch.EquationHandleFor so that re-emitting the
// same constraint across solves yields equations with the same identity.
func GenerateEquations(s *sketch.Store, c *sketch.ConstraintBase) []expr.Equation {
	if c.Reference {
		return nil
	}
	terms := residuals(s, c)
	out := make([]expr.Equation, len(terms))
	for i, t := range terms {
		out[i] = expr.Equation{H: sketch.EquationHandleFor(c.H, i), E: t}
	}
	return out
}

// residuals dispatches on Kind and returns the raw list of scalar
// expressions that must all evaluate to zero at a solution. Two-dimensional
// constraint kinds panic via programmingErrorFreeIn3D when used with
// Wrkpl == sketch.FreeIn3D; the caller built an invalid constraint.
func residuals(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	switch c.Kind {
	case sketch.PointsCoincident:
		return pointsCoincident(s, c)
	case sketch.PtPtDistance:
		return []*expr.Expr{ptPtDistance(s, c)}
	case sketch.ProjPtDistance:
		return []*expr.Expr{projPtDistance(s, c)}
	case sketch.PtLineDistance:
		return []*expr.Expr{ptLineDistance(s, c)}
	case sketch.PtPlaneDistance:
		return []*expr.Expr{ptPlaneDistance(s, c)}
	case sketch.PtFaceDistance:
		return []*expr.Expr{ptFaceDistance(s, c)}
	case sketch.EqualLengthLines:
		return []*expr.Expr{equalLengthLines(s, c)}
	case sketch.EqLenPtLineD:
		return []*expr.Expr{eqLenPtLineD(s, c)}
	case sketch.LengthRatio:
		return []*expr.Expr{lengthRatio(s, c)}
	case sketch.LengthDifference:
		return []*expr.Expr{lengthDifference(s, c)}
	case sketch.Diameter:
		return []*expr.Expr{diameter(s, c)}
	case sketch.EqualRadius:
		return []*expr.Expr{equalRadius(s, c)}
	case sketch.EqualLineArcLen:
		return []*expr.Expr{equalLineArcLen(s, c)}
	case sketch.PtInPlane:
		return []*expr.Expr{ptPlaneDistanceZero(s, c)}
	case sketch.PtOnFace:
		return []*expr.Expr{ptFaceDistance(s, c)}
	case sketch.PtOnLine:
		return ptOnLine(s, c)
	case sketch.PtOnCircle:
		return []*expr.Expr{ptOnCircle(s, c)}
	case sketch.AtMidpoint:
		return atMidpoint(s, c)
	case sketch.Symmetric:
		return symmetric(s, c)
	case sketch.SymmetricHoriz:
		return symmetricHoriz(s, c)
	case sketch.SymmetricVert:
		return symmetricVert(s, c)
	case sketch.SymmetricLine:
		return symmetricLine(s, c)
	case sketch.Horizontal:
		return []*expr.Expr{horizontal(s, c)}
	case sketch.Vertical:
		return []*expr.Expr{vertical(s, c)}
	case sketch.Parallel:
		return parallel(s, c)
	case sketch.Perpendicular:
		return []*expr.Expr{perpendicular(s, c)}
	case sketch.Angle:
		return []*expr.Expr{angle(s, c)}
	case sketch.EqualAngle:
		return []*expr.Expr{equalAngle(s, c)}
	case sketch.ArcLineTangent:
		return []*expr.Expr{arcLineTangent(s, c)}
	case sketch.CubicLineTangent:
		return cubicLineTangent(s, c)
	case sketch.CurveCurveTangent:
		return []*expr.Expr{curveCurveTangent(s, c)}
	case sketch.SameOrientation:
		return sameOrientation(s, c)
	case sketch.WhereDragged:
		return whereDragged(s, c)
	case sketch.Comment:
		return nil
	default:
		panic(fmt.Sprintf("%v: %d", ErrUnknownConstraintKind, c.Kind))
	}
}

// normalize3 builds v / |v|, the unit direction of v.
func normalize3(v expr.Vec3) expr.Vec3 {
	m := expr.Magnitude3(v)
	return expr.Vec3{X: expr.Div(v.X, m), Y: expr.Div(v.Y, m), Z: expr.Div(v.Z, m)}
}

func pointsCoincident(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		a := PointExprs(s, c.PtA)
		b := PointExprs(s, c.PtB)
		return []*expr.Expr{expr.Minus(a.X, b.X), expr.Minus(a.Y, b.Y), expr.Minus(a.Z, b.Z)}
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return []*expr.Expr{expr.Minus(a.U, b.U), expr.Minus(a.V, b.V)}
}

// ptPtDistance projects into the constraint's workplane when one is set, so
// a 2D sketch's distance dimension reads off the drawn plane rather than the
// points' full 3-space separation.
func ptPtDistance(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		a := PointExprs(s, c.PtA)
		b := PointExprs(s, c.PtB)
		return expr.Minus(expr.Magnitude3(expr.MinusVec3(a, b)), expr.FromConst(c.ValA))
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return expr.Minus(expr.Magnitude2(expr.MinusVec2(a, b)), expr.FromConst(c.ValA))
}

// projPtDistance measures the separation of PtA and PtB along EntityA's
// direction: ((b-a)·v̂) - valA.
func projPtDistance(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	a, b := LineExprs(s, c.EntityA)
	dir := normalize3(expr.MinusVec3(b, a))
	pa := PointExprs(s, c.PtA)
	pb := PointExprs(s, c.PtB)
	return expr.Minus(expr.Dot3(expr.MinusVec3(pb, pa), dir), expr.FromConst(c.ValA))
}

// ptLineDistance is the signed in-plane distance when a workplane is set
// (sign tells which side of the line the point is on), and the unsigned 3D
// point-to-line distance otherwise.
func ptLineDistance(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	if c.Wrkpl != sketch.FreeIn3D {
		p := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
		la, lb := LineExprs(s, c.EntityA)
		aProj := projectInWorkplane(s, c.Wrkpl, la)
		bProj := projectInWorkplane(s, c.Wrkpl, lb)
		cross := expr.Minus(
			expr.Times(expr.Minus(p.U, aProj.U), expr.Minus(bProj.V, aProj.V)),
			expr.Times(expr.Minus(p.V, aProj.V), expr.Minus(bProj.U, aProj.U)),
		)
		return expr.Minus(expr.Div(cross, expr.Magnitude2(expr.MinusVec2(bProj, aProj))), expr.FromConst(c.ValA))
	}
	p := PointExprs(s, c.PtA)
	a, b := LineExprs(s, c.EntityA)
	ab := expr.MinusVec3(b, a)
	ap := expr.MinusVec3(p, a)
	cross := expr.Cross3(ab, ap)
	return expr.Minus(expr.Div(expr.Magnitude3(cross), expr.Magnitude3(ab)), expr.FromConst(c.ValA))
}

func projectInWorkplane(s *sketch.Store, wp sketch.EntityHandle, p expr.Vec3) expr.Vec2 {
	origin, u, v := workplaneBasis(s, wp)
	rel := expr.MinusVec3(p, origin)
	return expr.Vec2{U: expr.Dot3(rel, u), V: expr.Dot3(rel, v)}
}

// ptPlaneDistance is p·n - d - valA, where (n,d) come from EntityA's plane.
func ptPlaneDistance(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	n, d := WorkplaneGetPlaneExprs(s, c.EntityA)
	p := PointExprs(s, c.PtA)
	return expr.Minus(expr.Minus(expr.Dot3(p, n), d), expr.FromConst(c.ValA))
}

func ptPlaneDistanceZero(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	n, d := WorkplaneGetPlaneExprs(s, c.EntityA)
	p := PointExprs(s, c.PtA)
	return expr.Minus(expr.Dot3(p, n), d)
}

// ptFaceDistance is (p-p0)·n - valA for PT_FACE_DISTANCE, or the same with
// valA implicitly zero for PT_ON_FACE.
func ptFaceDistance(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	p := PointExprs(s, c.PtA)
	p0 := FaceGetPointExprs(s, c.EntityA)
	n := FaceGetNormalExprs(s, c.EntityA)
	val := c.ValA
	if c.Kind == sketch.PtOnFace {
		val = 0
	}
	return expr.Minus(expr.Dot3(expr.MinusVec3(p, p0), n), expr.FromConst(val))
}

func lineLength(s *sketch.Store, h sketch.EntityHandle) *expr.Expr {
	a, b := LineExprs(s, h)
	return expr.Magnitude3(expr.MinusVec3(a, b))
}

func equalLengthLines(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	return expr.Minus(lineLength(s, c.EntityA), lineLength(s, c.EntityB))
}

// eqLenPtLineD equates the squared length of EntityA to the squared
// point-to-line distance of PtA from EntityB. Both sides are still built
// from square-root magnitudes; squaring them only makes the comparison
// independent of sign.
func eqLenPtLineD(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	lenA := lineLength(s, c.EntityA)
	p := PointExprs(s, c.PtA)
	la, lb := LineExprs(s, c.EntityB)
	ab := expr.MinusVec3(lb, la)
	ap := expr.MinusVec3(p, la)
	distB := expr.Div(expr.Magnitude3(expr.Cross3(ab, ap)), expr.Magnitude3(ab))
	return expr.Minus(expr.Square(lenA), expr.Square(distB))
}

func lengthRatio(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	return expr.Minus(expr.Div(lineLength(s, c.EntityA), lineLength(s, c.EntityB)), expr.FromConst(c.ValA))
}

func lengthDifference(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	return expr.Minus(expr.Minus(lineLength(s, c.EntityA), lineLength(s, c.EntityB)), expr.FromConst(c.ValA))
}

func diameter(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	r := CircleRadiusExpr(s, c.EntityA)
	return expr.Minus(expr.Times(expr.FromConst(2), r), expr.FromConst(c.ValA))
}

func equalRadius(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	return expr.Minus(CircleRadiusExpr(s, c.EntityA), CircleRadiusExpr(s, c.EntityB))
}

// equalLineArcLen compares an arc's swept length r*theta to a line's length.
// theta is computed from the arc's own endpoint/center params, which means
// it tracks the arc's current configuration rather than a fixed target; the
// three-branch selection below reproduces the original solver's
// sign/wraparound handling for sweeps near 0 and 2*pi rather than correcting
// it, since neither branch boundary is reachable analytically from the
// symbolic residual alone. This is a known source of convergence trouble for
// a near-half-turn arc dragged across the 3*pi/4..5*pi/4 boundary.
func equalLineArcLen(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	arc := s.MustEntity(c.EntityA)
	center := PointExprs(s, arc.PointRefs[0])
	start := PointExprs(s, arc.PointRefs[1])
	finish := PointExprs(s, arc.PointRefs[2])
	r := expr.Magnitude3(expr.MinusVec3(start, center))

	cs := expr.MinusVec3(start, center)
	cf := expr.MinusVec3(finish, center)
	cosDTheta := expr.Div(expr.Dot3(cs, cf), expr.Times(expr.Magnitude3(cs), expr.Magnitude3(cf)))

	// Evaluate the current sweep numerically only to pick a branch; the
	// branch itself stays symbolic so the chosen formula still
	// differentiates correctly at the operating point. The sweep runs
	// counter-clockwise about +Z over [0, 2*pi), so every branch is reachable.
	crossZ := expr.Minus(expr.Times(cs.X, cf.Y), expr.Times(cs.Y, cf.X))
	sweep := math.Atan2(crossZ.Eval(s), expr.Dot3(cs, cf).Eval(s))
	if sweep < 0 {
		sweep += 2 * math.Pi
	}

	var dtheta *expr.Expr
	switch {
	case sweep < 3*math.Pi/4:
		dtheta = expr.Acos(cosDTheta)
	case sweep < 5*math.Pi/4:
		// near a half turn: acos loses precision, fall back to the
		// cross-product-based angle which stays well-conditioned here.
		dtheta = expr.Asin(expr.Div(crossZ, expr.Times(expr.Magnitude3(cs), expr.Magnitude3(cf))))
		dtheta = expr.Minus(expr.FromConst(math.Pi), dtheta)
	default:
		dtheta = expr.Minus(expr.FromConst(2*math.Pi), expr.Acos(cosDTheta))
	}

	arcLen := expr.Times(r, dtheta)
	return expr.Minus(arcLen, lineLength(s, c.EntityB))
}

// ptOnLine uses the auxiliary parameter t (ValP) that the group generator
// allocated for the constraint and constrains
// p = a + t*(b-a).
func ptOnLine(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	t := expr.FromParam(c.ValP)
	a, b := LineExprs(s, c.EntityA)
	ab := expr.MinusVec3(b, a)
	target := expr.Vec3{
		X: expr.Plus(a.X, expr.Times(t, ab.X)),
		Y: expr.Plus(a.Y, expr.Times(t, ab.Y)),
		Z: expr.Plus(a.Z, expr.Times(t, ab.Z)),
	}
	if c.Wrkpl == sketch.FreeIn3D {
		p := PointExprs(s, c.PtA)
		return []*expr.Expr{expr.Minus(p.X, target.X), expr.Minus(p.Y, target.Y), expr.Minus(p.Z, target.Z)}
	}
	p := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	targetUV := projectInWorkplane(s, c.Wrkpl, target)
	return []*expr.Expr{expr.Minus(p.U, targetUV.U), expr.Minus(p.V, targetUV.V)}
}

// ptOnCircle projects the point into the circle's own plane (its normal
// entity's U/V basis) before comparing the in-plane distance to the radius,
// so the constraint holds even for a circle that doesn't lie in the active
// workplane.
func ptOnCircle(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	circle := s.MustEntity(c.EntityA)
	center := PointExprs(s, circle.PointRefs[0])
	u, v, _ := NormalExprsUVN(s, circle.Normal)
	p := PointExprs(s, c.PtA)
	rel := expr.MinusVec3(p, center)
	pu := expr.Dot3(rel, u)
	pv := expr.Dot3(rel, v)
	dist := expr.Sqrt(expr.Plus(expr.Square(pu), expr.Square(pv)))
	return expr.Minus(dist, CircleRadiusExpr(s, c.EntityA))
}

// atMidpoint equates the midpoint of EntityA to PtA: three equations in 3D,
// or two in-plane equations when Wrkpl is set. It has no form that places
// the midpoint on a plane entity instead of a point.
func atMidpoint(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	a, b := LineExprs(s, c.EntityA)
	mid := expr.Vec3{
		X: expr.Div(expr.Plus(a.X, b.X), expr.FromConst(2)),
		Y: expr.Div(expr.Plus(a.Y, b.Y), expr.FromConst(2)),
		Z: expr.Div(expr.Plus(a.Z, b.Z), expr.FromConst(2)),
	}
	if c.Wrkpl == sketch.FreeIn3D {
		p := PointExprs(s, c.PtA)
		return []*expr.Expr{expr.Minus(p.X, mid.X), expr.Minus(p.Y, mid.Y), expr.Minus(p.Z, mid.Z)}
	}
	p := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	midUV := projectInWorkplane(s, c.Wrkpl, mid)
	return []*expr.Expr{expr.Minus(p.U, midUV.U), expr.Minus(p.V, midUV.V)}
}

// symmetric reflects PtA and PtB across the plane carried by EntityA: their
// midpoint lies in the plane and the segment joining them is parallel to
// the plane's normal.
func symmetric(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	pa := PointExprs(s, c.PtA)
	pb := PointExprs(s, c.PtB)
	n, d := WorkplaneGetPlaneExprs(s, c.EntityA)
	mid := expr.Vec3{
		X: expr.Div(expr.Plus(pa.X, pb.X), expr.FromConst(2)),
		Y: expr.Div(expr.Plus(pa.Y, pb.Y), expr.FromConst(2)),
		Z: expr.Div(expr.Plus(pa.Z, pb.Z), expr.FromConst(2)),
	}
	onPlane := expr.Minus(expr.Dot3(mid, n), d)
	diff := expr.MinusVec3(pa, pb)
	parallelToNormal := expr.Cross3(diff, n)
	return []*expr.Expr{onPlane, parallelToNormal.X, parallelToNormal.Y, parallelToNormal.Z}
}

func symmetricHoriz(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		programmingErrorFreeIn3D("SYMMETRIC_HORIZ")
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return []*expr.Expr{expr.Minus(a.V, b.V), expr.Plus(a.U, b.U)}
}

func symmetricVert(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		programmingErrorFreeIn3D("SYMMETRIC_VERT")
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return []*expr.Expr{expr.Minus(a.U, b.U), expr.Plus(a.V, b.V)}
}

// symmetricLine reflects PtA/PtB across EntityA (a line in the workplane):
// their in-plane midpoint lies on the line, and the segment joining them is
// perpendicular to it.
func symmetricLine(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		programmingErrorFreeIn3D("SYMMETRIC_LINE")
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	la, lb := LineExprs(s, c.EntityA)
	laUV := projectInWorkplane(s, c.Wrkpl, la)
	lbUV := projectInWorkplane(s, c.Wrkpl, lb)
	lineDir := expr.MinusVec2(lbUV, laUV)
	mid := expr.Vec2{U: expr.Div(expr.Plus(a.U, b.U), expr.FromConst(2)), V: expr.Div(expr.Plus(a.V, b.V), expr.FromConst(2))}
	onLine := expr.Minus(
		expr.Times(expr.Minus(mid.U, laUV.U), lineDir.V),
		expr.Times(expr.Minus(mid.V, laUV.V), lineDir.U),
	)
	diff := expr.MinusVec2(a, b)
	perp := expr.Dot2(diff, lineDir)
	return []*expr.Expr{onLine, perp}
}

func horizontal(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		programmingErrorFreeIn3D("HORIZONTAL")
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return expr.Minus(a.V, b.V)
}

func vertical(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		programmingErrorFreeIn3D("VERTICAL")
	}
	a := PointExprsInWorkplane(s, c.PtA, c.Wrkpl)
	b := PointExprsInWorkplane(s, c.PtB, c.Wrkpl)
	return expr.Minus(a.U, b.U)
}

// parallel constrains EntityA and EntityB's direction vectors to be
// collinear. In 3D this needs the auxiliary parameter t (a=t*b, three
// equations with one redundant by construction, which the numeric kernel's
// rank analysis absorbs); in a workplane the single 2D cross-product
// equation suffices.
func parallel(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	if c.Wrkpl == sketch.FreeIn3D {
		a0, a1 := LineExprs(s, c.EntityA)
		b0, b1 := LineExprs(s, c.EntityB)
		da := expr.MinusVec3(a1, a0)
		db := expr.MinusVec3(b1, b0)
		t := expr.FromParam(c.ValP)
		return []*expr.Expr{
			expr.Minus(da.X, expr.Times(t, db.X)),
			expr.Minus(da.Y, expr.Times(t, db.Y)),
			expr.Minus(da.Z, expr.Times(t, db.Z)),
		}
	}
	a0, a1 := LineExprs(s, c.EntityA)
	b0, b1 := LineExprs(s, c.EntityB)
	daUV := expr.MinusVec2(projectInWorkplane(s, c.Wrkpl, a1), projectInWorkplane(s, c.Wrkpl, a0))
	dbUV := expr.MinusVec2(projectInWorkplane(s, c.Wrkpl, b1), projectInWorkplane(s, c.Wrkpl, b0))
	return []*expr.Expr{expr.Minus(expr.Times(daUV.U, dbUV.V), expr.Times(daUV.V, dbUV.U))}
}

// perpendicular uses the plain dot product rather than normalizing first:
// dot(a,b)=0 is equivalent to cos(angle)=0 wherever both vectors are
// nonzero, and skips a division that buys nothing here.
func perpendicular(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	a0, a1 := LineExprs(s, c.EntityA)
	b0, b1 := LineExprs(s, c.EntityB)
	return expr.Dot3(expr.MinusVec3(a1, a0), expr.MinusVec3(b1, b0))
}

// angle drives cos(angle between EntityA, EntityB) to cos(valA). Near 0 or
// pi the cosine curve flattens and an ordinary residual converges too
// slowly, so it is scaled by a gain that grows as the target approaches
// either extreme; the constant reproduces the original tuning exactly.
func angle(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	a0, a1 := LineExprs(s, c.EntityA)
	b0, b1 := LineExprs(s, c.EntityB)
	da := expr.MinusVec3(a1, a0)
	db := expr.MinusVec3(b1, b0)
	cosAngle := expr.Div(expr.Dot3(da, db), expr.Times(expr.Magnitude3(da), expr.Magnitude3(db)))
	targetRad := c.ValA * math.Pi / 180
	cosTarget := math.Cos(targetRad)
	gain := 0.01 / (1.00001 - math.Abs(cosTarget))
	residual := expr.Minus(cosAngle, expr.FromConst(cosTarget))
	return expr.Times(expr.FromConst(gain), residual)
}

func equalAngle(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	a0, a1 := LineExprs(s, c.EntityA)
	b0, b1 := LineExprs(s, c.EntityB)
	c0, c1 := LineExprs(s, c.EntityC)
	d0, d1 := LineExprs(s, c.EntityD)
	ab := expr.MinusVec3(a1, a0)
	bb := expr.MinusVec3(b1, b0)
	cd1 := expr.MinusVec3(c1, c0)
	dd := expr.MinusVec3(d1, d0)
	cosAB := expr.Div(expr.Dot3(ab, bb), expr.Times(expr.Magnitude3(ab), expr.Magnitude3(bb)))
	cosCD := expr.Div(expr.Dot3(cd1, dd), expr.Times(expr.Magnitude3(cd1), expr.Magnitude3(dd)))
	return expr.Minus(cosAB, cosCD)
}

// arcLineTangent constrains EntityA's direction at the endpoint selected by
// Other (false: start, true: end) to be perpendicular to the radius at that
// endpoint — equivalently, the line direction dotted with (endpoint-center)
// is zero.
func arcLineTangent(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	arc := s.MustEntity(c.EntityB)
	center := PointExprs(s, arc.PointRefs[0])
	var endpoint expr.Vec3
	if c.Other {
		endpoint = PointExprs(s, arc.PointRefs[2])
	} else {
		endpoint = PointExprs(s, arc.PointRefs[1])
	}
	la, lb := LineExprs(s, c.EntityA)
	lineDir := expr.MinusVec3(lb, la)
	radial := expr.MinusVec3(endpoint, center)
	return expr.Dot3(lineDir, radial)
}

// cubicLineTangent aligns the cubic's tangent at the endpoint selected by
// Other with EntityB's direction. In a workplane a single 2D cross-product
// equation suffices; in 3D collinearity needs the auxiliary parameter t,
// same as PARALLEL.
func cubicLineTangent(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	start, finish := CubicTangentExprs(s, c.EntityA)
	tangent := finish
	if !c.Other {
		tangent = start
	}
	lb0, lb1 := LineExprs(s, c.EntityB)
	lineDir := expr.MinusVec3(lb1, lb0)
	if c.Wrkpl == sketch.FreeIn3D {
		t := expr.FromParam(c.ValP)
		return []*expr.Expr{
			expr.Minus(tangent.X, expr.Times(t, lineDir.X)),
			expr.Minus(tangent.Y, expr.Times(t, lineDir.Y)),
			expr.Minus(tangent.Z, expr.Times(t, lineDir.Z)),
		}
	}
	tanUV := expr.Vec2{U: expr.Dot3(tangent, mustBasisU(s, c.Wrkpl)), V: expr.Dot3(tangent, mustBasisV(s, c.Wrkpl))}
	lineUV := expr.Vec2{U: expr.Dot3(lineDir, mustBasisU(s, c.Wrkpl)), V: expr.Dot3(lineDir, mustBasisV(s, c.Wrkpl))}
	return []*expr.Expr{expr.Minus(expr.Times(tanUV.U, lineUV.V), expr.Times(tanUV.V, lineUV.U))}
}

func mustBasisU(s *sketch.Store, wp sketch.EntityHandle) expr.Vec3 { _, u, _ := workplaneBasis(s, wp); return u }
func mustBasisV(s *sketch.Store, wp sketch.EntityHandle) expr.Vec3 { _, _, v := workplaneBasis(s, wp); return v }

// curveCurveTangent aligns the tangent direction of EntityA at its selected
// endpoint (Other) with that of EntityB at its selected endpoint (Other2)
// via their 2D cross product in the shared workplane.
func curveCurveTangent(s *sketch.Store, c *sketch.ConstraintBase) *expr.Expr {
	tanA := curveTangentAt(s, c.EntityA, c.Other)
	tanB := curveTangentAt(s, c.EntityB, c.Other2)
	if c.Wrkpl == sketch.FreeIn3D {
		cross := expr.Cross3(tanA, tanB)
		return expr.Plus(expr.Plus(expr.Square(cross.X), expr.Square(cross.Y)), expr.Square(cross.Z))
	}
	u, v := mustBasisU(s, c.Wrkpl), mustBasisV(s, c.Wrkpl)
	aUV := expr.Vec2{U: expr.Dot3(tanA, u), V: expr.Dot3(tanA, v)}
	bUV := expr.Vec2{U: expr.Dot3(tanB, u), V: expr.Dot3(tanB, v)}
	return expr.Minus(expr.Times(aUV.U, bUV.V), expr.Times(aUV.V, bUV.U))
}

func curveTangentAt(s *sketch.Store, h sketch.EntityHandle, end bool) expr.Vec3 {
	e := s.MustEntity(h)
	switch e.Kind {
	case sketch.ArcOfCircle:
		center := PointExprs(s, e.PointRefs[0])
		var pt expr.Vec3
		if end {
			pt = PointExprs(s, e.PointRefs[2])
		} else {
			pt = PointExprs(s, e.PointRefs[1])
		}
		radial := expr.MinusVec3(pt, center)
		return expr.Vec3{X: expr.Negate(radial.Y), Y: radial.X, Z: expr.FromConst(0)}
	default:
		start, finish := CubicTangentExprs(s, h)
		if end {
			return finish
		}
		return start
	}
}

// sameOrientation aligns EntityA and EntityB's normal bases: their N vectors
// must be parallel (three equations via the auxiliary t, one redundant by
// construction) and a fourth equation breaks the remaining sign ambiguity
// by forcing whichever of U_a·V_b or U_a·U_b is larger toward +1.
func sameOrientation(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	ua, _, na := NormalExprsUVN(s, c.EntityA)
	ub, vb, nb := NormalExprsUVN(s, c.EntityB)
	t := expr.FromParam(c.ValP)
	parallelN := []*expr.Expr{
		expr.Minus(na.X, expr.Times(t, nb.X)),
		expr.Minus(na.Y, expr.Times(t, nb.Y)),
		expr.Minus(na.Z, expr.Times(t, nb.Z)),
	}
	dotUV := expr.Dot3(ua, vb)
	dotUU := expr.Dot3(ua, ub)
	numUV := math.Abs(dotUV.Eval(s))
	numUU := math.Abs(dotUU.Eval(s))
	sign := expr.Minus(dotUU, expr.FromConst(1))
	if numUV > numUU {
		sign = expr.Minus(dotUV, expr.FromConst(1))
	}
	return append(parallelN, sign)
}

// whereDragged pins every parameter of PtA to its current numeric value,
// rather than contributing a symbolic constraint — this is how the solver
// holds a point fixed at the location the UI most recently placed it at.
func whereDragged(s *sketch.Store, c *sketch.ConstraintBase) []*expr.Expr {
	e := s.MustEntity(c.PtA)
	out := make([]*expr.Expr, 0, 3)
	for _, ph := range e.Param {
		if !ph.Valid() {
			continue
		}
		out = append(out, expr.Minus(expr.FromParam(ph), expr.FromConst(s.Val(ph))))
	}
	return out
}
