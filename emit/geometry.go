package emit

import (
	"fmt"

	"github.com/sketchsolve/core/expr"
	"github.com/sketchsolve/core/sketch"
)

// PointExprs returns the 3-space coordinates of a point entity as an
// expression vector. For a derived N_COPY/N_ROT*/N_TRANS variant the result
// is built from its Source entity plus the variant's own transform params —
// it is never read out of stored coordinates, since derived points have
// none.
func PointExprs(s *sketch.Store, h sketch.EntityHandle) expr.Vec3 {
	e := s.MustEntity(h)
	if !e.IsPoint() {
		panic(fmt.Sprintf("emit: entity %d is not a point (kind %d)", h, e.Kind))
	}
	switch e.Kind {
	case sketch.PointIn3D:
		return expr.Vec3{
			X: expr.FromParam(e.Param[0]),
			Y: expr.FromParam(e.Param[1]),
			Z: expr.FromParam(e.Param[2]),
		}
	case sketch.PointIn2D:
		origin, basisU, basisV := workplaneBasis(s, e.Wrkpl)
		u := expr.FromParam(e.Param[0])
		v := expr.FromParam(e.Param[1])
		return expr.Vec3{
			X: expr.Plus(origin.X, expr.Plus(expr.Times(u, basisU.X), expr.Times(v, basisV.X))),
			Y: expr.Plus(origin.Y, expr.Plus(expr.Times(u, basisU.Y), expr.Times(v, basisV.Y))),
			Z: expr.Plus(origin.Z, expr.Plus(expr.Times(u, basisU.Z), expr.Times(v, basisV.Z))),
		}
	case sketch.PointNTrans:
		src := PointExprs(s, e.Source)
		dx := expr.Times(expr.FromConst(float64(e.TimesApplied)), expr.FromParam(e.Param[0]))
		dy := expr.Times(expr.FromConst(float64(e.TimesApplied)), expr.FromParam(e.Param[1]))
		dz := expr.Times(expr.FromConst(float64(e.TimesApplied)), expr.FromParam(e.Param[2]))
		return expr.Vec3{X: expr.Plus(src.X, dx), Y: expr.Plus(src.Y, dy), Z: expr.Plus(src.Z, dz)}
	case sketch.PointNCopy:
		return PointExprs(s, e.Source)
	case sketch.PointNRotTrans, sketch.PointNRotAA, sketch.PointNRotAxisTrans:
		src := PointExprs(s, e.Source)
		nrm := s.MustEntity(e.Normal)
		w, x, y, z := quaternionParams(nrm)
		rotated := rotateVectorByQuaternion(w, x, y, z, src)
		dx := expr.FromParam(e.Param[0])
		dy := expr.FromParam(e.Param[1])
		dz := expr.FromParam(e.Param[2])
		return expr.Vec3{X: expr.Plus(rotated.X, dx), Y: expr.Plus(rotated.Y, dy), Z: expr.Plus(rotated.Z, dz)}
	default:
		panic(fmt.Sprintf("emit: unhandled point entity kind %d", e.Kind))
	}
}

// PointExprsInWorkplane returns the (u,v) coordinates of the point h
// expressed in workplane wp's basis. When wp is FreeIn3D the caller asked
// for a 2D projection of a point that is not meant to be projected, which is
// always a caller bug — use PointExprs directly for the FREE_IN_3D case.
func PointExprsInWorkplane(s *sketch.Store, h sketch.EntityHandle, wp sketch.EntityHandle) expr.Vec2 {
	if wp == sketch.FreeIn3D {
		panic("emit: PointExprsInWorkplane called with FREE_IN_3D workplane")
	}
	p := PointExprs(s, h)
	origin, basisU, basisV := workplaneBasis(s, wp)
	rel := expr.Vec3{X: expr.Minus(p.X, origin.X), Y: expr.Minus(p.Y, origin.Y), Z: expr.Minus(p.Z, origin.Z)}
	return expr.Vec2{U: expr.Dot3(rel, basisU), V: expr.Dot3(rel, basisV)}
}

// NormalExprsUVN returns the U, V and N (third/"normal") basis vectors of a
// normal entity, derived symbolically from its quaternion parameters. These
// are exact closed-form expressions, never finite-difference approximated.
func NormalExprsUVN(s *sketch.Store, h sketch.EntityHandle) (u, v, n expr.Vec3) {
	e := s.MustEntity(h)
	if !e.IsNormal() {
		panic(fmt.Sprintf("emit: entity %d is not a normal (kind %d)", h, e.Kind))
	}
	switch e.Kind {
	case sketch.NormalIn3D:
		w, x, y, z := quaternionParams(e)
		return quaternionU(w, x, y, z), quaternionV(w, x, y, z), quaternionN(w, x, y, z)
	case sketch.NormalIn2D:
		return NormalExprsUVN(s, s.MustEntity(e.Wrkpl).Normal)
	case sketch.NormalNCopy:
		return NormalExprsUVN(s, e.Source)
	case sketch.NormalNRot, sketch.NormalNRotAA:
		srcU, srcV, srcN := NormalExprsUVN(s, e.Source)
		w, x, y, z := quaternionParams(e)
		return rotateVectorByQuaternion(w, x, y, z, srcU),
			rotateVectorByQuaternion(w, x, y, z, srcV),
			rotateVectorByQuaternion(w, x, y, z, srcN)
	default:
		panic(fmt.Sprintf("emit: unhandled normal entity kind %d", e.Kind))
	}
}

func quaternionParams(e *sketch.EntityBase) (w, x, y, z *expr.Expr) {
	return expr.FromParam(e.Param[0]), expr.FromParam(e.Param[1]), expr.FromParam(e.Param[2]), expr.FromParam(e.Param[3])
}

// quaternionU/V/N are the symbolic twins of the numeric QuaternionU/V/N
// helpers on the slvs surface; both implement the same closed-form rotation
// matrix columns for a unit quaternion (w, x, y, z).
func quaternionU(w, x, y, z *expr.Expr) expr.Vec3 {
	return expr.Vec3{
		X: expr.Plus(expr.Plus(expr.Square(w), expr.Square(x)), expr.Negate(expr.Plus(expr.Square(y), expr.Square(z)))),
		Y: expr.Times(expr.FromConst(2), expr.Plus(expr.Times(x, y), expr.Times(w, z))),
		Z: expr.Times(expr.FromConst(2), expr.Minus(expr.Times(x, z), expr.Times(w, y))),
	}
}

func quaternionV(w, x, y, z *expr.Expr) expr.Vec3 {
	return expr.Vec3{
		X: expr.Times(expr.FromConst(2), expr.Minus(expr.Times(x, y), expr.Times(w, z))),
		Y: expr.Plus(expr.Minus(expr.Square(w), expr.Square(x)), expr.Minus(expr.Square(y), expr.Square(z))),
		Z: expr.Times(expr.FromConst(2), expr.Plus(expr.Times(y, z), expr.Times(w, x))),
	}
}

func quaternionN(w, x, y, z *expr.Expr) expr.Vec3 {
	return expr.Vec3{
		X: expr.Times(expr.FromConst(2), expr.Plus(expr.Times(x, z), expr.Times(w, y))),
		Y: expr.Times(expr.FromConst(2), expr.Minus(expr.Times(y, z), expr.Times(w, x))),
		Z: expr.Plus(expr.Minus(expr.Square(w), expr.Square(x)), expr.Minus(expr.Square(z), expr.Square(y))),
	}
}

// rotateVectorByQuaternion rotates v by the unit quaternion (w,x,y,z) using
// q*v*q^-1 expanded into its matrix-column form — the same formula as
// quaternionU/V/N applied to the standard basis, applied instead to an
// arbitrary vector via the Rodrigues-equivalent expansion.
func rotateVectorByQuaternion(w, x, y, z *expr.Expr, v expr.Vec3) expr.Vec3 {
	u := quaternionU(w, x, y, z)
	vv := quaternionV(w, x, y, z)
	n := quaternionN(w, x, y, z)
	return expr.Vec3{
		X: expr.Plus(expr.Plus(expr.Times(v.X, u.X), expr.Times(v.Y, vv.X)), expr.Times(v.Z, n.X)),
		Y: expr.Plus(expr.Plus(expr.Times(v.X, u.Y), expr.Times(v.Y, vv.Y)), expr.Times(v.Z, n.Y)),
		Z: expr.Plus(expr.Plus(expr.Times(v.X, u.Z), expr.Times(v.Y, vv.Z)), expr.Times(v.Z, n.Z)),
	}
}

// WorkplaneOffsetExprs returns the origin point of a workplane entity.
func WorkplaneOffsetExprs(s *sketch.Store, wp sketch.EntityHandle) expr.Vec3 {
	w := s.MustEntity(wp)
	if !w.IsWorkplane() {
		panic(fmt.Sprintf("emit: entity %d is not a workplane", wp))
	}
	return PointExprs(s, w.PointRefs[0])
}

// WorkplaneGetPlaneExprs returns (n, d) such that a point p lies on the
// workplane iff p.n - d == 0.
func WorkplaneGetPlaneExprs(s *sketch.Store, wp sketch.EntityHandle) (n expr.Vec3, d *expr.Expr) {
	w := s.MustEntity(wp)
	_, _, normalN := NormalExprsUVN(s, w.Normal)
	origin := WorkplaneOffsetExprs(s, wp)
	return normalN, expr.Dot3(normalN, origin)
}

func workplaneBasis(s *sketch.Store, wp sketch.EntityHandle) (origin expr.Vec3, u, v expr.Vec3) {
	w := s.MustEntity(wp)
	origin = PointExprs(s, w.PointRefs[0])
	u, v, _ = NormalExprsUVN(s, w.Normal)
	return origin, u, v
}

// CircleRadiusExpr returns the radius expression of a circle or arc entity:
// a circle's radius is its referenced DISTANCE entity, an arc's is the
// distance from its center to its start point.
func CircleRadiusExpr(s *sketch.Store, h sketch.EntityHandle) *expr.Expr {
	e := s.MustEntity(h)
	switch e.Kind {
	case sketch.Circle:
		return DistanceExpr(s, e.Distance)
	case sketch.ArcOfCircle:
		center := PointExprs(s, e.PointRefs[0])
		start := PointExprs(s, e.PointRefs[1])
		return expr.Magnitude3(expr.MinusVec3(start, center))
	default:
		panic(fmt.Sprintf("emit: entity %d has no radius (kind %d)", h, e.Kind))
	}
}

// DistanceExpr returns the scalar value of a DISTANCE (or DISTANCE_N_COPY)
// entity.
func DistanceExpr(s *sketch.Store, h sketch.EntityHandle) *expr.Expr {
	e := s.MustEntity(h)
	switch e.Kind {
	case sketch.DistanceEntity:
		return expr.FromParam(e.Param[0])
	case sketch.DistanceNCopy:
		return DistanceExpr(s, e.Source)
	default:
		panic(fmt.Sprintf("emit: entity %d is not a distance (kind %d)", h, e.Kind))
	}
}

// LineExprs returns the two endpoint expression vectors of a line-like
// entity (LINE_SEGMENT, CUBIC, CUBIC_PERIODIC, ARC_OF_CIRCLE).
func LineExprs(s *sketch.Store, h sketch.EntityHandle) (a, b expr.Vec3) {
	e := s.MustEntity(h)
	if !e.HasEndpoints() {
		panic(fmt.Sprintf("emit: entity %d has no endpoints (kind %d)", h, e.Kind))
	}
	switch e.Kind {
	case sketch.LineSegment:
		return PointExprs(s, e.PointRefs[0]), PointExprs(s, e.PointRefs[1])
	case sketch.ArcOfCircle:
		return PointExprs(s, e.PointRefs[1]), PointExprs(s, e.PointRefs[2])
	case sketch.Cubic, sketch.CubicPeriodic:
		return PointExprs(s, e.PointRefs[0]), PointExprs(s, e.PointRefs[3])
	default:
		panic(fmt.Sprintf("emit: unhandled endpoint entity kind %d", e.Kind))
	}
}

// CubicTangentExprs returns the start and finish tangent direction vectors
// of a cubic Bezier entity: the derivative of a cubic Bezier at t=0 is
// proportional to p1-p0, and at t=1 to p3-p2.
func CubicTangentExprs(s *sketch.Store, h sketch.EntityHandle) (start, finish expr.Vec3) {
	e := s.MustEntity(h)
	p0 := PointExprs(s, e.PointRefs[0])
	p1 := PointExprs(s, e.PointRefs[1])
	p2 := PointExprs(s, e.PointRefs[2])
	p3 := PointExprs(s, e.PointRefs[3])
	return expr.MinusVec3(p1, p0), expr.MinusVec3(p3, p2)
}

// FaceGetPointExprs and FaceGetNormalExprs expose the point-on-face and
// face-normal forms for the FACE_* entity kinds the NURBS shell engine
// contributes; the solver never constructs or mutates faces, it only reads
// these two vectors when a PT_FACE_DISTANCE/PT_ON_FACE constraint
// references one.
func FaceGetPointExprs(s *sketch.Store, h sketch.EntityHandle) expr.Vec3 {
	e := s.MustEntity(h)
	return PointExprs(s, e.PointRefs[0])
}

func FaceGetNormalExprs(s *sketch.Store, h sketch.EntityHandle) expr.Vec3 {
	e := s.MustEntity(h)
	_, _, n := NormalExprsUVN(s, e.Normal)
	return n
}
