package groupgen

import "github.com/sketchsolve/core/sketch"

// PointIn3D allocates a free point entity with its own x/y/z parameters,
// seeded at the given initial guess.
func PointIn3D(s *sketch.Store, g sketch.GroupHandle, x, y, z float64) *sketch.EntityBase {
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

// PointIn2D allocates a point entity confined to workplane wp, with its own
// u/v parameters.
func PointIn2D(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle, u, v float64) *sketch.EntityBase {
	pu := s.NewParam(g, u)
	pv := s.NewParam(g, v)
	return s.NewEntity(&sketch.EntityBase{
		Group: g,
		Kind:  sketch.PointIn2D,
		Wrkpl: wp,
		Param: [4]sketch.ParamHandle{pu.H, pv.H},
	})
}

// NormalIn3D allocates a free orientation entity carrying its own unit
// quaternion parameters (w, x, y, z).
func NormalIn3D(s *sketch.Store, g sketch.GroupHandle, w, x, y, z float64) *sketch.EntityBase {
	pw := s.NewParam(g, w)
	px := s.NewParam(g, x)
	py := s.NewParam(g, y)
	pz := s.NewParam(g, z)
	return s.NewEntity(&sketch.EntityBase{
		Group: g,
		Kind:  sketch.NormalIn3D,
		Wrkpl: sketch.FreeIn3D,
		Param: [4]sketch.ParamHandle{pw.H, px.H, py.H, pz.H},
	})
}

// NormalIn2D allocates an orientation entity that always reads out as its
// workplane's own normal; it owns no parameters of its own.
func NormalIn2D(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{Group: g, Kind: sketch.NormalIn2D, Wrkpl: wp})
}

// Distance allocates a DISTANCE entity carrying a single scalar parameter,
// used as the radius of a circle/arc or the offset between two entities.
func Distance(s *sketch.Store, g sketch.GroupHandle, val float64) *sketch.EntityBase {
	pd := s.NewParam(g, val)
	return s.NewEntity(&sketch.EntityBase{Group: g, Kind: sketch.DistanceEntity, Param: [4]sketch.ParamHandle{pd.H}})
}

// Workplane allocates a workplane entity referencing an existing origin
// point and normal.
func Workplane(s *sketch.Store, g sketch.GroupHandle, origin, normal sketch.EntityHandle) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{
		Group: g, Kind: sketch.Workplane, Wrkpl: sketch.FreeIn3D,
		PointRefs: [4]sketch.EntityHandle{origin}, Normal: normal,
	})
}

// LineSegment allocates a line between two existing point entities.
func LineSegment(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle, a, b sketch.EntityHandle) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{
		Group: g, Kind: sketch.LineSegment, Wrkpl: wp, PointRefs: [4]sketch.EntityHandle{a, b},
	})
}

// Circle allocates a circle entity around an existing center point, with its
// own radius DISTANCE entity.
func Circle(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle, center, normal sketch.EntityHandle, radius float64) *sketch.EntityBase {
	dist := Distance(s, g, radius)
	return s.NewEntity(&sketch.EntityBase{
		Group: g, Kind: sketch.Circle, Wrkpl: wp,
		PointRefs: [4]sketch.EntityHandle{center}, Normal: normal, Distance: dist.H,
	})
}

// ArcOfCircle allocates an arc between two existing endpoint entities around
// an existing center.
func ArcOfCircle(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle, normal, center, start, finish sketch.EntityHandle) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{
		Group: g, Kind: sketch.ArcOfCircle, Wrkpl: wp, Normal: normal,
		PointRefs: [4]sketch.EntityHandle{center, start, finish},
	})
}

// Cubic allocates a cubic Bezier curve from four existing control points.
func Cubic(s *sketch.Store, g sketch.GroupHandle, wp sketch.EntityHandle, p0, p1, p2, p3 sketch.EntityHandle) *sketch.EntityBase {
	return s.NewEntity(&sketch.EntityBase{
		Group: g, Kind: sketch.Cubic, Wrkpl: wp, PointRefs: [4]sketch.EntityHandle{p0, p1, p2, p3},
	})
}
