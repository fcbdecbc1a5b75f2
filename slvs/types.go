package slvs

import "github.com/sketchsolve/core/sketch"

// Param is the wire form of one parameter: a caller-assigned handle, the
// group it belongs to, and its current value. H is never 0 (0 is the
// reserved "none" handle); a caller builds one System.Param entry per
// degree of freedom an entity below owns.
type Param struct {
	H     uint32
	Group uint32
	Val   float64
}

// Entity is the wire form of one EntityBase. Type is one of the bit-exact
// entity type codes re-exported below; Point/Normal/Distance/Param carry
// whatever subset of fields that Type interprets, the rest left zero.
type Entity struct {
	H        uint32
	Group    uint32
	Type     int32
	Wrkpl    uint32
	Point    [4]uint32
	Normal   uint32
	Distance uint32
	Param    [4]uint32
}

// Constraint is the wire form of one ConstraintBase.
type Constraint struct {
	H       uint32
	Group   uint32
	Type    int32
	Wrkpl   uint32
	ValA    float64
	PtA     uint32
	PtB     uint32
	EntityA uint32
	EntityB uint32
	EntityC uint32
	EntityD uint32
	Other   int32
	Other2  int32
}

// System is the flat-array surface Solve reads and writes in place:
// entity/constraint/param arrays in, solved param values and a result
// classification out.
type System struct {
	Param    []Param
	Entity   []Entity
	Constraint []Constraint

	// Dragged names up to four parameters the caller is actively
	// manipulating; Solve pins them with an implicit WHERE_DRAGGED-style
	// equation so the solution stays close to wherever the caller last
	// placed them. Unused slots are 0.
	Dragged [4]uint32

	// CalculateFaileds requests the diagnostic search whenever the solve
	// fails (any Result other than Okay; a redundant system that converges
	// reports Okay and is not searched); Failed is populated only when this
	// is set and the solve actually fails.
	CalculateFaileds bool

	// Failed holds the bad-constraint handles the diagnostic search found,
	// valid only after Solve returns with CalculateFaileds set.
	Failed []uint32

	// DOF is the degrees-of-freedom count Solve reports when the group
	// comes back TooManyUnknowns, or always when FindFree is set.
	DOF int

	// FindFree requests the (expensive) free-parameter identification pass
	// and asks Solve to populate DOF even on a successful solve.
	FindFree bool

	// Result is the outcome code Solve writes: Okay, Inconsistent,
	// DidntConverge or TooManyUnknowns.
	Result Result
}

// Result is the C-surface outcome code. REDUNDANT_OKAY, the internal
// four-and-a-half-th status solve.Result.Rank can carry, maps onto Okay
// here exactly as the original wire API documents.
type Result int32

const (
	Okay              Result = 0
	Inconsistent      Result = 1
	DidntConverge     Result = 2
	TooManyUnknowns   Result = 3
)

// Entity type codes, bit-exact with the spec's wire surface.
const (
	PointIn3D          = int32(sketch.PointIn3D)
	PointIn2D          = int32(sketch.PointIn2D)
	PointNTrans        = int32(sketch.PointNTrans)
	PointNRotTrans     = int32(sketch.PointNRotTrans)
	PointNCopy         = int32(sketch.PointNCopy)
	PointNRotAA        = int32(sketch.PointNRotAA)
	PointNRotAxisTrans = int32(sketch.PointNRotAxisTrans)
	NormalIn3D         = int32(sketch.NormalIn3D)
	NormalIn2D         = int32(sketch.NormalIn2D)
	NormalNCopy        = int32(sketch.NormalNCopy)
	NormalNRot         = int32(sketch.NormalNRot)
	NormalNRotAA       = int32(sketch.NormalNRotAA)
	DistanceEntity     = int32(sketch.DistanceEntity)
	DistanceNCopy      = int32(sketch.DistanceNCopy)
	Workplane          = int32(sketch.Workplane)
	LineSegment        = int32(sketch.LineSegment)
	Cubic              = int32(sketch.Cubic)
	Circle             = int32(sketch.Circle)
	ArcOfCircle        = int32(sketch.ArcOfCircle)
	CubicPeriodic      = int32(sketch.CubicPeriodic)
)

// Constraint type codes, bit-exact with the spec's wire surface — start at
// 100000 (POINTS_COINCIDENT) and enumerate contiguously through
// LENGTH_DIFFERENCE.
const (
	PointsCoincident  = int32(sketch.PointsCoincident)
	PtPtDistance      = int32(sketch.PtPtDistance)
	ProjPtDistance    = int32(sketch.ProjPtDistance)
	PtLineDistance    = int32(sketch.PtLineDistance)
	PtPlaneDistance   = int32(sketch.PtPlaneDistance)
	PtFaceDistance    = int32(sketch.PtFaceDistance)
	EqualLengthLines  = int32(sketch.EqualLengthLines)
	EqLenPtLineD      = int32(sketch.EqLenPtLineD)
	LengthRatio       = int32(sketch.LengthRatio)
	Diameter          = int32(sketch.Diameter)
	EqualRadius       = int32(sketch.EqualRadius)
	EqualLineArcLen   = int32(sketch.EqualLineArcLen)
	PtInPlane         = int32(sketch.PtInPlane)
	PtOnFace          = int32(sketch.PtOnFace)
	PtOnLine          = int32(sketch.PtOnLine)
	PtOnCircle        = int32(sketch.PtOnCircle)
	AtMidpoint        = int32(sketch.AtMidpoint)
	Symmetric         = int32(sketch.Symmetric)
	SymmetricHoriz    = int32(sketch.SymmetricHoriz)
	SymmetricVert     = int32(sketch.SymmetricVert)
	SymmetricLine     = int32(sketch.SymmetricLine)
	Horizontal        = int32(sketch.Horizontal)
	Vertical          = int32(sketch.Vertical)
	Parallel          = int32(sketch.Parallel)
	Perpendicular     = int32(sketch.Perpendicular)
	Angle             = int32(sketch.Angle)
	EqualAngle        = int32(sketch.EqualAngle)
	ArcLineTangent    = int32(sketch.ArcLineTangent)
	CubicLineTangent  = int32(sketch.CubicLineTangent)
	CurveCurveTangent = int32(sketch.CurveCurveTangent)
	SameOrientation   = int32(sketch.SameOrientation)
	WhereDragged      = int32(sketch.WhereDragged)
	Comment           = int32(sketch.Comment)
	LengthDifference  = int32(sketch.LengthDifference)
)

// FreeIn3D is the sentinel workplane handle meaning "not projected into any
// workplane".
const FreeIn3D = uint32(sketch.FreeIn3D)
