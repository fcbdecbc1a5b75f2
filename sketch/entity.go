package sketch

// EntityKind tags the variant an EntityBase represents. Numeric values for
// the kinds exposed on the external wire surface match the bit-exact codes
// from the Slvs_Entity type codes; the remaining kinds, including the
// derived N_TRANS/N_ROT*/N_COPY variants computed from a Source entity,
// follow them contiguously within each block.
type EntityKind int32

const (
	PointIn3D EntityKind = 50000 + iota
	PointIn2D
	PointNTrans
	PointNRotTrans
	PointNCopy
	PointNRotAA
	PointNRotAxisTrans
)

const (
	NormalIn3D EntityKind = 60000 + iota
	NormalIn2D
	NormalNCopy
	NormalNRot
	NormalNRotAA
)

const (
	DistanceEntity EntityKind = 70000 + iota
	DistanceNCopy
)

const (
	Workplane EntityKind = 80000 + iota
	LineSegment
	Cubic
	Circle
	ArcOfCircle
	CubicPeriodic
	FaceNormalPt
	FacePlaneNd
	TTFText
	Image
)

// EntityBase is a tagged-union entity record. Every variant interprets the
// fixed fields below according to Kind; unused fields are zero.
//
//   - Normal, Distance: referenced entity handles for CIRCLE/ARC_OF_CIRCLE
//     and any entity that carries a radius or offset.
//   - Param[0..3]: own parameter handles, used by POINT_IN_3D (3),
//     POINT_IN_2D (2) and NORMAL_IN_3D's quaternion (4: w,x,y,z).
//   - PointRefs: referenced point handles — workplane origin, line/arc
//     endpoints, circle/arc center.
//   - Source, TimesApplied: for the derived N_COPY/N_ROT* variants, the
//     entity this one is computed from and the repetition count.
type EntityBase struct {
	H         EntityHandle
	Group     GroupHandle
	Kind      EntityKind
	Wrkpl     EntityHandle // FreeIn3D sentinel means "no workplane"

	Param [4]ParamHandle

	PointRefs  [4]EntityHandle // origin/center/endpoints, meaning depends on Kind
	Normal     EntityHandle
	Distance   EntityHandle

	Source        EntityHandle
	TimesApplied  int
}

// IsPoint reports whether e represents some flavor of point.
func (e *EntityBase) IsPoint() bool {
	switch e.Kind {
	case PointIn3D, PointIn2D, PointNTrans, PointNRotTrans, PointNCopy, PointNRotAA, PointNRotAxisTrans:
		return true
	}
	return false
}

// IsNormal reports whether e represents some flavor of normal (orientation).
func (e *EntityBase) IsNormal() bool {
	switch e.Kind {
	case NormalIn3D, NormalIn2D, NormalNCopy, NormalNRot, NormalNRotAA:
		return true
	}
	return false
}

// IsWorkplane reports whether e is a WORKPLANE entity.
func (e *EntityBase) IsWorkplane() bool { return e.Kind == Workplane }

// IsDistance reports whether e carries a scalar distance/radius value.
func (e *EntityBase) IsDistance() bool {
	return e.Kind == DistanceEntity || e.Kind == DistanceNCopy
}

// HasVector reports whether e can supply a direction/vector form, used by
// constraints like PROJ_PT_DISTANCE and PARALLEL.
func (e *EntityBase) HasVector() bool {
	switch e.Kind {
	case LineSegment, Cubic, CubicPeriodic:
		return true
	}
	return e.IsNormal()
}

// HasEndpoints reports whether e is a curve with a start and end point.
func (e *EntityBase) HasEndpoints() bool {
	switch e.Kind {
	case LineSegment, Cubic, CubicPeriodic, ArcOfCircle:
		return true
	}
	return false
}

// IsDerived reports whether e's coordinates are computed from Source rather
// than stored directly — every N_COPY/N_ROT* variant.
func (e *EntityBase) IsDerived() bool {
	switch e.Kind {
	case PointNTrans, PointNRotTrans, PointNCopy, PointNRotAA, PointNRotAxisTrans,
		NormalNCopy, NormalNRot, NormalNRotAA, DistanceNCopy:
		return true
	}
	return false
}

// EntityTable holds the live entities of a Store.
type EntityTable = Table[EntityHandle, *EntityBase]

// NewEntityTable constructs an empty entity table.
func NewEntityTable() *EntityTable {
	return NewTable[EntityHandle, *EntityBase](func(e *EntityBase) EntityHandle { return e.H })
}
