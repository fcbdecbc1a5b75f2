package emit

import "github.com/sketchsolve/core/sketch"

// Is2DOnly reports whether kind can only be emitted with a workplane set —
// used by the group generator to validate a constraint before it ever
// reaches residuals, producing a caller-facing error instead of a panic deep
// inside the emitter.
func Is2DOnly(kind sketch.ConstraintKind) bool {
	switch kind {
	case sketch.SymmetricHoriz, sketch.SymmetricVert, sketch.SymmetricLine,
		sketch.Horizontal, sketch.Vertical:
		return true
	}
	return false
}

// EquationCount returns how many residual equations a constraint of kind
// contributes, with or without a workplane, without actually building the
// expressions.
func EquationCount(kind sketch.ConstraintKind, workplane bool) int {
	switch kind {
	case sketch.PointsCoincident:
		if workplane {
			return 2
		}
		return 3
	case sketch.PtOnLine, sketch.AtMidpoint:
		if workplane {
			return 2
		}
		return 3
	case sketch.Symmetric:
		return 4
	case sketch.SymmetricHoriz, sketch.SymmetricVert, sketch.SymmetricLine:
		return 2
	case sketch.Parallel:
		if workplane {
			return 1
		}
		return 3
	case sketch.CubicLineTangent:
		if workplane {
			return 1
		}
		return 3
	case sketch.SameOrientation:
		return 4
	case sketch.WhereDragged:
		return 4 // upper bound; Param[3] is unused for plain 3D points
	case sketch.Comment:
		return 0
	default:
		return 1
	}
}
